package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"

	"hechonl_backend/internal/geo"
	"hechonl_backend/internal/logger"
	"hechonl_backend/internal/models"
	"hechonl_backend/internal/repositories"
	"hechonl_backend/pkg/apperrors"
)

type DirectoryService interface {
	// Refresh reloads the working set from the store.
	Refresh(ctx context.Context) error
	Add(ctx context.Context, business models.Business) (models.Business, error)
	Delete(ctx context.Context, business models.Business) error
	Update(ctx context.Context, business models.Business) (models.Business, error)

	Filtered(searchText string, category *models.BusinessCategory) []models.Business
	ApplyFilter()
	SetSelectedFilter(filter models.DirectoryFilter) error
	SetUserLocation(location geo.Coordinate) error

	Get(id string) (models.Business, bool)
	Businesses() []models.Business
	BusinessesByOwner(ownerID string) []models.Business
	SelectedFilter() models.DirectoryFilter
	UserLocation() *geo.Coordinate
}

type DirectoryServiceImpl struct {
	businessRepo repositories.BusinessRepository
	now          func() time.Time

	// refreshMu serializes reloads so an older snapshot never replaces a newer one.
	refreshMu sync.Mutex

	mu             sync.RWMutex
	businesses     []models.Business
	selectedFilter models.DirectoryFilter
	userLocation   *geo.Coordinate
}

func NewDirectoryService(businessRepo repositories.BusinessRepository, defaultFilter models.DirectoryFilter) *DirectoryServiceImpl {
	if !defaultFilter.IsValid() {
		defaultFilter = models.FilterNearest
	}
	return &DirectoryServiceImpl{
		businessRepo:   businessRepo,
		now:            func() time.Time { return time.Now().UTC() },
		selectedFilter: defaultFilter,
	}
}

func (s *DirectoryServiceImpl) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	fetched, err := s.businessRepo.FetchAll(ctx)
	if err != nil {
		logger.CtxWithError(ctx, "failed to refresh directory", err)
		return apperrors.InternalError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userLocation != nil {
		setDistances(fetched, *s.userLocation)
	}
	sortBusinesses(fetched, s.selectedFilter, s.userLocation != nil)
	s.businesses = fetched

	logger.CtxDebug(ctx, "directory refreshed", "count", len(fetched))
	return nil
}

func (s *DirectoryServiceImpl) Add(ctx context.Context, business models.Business) (models.Business, error) {
	business.Distance = nil
	business.ApplyDefaults(s.now())

	if err := s.businessRepo.Add(ctx, &business); err != nil {
		if errors.Is(err, repositories.ErrBusinessAlreadyExists) {
			return models.Business{}, apperrors.ErrAlreadyExists(err)
		}
		logger.CtxWithError(ctx, "failed to add business", err, "business_id", business.ID)
		return models.Business{}, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "business added", "business_id", business.ID, "category", business.Category)

	if err := s.Refresh(ctx); err != nil {
		return models.Business{}, err
	}
	return s.getOr(business), nil
}

func (s *DirectoryServiceImpl) Delete(ctx context.Context, business models.Business) error {
	if err := s.businessRepo.Delete(ctx, business.ID); err != nil {
		if errors.Is(err, repositories.ErrBusinessNotFound) {
			return apperrors.ErrBusinessNotFound
		}
		logger.CtxWithError(ctx, "failed to delete business", err, "business_id", business.ID)
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "business deleted", "business_id", business.ID)
	return s.Refresh(ctx)
}

// Update replaces the stored record in one upsert; created_at is kept from the store.
func (s *DirectoryServiceImpl) Update(ctx context.Context, business models.Business) (models.Business, error) {
	if business.ID == "" {
		return models.Business{}, apperrors.ErrBusinessNotFound
	}
	business.Distance = nil
	business.UpdatedAt = s.now()
	business.ApplyDefaults(business.UpdatedAt)

	if err := s.businessRepo.Upsert(ctx, &business); err != nil {
		logger.CtxWithError(ctx, "failed to update business", err, "business_id", business.ID)
		return models.Business{}, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "business updated", "business_id", business.ID)

	if err := s.Refresh(ctx); err != nil {
		return models.Business{}, err
	}
	return s.getOr(business), nil
}

func (s *DirectoryServiceImpl) getOr(fallback models.Business) models.Business {
	if b, ok := s.Get(fallback.ID); ok {
		return b
	}
	return fallback.Clone()
}

// Filtered matches searchText case-insensitively against name or description,
// and category exactly. Both predicates are optional and combined with AND.
func (s *DirectoryServiceImpl) Filtered(searchText string, category *models.BusinessCategory) []models.Business {
	var needle string
	if searchText != "" {
		needle = cases.Fold().String(searchText)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Business, 0, len(s.businesses))
	for _, b := range s.businesses {
		if needle != "" && !containsFolded(b.Name, needle) && !containsFolded(b.Description, needle) {
			continue
		}
		if category != nil && b.Category != *category {
			continue
		}
		out = append(out, b.Clone())
	}
	return out
}

func containsFolded(haystack, foldedNeedle string) bool {
	return strings.Contains(cases.Fold().String(haystack), foldedNeedle)
}

func (s *DirectoryServiceImpl) ApplyFilter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	sortBusinesses(s.businesses, s.selectedFilter, s.userLocation != nil)
}

func (s *DirectoryServiceImpl) SetSelectedFilter(filter models.DirectoryFilter) error {
	if !filter.IsValid() {
		return apperrors.ValidationError(map[string]string{"filter": "must be one of nearest, top_rated, newest"})
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedFilter = filter
	sortBusinesses(s.businesses, s.selectedFilter, s.userLocation != nil)
	return nil
}

// SetUserLocation recomputes every distance and re-sorts only under the nearest filter.
func (s *DirectoryServiceImpl) SetUserLocation(location geo.Coordinate) error {
	if !location.Valid() {
		return apperrors.ErrInvalidLocation
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	loc := location
	s.userLocation = &loc
	setDistances(s.businesses, loc)
	if s.selectedFilter == models.FilterNearest {
		sortBusinesses(s.businesses, s.selectedFilter, true)
	}
	return nil
}

func (s *DirectoryServiceImpl) Get(id string) (models.Business, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.businesses {
		if b.ID == id {
			return b.Clone(), true
		}
	}
	return models.Business{}, false
}

func (s *DirectoryServiceImpl) Businesses() []models.Business {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Business, len(s.businesses))
	for i, b := range s.businesses {
		out[i] = b.Clone()
	}
	return out
}

func (s *DirectoryServiceImpl) BusinessesByOwner(ownerID string) []models.Business {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Business{}
	for _, b := range s.businesses {
		if b.OwnerID == ownerID {
			out = append(out, b.Clone())
		}
	}
	return out
}

func (s *DirectoryServiceImpl) SelectedFilter() models.DirectoryFilter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedFilter
}

func (s *DirectoryServiceImpl) UserLocation() *geo.Coordinate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.userLocation == nil {
		return nil
	}
	loc := *s.userLocation
	return &loc
}

func setDistances(businesses []models.Business, from geo.Coordinate) {
	for i := range businesses {
		d := geo.Distance(businesses[i].Location, from)
		businesses[i].Distance = &d
	}
}

// sortBusinesses orders in place; ties always fall back to ascending id.
// Without a known location the nearest filter leaves the order untouched.
func sortBusinesses(businesses []models.Business, filter models.DirectoryFilter, haveLocation bool) {
	var primary func(a, b *models.Business) int
	switch filter {
	case models.FilterNearest:
		if !haveLocation {
			return
		}
		primary = func(a, b *models.Business) int {
			return compareFloat(distanceOf(a), distanceOf(b))
		}
	case models.FilterTopRated:
		primary = func(a, b *models.Business) int {
			return compareFloat(b.Rating, a.Rating)
		}
	case models.FilterNewest:
		primary = func(a, b *models.Business) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		}
	default:
		return
	}

	sort.SliceStable(businesses, func(i, j int) bool {
		a, b := &businesses[i], &businesses[j]
		if c := primary(a, b); c != 0 {
			return c < 0
		}
		return a.ID < b.ID
	})
}

func distanceOf(b *models.Business) float64 {
	if b.Distance == nil {
		return geo.EarthRadiusMeters * 4 // sorts after every real distance
	}
	return *b.Distance
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
