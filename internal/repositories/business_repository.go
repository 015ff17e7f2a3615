package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hechonl_backend/internal/events"
	"hechonl_backend/internal/logger"
	"hechonl_backend/internal/models"
)

var (
	ErrBusinessNotFound      = errors.New("business not found")
	ErrBusinessAlreadyExists = errors.New("business already exists")
)

// upsertColumns are overwritten when a business with the same id exists.
// created_at is left alone so an update keeps the original creation time.
var upsertColumns = []string{
	"owner_id", "name", "description", "category",
	"latitude", "longitude", "address", "phone", "email", "website",
	"social_media", "images", "rating", "review_count", "updated_at",
}

type BusinessRepository interface {
	// FetchAll returns every business ordered by id.
	FetchAll(ctx context.Context) ([]models.Business, error)
	FindByID(ctx context.Context, id string) (*models.Business, error)
	FindByOwner(ctx context.Context, ownerID string) ([]models.Business, error)
	Add(ctx context.Context, business *models.Business) error
	// Upsert inserts or replaces by id in one statement.
	Upsert(ctx context.Context, business *models.Business) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type BusinessRepositoryImpl struct {
	db   *gorm.DB
	sink changeSink
}

func NewBusinessRepository(db *gorm.DB, bus *events.Bus) BusinessRepository {
	return &BusinessRepositoryImpl{db: db, sink: busSink{bus: bus}}
}

func (r *BusinessRepositoryImpl) FetchAll(ctx context.Context) ([]models.Business, error) {
	start := time.Now()
	var businesses []models.Business
	err := r.db.WithContext(ctx).Order("id ASC").Find(&businesses).Error
	logger.DBLog("fetch_businesses", "SELECT businesses", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return businesses, nil
}

func (r *BusinessRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Business, error) {
	var business models.Business
	err := r.db.WithContext(ctx).First(&business, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, err
	}
	return &business, nil
}

func (r *BusinessRepositoryImpl) FindByOwner(ctx context.Context, ownerID string) ([]models.Business, error) {
	var businesses []models.Business
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&businesses).Error
	return businesses, err
}

func (r *BusinessRepositoryImpl) Add(ctx context.Context, business *models.Business) error {
	start := time.Now()
	err := r.db.WithContext(ctx).Create(business).Error
	logger.DBLog("add_business", "INSERT businesses", time.Since(start), err)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrBusinessAlreadyExists
		}
		return err
	}
	r.sink.record(changed(events.EntityBusiness, events.ActionCreated, business.ID))
	return nil
}

// Upsert inserts or replaces the business. The existence check, the write
// and the read-back share one transaction so the published action matches
// what the statement did.
func (r *BusinessRepositoryImpl) Upsert(ctx context.Context, business *models.Business) error {
	start := time.Now()

	action := events.ActionCreated
	var stored models.Business
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if business.ID != "" {
			var n int64
			if err := tx.Model(&models.Business{}).Where("id = ?", business.ID).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				action = events.ActionUpdated
			}
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).Create(business).Error; err != nil {
			return err
		}

		// read back so the caller sees the stored created_at
		return tx.First(&stored, "id = ?", business.ID).Error
	})
	logger.DBLog("upsert_business", "INSERT businesses ON CONFLICT", time.Since(start), err)
	if err != nil {
		return err
	}
	business.CreatedAt = stored.CreatedAt

	r.sink.record(changed(events.EntityBusiness, action, business.ID))
	return nil
}

func (r *BusinessRepositoryImpl) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Business{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBusinessNotFound
	}
	r.sink.record(changed(events.EntityBusiness, events.ActionDeleted, id))
	return nil
}

func (r *BusinessRepositoryImpl) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Business{})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected > 0 {
		r.sink.record(changed(events.EntityBusiness, events.ActionDeleted))
	}
	return result.RowsAffected, nil
}

func (r *BusinessRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Business{}).Count(&n).Error
	return n, err
}
