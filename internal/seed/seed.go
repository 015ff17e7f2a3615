// Package seed loads the sample business catalog into an empty directory.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v2"
	"gorm.io/datatypes"

	"hechonl_backend/internal/geo"
	"hechonl_backend/internal/logger"
	"hechonl_backend/internal/models"
	"hechonl_backend/internal/repositories"
)

//go:embed catalog.yaml
var catalogYAML []byte

type catalogEntry struct {
	ID          string            `yaml:"id"`
	OwnerID     string            `yaml:"owner_id"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Category    string            `yaml:"category"`
	Latitude    float64           `yaml:"latitude"`
	Longitude   float64           `yaml:"longitude"`
	Address     string            `yaml:"address"`
	Phone       *string           `yaml:"phone"`
	Email       *string           `yaml:"email"`
	Website     *string           `yaml:"website"`
	SocialMedia map[string]string `yaml:"social_media"`
	Images      []string          `yaml:"images"`
	Rating      float64           `yaml:"rating"`
	ReviewCount int               `yaml:"review_count"`
}

type catalog struct {
	Businesses []catalogEntry `yaml:"businesses"`
}

// Catalog parses the embedded sample data. Entries are stamped with
// createdAt values one millisecond apart, in file order, starting at base.
func Catalog(base time.Time) ([]models.Business, error) {
	var c catalog
	if err := yaml.UnmarshalStrict(catalogYAML, &c); err != nil {
		return nil, fmt.Errorf("failed to parse seed catalog: %w", err)
	}

	out := make([]models.Business, 0, len(c.Businesses))
	for i, e := range c.Businesses {
		created := base.Add(time.Duration(i) * time.Millisecond)
		social := map[string]string{}
		for k, v := range e.SocialMedia {
			social[k] = v
		}
		out = append(out, models.Business{
			ID:          e.ID,
			OwnerID:     e.OwnerID,
			Name:        e.Name,
			Description: e.Description,
			Category:    models.ParseCategory(e.Category),
			Location:    geo.Coordinate{Latitude: e.Latitude, Longitude: e.Longitude},
			Address:     e.Address,
			Phone:       e.Phone,
			Email:       e.Email,
			Website:     e.Website,
			SocialMedia: datatypes.NewJSONType(social),
			Images:      datatypes.JSONSlice[string](e.Images),
			Rating:      e.Rating,
			ReviewCount: e.ReviewCount,
			CreatedAt:   created,
			UpdatedAt:   created,
		})
	}
	return out, nil
}

type Result struct {
	Loaded  int  `json:"loaded"`
	Skipped bool `json:"skipped"`
}

type Seeder struct {
	store *repositories.Store
	now   func() time.Time
}

func NewSeeder(store *repositories.Store) *Seeder {
	return &Seeder{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// Seed loads the catalog once, guarded by the persisted
// initial_data_loaded flag. With force it wipes every business and loads
// the catalog again regardless of the flag. All of it is one batch.
func (s *Seeder) Seed(ctx context.Context, force bool) (Result, error) {
	businesses, err := Catalog(s.now())
	if err != nil {
		return Result{}, err
	}

	var result Result
	err = s.store.Batch(ctx, func(tx *repositories.Store) error {
		loaded, err := tx.Settings.GetBool(ctx, models.SettingInitialDataLoaded)
		if err != nil {
			return err
		}
		if loaded && !force {
			result.Skipped = true
			return nil
		}

		removed, err := tx.Businesses.DeleteAll(ctx)
		if err != nil {
			return err
		}
		if removed > 0 {
			logger.CtxInfo(ctx, "removed existing businesses before seeding", "count", removed)
		}

		for i := range businesses {
			if err := tx.Businesses.Add(ctx, &businesses[i]); err != nil {
				return fmt.Errorf("failed to seed business %s: %w", businesses[i].ID, err)
			}
		}
		result.Loaded = len(businesses)
		return tx.Settings.SetBool(ctx, models.SettingInitialDataLoaded, true)
	})
	if err != nil {
		return Result{}, err
	}

	if result.Skipped {
		logger.CtxDebug(ctx, "seed skipped, initial data already loaded")
	} else {
		logger.CtxInfo(ctx, "seed catalog loaded", "count", result.Loaded, "force", force)
	}
	return result, nil
}
