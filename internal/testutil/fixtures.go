package testutil

import (
	"time"

	"gorm.io/datatypes"

	"hechonl_backend/internal/geo"
	"hechonl_backend/internal/models"
)

// Business builds a minimal valid business.
func Business(id, name string, category models.BusinessCategory) models.Business {
	return models.Business{
		ID:          id,
		OwnerID:     "owner-" + id,
		Name:        name,
		Description: name + " description",
		Category:    category,
		Location:    geo.Coordinate{Latitude: 25.6674, Longitude: -100.3089},
		Address:     "Centro, Monterrey",
		Images:      datatypes.JSONSlice[string]{},
	}
}

// WithRating returns b with rating and createdAt set.
func WithRating(b models.Business, rating float64, createdAt time.Time) models.Business {
	b.Rating = rating
	b.CreatedAt = createdAt
	b.UpdatedAt = createdAt
	return b
}

func Ptr[T any](v T) *T {
	return &v
}
