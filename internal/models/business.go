package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hechonl_backend/internal/geo"
)

type Business struct {
	ID          string           `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerID     string           `gorm:"type:varchar(64);index;not null" json:"owner_id"`
	Name        string           `gorm:"type:varchar(255);not null" json:"name"`
	Description string           `gorm:"type:text" json:"description"`
	Category    BusinessCategory `gorm:"type:varchar(32);index;not null" json:"category"`
	Location    geo.Coordinate   `gorm:"embedded" json:"location"`
	Address     string           `json:"address"`
	Phone       *string          `json:"phone,omitempty"`
	Email       *string          `json:"email,omitempty"`
	Website     *string          `json:"website,omitempty"`

	SocialMedia datatypes.JSONType[map[string]string] `json:"social_media"`
	Images      datatypes.JSONSlice[string]           `json:"images"`

	Rating      float64   `json:"rating"`
	ReviewCount int       `gorm:"not null" json:"review_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Distance in meters from the user location; only set once one is known.
	Distance *float64 `gorm:"-" json:"distance,omitempty"`
}

// ApplyDefaults fills in what a caller may leave empty before a write:
// id, timestamps and the category placeholder image.
func (b *Business) ApplyDefaults(now time.Time) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	b.Category = ParseCategory(string(b.Category))
	if len(b.Images) == 0 {
		b.Images = datatypes.JSONSlice[string]{DefaultImage(b.Category)}
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = b.CreatedAt
	}
	if b.SocialMedia.Data() == nil {
		b.SocialMedia = datatypes.NewJSONType(map[string]string{})
	}
}

func (b *Business) BeforeSave(tx *gorm.DB) error {
	b.ApplyDefaults(time.Now().UTC())
	return nil
}

func (b *Business) AfterFind(tx *gorm.DB) error {
	b.Category = ParseCategory(string(b.Category))
	return nil
}

// Social returns the platform to handle map, never nil.
func (b *Business) Social() map[string]string {
	m := b.SocialMedia.Data()
	if m == nil {
		return map[string]string{}
	}
	return m
}

// Clone returns a deep copy, so callers can never alias the directory's working set.
func (b Business) Clone() Business {
	out := b
	if b.Phone != nil {
		v := *b.Phone
		out.Phone = &v
	}
	if b.Email != nil {
		v := *b.Email
		out.Email = &v
	}
	if b.Website != nil {
		v := *b.Website
		out.Website = &v
	}
	if b.Distance != nil {
		v := *b.Distance
		out.Distance = &v
	}
	if b.Images != nil {
		out.Images = append(datatypes.JSONSlice[string]{}, b.Images...)
	}
	social := make(map[string]string, len(b.Social()))
	for k, v := range b.Social() {
		social[k] = v
	}
	out.SocialMedia = datatypes.NewJSONType(social)
	return out
}
