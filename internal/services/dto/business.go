package dto

import (
	"time"

	"gorm.io/datatypes"

	"hechonl_backend/internal/geo"
	"hechonl_backend/internal/i18n"
	"hechonl_backend/internal/models"
)

// BusinessRequest is the body of create and update. The form requires
// name, description and phone, plus an address or a location.
type BusinessRequest struct {
	Name        string            `json:"name" validate:"required,max=255"`
	Description string            `json:"description" validate:"required"`
	Category    string            `json:"category" validate:"omitempty,is-business-category"`
	Location    *geo.Coordinate   `json:"location"`
	Address     string            `json:"address" validate:"required_without=Location"`
	Phone       string            `json:"phone" validate:"required"`
	Email       string            `json:"email" validate:"omitempty,email"`
	Website     string            `json:"website" validate:"omitempty"`
	SocialMedia map[string]string `json:"social_media"`
	Images      []string          `json:"images" validate:"omitempty,dive,required"`
	Rating      *float64          `json:"rating" validate:"omitempty,min=0"`
	ReviewCount *int              `json:"review_count" validate:"omitempty,min=0"`
}

// ToModel builds a business owned by ownerID. Optional strings that are
// empty stay nil.
func (r *BusinessRequest) ToModel(ownerID string) models.Business {
	b := models.Business{
		OwnerID:     ownerID,
		Name:        r.Name,
		Description: r.Description,
		Category:    models.ParseCategory(r.Category),
		Address:     r.Address,
		Phone:       optional(r.Phone),
		Email:       optional(r.Email),
		Website:     optional(r.Website),
		Images:      datatypes.JSONSlice[string](r.Images),
	}
	if r.Location != nil {
		b.Location = *r.Location
	}
	social := map[string]string{}
	for k, v := range r.SocialMedia {
		social[k] = v
	}
	b.SocialMedia = datatypes.NewJSONType(social)
	if r.Rating != nil {
		b.Rating = *r.Rating
	}
	if r.ReviewCount != nil {
		b.ReviewCount = *r.ReviewCount
	}
	return b
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type BusinessResponse struct {
	ID                string            `json:"id"`
	OwnerID           string            `json:"owner_id"`
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	Category          string            `json:"category"`
	CategoryName      string            `json:"category_name"`
	CategoryIcon      string            `json:"category_icon"`
	Location          geo.Coordinate    `json:"location"`
	Address           string            `json:"address"`
	Phone             *string           `json:"phone,omitempty"`
	Email             *string           `json:"email,omitempty"`
	Website           *string           `json:"website,omitempty"`
	SocialMedia       map[string]string `json:"social_media"`
	Images            []string          `json:"images"`
	Rating            float64           `json:"rating"`
	ReviewCount       int               `json:"review_count"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	Distance          *float64          `json:"distance,omitempty"`
	FormattedDistance string            `json:"formatted_distance,omitempty"`
}

func NewBusinessResponse(b models.Business, lang i18n.Language) BusinessResponse {
	resp := BusinessResponse{
		ID:           b.ID,
		OwnerID:      b.OwnerID,
		Name:         b.Name,
		Description:  b.Description,
		Category:     string(b.Category),
		CategoryName: i18n.CategoryName(lang, string(b.Category)),
		CategoryIcon: b.Category.Icon(),
		Location:     b.Location,
		Address:      b.Address,
		Phone:        b.Phone,
		Email:        b.Email,
		Website:      b.Website,
		SocialMedia:  b.Social(),
		Images:       append([]string{}, b.Images...),
		Rating:       b.Rating,
		ReviewCount:  b.ReviewCount,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
		Distance:     b.Distance,
	}
	if b.Distance != nil {
		resp.FormattedDistance = geo.FormatDistance(*b.Distance)
	}
	return resp
}

func NewBusinessListResponse(list []models.Business, lang i18n.Language) []BusinessResponse {
	out := make([]BusinessResponse, 0, len(list))
	for _, b := range list {
		out = append(out, NewBusinessResponse(b, lang))
	}
	return out
}

type BusinessSearchQuery struct {
	Q        string `form:"q"`
	Category string `form:"category" validate:"omitempty,is-business-category"`
}
