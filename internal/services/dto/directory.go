package dto

import (
	"hechonl_backend/internal/geo"
)

type FilterRequest struct {
	Filter string `json:"filter" validate:"required,is-directory-filter"`
}

type LocationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude *float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

func (r *LocationRequest) Coordinate() geo.Coordinate {
	return geo.Coordinate{Latitude: *r.Latitude, Longitude: *r.Longitude}
}

type DirectoryStateResponse struct {
	SelectedFilter string             `json:"selected_filter"`
	FilterIcon     string             `json:"filter_icon"`
	UserLocation   *geo.Coordinate    `json:"user_location,omitempty"`
	Total          int                `json:"total"`
	Businesses     []BusinessResponse `json:"businesses"`
}

type CategoryResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Icon         string `json:"icon"`
	DefaultImage string `json:"default_image"`
}

type TranslationsResponse struct {
	Language string            `json:"language"`
	Strings  map[string]string `json:"strings"`
}
