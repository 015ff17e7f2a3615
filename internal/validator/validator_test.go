package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hechonl_backend/internal/geo"
	"hechonl_backend/internal/services/dto"
)

func validBusiness() dto.BusinessRequest {
	return dto.BusinessRequest{
		Name:        "Tacos Doña Mary",
		Description: "Tacos de trompo",
		Category:    "food",
		Address:     "Calle Mina 100, Centro",
		Phone:       "81 1234 5678",
	}
}

func TestValidate_BusinessRequest(t *testing.T) {
	v := New()

	req := validBusiness()
	assert.NoError(t, v.Validate(&req))

	req.Address = ""
	req.Location = &geo.Coordinate{Latitude: 25.67, Longitude: -100.31}
	assert.NoError(t, v.Validate(&req), "a location replaces the address")
}

func TestValidate_BusinessRequestErrors(t *testing.T) {
	v := New()

	req := validBusiness()
	req.Name = ""
	req.Phone = ""
	req.Address = ""
	req.Category = "bakery"

	err := v.Validate(&req)
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Errors, "name")
	assert.Contains(t, vErr.Errors, "phone")
	assert.Contains(t, vErr.Errors, "address")
	assert.Contains(t, vErr.Errors, "category")
	assert.Equal(t, "Must be one of: food, retail, services, entertainment, other", vErr.Errors["category"])
}

func TestValidate_FilterRequest(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&dto.FilterRequest{Filter: "top_rated"}))

	err := v.Validate(&dto.FilterRequest{Filter: "cheapest"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Errors, "filter")
}

func TestValidate_LocationRequest(t *testing.T) {
	v := New()
	lat, lon := 25.67, -100.31
	assert.NoError(t, v.Validate(&dto.LocationRequest{Latitude: &lat, Longitude: &lon}))

	bad := 123.0
	err := v.Validate(&dto.LocationRequest{Latitude: &bad, Longitude: &lon})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Errors, "latitude")

	err = v.Validate(&dto.LocationRequest{Longitude: &lon})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "This field is required", vErr.Errors["latitude"])
}

func TestValidationError_MessageIsSorted(t *testing.T) {
	err := &ValidationError{Errors: map[string]string{"b": "two", "a": "one"}}
	assert.Equal(t, "Validation failed: field 'a': one; field 'b': two", err.Error())
}

func TestValidate_RegisterRequest(t *testing.T) {
	v := New()

	req := dto.RegisterRequest{Email: "ann@example.com", Password: "secret1", Name: "Ann"}
	assert.NoError(t, v.Validate(&req))

	req.ConfirmPassword = "secret1"
	assert.NoError(t, v.Validate(&req))

	req.ConfirmPassword = "secret2"
	req.Name = "   "
	req.Email = "ann@example"
	req.Password = "12345"

	err := v.Validate(&req)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.True(t, vErr.Failed("name", "notblank"))
	assert.True(t, vErr.Failed("email", "app-email"))
	assert.True(t, vErr.Failed("password", "min"))
	assert.True(t, vErr.Failed("confirm_password", "eqfield"))
	assert.Equal(t, "Must match password", vErr.Errors["confirm_password"])
}

func TestValidate_LoginRequest(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&dto.LoginRequest{Email: "ann@example.com", Password: "secret1"}))

	err := v.Validate(&dto.LoginRequest{Email: "", Password: ""})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.True(t, vErr.Failed("email", "notblank"))
	assert.True(t, vErr.Failed("password", "required"))
}

func TestValidate_AppEmail(t *testing.T) {
	v := New()

	tests := []struct {
		email string
		valid bool
	}{
		{"ann@example.com", true},
		{"ann.lee+dir@mty.com.mx", true},
		{"ann@example", false},
		{"ann example@x.com", false},
		{"@example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := v.Validate(&dto.LoginRequest{Email: tt.email, Password: "secret1"})
			assert.Equal(t, tt.valid, err == nil, err)
		})
	}
}
