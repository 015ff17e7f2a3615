package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"hechonl_backend/internal/models"
)

// appEmailPattern is the address shape the login and registration forms accept.
var appEmailPattern = regexp.MustCompile(`^[A-Z0-9a-z._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,64}$`)

// registerCustomRules adds the domain tags to v.
func registerCustomRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"is-business-category": validateBusinessCategory,
		"is-directory-filter":  validateDirectoryFilter,
		"app-email":            validateAppEmail,
		"notblank":             validators.NotBlank,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register custom validation tag '%s': %w", tag, err)
		}
	}
	return nil
}

func validateBusinessCategory(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empty values
	}
	return models.BusinessCategory(value).IsValid()
}

func validateDirectoryFilter(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.DirectoryFilter(value).IsValid()
}

func validateAppEmail(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	return appEmailPattern.MatchString(value)
}
