package apperrors

import (
	"net/http"
)

// Factories

// ErrNotFound converts a repository "not found" into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// --- Auth ---

// ErrInvalidCredentials is returned for an unknown email and for a wrong
// password alike.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Incorrect email or password",
	http.StatusUnauthorized,
).WithKey("error_invalid_credentials")

// ErrNetwork is reserved: the store is local, nothing raises it today.
var ErrNetwork = New(
	CodeNetworkError,
	"auth",
	"Connection error. Please check your internet",
	http.StatusServiceUnavailable,
).WithKey("error_network")

var ErrServer = New(
	CodeInternalError,
	"auth",
	"Server error. Please try again later",
	http.StatusInternalServerError,
).WithKey("error_server")

var ErrUserAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"This email is already registered",
	http.StatusConflict,
).WithKey("error_user_already_exists")

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired session token",
	http.StatusUnauthorized,
).WithKey("error_unauthorized")

// --- Form validation ---

var ErrEmptyName = New(
	CodeValidationFailed,
	"validation",
	"Please enter your name",
	http.StatusBadRequest,
).WithKey("empty_name")

var ErrEmptyFields = New(
	CodeValidationFailed,
	"validation",
	"Please fill in all fields",
	http.StatusBadRequest,
).WithKey("empty_fields")

var ErrInvalidEmail = New(
	CodeValidationFailed,
	"validation",
	"Please enter a valid email",
	http.StatusBadRequest,
).WithKey("invalid_email")

var ErrInvalidPassword = New(
	CodeValidationFailed,
	"validation",
	"Password must be at least 6 characters",
	http.StatusBadRequest,
).WithKey("invalid_password")

var ErrPasswordsDoNotMatch = New(
	CodeValidationFailed,
	"validation",
	"Passwords do not match",
	http.StatusBadRequest,
).WithKey("passwords_do_not_match")

// --- Directory ---

var ErrBusinessNotFound = New(
	CodeNotFound,
	"business",
	"Business not found",
	http.StatusNotFound,
).WithKey("error_business_not_found")

var ErrNotBusinessOwner = New(
	CodeForbidden,
	"business",
	"Only the owner can change this business",
	http.StatusForbidden,
).WithKey("error_forbidden")

var ErrMissingContact = New(
	CodeValidationFailed,
	"validation",
	"Please provide an address or a location",
	http.StatusBadRequest,
).WithKey("error_missing_contact")

var ErrInvalidLocation = New(
	CodeValidationFailed,
	"validation",
	"Please select a valid location",
	http.StatusBadRequest,
).WithKey("error_invalid_location")
