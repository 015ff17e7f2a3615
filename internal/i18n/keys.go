package i18n

// Key identifies one localized string.
type Key string

// Login
const (
	AppTitle            Key = "app_title"
	AppSubtitle         Key = "app_subtitle"
	EmailLabel          Key = "email_label"
	EmailPlaceholder    Key = "email_placeholder"
	PasswordLabel       Key = "password_label"
	PasswordPlaceholder Key = "password_placeholder"
	LoginButton         Key = "login_button"
	ForgotPassword      Key = "forgot_password"
	NoAccount           Key = "no_account"
	Register            Key = "register"
)

// Register
const (
	RegisterTitle              Key = "register_title"
	RegisterSubtitle           Key = "register_subtitle"
	FullNameLabel              Key = "full_name_label"
	FullNamePlaceholder        Key = "full_name_placeholder"
	ConfirmPasswordLabel       Key = "confirm_password_label"
	ConfirmPasswordPlaceholder Key = "confirm_password_placeholder"
	RegisterButton             Key = "register_button"
	BackToLogin                Key = "back_to_login"
)

// Main
const (
	ExploreTab        Key = "explore_tab"
	MyBusinessTab     Key = "my_business_tab"
	SearchPlaceholder Key = "search_placeholder"
	NearbyBusinesses  Key = "nearby_businesses"
	AddBusiness       Key = "add_business"
	NoBusinessesFound Key = "no_businesses_found"
	Distance          Key = "distance"
	Categories        Key = "categories"
	Logout            Key = "logout"
)

// Settings
const (
	SettingsTitle   Key = "settings_title"
	LanguageSection Key = "language_section"
	LanguageLabel   Key = "language_label"
	AccountSection  Key = "account_section"
	LogoutButton    Key = "logout_button"
	AboutSection    Key = "about_section"
	VersionLabel    Key = "version_label"
	PrivacyPolicy   Key = "privacy_policy"
	TermsOfService  Key = "terms_of_service"
)

// Categories
const (
	CategoryFood          Key = "category_food"
	CategoryRetail        Key = "category_retail"
	CategoryServices      Key = "category_services"
	CategoryEntertainment Key = "category_entertainment"
	CategoryOther         Key = "category_other"
)

// Validation
const (
	ErrorTitle          Key = "error_title"
	EmptyFields         Key = "empty_fields"
	InvalidEmail        Key = "invalid_email"
	InvalidPassword     Key = "invalid_password"
	EmptyName           Key = "empty_name"
	PasswordsDoNotMatch Key = "passwords_do_not_match"
)

// Auth and API errors
const (
	ErrInvalidCredentials Key = "error_invalid_credentials"
	ErrNetwork            Key = "error_network"
	ErrServer             Key = "error_server"
	ErrUserAlreadyExists  Key = "error_user_already_exists"
	ErrUnauthorized       Key = "error_unauthorized"
	ErrForbidden          Key = "error_forbidden"
	ErrBusinessNotFound   Key = "error_business_not_found"
	ErrValidation         Key = "error_validation"
	ErrMissingContact     Key = "error_missing_contact"
	ErrInvalidLocation    Key = "error_invalid_location"
)
