package i18n

var english = map[Key]string{
	AppTitle:            "Made in NL",
	AppSubtitle:         "Discover local",
	EmailLabel:          "Email",
	EmailPlaceholder:    "Enter your email",
	PasswordLabel:       "Password",
	PasswordPlaceholder: "Enter your password",
	LoginButton:         "LOGIN",
	ForgotPassword:      "Forgot password?",
	NoAccount:           "Don't have an account?",
	Register:            "Register!",

	RegisterTitle:              "Create Account",
	RegisterSubtitle:           "Join our community",
	FullNameLabel:              "Full Name",
	FullNamePlaceholder:        "Enter your full name",
	ConfirmPasswordLabel:       "Confirm Password",
	ConfirmPasswordPlaceholder: "Enter your password again",
	RegisterButton:             "REGISTER",
	BackToLogin:                "Already have an account? Login",

	ExploreTab:        "Explore",
	MyBusinessTab:     "My Business",
	SearchPlaceholder: "Search local businesses...",
	NearbyBusinesses:  "Nearby Businesses",
	AddBusiness:       "Add Your Business",
	NoBusinessesFound: "No businesses found nearby",
	Distance:          "Distance",
	Categories:        "Categories",
	Logout:            "Logout",

	SettingsTitle:   "Settings",
	LanguageSection: "Language",
	LanguageLabel:   "App Language",
	AccountSection:  "Account",
	LogoutButton:    "Logout",
	AboutSection:    "About",
	VersionLabel:    "Version",
	PrivacyPolicy:   "Privacy Policy",
	TermsOfService:  "Terms of Service",

	CategoryFood:          "Food & Drinks",
	CategoryRetail:        "Retail",
	CategoryServices:      "Services",
	CategoryEntertainment: "Entertainment",
	CategoryOther:         "Other",

	ErrorTitle:          "Error",
	EmptyFields:         "Please fill in all fields",
	InvalidEmail:        "Please enter a valid email",
	InvalidPassword:     "Password must be at least 6 characters",
	EmptyName:           "Please enter your name",
	PasswordsDoNotMatch: "Passwords do not match",

	ErrInvalidCredentials: "Incorrect email or password",
	ErrNetwork:            "Connection error. Please check your internet",
	ErrServer:             "Server error. Please try again later",
	ErrUserAlreadyExists:  "This email is already registered",
	ErrUnauthorized:       "Please log in to continue",
	ErrForbidden:          "You can only change your own businesses",
	ErrBusinessNotFound:   "Business not found",
	ErrValidation:         "Some fields are invalid",
	ErrMissingContact:     "Please provide an address or a location",
	ErrInvalidLocation:    "Please select a valid location",
}

var spanish = map[Key]string{
	AppTitle:            "Hecho en NL",
	AppSubtitle:         "Descubre lo local",
	EmailLabel:          "Correo electrónico",
	EmailPlaceholder:    "Ingresa tu correo",
	PasswordLabel:       "Contraseña",
	PasswordPlaceholder: "Ingresa tu contraseña",
	LoginButton:         "INICIAR SESIÓN",
	ForgotPassword:      "¿Olvidaste tu contraseña?",
	NoAccount:           "¿No tienes cuenta?",
	Register:            "¡Regístrate!",

	RegisterTitle:              "Crear cuenta",
	RegisterSubtitle:           "Únete a nuestra comunidad",
	FullNameLabel:              "Nombre completo",
	FullNamePlaceholder:        "Ingresa tu nombre completo",
	ConfirmPasswordLabel:       "Confirmar contraseña",
	ConfirmPasswordPlaceholder: "Ingresa tu contraseña nuevamente",
	RegisterButton:             "REGISTRARSE",
	BackToLogin:                "¿Ya tienes cuenta? Inicia sesión",

	ExploreTab:        "Explorar",
	MyBusinessTab:     "Mi Negocio",
	SearchPlaceholder: "Buscar negocios locales...",
	NearbyBusinesses:  "Negocios Cercanos",
	AddBusiness:       "Agregar tu Negocio",
	NoBusinessesFound: "No se encontraron negocios cercanos",
	Distance:          "Distancia",
	Categories:        "Categorías",
	Logout:            "Cerrar Sesión",

	SettingsTitle:   "Configuración",
	LanguageSection: "Idioma",
	LanguageLabel:   "Idioma de la App",
	AccountSection:  "Cuenta",
	LogoutButton:    "Cerrar Sesión",
	AboutSection:    "Acerca de",
	VersionLabel:    "Versión",
	PrivacyPolicy:   "Política de Privacidad",
	TermsOfService:  "Términos de Servicio",

	CategoryFood:          "Alimentos y Bebidas",
	CategoryRetail:        "Comercio",
	CategoryServices:      "Servicios",
	CategoryEntertainment: "Entretenimiento",
	CategoryOther:         "Otros",

	ErrorTitle:          "Error",
	EmptyFields:         "Por favor llena todos los campos",
	InvalidEmail:        "Por favor ingresa un correo electrónico válido",
	InvalidPassword:     "La contraseña debe tener al menos 6 caracteres",
	EmptyName:           "Por favor ingresa tu nombre",
	PasswordsDoNotMatch: "Las contraseñas no coinciden",

	ErrInvalidCredentials: "Correo electrónico o contraseña incorrectos",
	ErrNetwork:            "Error de conexión. Por favor verifica tu internet",
	ErrServer:             "Error del servidor. Por favor intenta más tarde",
	ErrUserAlreadyExists:  "Este correo electrónico ya está registrado",
	ErrUnauthorized:       "Inicia sesión para continuar",
	ErrForbidden:          "Solo puedes modificar tus propios negocios",
	ErrBusinessNotFound:   "Negocio no encontrado",
	ErrValidation:         "Algunos campos no son válidos",
	ErrMissingContact:     "Por favor ingresa una dirección o una ubicación",
	ErrInvalidLocation:    "Por favor selecciona una ubicación válida",
}
