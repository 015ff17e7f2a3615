package contextkeys

// Keys of values stored on the gin context.
const (
	// LanguageKey holds the negotiated i18n.Language.
	LanguageKey = "language"
	// SessionKey holds the authenticated services.Session.
	SessionKey   = "session"
	RequestIDKey = "request_id"
)
