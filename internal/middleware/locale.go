package middleware

import (
	"github.com/gin-gonic/gin"

	"hechonl_backend/internal/i18n"
	"hechonl_backend/pkg/contextkeys"
)

// LocaleMiddleware picks the response language: the lang query parameter
// first, then Accept-Language, then fallback.
func LocaleMiddleware(fallback i18n.Language) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang, ok := i18n.Parse(c.Query("lang"))
		if !ok {
			lang = i18n.Match(c.GetHeader("Accept-Language"), fallback)
		}
		c.Set(contextkeys.LanguageKey, lang)
		c.Header("Content-Language", string(lang))
		c.Next()
	}
}

// GetLanguage returns the negotiated language, or i18n.Default outside LocaleMiddleware.
func GetLanguage(c *gin.Context) i18n.Language {
	if v, ok := c.Get(contextkeys.LanguageKey); ok {
		if lang, ok := v.(i18n.Language); ok {
			return lang
		}
	}
	return i18n.Default
}

// Localize resolves apperrors message keys for the request language.
func Localize(c *gin.Context, key string) (string, bool) {
	msg := i18n.T(GetLanguage(c), i18n.Key(key))
	return msg, msg != key
}
