package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"hechonl_backend/internal/logger"
	"hechonl_backend/internal/services"
	"hechonl_backend/pkg/apperrors"
	"hechonl_backend/pkg/contextkeys"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

func setSession(c *gin.Context, session services.Session) {
	c.Set(contextkeys.SessionKey, session)
	ctx := logger.WithSessionID(c.Request.Context(), session.ID)
	if session.CurrentUser != nil {
		ctx = logger.WithUserID(ctx, session.CurrentUser.ID)
	}
	c.Request = c.Request.WithContext(ctx)
}

// SessionMiddleware requires a bearer token of the current session.
func SessionMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			c.Abort()
			return
		}

		session, err := authService.Authenticate(token)
		if err != nil {
			logger.CtxWarn(c.Request.Context(), "rejected session token", "path", c.Request.URL.Path)
			apperrors.HandleError(c, err)
			c.Abort()
			return
		}

		setSession(c, session)
		c.Next()
	}
}

// OptionalSessionMiddleware attaches the session when a valid token is sent
// and lets the request through either way.
func OptionalSessionMiddleware(authService services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if session, err := authService.Authenticate(token); err == nil {
				setSession(c, session)
			}
		}
		c.Next()
	}
}

// GetSession returns the session set by one of the session middlewares.
func GetSession(c *gin.Context) (services.Session, bool) {
	v, ok := c.Get(contextkeys.SessionKey)
	if !ok {
		return services.Session{}, false
	}
	session, ok := v.(services.Session)
	if !ok || !session.IsAuthenticated || session.CurrentUser == nil {
		return services.Session{}, false
	}
	return session, true
}
