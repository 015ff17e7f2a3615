package handlers

import (
	"github.com/gin-gonic/gin"

	"hechonl_backend/internal/i18n"
	"hechonl_backend/internal/logger"
	"hechonl_backend/internal/middleware"
	"hechonl_backend/internal/services"
	"hechonl_backend/internal/validator"
	"hechonl_backend/pkg/apperrors"
)

type BaseHandler struct {
	validator *validator.Validator

	// RequireSession and OptionalSession guard routes that need a login.
	RequireSession  gin.HandlerFunc
	OptionalSession gin.HandlerFunc
}

func NewBaseHandler(v *validator.Validator, authService services.AuthService) *BaseHandler {
	return &BaseHandler{
		validator:       v,
		RequireSession:  middleware.SessionMiddleware(authService),
		OptionalSession: middleware.OptionalSessionMiddleware(authService),
	}
}

func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) BindAndValidate_Query(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindQuery(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind query params", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

// FormRule maps a failed tag on a form field to the error the user sees.
type FormRule struct {
	Field string
	Tag   string
	Err   *apperrors.AppError
}

// BindAndValidate_Form is BindAndValidate_JSON for user-facing forms: the
// first rule that matches a failed tag is reported instead of the field map.
func (h *BaseHandler) BindAndValidate_Form(c *gin.Context, obj interface{}, rules []FormRule) bool {
	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	err := h.validator.Validate(obj)
	if err == nil {
		return true
	}
	if vErr, ok := err.(*validator.ValidationError); ok {
		for _, rule := range rules {
			if vErr.Failed(rule.Field, rule.Tag) {
				logger.CtxWarn(ctx, "Form rejected", "field", rule.Field, "tag", rule.Tag, "path", c.Request.URL.Path)
				apperrors.HandleError(c, rule.Err)
				return false
			}
		}
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "Service error",
			"error", appErr.Message,
			"details", appErr.Details,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// CurrentSession returns the authenticated session or writes a 401.
func (h *BaseHandler) CurrentSession(c *gin.Context) (services.Session, bool) {
	session, ok := middleware.GetSession(c)
	if !ok {
		logger.CtxWarn(c.Request.Context(), "Unauthorized access: no session in context",
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
		)
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return services.Session{}, false
	}
	return session, true
}

func (h *BaseHandler) Language(c *gin.Context) i18n.Language {
	return middleware.GetLanguage(c)
}
