package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// LocalizeFunc resolves a message key for the language of the request.
// It returns false when the key is unknown.
type LocalizeFunc func(c *gin.Context, key string) (string, bool)

type GinErrorHandler struct {
	Debug    bool
	Localize LocalizeFunc
}

var defaultHandler = &GinErrorHandler{}

// Configure sets the handler used by HandleError. Call once at startup.
func Configure(debug bool, localize LocalizeFunc) {
	defaultHandler = &GinErrorHandler{Debug: debug, Localize: localize}
}

func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		slog.Error("server error",
			slog.String("code", string(appErr.Code)),
			slog.String("path", c.FullPath()),
			slog.Any("error", appErr.Unwrap()),
		)
	}

	out := appErr.clone()
	out.Err = nil
	if out.MessageKey != "" && h.Localize != nil {
		if msg, found := h.Localize(c, out.MessageKey); found {
			out.Message = msg
		}
	}
	if out.HTTPCode >= 500 && !h.Debug {
		out.Details = nil
	}

	c.JSON(out.HTTPCode, ErrorResponse{Error: out})
}

func HandleError(c *gin.Context, err error) {
	defaultHandler.HandleGinError(c, err)
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
