package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hechonl_backend/internal/middleware"
	"hechonl_backend/internal/services"
	"hechonl_backend/internal/services/dto"
	"hechonl_backend/pkg/apperrors"
)

// The order is the order in which the forms report problems.
var (
	registerFormRules = []FormRule{
		{Field: "name", Tag: "notblank", Err: apperrors.ErrEmptyName},
		{Field: "email", Tag: "notblank", Err: apperrors.ErrEmptyFields},
		{Field: "password", Tag: "required", Err: apperrors.ErrEmptyFields},
		{Field: "email", Tag: "app-email", Err: apperrors.ErrInvalidEmail},
		{Field: "password", Tag: "min", Err: apperrors.ErrInvalidPassword},
		{Field: "confirm_password", Tag: "eqfield", Err: apperrors.ErrPasswordsDoNotMatch},
	}
	loginFormRules = []FormRule{
		{Field: "email", Tag: "notblank", Err: apperrors.ErrEmptyFields},
		{Field: "password", Tag: "required", Err: apperrors.ErrEmptyFields},
		{Field: "email", Tag: "app-email", Err: apperrors.ErrInvalidEmail},
		{Field: "password", Tag: "min", Err: apperrors.ErrInvalidPassword},
	}
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.RequireSession, h.Logout)
		auth.GET("/session", h.OptionalSession, h.Session)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_Form(c, &req, registerFormRules) {
		return
	}

	response, err := h.authService.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_Form(c, &req, loginFormRules) {
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.authService.Logout()
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Session(c *gin.Context) {
	session, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusOK, dto.SessionResponse{IsAuthenticated: false})
		return
	}

	startedAt := session.StartedAt
	c.JSON(http.StatusOK, dto.SessionResponse{
		IsAuthenticated: true,
		User:            dto.NewUserResponse(session.CurrentUser),
		StartedAt:       &startedAt,
	})
}
