package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hechonl_backend/internal/auth"
	"hechonl_backend/internal/logger"
	"hechonl_backend/internal/models"
	"hechonl_backend/internal/services"
	"hechonl_backend/internal/services/dto"
	"hechonl_backend/pkg/apperrors"
)

type BusinessHandler struct {
	*BaseHandler
	directoryService services.DirectoryService
}

func NewBusinessHandler(base *BaseHandler, directoryService services.DirectoryService) *BusinessHandler {
	return &BusinessHandler{
		BaseHandler:      base,
		directoryService: directoryService,
	}
}

func (h *BusinessHandler) RegisterRoutes(rg *gin.RouterGroup) {
	public := rg.Group("/businesses")
	{
		public.GET("", h.ListBusinesses)
		public.GET("/:id", h.GetBusiness)
	}

	owned := rg.Group("/businesses")
	owned.Use(h.RequireSession)
	{
		owned.GET("/mine", h.GetMyBusinesses)
		owned.POST("", h.CreateBusiness)
		owned.PUT("/:id", h.UpdateBusiness)
		owned.DELETE("/:id", h.DeleteBusiness)
	}
}

// ListBusinesses returns the directory in its current order, narrowed by
// the optional q and category query parameters.
func (h *BusinessHandler) ListBusinesses(c *gin.Context) {
	var query dto.BusinessSearchQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	var category *models.BusinessCategory
	if query.Category != "" {
		cat := models.ParseCategory(query.Category)
		category = &cat
	}

	list := h.directoryService.Filtered(query.Q, category)
	c.JSON(http.StatusOK, dto.NewBusinessListResponse(list, h.Language(c)))
}

func (h *BusinessHandler) GetBusiness(c *gin.Context) {
	business, ok := h.directoryService.Get(c.Param("id"))
	if !ok {
		h.HandleServiceError(c, apperrors.ErrBusinessNotFound)
		return
	}
	c.JSON(http.StatusOK, dto.NewBusinessResponse(business, h.Language(c)))
}

func (h *BusinessHandler) GetMyBusinesses(c *gin.Context) {
	session, ok := h.CurrentSession(c)
	if !ok {
		return
	}
	list := h.directoryService.BusinessesByOwner(session.CurrentUser.ID)
	c.JSON(http.StatusOK, dto.NewBusinessListResponse(list, h.Language(c)))
}

func (h *BusinessHandler) CreateBusiness(c *gin.Context) {
	session, ok := h.CurrentSession(c)
	if !ok {
		return
	}

	var req dto.BusinessRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	if err := checkLocation(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	created, err := h.directoryService.Add(c.Request.Context(), req.ToModel(session.CurrentUser.ID))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewBusinessResponse(created, h.Language(c)))
}

// UpdateBusiness replaces the business. Location, rating and review count
// are kept when the request leaves them out.
func (h *BusinessHandler) UpdateBusiness(c *gin.Context) {
	existing, ok := h.ownedBusiness(c, auth.PermBusinessUpdate)
	if !ok {
		return
	}

	var req dto.BusinessRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}
	if err := checkLocation(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	business := req.ToModel(existing.OwnerID)
	business.ID = existing.ID
	business.CreatedAt = existing.CreatedAt
	if req.Location == nil {
		business.Location = existing.Location
	}
	if req.Rating == nil {
		business.Rating = existing.Rating
	}
	if req.ReviewCount == nil {
		business.ReviewCount = existing.ReviewCount
	}

	updated, err := h.directoryService.Update(c.Request.Context(), business)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBusinessResponse(updated, h.Language(c)))
}

func (h *BusinessHandler) DeleteBusiness(c *gin.Context) {
	existing, ok := h.ownedBusiness(c, auth.PermBusinessDelete)
	if !ok {
		return
	}

	if err := h.directoryService.Delete(c.Request.Context(), existing); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ownedBusiness loads the :id business and checks permission for the session user.
func (h *BusinessHandler) ownedBusiness(c *gin.Context, permission string) (models.Business, bool) {
	session, ok := h.CurrentSession(c)
	if !ok {
		return models.Business{}, false
	}

	business, found := h.directoryService.Get(c.Param("id"))
	if !found {
		h.HandleServiceError(c, apperrors.ErrBusinessNotFound)
		return models.Business{}, false
	}
	if !auth.CanPerformAction(session.CurrentUser.ID, business.OwnerID, permission) {
		logger.CtxWarn(c.Request.Context(), "business change by non-owner",
			"business_id", business.ID,
			"owner_id", business.OwnerID,
			"permission", permission,
		)
		h.HandleServiceError(c, apperrors.ErrNotBusinessOwner)
		return models.Business{}, false
	}
	return business, true
}

func checkLocation(req *dto.BusinessRequest) error {
	if req.Location == nil {
		if req.Address == "" {
			return apperrors.ErrMissingContact
		}
		return nil
	}
	if !req.Location.Valid() {
		return apperrors.ErrInvalidLocation
	}
	return nil
}
