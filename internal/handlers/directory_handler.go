package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hechonl_backend/internal/models"
	"hechonl_backend/internal/services"
	"hechonl_backend/internal/services/dto"
)

type DirectoryHandler struct {
	*BaseHandler
	directoryService services.DirectoryService
}

func NewDirectoryHandler(base *BaseHandler, directoryService services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{
		BaseHandler:      base,
		directoryService: directoryService,
	}
}

func (h *DirectoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	directory := rg.Group("/directory")
	{
		directory.GET("/state", h.GetState)
		directory.PUT("/filter", h.SetFilter)
		directory.PUT("/location", h.SetLocation)
	}
}

func (h *DirectoryHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, h.state(c))
}

func (h *DirectoryHandler) SetFilter(c *gin.Context) {
	var req dto.FilterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.directoryService.SetSelectedFilter(models.DirectoryFilter(req.Filter)); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.state(c))
}

func (h *DirectoryHandler) SetLocation(c *gin.Context) {
	var req dto.LocationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.directoryService.SetUserLocation(req.Coordinate()); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.state(c))
}

func (h *DirectoryHandler) state(c *gin.Context) dto.DirectoryStateResponse {
	filter := h.directoryService.SelectedFilter()
	list := h.directoryService.Businesses()
	return dto.DirectoryStateResponse{
		SelectedFilter: string(filter),
		FilterIcon:     filter.Icon(),
		UserLocation:   h.directoryService.UserLocation(),
		Total:          len(list),
		Businesses:     dto.NewBusinessListResponse(list, h.Language(c)),
	}
}
