package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hechonl_backend/internal/events"
	"hechonl_backend/internal/i18n"
	"hechonl_backend/internal/logger"
	"hechonl_backend/internal/models"
	"hechonl_backend/internal/services/dto"
	"hechonl_backend/pkg/apperrors"
)

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type MetaHandler struct {
	*BaseHandler
	store Pinger
	bus   *events.Bus
}

func NewMetaHandler(base *BaseHandler, store Pinger, bus *events.Bus) *MetaHandler {
	return &MetaHandler{
		BaseHandler: base,
		store:       store,
		bus:         bus,
	}
}

func (h *MetaHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.ListCategories)
	rg.GET("/i18n/:lang", h.GetTranslations)
	rg.GET("/health", h.Health)
}

func (h *MetaHandler) ListCategories(c *gin.Context) {
	lang := h.Language(c)
	out := make([]dto.CategoryResponse, 0, len(models.Categories()))
	for _, cat := range models.Categories() {
		out = append(out, dto.CategoryResponse{
			ID:           string(cat),
			Name:         i18n.CategoryName(lang, string(cat)),
			Icon:         cat.Icon(),
			DefaultImage: models.DefaultImage(cat),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *MetaHandler) GetTranslations(c *gin.Context) {
	lang, ok := i18n.Parse(c.Param("lang"))
	if !ok {
		h.HandleServiceError(c, apperrors.ErrNotFound(nil).WithDetails(gin.H{"lang": c.Param("lang")}))
		return
	}

	table := i18n.Table(lang)
	strs := make(map[string]string, len(table))
	for k, v := range table {
		strs[string(k)] = v
	}
	c.JSON(http.StatusOK, dto.TranslationsResponse{Language: string(lang), Strings: strs})
}

func (h *MetaHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		logger.CtxWithError(ctx, "health check failed", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": "up",
		"events":   h.bus.Stats(),
	})
}
