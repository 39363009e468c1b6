package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/retodoku/backend/internal/repositories"
)

// TemplateHandler handles HTTP requests related to postcard templates
type TemplateHandler struct {
	templateRepository repositories.TemplateRepository
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(templateRepo repositories.TemplateRepository) *TemplateHandler {
	return &TemplateHandler{templateRepository: templateRepo}
}

// RegisterTemplateRoutes registers template-related routes
func (h *TemplateHandler) RegisterTemplateRoutes(g *echo.Group) {
	g.GET("/templates", h.ListTemplates)
}

// ListTemplates returns the active templates available for new postcards
func (h *TemplateHandler) ListTemplates(c echo.Context) error {
	templates, err := h.templateRepository.GetActiveTemplates()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, templates)
}
