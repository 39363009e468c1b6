package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/retodoku/backend/internal/models"
	"github.com/retodoku/backend/internal/repositories"
)

// PhotoHandler handles HTTP requests related to meetup photos
type PhotoHandler struct {
	photoRepository repositories.PhotoRepository
}

// NewPhotoHandler creates a new PhotoHandler
func NewPhotoHandler(photoRepo repositories.PhotoRepository) *PhotoHandler {
	return &PhotoHandler{photoRepository: photoRepo}
}

// RegisterPhotoRoutes registers meetup photo routes
func (h *PhotoHandler) RegisterPhotoRoutes(g *echo.Group) {
	g.GET("/meetup-photos/postcard/:postcardId", h.ListPhotosByPostcard)
	g.POST("/meetup-photos", h.CreatePhoto)
}

// ListPhotosByPostcard returns all photos attached to a postcard, newest first
func (h *PhotoHandler) ListPhotosByPostcard(c echo.Context) error {
	postcardID, err := strconv.ParseUint(c.Param("postcardId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid postcard ID")
	}

	photos, err := h.photoRepository.GetPhotosByPostcardID(uint(postcardID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, photos)
}

// CreatePhoto attaches a photo to a postcard
func (h *PhotoHandler) CreatePhoto(c echo.Context) error {
	var req models.CreateMeetupPhotoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	photo, err := h.photoRepository.CreatePhoto(req.PostcardID, req.PhotoURL, req.Caption)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, photo)
}
