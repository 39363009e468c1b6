package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/retodoku/backend/internal/models"
	"github.com/retodoku/backend/internal/repositories"
	"gorm.io/gorm"
)

// PostcardHandler handles HTTP requests related to NFC postcards
type PostcardHandler struct {
	postcardRepository repositories.PostcardRepository
	templateRepository repositories.TemplateRepository
}

// NewPostcardHandler creates a new PostcardHandler
func NewPostcardHandler(postcardRepo repositories.PostcardRepository, templateRepo repositories.TemplateRepository) *PostcardHandler {
	return &PostcardHandler{
		postcardRepository: postcardRepo,
		templateRepository: templateRepo,
	}
}

// RegisterPostcardRoutes registers postcard-related routes
func (h *PostcardHandler) RegisterPostcardRoutes(g *echo.Group) {
	g.GET("/nfc-postcards", h.ListPostcards)
	g.POST("/nfc-postcards", h.CreatePostcard)
	g.GET("/nfc-postcards/recipient/:recipientId", h.ListPostcardsByRecipient)
	g.GET("/nfc-postcards/:hash", h.GetPostcardByHash)
	g.POST("/nfc-postcards/:hash/activate", h.ActivatePostcard)
}

// ListPostcards returns every postcard with joined sender, recipient and
// template
func (h *PostcardHandler) ListPostcards(c echo.Context) error {
	postcards, err := h.postcardRepository.GetPostcards()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, postcards)
}

// CreatePostcard creates a postcard against an existing template and returns
// the joined record
func (h *PostcardHandler) CreatePostcard(c echo.Context) error {
	var req models.CreatePostcardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.templateRepository.GetTemplateByID(req.TemplateID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusBadRequest, "Unknown template")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	postcard, err := h.postcardRepository.CreatePostcard(&req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, postcard)
}

// GetPostcardByHash returns the joined postcard addressed by an NFC hash
func (h *PostcardHandler) GetPostcardByHash(c echo.Context) error {
	hash := c.Param("hash")
	if hash == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid hash")
	}

	postcard, err := h.postcardRepository.GetPostcardByHash(hash)
	if err != nil {
		if errors.Is(err, repositories.ErrPostcardNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Postcard not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, postcard)
}

// ActivatePostcard binds a recipient to an unactivated postcard. An unknown
// hash is a 404; a lost activation race is a 409 and leaves the stored
// recipient untouched.
func (h *PostcardHandler) ActivatePostcard(c echo.Context) error {
	hash := c.Param("hash")
	if hash == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid hash")
	}

	var req models.ActivatePostcardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.postcardRepository.ActivatePostcard(hash, req.RecipientID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPostcardNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Postcard not found")
		case errors.Is(err, repositories.ErrPostcardAlreadyActivated):
			return echo.NewHTTPError(http.StatusConflict, "Postcard already activated")
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// ListPostcardsByRecipient returns the activated postcards in a recipient's
// collection
func (h *PostcardHandler) ListPostcardsByRecipient(c echo.Context) error {
	recipientID, err := strconv.ParseUint(c.Param("recipientId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid recipient ID")
	}

	postcards, err := h.postcardRepository.GetPostcardsByRecipient(uint(recipientID))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, postcards)
}

// DeletePostcard removes the postcard addressed by an NFC hash together with
// its meetup photos. Registered behind the session-token middleware.
func (h *PostcardHandler) DeletePostcard(c echo.Context) error {
	hash := c.Param("hash")
	if hash == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid hash")
	}

	postcard, err := h.postcardRepository.GetPostcardByHash(hash)
	if err != nil {
		if errors.Is(err, repositories.ErrPostcardNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Postcard not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.postcardRepository.DeletePostcard(postcard.ID); err != nil {
		if errors.Is(err, repositories.ErrPostcardNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Postcard not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
