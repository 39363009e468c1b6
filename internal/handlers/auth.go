package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/retodoku/backend/internal/models"
	"github.com/retodoku/backend/internal/repositories"
	"github.com/retodoku/backend/internal/twitter"
	"gorm.io/gorm"
)

// OAuthService is the slice of the Twitter flow the auth handler needs.
type OAuthService interface {
	RequestToken() (token, tokenSecret, authURL string, err error)
	CompleteFlow(requestToken, requestTokenSecret, verifier string) (*twitter.UserData, error)
}

// AuthHandler handles the Twitter OAuth login flow
type AuthHandler struct {
	userRepository repositories.UserRepository
	oauthService   OAuthService
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, oauthService OAuthService, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		oauthService:   oauthService,
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers the Twitter OAuth routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/request-token", h.RequestToken)
	g.POST("/callback", h.Callback)
}

// RequestToken starts the handshake. The token secret is returned to the
// client: nothing is persisted server-side between steps, so the secret must
// round-trip through the redirect.
func (h *AuthHandler) RequestToken(c echo.Context) error {
	token, tokenSecret, authURL, err := h.oauthService.RequestToken()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"authUrl":            authURL,
		"requestToken":       token,
		"requestTokenSecret": tokenSecret,
	})
}

// TwitterCallbackRequest carries the parameters the provider hands back after
// user consent, plus the round-tripped token secret.
type TwitterCallbackRequest struct {
	OAuthToken       string `json:"oauth_token" validate:"required"`
	OAuthVerifier    string `json:"oauth_verifier" validate:"required"`
	OAuthTokenSecret string `json:"oauth_token_secret" validate:"required"`
}

// Callback finishes the handshake, finds or creates the local user linked to
// the Twitter identity, and issues a session token.
func (h *AuthHandler) Callback(c echo.Context) error {
	var req TwitterCallbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.oauthService.CompleteFlow(req.OAuthToken, req.OAuthTokenSecret, req.OAuthVerifier)
	if err != nil {
		var upstream *twitter.UpstreamError
		if errors.As(err, &upstream) {
			return echo.NewHTTPError(http.StatusBadGateway, upstream.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// First successful login wins the mapping from Twitter identity to
	// local user; later logins reuse it.
	user, err := h.userRepository.GetUserByTwitterID(profile.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			user, err = h.userRepository.CreateUserFromTwitter(profile.ID, profile.Username, profile.Name)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create user")
			}
		} else {
			return echo.NewHTTPError(http.StatusInternalServerError, "Database error")
		}
	}

	token, err := h.generateSessionToken(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate session token")
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user, "token": token})
}

// generateSessionToken mints a JWT for a logged-in user
func (h *AuthHandler) generateSessionToken(user *models.User) (string, error) {
	claims := &models.SessionClaims{
		UserID: user.ID,
		Slug:   user.Slug,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
