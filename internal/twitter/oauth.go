package twitter

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dghubble/oauth1"
	twitterEndpoint "github.com/dghubble/oauth1/twitter"
)

const defaultProfileURL = "https://api.twitter.com/1.1/account/verify_credentials.json?include_email=true"

// UserData is the normalized profile returned after a completed handshake.
type UserData struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	Name            string `json:"name"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
}

// UpstreamError wraps a failure reported by the identity provider at any
// handshake step. Partial state from earlier steps must be discarded.
type UpstreamError struct {
	Step string
	Err  error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("twitter %s: %v", e.Step, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Config holds the registered consumer credentials and callback URL.
// Endpoint and ProfileURL default to Twitter's and are overridable in tests.
type Config struct {
	ConsumerKey    string
	ConsumerSecret string
	CallbackURL    string
	Endpoint       *oauth1.Endpoint
	ProfileURL     string
}

// Service performs the three-step OAuth 1.0a handshake. It is stateless:
// the request token secret issued by step one must round-trip through the
// caller into step two.
type Service struct {
	config     *oauth1.Config
	profileURL string
}

// NewService creates a Service for the given consumer credentials
func NewService(cfg Config) *Service {
	endpoint := twitterEndpoint.AuthorizeEndpoint
	if cfg.Endpoint != nil {
		endpoint = *cfg.Endpoint
	}
	profileURL := cfg.ProfileURL
	if profileURL == "" {
		profileURL = defaultProfileURL
	}

	return &Service{
		config: &oauth1.Config{
			ConsumerKey:    cfg.ConsumerKey,
			ConsumerSecret: cfg.ConsumerSecret,
			CallbackURL:    cfg.CallbackURL,
			Endpoint:       endpoint,
		},
		profileURL: profileURL,
	}
}

// RequestToken obtains a request token and secret from the provider and
// builds the authorization URL the user is sent to for consent.
func (s *Service) RequestToken() (token, tokenSecret, authURL string, err error) {
	token, tokenSecret, err = s.config.RequestToken()
	if err != nil {
		return "", "", "", &UpstreamError{Step: "request token", Err: err}
	}

	u, err := s.config.AuthorizationURL(token)
	if err != nil {
		return "", "", "", &UpstreamError{Step: "request token", Err: err}
	}

	return token, tokenSecret, u.String(), nil
}

// AccessToken exchanges the consented request token and verifier for a
// long-lived access token pair.
func (s *Service) AccessToken(requestToken, requestTokenSecret, verifier string) (accessToken, accessTokenSecret string, err error) {
	accessToken, accessTokenSecret, err = s.config.AccessToken(requestToken, requestTokenSecret, verifier)
	if err != nil {
		return "", "", &UpstreamError{Step: "access token", Err: err}
	}
	return accessToken, accessTokenSecret, nil
}

// UserData fetches the authenticated profile with a signed request and
// normalizes it.
func (s *Service) UserData(accessToken, accessTokenSecret string) (*UserData, error) {
	client := s.config.Client(oauth1.NoContext, oauth1.NewToken(accessToken, accessTokenSecret))
	client.Timeout = 30 * time.Second

	resp, err := client.Get(s.profileURL)
	if err != nil {
		return nil, &UpstreamError{Step: "verify credentials", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, &UpstreamError{
			Step: "verify credentials",
			Err:  fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	var profile struct {
		IDStr                string `json:"id_str"`
		ScreenName           string `json:"screen_name"`
		Name                 string `json:"name"`
		ProfileImageURLHTTPS string `json:"profile_image_url_https"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, &UpstreamError{Step: "verify credentials", Err: fmt.Errorf("failed to parse user data: %w", err)}
	}

	return &UserData{
		ID:              profile.IDStr,
		Username:        profile.ScreenName,
		Name:            profile.Name,
		ProfileImageURL: profile.ProfileImageURLHTTPS,
	}, nil
}

// CompleteFlow exchanges the verifier for an access token and fetches the
// authenticated profile in one go.
func (s *Service) CompleteFlow(requestToken, requestTokenSecret, verifier string) (*UserData, error) {
	accessToken, accessTokenSecret, err := s.AccessToken(requestToken, requestTokenSecret, verifier)
	if err != nil {
		return nil, err
	}
	return s.UserData(accessToken, accessTokenSecret)
}
