package twitter

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dghubble/oauth1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newProvider spins up a stub identity provider implementing the three
// handshake endpoints.
func newProvider(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/request_token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-www-form-urlencoded")
		fmt.Fprint(w, "oauth_token=req-token&oauth_token_secret=req-secret&oauth_callback_confirmed=true")
	})
	mux.HandleFunc("/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-www-form-urlencoded")
		fmt.Fprint(w, "oauth_token=acc-token&oauth_token_secret=acc-secret")
	})
	mux.HandleFunc("/1.1/account/verify_credentials.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id_str":"12345","screen_name":"ann","name":"Ann Example","profile_image_url_https":"https://pbs.example.com/ann.jpg"}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestService(baseURL string) *Service {
	return NewService(Config{
		ConsumerKey:    "consumer-key",
		ConsumerSecret: "consumer-secret",
		CallbackURL:    "http://localhost:5173/auth/twitter/callback",
		Endpoint: &oauth1.Endpoint{
			RequestTokenURL: baseURL + "/oauth/request_token",
			AuthorizeURL:    baseURL + "/oauth/authorize",
			AccessTokenURL:  baseURL + "/oauth/access_token",
		},
		ProfileURL: baseURL + "/1.1/account/verify_credentials.json",
	})
}

func TestRequestToken(t *testing.T) {
	provider := newProvider(t)
	service := newTestService(provider.URL)

	token, tokenSecret, authURL, err := service.RequestToken()
	require.NoError(t, err)

	assert.Equal(t, "req-token", token)
	assert.Equal(t, "req-secret", tokenSecret)
	assert.Contains(t, authURL, provider.URL+"/oauth/authorize")
	assert.Contains(t, authURL, "oauth_token=req-token")
}

func TestRequestTokenProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "whoa there", http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	service := newTestService(server.URL)

	_, _, _, err := service.RequestToken()
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, "request token", upstream.Step)
}

func TestAccessToken(t *testing.T) {
	provider := newProvider(t)
	service := newTestService(provider.URL)

	accessToken, accessTokenSecret, err := service.AccessToken("req-token", "req-secret", "verifier-123")
	require.NoError(t, err)

	assert.Equal(t, "acc-token", accessToken)
	assert.Equal(t, "acc-secret", accessTokenSecret)
}

func TestCompleteFlow(t *testing.T) {
	provider := newProvider(t)
	service := newTestService(provider.URL)

	profile, err := service.CompleteFlow("req-token", "req-secret", "verifier-123")
	require.NoError(t, err)

	assert.Equal(t, "12345", profile.ID)
	assert.Equal(t, "ann", profile.Username)
	assert.Equal(t, "Ann Example", profile.Name)
	assert.Equal(t, "https://pbs.example.com/ann.jpg", profile.ProfileImageURL)
}

func TestCompleteFlowAccessTokenError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid verifier", http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	service := newTestService(server.URL)

	_, err := service.CompleteFlow("req-token", "req-secret", "bad-verifier")
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, "access token", upstream.Step)
}

func TestUserDataProviderError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/1.1/account/verify_credentials.json", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token revoked", http.StatusUnauthorized)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	service := newTestService(server.URL)

	_, err := service.UserData("acc-token", "acc-secret")
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, "verify credentials", upstream.Step)
	assert.Contains(t, upstream.Error(), "token revoked")
}

func TestUserDataMalformedProfile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/1.1/account/verify_credentials.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json")
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	service := newTestService(server.URL)

	_, err := service.UserData("acc-token", "acc-secret")
	require.Error(t, err)

	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
}
