package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/retodoku/backend/internal/models"
	"github.com/retodoku/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPhotoServer(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	handler := NewPhotoHandler(repositories.NewPostgresPhotoRepository(db))

	e := newEcho()
	handler.RegisterPhotoRoutes(e.Group("/api"))
	return e, db
}

func seedPostcard(t *testing.T, db *gorm.DB) models.NFCPostcard {
	t.Helper()

	template := seedTemplate(t, db)
	postcard := models.NFCPostcard{
		PostcardHash: models.GeneratePostcardHash(),
		TemplateID:   template.ID,
	}
	require.NoError(t, db.Create(&postcard).Error)
	return postcard
}

func TestCreateMeetupPhoto(t *testing.T) {
	srv, db := newPhotoServer(t)
	postcard := seedPostcard(t, db)

	body := fmt.Sprintf(`{"postcard_id":%d,"photo_url":"https://img.example/meetup.jpg","caption":"shibuya"}`, postcard.ID)
	rec := doRequest(srv, http.MethodPost, "/api/meetup-photos", body)
	mustStatus(t, rec, http.StatusCreated)

	var photo models.MeetupPhoto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &photo))
	assert.Equal(t, postcard.ID, photo.PostcardID)
	assert.Equal(t, "https://img.example/meetup.jpg", photo.PhotoURL)
	require.NotNil(t, photo.Caption)
	assert.Equal(t, "shibuya", *photo.Caption)
	assert.False(t, photo.UploadedAt.IsZero())
}

func TestCreateMeetupPhotoInvalidURL(t *testing.T) {
	srv, db := newPhotoServer(t)
	postcard := seedPostcard(t, db)

	body := fmt.Sprintf(`{"postcard_id":%d,"photo_url":"not a url"}`, postcard.ID)
	rec := doRequest(srv, http.MethodPost, "/api/meetup-photos", body)
	mustStatus(t, rec, http.StatusBadRequest)
}

func TestCreateMeetupPhotoMissingPostcard(t *testing.T) {
	srv, _ := newPhotoServer(t)

	rec := doRequest(srv, http.MethodPost, "/api/meetup-photos", `{"photo_url":"https://img.example/a.jpg"}`)
	mustStatus(t, rec, http.StatusBadRequest)
}

func TestListMeetupPhotosByPostcard(t *testing.T) {
	srv, db := newPhotoServer(t)
	postcard := seedPostcard(t, db)
	other := seedPostcard(t, db)

	for i := 0; i < 2; i++ {
		body := fmt.Sprintf(`{"postcard_id":%d,"photo_url":"https://img.example/p%d.jpg"}`, postcard.ID, i)
		mustStatus(t, doRequest(srv, http.MethodPost, "/api/meetup-photos", body), http.StatusCreated)
	}
	body := fmt.Sprintf(`{"postcard_id":%d,"photo_url":"https://img.example/other.jpg"}`, other.ID)
	mustStatus(t, doRequest(srv, http.MethodPost, "/api/meetup-photos", body), http.StatusCreated)

	rec := doRequest(srv, http.MethodGet, fmt.Sprintf("/api/meetup-photos/postcard/%d", postcard.ID), "")
	mustStatus(t, rec, http.StatusOK)

	var photos []models.MeetupPhoto
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &photos))
	require.Len(t, photos, 2)
	for _, photo := range photos {
		assert.Equal(t, postcard.ID, photo.PostcardID)
	}
}

func TestListMeetupPhotosEmptyPostcard(t *testing.T) {
	srv, db := newPhotoServer(t)
	postcard := seedPostcard(t, db)

	rec := doRequest(srv, http.MethodGet, fmt.Sprintf("/api/meetup-photos/postcard/%d", postcard.ID), "")
	mustStatus(t, rec, http.StatusOK)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListMeetupPhotosInvalidID(t *testing.T) {
	srv, _ := newPhotoServer(t)

	rec := doRequest(srv, http.MethodGet, "/api/meetup-photos/postcard/abc", "")
	mustStatus(t, rec, http.StatusBadRequest)
}
