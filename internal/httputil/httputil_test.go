package httputil

import (
	"crypto/tls"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"imagefolders/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRespondJSON(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RespondJSON(rec, http.StatusCreated, map[string]string{"id": "1"})

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		body := decode(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, map[string]interface{}{"id": "1"}, body["data"])
		assert.NotContains(t, body, "count")
		assert.NotContains(t, body, "error")
	})

	t.Run("empty slice reports count zero", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RespondJSON(rec, http.StatusOK, []string{})

		body := decode(t, rec)
		assert.Equal(t, float64(0), body["count"])
		assert.Equal(t, []interface{}{}, body["data"])
	})

	t.Run("nil slice is an empty array", func(t *testing.T) {
		var none []int
		rec := httptest.NewRecorder()
		RespondJSON(rec, http.StatusOK, none)

		assert.JSONEq(t, `{"success":true,"data":[],"count":0}`, rec.Body.String())
	})

	t.Run("unencodable data", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RespondJSON(rec, http.StatusOK, map[string]interface{}{"bad": make(chan int)})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, false, decode(t, rec)["success"])
	})
}

func TestRespondEmptyAndError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondEmpty(rec, http.StatusOK)
	assert.JSONEq(t, `{"success":true,"data":{}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	RespondError(rec, http.StatusNotFound, "Folder not found")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Folder not found"}`, rec.Body.String())
}

func TestIdentityContext(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, GetIdentity(r))
	assert.Equal(t, "", GetUserID(r))

	r = WithIdentity(r, &models.Identity{UserID: "u1", Email: "a@b.co"})
	require.NotNil(t, GetIdentity(r))
	assert.Equal(t, "u1", GetUserID(r))
}

func TestParseJSON(t *testing.T) {
	var dest struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Vacation"}`))
	require.NoError(t, ParseJSON(httptest.NewRecorder(), r, &dest))
	assert.Equal(t, "Vacation", dest.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	assert.Error(t, ParseJSON(httptest.NewRecorder(), r, &dest))
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?limit=20&page=x&neg=-1", nil)

	n, err := QueryInt(r, "limit", 0)
	require.NoError(t, err)
	assert.Equal(t, 20, n)

	n, err = QueryInt(r, "missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = QueryInt(r, "page", 1)
	assert.Error(t, err)
	_, err = QueryInt(r, "neg", 0)
	assert.Error(t, err)
}

func TestBaseURL(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "http://api.example.com/x", nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	r.Header.Set("X-Forwarded-Host", "cdn.example.com, internal")

	assert.Equal(t, "http://api.example.com", BaseURL(r, false))
	assert.Equal(t, "https://cdn.example.com", BaseURL(r, true))

	r = httptest.NewRequest(http.MethodGet, "https://secure.example.com/x", nil)
	r.TLS = &tls.ConnectionState{}
	assert.Equal(t, "https://secure.example.com", BaseURL(r, false))
}
