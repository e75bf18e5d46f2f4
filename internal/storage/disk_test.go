package storage

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *DiskStorage {
	t.Helper()
	s, err := NewDiskStorage(filepath.Join(t.TempDir(), "uploads"), "/uploads/", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s
}

func TestDiskStorage_SaveGeneratesName(t *testing.T) {
	s := newTestStorage(t)

	name, err := s.Save("image", "Holiday Photo.JPG", strings.NewReader("pixels"))
	require.NoError(t, err)
	assert.Equal(t, "image-1700000000000.jpg", name)

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(data))
}

func TestDiskStorage_SaveAvoidsClash(t *testing.T) {
	s := newTestStorage(t)

	first, err := s.Save("image", "a.png", strings.NewReader("1"))
	require.NoError(t, err)
	second, err := s.Save("image", "b.png", strings.NewReader("2"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, "image-1700000000001.png", second)
}

func TestDiskStorage_URLRoundTrip(t *testing.T) {
	s := newTestStorage(t)

	url := s.URL("http://localhost:5000", "image-1.jpg")
	assert.Equal(t, "http://localhost:5000/uploads/image-1.jpg", url)
	assert.Equal(t, "image-1.jpg", s.NameFromURL(url))

	assert.Empty(t, s.NameFromURL("http://elsewhere/static/x.jpg"))
	assert.Empty(t, s.NameFromURL("http://localhost/uploads/"))
}

func TestDiskStorage_Remove(t *testing.T) {
	s := newTestStorage(t)

	name, err := s.Save("image", "a.gif", strings.NewReader("gif"))
	require.NoError(t, err)

	require.NoError(t, s.Remove(name))
	_, err = os.Stat(filepath.Join(s.dir, name))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.Remove(name), "already removed is fine")
	assert.Error(t, s.Remove("../etc/passwd"))
}

func TestDiskStorage_Handler(t *testing.T) {
	s := newTestStorage(t)
	name, err := s.Save("image", "a.txt", strings.NewReader("hello"))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/"+name, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello", rec.Body.String())

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
