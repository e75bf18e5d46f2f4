package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// maxNameAttempts bounds how often Save bumps the timestamp on a name clash
const maxNameAttempts = 16

// DiskStorage keeps uploaded files in a single local directory and serves
// them under a URL prefix.
type DiskStorage struct {
	dir       string
	urlPrefix string
	now       func() time.Time
	logger    *slog.Logger
}

// NewDiskStorage creates dir if needed
func NewDiskStorage(dir, urlPrefix string, logger *slog.Logger) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &DiskStorage{
		dir:       dir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
		now:       time.Now,
		logger:    logger,
	}, nil
}

// Save writes r to a generated file name of the form
// <fieldName>-<unix millis><ext of originalName> and returns that name.
// Nothing of the caller's identity ends up in the name.
func (s *DiskStorage) Save(fieldName, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(originalName)))
	stamp := s.now().UnixMilli()

	var f *os.File
	var name string
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name = fmt.Sprintf("%s-%d%s", fieldName, stamp+int64(attempt), ext)

		var err error
		f, err = os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			break
		}
		if !errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("create upload file: %w", err)
		}
		f = nil
	}
	if f == nil {
		return "", fmt.Errorf("no free file name for %s-%d%s", fieldName, stamp, ext)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close upload file: %w", err)
	}

	s.logger.Debug("upload stored", "file", name)
	return name, nil
}

// Remove deletes a stored file. A file that is already gone is not an error.
func (s *DiskStorage) Remove(name string) error {
	if name == "" || name != filepath.Base(name) {
		return fmt.Errorf("invalid stored file name %q", name)
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload file: %w", err)
	}
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("upload file already missing", "file", name)
	}
	return nil
}

// URL builds the absolute URL of a stored file
func (s *DiskStorage) URL(baseURL, name string) string {
	return strings.TrimSuffix(baseURL, "/") + s.urlPrefix + "/" + name
}

// NameFromURL recovers the stored file name from a URL produced by URL.
// Returns "" if the URL does not point into the upload prefix.
func (s *DiskStorage) NameFromURL(fileURL string) string {
	marker := s.urlPrefix + "/"
	i := strings.LastIndex(fileURL, marker)
	if i < 0 {
		return ""
	}
	name := fileURL[i+len(marker):]
	if name == "" || name != filepath.Base(name) {
		return ""
	}
	return name
}

// Handler serves stored files. Directory listings are not exposed.
func (s *DiskStorage) Handler() http.Handler {
	files := http.FileServer(http.Dir(s.dir))
	return http.StripPrefix(s.urlPrefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	}))
}

// Prefix returns the URL prefix files are served under
func (s *DiskStorage) Prefix() string {
	return s.urlPrefix
}
