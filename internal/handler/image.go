package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"imagefolders/internal/config"
	"imagefolders/internal/domain"
	"imagefolders/internal/domain/models"
	"imagefolders/internal/domain/services"
	"imagefolders/internal/httputil"
)

const (
	imageField = "image"

	// multipartMemory is how much of a multipart body is held in memory
	// before spilling to temporary files
	multipartMemory = 8 << 20

	// multipartOverhead leaves room for boundaries and text fields on top of the file limit
	multipartOverhead = 1 << 20
)

// ImageHandler handles image HTTP requests
type ImageHandler struct {
	imageService services.ImageService
	maxBytes     int64
	trustProxy   bool
	logger       *slog.Logger
}

// NewImageHandler creates a new image handler. Request bodies are capped a
// little above maxBytes; trustProxy selects whether forwarded headers shape
// the public URL of uploads.
func NewImageHandler(imageService services.ImageService, maxBytes int64, trustProxy bool, logger *slog.Logger) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
		maxBytes:     maxBytes,
		trustProxy:   trustProxy,
		logger:       logger,
	}
}

// UploadImage accepts a multipart form with the file in "image" and optional
// "name" and "folder" fields
// POST /images
func (h *ImageHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)

	req := &services.UploadImageRequest{
		FieldName: imageField,
		BaseURL:   httputil.BaseURL(r, h.trustProxy),
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handleError(w, r, h.logger, domain.NewValidation(fmt.Sprintf("File size exceeds the %dMB limit", h.maxBytes>>20)))
			return
		}
		// Not multipart or malformed: the service reports the missing file
	} else {
		defer r.MultipartForm.RemoveAll()

		req.Name = r.FormValue("name")
		if folder := strings.TrimSpace(r.FormValue("folder")); folder != "" {
			req.FolderID = &folder
		}

		file, header, err := r.FormFile(imageField)
		if err == nil {
			defer file.Close()
			req.Body = file
			req.FileName = header.Filename
			req.ContentType = header.Header.Get("Content-Type")
			req.Size = header.Size
		} else if !errors.Is(err, http.ErrMissingFile) {
			h.logger.Warn("read upload", "error", err)
		}
	}

	image, err := h.imageService.UploadImage(r.Context(), httputil.GetUserID(r), req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, image)
}

// ListImages lists the caller's images
// GET /images?folder=&search=&limit=&page=
func (h *ImageHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	filter, err := parseImageFilter(r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	images, err := h.imageService.ListImages(r.Context(), httputil.GetUserID(r), filter)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, images)
}

// SearchImages runs a text search over the caller's image names
// GET /images/search?q=
func (h *ImageHandler) SearchImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.imageService.SearchImages(r.Context(), httputil.GetUserID(r), r.URL.Query().Get("q"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, images)
}

// DeleteImage removes an image and its file
// DELETE /images/{id}
func (h *ImageHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	if err := h.imageService.DeleteImage(r.Context(), httputil.GetUserID(r), r.PathValue("id")); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondEmpty(w, http.StatusOK)
}

// parseImageFilter reads folder, search, limit and page. Pages start at 1
// and only apply with a limit.
func parseImageFilter(r *http.Request) (models.ImageFilter, error) {
	query := r.URL.Query()
	filter := models.ImageFilter{
		Search: strings.TrimSpace(query.Get("search")),
	}
	if folder := strings.TrimSpace(query.Get("folder")); folder != "" {
		filter.FolderID = &folder
	}

	limit, err := httputil.QueryInt(r, "limit", 0)
	if err != nil {
		return filter, domain.NewValidation(err.Error())
	}
	page, err := httputil.QueryInt(r, "page", 1)
	if err != nil {
		return filter, domain.NewValidation(err.Error())
	}
	if page < 1 {
		return filter, domain.NewValidation("page must be at least 1")
	}

	filter.Limit = limit
	if err := filter.Validate(config.MaxListLimit); err != nil {
		return filter, domain.NewValidation(err.Error())
	}
	if limit > 0 {
		if page-1 > math.MaxInt/limit {
			return filter, domain.NewValidation("page is too large")
		}
		filter.Offset = (page - 1) * limit
	}
	return filter, nil
}
