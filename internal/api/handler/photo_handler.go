package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campuscore/admin-portal/internal/api/metrics"
	"github.com/campuscore/admin-portal/internal/core/domain"
	"github.com/campuscore/admin-portal/internal/core/ports"
)

// PhotoHandler handles the admin-panel photo endpoints.
type PhotoHandler struct {
	photos ports.PhotoService
}

func NewPhotoHandler(photos ports.PhotoService) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

type photoResponse struct {
	ID               string    `json:"id"`
	OriginalFilename string    `json:"original_filename"`
	ContentType      string    `json:"content_type"`
	SizeBytes        int64     `json:"size_bytes"`
	IsProfile        bool      `json:"is_profile"`
	UploadedAt       time.Time `json:"uploaded_at"`
	URL              string    `json:"url,omitempty"`
}

type listPhotosResponse struct {
	Data []photoResponse `json:"data"`
}

// Upload stores a photo for the user from a multipart form field "photo".
//
// @Summary      Upload photo
// @Tags         photos
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      string  true  "user id"
// @Param        photo  formData  file    true  "image file (jpeg, png or webp, max 5 MiB)"
// @Success      201    {object}  photoResponse
// @Failure      422    {object}  map[string]any
// @Router       /admin/panel/users/{id}/photos [post]
func (h *PhotoHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return domain.NewValidationError("photo", "photo file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	photo, err := h.photos.Upload(c.Request().Context(), ports.UploadPhotoInput{
		UserID:           c.Param("id"),
		OriginalFilename: fileHeader.Filename,
		ContentType:      fileHeader.Header.Get("Content-Type"),
		SizeBytes:        fileHeader.Size,
		Content:          src,
	})
	if err != nil {
		return err
	}

	metrics.PhotoUploadsTotal.Inc()
	return c.JSON(http.StatusCreated, toPhotoResponse(photo, ""))
}

// List returns the user's photos with short-lived display URLs.
//
// @Summary      List photos
// @Tags         photos
// @Produce      json
// @Param        id  path  string  true  "user id"
// @Success      200  {object}  listPhotosResponse
// @Router       /admin/panel/users/{id}/photos [get]
func (h *PhotoHandler) List(c echo.Context) error {
	views, err := h.photos.List(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	data := make([]photoResponse, 0, len(views))
	for _, v := range views {
		data = append(data, toPhotoResponse(v.Photo, v.URL))
	}
	return c.JSON(http.StatusOK, listPhotosResponse{Data: data})
}

// SetProfile makes the photo the user's profile photo.
//
// @Summary      Set profile photo
// @Tags         photos
// @Param        id       path  string  true  "user id"
// @Param        photoID  path  string  true  "photo id"
// @Success      204  "profile photo updated"
// @Failure      404  {object}  map[string]string
// @Router       /admin/panel/users/{id}/photos/{photoID}/set-profile [patch]
func (h *PhotoHandler) SetProfile(c echo.Context) error {
	if err := h.photos.SetProfile(c.Request().Context(), c.Param("id"), c.Param("photoID")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a photo and its stored blob.
//
// @Summary      Delete photo
// @Tags         photos
// @Param        id       path  string  true  "user id"
// @Param        photoID  path  string  true  "photo id"
// @Success      204  "photo deleted"
// @Failure      404  {object}  map[string]string
// @Router       /admin/panel/users/{id}/photos/{photoID} [delete]
func (h *PhotoHandler) Delete(c echo.Context) error {
	if err := h.photos.Delete(c.Request().Context(), c.Param("id"), c.Param("photoID")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func toPhotoResponse(p *domain.Photo, url string) photoResponse {
	return photoResponse{
		ID:               p.ID,
		OriginalFilename: p.OriginalFilename,
		ContentType:      p.ContentType,
		SizeBytes:        p.SizeBytes,
		IsProfile:        p.IsProfile,
		UploadedAt:       p.UploadedAt,
		URL:              url,
	}
}
