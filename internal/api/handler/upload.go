package handler

import (
	"fmt"
	"mime/multipart"
	"path"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/promosynch/promosynch-api/internal/core/ports"
)

// formMediaUpload wraps the named multipart file for deferred storage by a
// service, so no object is written before the request is validated.
// Returns (nil, no-op, nil) when the field is absent.
func formMediaUpload(c echo.Context, field string) (*ports.MediaUpload, func(), error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, func() {}, nil
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, func() {}, fmt.Errorf("open uploaded file: %w", err)
	}

	upload := &ports.MediaUpload{
		Reader:      src,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Filename:    fileHeader.Filename,
	}
	return upload, func() { _ = src.Close() }, nil
}

// uploadFormFile stores the named multipart file in the media store and
// returns its public URL. Returns ("", nil) when the field is absent so
// callers can fall back to a default image.
func uploadFormFile(c echo.Context, media ports.MediaStore, field, folder string) (string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	return storeFile(c, media, fileHeader, src, folder)
}

func storeFile(c echo.Context, media ports.MediaStore, fh *multipart.FileHeader, src multipart.File, folder string) (string, error) {
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := folder + "/" + uuid.NewString() + path.Ext(fh.Filename)
	url, err := media.Upload(c.Request().Context(), key, src, fh.Size, contentType)
	if err != nil {
		return "", fmt.Errorf("store uploaded file: %w", err)
	}
	return url, nil
}
