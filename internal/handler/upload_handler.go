package handler

import (
	"fmt"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/vikram110703/booking-airbnb-backend/internal/service"
)

const (
	uploadField    = "photos"
	maxUploadFiles = 100
	maxFormMemory  = 32 << 20
)

// UploadHandler handles photo uploads.
type UploadHandler struct {
	photoService service.PhotoService
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(photoService service.PhotoService) *UploadHandler {
	return &UploadHandler{photoService: photoService}
}

// UploadByLinkRequest names a remote image.
type UploadByLinkRequest struct {
	Link string `json:"link" validate:"required"`
}

// UploadByLink godoc
// @Summary Download a remote image into the upload directory
// @Tags uploads
// @Accept json
// @Produce json
// @Param request body UploadByLinkRequest true "Image link"
// @Success 200 {string} string "stored file name"
// @Failure 422 {object} errors.ErrorResponse
// @Failure 502 {object} errors.ErrorResponse
// @Router /upload-by-link [post]
func (h *UploadHandler) UploadByLink(c echo.Context) error {
	var req UploadByLinkRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(err)
	}

	ref, err := h.photoService.IngestFromURL(c.Request().Context(), req.Link)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ref)
}

// Upload godoc
// @Summary Upload listing photos
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param photos formData file true "Photos (up to 100)"
// @Success 200 {array} string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 413 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Router /upload [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	if err := c.Request().ParseMultipartForm(maxFormMemory); err != nil {
		return invalidRequest("invalid multipart form")
	}
	headers := c.Request().MultipartForm.File[uploadField]
	if len(headers) > maxUploadFiles {
		return invalidRequest(fmt.Sprintf("at most %d files per upload", maxUploadFiles))
	}

	ctx := c.Request().Context()
	files := make([]service.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		src, err := fh.Open()
		if err != nil {
			discardStaged(files)
			return invalidRequest("unreadable file " + fh.Filename)
		}
		tmp, err := h.photoService.Stage(ctx, src)
		src.Close()
		if err != nil {
			discardStaged(files)
			return writeError(c, err)
		}
		files = append(files, service.UploadedFile{TempPath: tmp, OriginalName: fh.Filename})
	}

	refs, err := h.photoService.IngestUploads(ctx, files)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, refs)
}

func discardStaged(files []service.UploadedFile) {
	for _, f := range files {
		_ = os.Remove(f.TempPath)
	}
}
