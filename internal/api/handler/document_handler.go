package handler

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/visago/visa-assistant/internal/api/metrics"
	"github.com/visago/visa-assistant/internal/core/domain"
	"github.com/visago/visa-assistant/internal/core/ports"
)

// UploadField is the multipart field carrying the files.
const UploadField = "documents"

type DocumentHandler struct {
	service ports.DocumentService
}

func NewDocumentHandler(service ports.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// Upload handles POST /documents/upload.
//
// @Summary      Upload documents
// @Tags         documents
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        documents  formData  file  true  "Up to 10 files: jpeg, jpg, png, pdf, doc, docx"
// @Success      201        {object}  uploadResponse
// @Failure      400        {object}  errorResponse
// @Router       /documents/upload [post]
func (h *DocumentHandler) Upload(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		metrics.DocumentsRejectedTotal.WithLabelValues("no_files").Inc()
		return errInvalidPayload(err)
	}
	headers := form.File[UploadField]

	files := make([]ports.UploadFile, 0, len(headers))
	for _, fh := range headers {
		files = append(files, ports.UploadFile{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}

	docs, err := h.service.Upload(c.Request().Context(), id.UserID, files)
	if err != nil {
		metrics.DocumentsRejectedTotal.WithLabelValues(rejectReason(err)).Inc()
		return err
	}

	metrics.DocumentsUploadedTotal.Add(float64(len(docs)))
	return c.JSON(http.StatusCreated, uploadResponse{
		Message: fmt.Sprintf("%d document(s) uploaded", len(docs)),
		Files:   docs,
	})
}

// List handles GET /documents/list.
//
// @Summary      List my documents
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  documentsResponse
// @Router       /documents/list [get]
func (h *DocumentHandler) List(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	docs, err := h.service.List(c.Request().Context(), id.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, documentsResponse{Documents: docs})
}

// Download handles GET /documents/download/:filename.
//
// @Summary      Download a document
// @Tags         documents
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        filename  path  string  true  "Stored file name"
// @Success      200
// @Failure      404  {object}  errorResponse
// @Router       /documents/download/{filename} [get]
func (h *DocumentHandler) Download(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	doc, r, err := h.service.Open(c.Request().Context(), id.UserID, c.Param("filename"))
	if err != nil {
		return err
	}
	defer r.Close()

	name := doc.OriginalName
	if name == "" {
		name = doc.Filename
	}
	res := c.Response()
	res.Header().Set(echo.HeaderContentDisposition, mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	if doc.MimeType != "" {
		res.Header().Set(echo.HeaderContentType, doc.MimeType)
	}
	http.ServeContent(res, c.Request(), doc.Filename, doc.UploadedAt, r)
	return nil
}

// Delete handles DELETE /documents/:filename.
//
// @Summary      Delete a document
// @Tags         documents
// @Produce      json
// @Security     BearerAuth
// @Param        filename  path      string  true  "Stored file name"
// @Success      200       {object}  messageResponse
// @Failure      404       {object}  errorResponse
// @Router       /documents/{filename} [delete]
func (h *DocumentHandler) Delete(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id.UserID, c.Param("filename")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "document deleted"})
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrTooManyFiles):
		return "too_many_files"
	case errors.Is(err, domain.ErrFileTooLarge):
		return "file_too_large"
	case errors.Is(err, domain.ErrInvalidDocument):
		return "invalid_type"
	case errors.Is(err, domain.ErrBadRequest):
		return "no_files"
	}
	return "error"
}
