package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/filebright/filebright-backend/errors"
	"github.com/filebright/filebright-backend/logger"
	"github.com/filebright/filebright-backend/services"
)

// userIDHeader identifies the caller. Session handling lives in front of
// this service; the header is trusted as-is.
const userIDHeader = "X-User-ID"

type DocumentHandler struct {
	documents *services.DocumentService
}

func NewDocumentHandler(documents *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

func requireUserID(c *gin.Context) (string, bool) {
	userID := c.GetHeader(userIDHeader)
	if userID == "" {
		_ = c.Error(apperrors.ValidationFailed("missing user", "the X-User-ID header is required"))
		return "", false
	}
	return userID, true
}

// Upload accepts a multipart form with a single "file" part.
func (h *DocumentHandler) Upload(c *gin.Context) {
	log := logger.GetLogger()

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		_ = c.Error(apperrors.ValidationFailed("missing file", "a multipart \"file\" part is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		_ = c.Error(apperrors.InternalServerError("failed to read uploaded file"))
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		log.Errorw("Failed to read multipart file", "error", err)
		_ = c.Error(apperrors.InternalServerError("failed to read uploaded file"))
		return
	}

	doc, err := h.documents.Upload(c.Request.Context(), userID, fileHeader.Filename, content)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// List returns the caller's documents.
func (h *DocumentHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	docs, err := h.documents.List(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

// Get returns one document.
func (h *DocumentHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	doc, err := h.documents.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// Delete removes a document and its stored file.
func (h *DocumentHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.documents.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Process runs OCR extraction for one document.
func (h *DocumentHandler) Process(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	source, err := h.documents.Process(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, source)
}
