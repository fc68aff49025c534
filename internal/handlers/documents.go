package handlers

import (
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"collablearn/internal/models"
	"collablearn/internal/repositories"
	"collablearn/internal/storage"
)

// DocumentsHandler manages session-document attachments on bookings.
type DocumentsHandler struct {
	bookingRepo  repositories.BookingRepository
	settingsRepo repositories.SettingsRepository
	files        storage.FileStore
	dev          bool
}

// NewDocumentsHandler builds a DocumentsHandler.
func NewDocumentsHandler(bookingRepo repositories.BookingRepository, settingsRepo repositories.SettingsRepository, files storage.FileStore, dev bool) *DocumentsHandler {
	return &DocumentsHandler{bookingRepo: bookingRepo, settingsRepo: settingsRepo, files: files, dev: dev}
}

// Upload attaches a multipart file (field "document") to a booking. Files
// outside the extension allow-list or over the configured size limit are
// rejected.
func (h *DocumentsHandler) Upload(c *gin.Context) {
	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	if _, err := h.bookingRepo.GetBooking(c.Request.Context(), bookingID); err != nil {
		if errors.Is(err, repositories.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		serverError(c, h.dev, err, "failed to load booking")
		return
	}

	header, err := c.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document file is required"})
		return
	}

	if err := storage.ValidateDocument(header.Filename, header.Size, h.uploadLimit(c)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := header.Open()
	if err != nil {
		serverError(c, h.dev, err, "failed to read upload")
		return
	}
	defer file.Close()

	docID := uuid.NewString()
	objectName := documentObjectName(docID, header.Filename)
	url, err := h.files.Save(c.Request.Context(), objectName, file, header.Size)
	if err != nil {
		serverError(c, h.dev, err, "failed to store document")
		return
	}

	doc := models.BookingDocument{
		ID:         docID,
		BookingID:  bookingID,
		FileName:   filepath.Base(header.Filename),
		URL:        url,
		SizeBytes:  header.Size,
		UploadedBy: c.GetInt("userID"),
	}
	if err := h.bookingRepo.AddDocument(c.Request.Context(), doc); err != nil {
		_ = h.files.Delete(c.Request.Context(), objectName)
		serverError(c, h.dev, err, "failed to record document")
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// List returns a booking's attachments.
func (h *DocumentsHandler) List(c *gin.Context) {
	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	docs, err := h.bookingRepo.ListDocuments(c.Request.Context(), bookingID)
	if err != nil {
		serverError(c, h.dev, err, "failed to load documents")
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

// Delete removes one attachment, addressed by its stable document id.
func (h *DocumentsHandler) Delete(c *gin.Context) {
	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	docID := c.Param("doc_id")

	doc, err := h.bookingRepo.GetDocument(c.Request.Context(), docID)
	if err != nil {
		if errors.Is(err, repositories.ErrDocumentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
			return
		}
		serverError(c, h.dev, err, "failed to load document")
		return
	}
	if doc.BookingID != bookingID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "document does not belong to booking"})
		return
	}

	if err := h.bookingRepo.DeleteDocument(c.Request.Context(), bookingID, docID); err != nil {
		serverError(c, h.dev, err, "failed to delete document")
		return
	}
	if err := h.files.Delete(c.Request.Context(), documentObjectName(doc.ID, doc.FileName)); err != nil {
		// The record is already gone; an orphaned object is acceptable.
		log.Printf("document object delete failed id=%s: %v", doc.ID, err)
	}

	c.Status(http.StatusNoContent)
}

// uploadLimit resolves the admin-configured size cap in bytes. When the
// settings cannot be loaded the built-in default applies.
func (h *DocumentsHandler) uploadLimit(c *gin.Context) int64 {
	if h.settingsRepo == nil {
		return storage.MaxDocumentSize
	}
	settings, err := h.settingsRepo.GetSettings(c.Request.Context())
	if err != nil || settings.MaxUploadSizeMB <= 0 {
		return storage.MaxDocumentSize
	}
	return int64(settings.MaxUploadSizeMB) << 20
}

func documentObjectName(docID, fileName string) string {
	return docID + strings.ToLower(filepath.Ext(fileName))
}
