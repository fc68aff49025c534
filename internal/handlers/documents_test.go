package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"collablearn/internal/mocks"
	"collablearn/internal/models"
)

func setupDocumentsRouter(handler *DocumentsHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", 1)
		c.Next()
	})
	r.POST("/booking/:id/upload-document", handler.Upload)
	r.GET("/booking/:id/documents", handler.List)
	r.DELETE("/booking/:id/delete-document/:doc_id", handler.Delete)
	return r
}

func multipartDocument(t *testing.T, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("document", fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadDocumentSuccess(t *testing.T) {
	bookingRepo := new(mocks.BookingRepositoryMock)
	files := new(mocks.FileStoreMock)
	handler := NewDocumentsHandler(bookingRepo, nil, files, true)
	router := setupDocumentsRouter(handler)

	bookingRepo.On("GetBooking", mock.Anything, 10).
		Return(models.Booking{ID: 10, Status: models.BookingConfirmed}, nil).Once()
	files.On("Save", mock.Anything, mock.Anything, mock.Anything, int64(5)).
		Return("s3://bucket/doc.pdf", nil).Once()
	bookingRepo.On("AddDocument", mock.Anything, mock.MatchedBy(func(doc models.BookingDocument) bool {
		return doc.BookingID == 10 && doc.FileName == "notes.pdf" && doc.UploadedBy == 1
	})).Return(nil).Once()

	body, contentType := multipartDocument(t, "notes.pdf", "hello")
	req := httptest.NewRequest(http.MethodPost, "/booking/10/upload-document", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	bookingRepo.AssertExpectations(t)
	files.AssertExpectations(t)
}

func TestUploadDocumentBlockedExtension(t *testing.T) {
	bookingRepo := new(mocks.BookingRepositoryMock)
	files := new(mocks.FileStoreMock)
	handler := NewDocumentsHandler(bookingRepo, nil, files, true)
	router := setupDocumentsRouter(handler)

	bookingRepo.On("GetBooking", mock.Anything, 10).
		Return(models.Booking{ID: 10}, nil).Once()

	body, contentType := multipartDocument(t, "payload.exe", "MZ")
	req := httptest.NewRequest(http.MethodPost, "/booking/10/upload-document", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	files.AssertNotCalled(t, "Save")
}

func TestUploadDocumentRespectsConfiguredLimit(t *testing.T) {
	bookingRepo := new(mocks.BookingRepositoryMock)
	settingsRepo := new(mocks.SettingsRepositoryMock)
	files := new(mocks.FileStoreMock)
	handler := NewDocumentsHandler(bookingRepo, settingsRepo, files, true)
	router := setupDocumentsRouter(handler)

	bookingRepo.On("GetBooking", mock.Anything, 10).
		Return(models.Booking{ID: 10}, nil).Once()
	settingsRepo.On("GetSettings", mock.Anything).
		Return(models.Settings{MaxUploadSizeMB: 1}, nil).Once()

	body, contentType := multipartDocument(t, "notes.pdf", strings.Repeat("a", (1<<20)+1))
	req := httptest.NewRequest(http.MethodPost, "/booking/10/upload-document", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	files.AssertNotCalled(t, "Save")
	settingsRepo.AssertExpectations(t)
}

func TestUploadDocumentRollsBackOnRecordFailure(t *testing.T) {
	bookingRepo := new(mocks.BookingRepositoryMock)
	files := new(mocks.FileStoreMock)
	handler := NewDocumentsHandler(bookingRepo, nil, files, true)
	router := setupDocumentsRouter(handler)

	bookingRepo.On("GetBooking", mock.Anything, 10).
		Return(models.Booking{ID: 10}, nil).Once()
	files.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("s3://bucket/doc.pdf", nil).Once()
	bookingRepo.On("AddDocument", mock.Anything, mock.Anything).
		Return(assert.AnError).Once()
	files.On("Delete", mock.Anything, mock.Anything).Return(nil).Once()

	body, contentType := multipartDocument(t, "notes.pdf", "hello")
	req := httptest.NewRequest(http.MethodPost, "/booking/10/upload-document", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	files.AssertExpectations(t)
}

func TestDeleteDocumentSuccess(t *testing.T) {
	bookingRepo := new(mocks.BookingRepositoryMock)
	files := new(mocks.FileStoreMock)
	handler := NewDocumentsHandler(bookingRepo, nil, files, true)
	router := setupDocumentsRouter(handler)

	bookingRepo.On("GetDocument", mock.Anything, "doc-1").
		Return(models.BookingDocument{ID: "doc-1", BookingID: 10, FileName: "notes.pdf"}, nil).Once()
	bookingRepo.On("DeleteDocument", mock.Anything, 10, "doc-1").Return(nil).Once()
	files.On("Delete", mock.Anything, "doc-1.pdf").Return(nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/booking/10/delete-document/doc-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	bookingRepo.AssertExpectations(t)
	files.AssertExpectations(t)
}

func TestDeleteDocumentWrongBooking(t *testing.T) {
	bookingRepo := new(mocks.BookingRepositoryMock)
	files := new(mocks.FileStoreMock)
	handler := NewDocumentsHandler(bookingRepo, nil, files, true)
	router := setupDocumentsRouter(handler)

	bookingRepo.On("GetDocument", mock.Anything, "doc-1").
		Return(models.BookingDocument{ID: "doc-1", BookingID: 99}, nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/booking/10/delete-document/doc-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	bookingRepo.AssertNotCalled(t, "DeleteDocument")
}

func TestDeleteDocumentStoreFailureStillSucceeds(t *testing.T) {
	bookingRepo := new(mocks.BookingRepositoryMock)
	files := new(mocks.FileStoreMock)
	handler := NewDocumentsHandler(bookingRepo, nil, files, true)
	router := setupDocumentsRouter(handler)

	bookingRepo.On("GetDocument", mock.Anything, "doc-1").
		Return(models.BookingDocument{ID: "doc-1", BookingID: 10, FileName: "notes.pdf"}, nil).Once()
	bookingRepo.On("DeleteDocument", mock.Anything, 10, "doc-1").Return(nil).Once()
	files.On("Delete", mock.Anything, "doc-1.pdf").Return(assert.AnError).Once()

	req := httptest.NewRequest(http.MethodDelete, "/booking/10/delete-document/doc-1", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	bookingRepo.AssertExpectations(t)
}
