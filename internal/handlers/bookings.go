package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"collablearn/internal/models"
	"collablearn/internal/observability"
	"collablearn/internal/repositories"
	"collablearn/internal/telemetry"
)

// BookingsHandler manages the session-booking lifecycle.
type BookingsHandler struct {
	bookingRepo repositories.BookingRepository
	audit       *telemetry.AuditEmitter
	dev         bool
}

// NewBookingsHandler builds a BookingsHandler.
func NewBookingsHandler(bookingRepo repositories.BookingRepository, audit *telemetry.AuditEmitter, dev bool) *BookingsHandler {
	return &BookingsHandler{bookingRepo: bookingRepo, audit: audit, dev: dev}
}

// CreateBooking stores a new session request with status pending. All five
// core fields are required.
func (h *BookingsHandler) CreateBooking(c *gin.Context) {
	var req struct {
		Instructor int       `json:"instructor"`
		Student    int       `json:"student"`
		Skill      int       `json:"skill"`
		Date       time.Time `json:"date"`
		Duration   int       `json:"duration"`
		Notes      string    `json:"notes"`
		Sessions   int       `json:"sessions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Instructor == 0 || req.Student == 0 || req.Skill == 0 || req.Date.IsZero() || req.Duration == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "instructor, student, skill, date and duration are required"})
		return
	}

	booking, err := h.bookingRepo.CreateBooking(c.Request.Context(), req.Instructor, req.Student, req.Skill, req.Date, req.Duration, req.Notes, req.Sessions)
	if err != nil {
		serverError(c, h.dev, err, "failed to create booking")
		return
	}

	observability.IncBookingTransition(models.BookingPending)
	c.JSON(http.StatusCreated, booking)
}

// GetBooking returns one booking.
func (h *BookingsHandler) GetBooking(c *gin.Context) {
	booking, ok := h.loadBooking(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ListMyBookings returns bookings where the caller is instructor or student.
func (h *BookingsHandler) ListMyBookings(c *gin.Context) {
	bookings, err := h.bookingRepo.ListBookingsForUser(c.Request.Context(), c.GetInt("userID"))
	if err != nil {
		serverError(c, h.dev, err, "failed to load bookings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// UpdateStatus applies a guarded status transition. Transitions out of a
// terminal state, and any move the state machine does not allow, are
// rejected with 409.
func (h *BookingsHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	booking, ok := h.loadBooking(c)
	if !ok {
		return
	}
	if !booking.CanTransitionTo(req.Status) {
		c.JSON(http.StatusConflict, gin.H{"error": "cannot move booking from " + booking.Status + " to " + req.Status})
		return
	}

	updated, err := h.bookingRepo.UpdateStatus(c.Request.Context(), booking.ID, req.Status)
	if err != nil {
		serverError(c, h.dev, err, "failed to update booking")
		return
	}

	observability.IncBookingTransition(req.Status)
	h.audit.Emit(c.Request.Context(), "INFO", "booking status changed to "+req.Status, requestIDFromContext(c), auditUserID(c))
	c.JSON(http.StatusOK, updated)
}

type completeRequest struct {
	Rating        int    `json:"rating"`
	Review        string `json:"review"`
	UserType      string `json:"userType"`
	ForceComplete bool   `json:"forceComplete"`
}

// Complete records a participant's rating and completes the booking once
// both sides have rated, or immediately when forceComplete is set. With one
// rating missing the status is left untouched and the response reports that
// the other participant has not rated yet.
func (h *BookingsHandler) Complete(c *gin.Context) {
	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.UserType != models.RaterInstructor && req.UserType != models.RaterStudent {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userType must be instructor or student"})
		return
	}
	if !req.ForceComplete && (req.Rating < 1 || req.Rating > 5) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
		return
	}

	booking, ok := h.loadBooking(c)
	if !ok {
		return
	}
	if booking.Status == models.BookingCancelled {
		c.JSON(http.StatusConflict, gin.H{"error": "booking is cancelled"})
		return
	}
	if booking.Status == models.BookingPending {
		c.JSON(http.StatusConflict, gin.H{"error": "booking is not confirmed"})
		return
	}

	if req.Rating >= 1 && req.Rating <= 5 {
		var err error
		booking, err = h.bookingRepo.SaveRating(c.Request.Context(), booking.ID, req.UserType, req.Rating, req.Review)
		if err != nil {
			serverError(c, h.dev, err, "failed to save rating")
			return
		}
	}

	if !booking.BothRated() && !req.ForceComplete {
		c.JSON(http.StatusOK, gin.H{
			"booking": booking,
			"status":  booking.Status,
			"message": "waiting for other participant",
		})
		return
	}

	if booking.Status != models.BookingCompleted {
		var err error
		booking, err = h.bookingRepo.UpdateStatus(c.Request.Context(), booking.ID, models.BookingCompleted)
		if err != nil {
			serverError(c, h.dev, err, "failed to complete booking")
			return
		}
		observability.IncBookingTransition(models.BookingCompleted)
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking, "status": booking.Status})
}

// CompleteSession advances the session counter and, once the final session
// is reached, applies the same dual-rating completion as Complete.
func (h *BookingsHandler) CompleteSession(c *gin.Context) {
	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, ok := h.loadBooking(c)
	if !ok {
		return
	}
	if booking.IsTerminal() {
		c.JSON(http.StatusConflict, gin.H{"error": "booking already " + booking.Status})
		return
	}
	if booking.Status == models.BookingPending {
		c.JSON(http.StatusConflict, gin.H{"error": "booking is not confirmed"})
		return
	}

	booking, err := h.bookingRepo.AdvanceSession(c.Request.Context(), booking.ID)
	if err != nil {
		serverError(c, h.dev, err, "failed to advance session")
		return
	}

	if req.Rating >= 1 && req.Rating <= 5 && (req.UserType == models.RaterInstructor || req.UserType == models.RaterStudent) {
		booking, err = h.bookingRepo.SaveRating(c.Request.Context(), booking.ID, req.UserType, req.Rating, req.Review)
		if err != nil {
			serverError(c, h.dev, err, "failed to save rating")
			return
		}
	}

	if booking.SessionCurrent < booking.SessionTotal && !req.ForceComplete {
		c.JSON(http.StatusOK, gin.H{
			"booking": booking,
			"status":  booking.Status,
			"message": "sessions remaining",
		})
		return
	}

	if !booking.BothRated() && !req.ForceComplete {
		c.JSON(http.StatusOK, gin.H{
			"booking": booking,
			"status":  booking.Status,
			"message": "waiting for other participant",
		})
		return
	}

	booking, err = h.bookingRepo.UpdateStatus(c.Request.Context(), booking.ID, models.BookingCompleted)
	if err != nil {
		serverError(c, h.dev, err, "failed to complete booking")
		return
	}
	observability.IncBookingTransition(models.BookingCompleted)
	c.JSON(http.StatusOK, gin.H{"booking": booking, "status": booking.Status})
}

// CompleteCourse bulk-completes every booking matching the skill and user
// pair and stamps the shared course rating. Saves are independent; rows
// completed before a failure stay completed.
func (h *BookingsHandler) CompleteCourse(c *gin.Context) {
	var req struct {
		SkillID int    `json:"skill_id" binding:"required"`
		UserID  int    `json:"user_id" binding:"required"`
		Rating  int    `json:"rating" binding:"required"`
		Review  string `json:"review"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bookings, err := h.bookingRepo.ListBookingsForSkillAndUser(c.Request.Context(), req.SkillID, req.UserID)
	if err != nil {
		serverError(c, h.dev, err, "failed to load bookings")
		return
	}
	if len(bookings) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no bookings for skill and user"})
		return
	}

	completed, failed := 0, 0
	for _, booking := range bookings {
		if err := h.bookingRepo.CompleteCourse(c.Request.Context(), booking.ID, req.Rating); err != nil {
			failed++
			continue
		}
		completed++
		observability.IncBookingTransition(models.BookingCompleted)
	}

	h.audit.Emit(c.Request.Context(), "INFO", "course completed", requestIDFromContext(c), auditUserID(c))
	c.JSON(http.StatusOK, gin.H{"completed": completed, "failed": failed})
}

func (h *BookingsHandler) loadBooking(c *gin.Context) (models.Booking, bool) {
	bookingID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return models.Booking{}, false
	}

	booking, err := h.bookingRepo.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		if errors.Is(err, repositories.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return models.Booking{}, false
		}
		serverError(c, h.dev, err, "failed to load booking")
		return models.Booking{}, false
	}
	return booking, true
}

func validStatus(status string) bool {
	switch status {
	case models.BookingPending, models.BookingConfirmed, models.BookingCancelled, models.BookingCompleted:
		return true
	}
	return false
}
