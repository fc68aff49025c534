package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"collablearn/internal/models"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrDocumentNotFound = errors.New("document not found")
)

// BookingRepository abstracts booking persistence.
type BookingRepository interface {
	CreateBooking(ctx context.Context, instructorID, studentID, skillID int, date time.Time, duration int, notes string, sessions int) (models.Booking, error)
	GetBooking(ctx context.Context, bookingID int) (models.Booking, error)
	ListBookingsForUser(ctx context.Context, userID int) ([]models.Booking, error)
	ListBookingsForSkillAndUser(ctx context.Context, skillID, userID int) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID int, status string) (models.Booking, error)
	AdvanceSession(ctx context.Context, bookingID int) (models.Booking, error)
	SaveRating(ctx context.Context, bookingID int, role string, rating int, review string) (models.Booking, error)
	CompleteCourse(ctx context.Context, bookingID int, rating int) error
	CountBookings(ctx context.Context) (int, error)

	AddDocument(ctx context.Context, doc models.BookingDocument) error
	GetDocument(ctx context.Context, docID string) (models.BookingDocument, error)
	ListDocuments(ctx context.Context, bookingID int) ([]models.BookingDocument, error)
	DeleteDocument(ctx context.Context, bookingID int, docID string) error
}

// BookingRepo is a sqlx implementation of BookingRepository.
type BookingRepo struct {
	db *sqlx.DB
}

// NewBookingRepo constructs a BookingRepo.
func NewBookingRepo(db *sqlx.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

const bookingColumns = `id, instructor_id, student_id, skill_id, session_date, duration_minutes,
    notes, status, instructor_rating, instructor_review, student_rating, student_review,
    course_completed, course_rating, session_current, session_total, created_at, updated_at`

// CreateBooking stores a new booking request with status pending. The
// session total is clamped to at least one.
func (r *BookingRepo) CreateBooking(ctx context.Context, instructorID, studentID, skillID int, date time.Time, duration int, notes string, sessions int) (models.Booking, error) {
	var booking models.Booking
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO bookings (instructor_id, student_id, skill_id, session_date, duration_minutes, notes, session_current, session_total)
         VALUES ($1, $2, $3, $4, $5, $6, 0, GREATEST(1, $7))
         RETURNING `+bookingColumns,
		instructorID, studentID, skillID, date, duration, notes, sessions).
		StructScan(&booking)
	return booking, err
}

// GetBooking fetches a booking by id.
func (r *BookingRepo) GetBooking(ctx context.Context, bookingID int) (models.Booking, error) {
	var booking models.Booking
	err := r.db.GetContext(ctx, &booking,
		`SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, ErrBookingNotFound
	}
	return booking, err
}

// ListBookingsForUser returns bookings where the user is instructor or student.
func (r *BookingRepo) ListBookingsForUser(ctx context.Context, userID int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.SelectContext(ctx, &bookings,
		`SELECT `+bookingColumns+` FROM bookings
         WHERE instructor_id=$1 OR student_id=$1 ORDER BY session_date DESC`, userID)
	return bookings, err
}

// ListBookingsForSkillAndUser returns every booking for a skill in which the
// user appears on either side of the relationship.
func (r *BookingRepo) ListBookingsForSkillAndUser(ctx context.Context, skillID, userID int) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.SelectContext(ctx, &bookings,
		`SELECT `+bookingColumns+` FROM bookings
         WHERE skill_id=$1 AND (instructor_id=$2 OR student_id=$2)`, skillID, userID)
	return bookings, err
}

// UpdateStatus overwrites the booking status.
func (r *BookingRepo) UpdateStatus(ctx context.Context, bookingID int, status string) (models.Booking, error) {
	var booking models.Booking
	err := r.db.QueryRowxContext(ctx,
		`UPDATE bookings SET status=$2, updated_at=NOW() WHERE id=$1
         RETURNING `+bookingColumns, bookingID, status).
		StructScan(&booking)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, ErrBookingNotFound
	}
	return booking, err
}

// AdvanceSession bumps the current session counter, capped at the total.
func (r *BookingRepo) AdvanceSession(ctx context.Context, bookingID int) (models.Booking, error) {
	var booking models.Booking
	err := r.db.QueryRowxContext(ctx,
		`UPDATE bookings SET session_current=LEAST(session_current+1, session_total), updated_at=NOW()
         WHERE id=$1 RETURNING `+bookingColumns, bookingID).
		StructScan(&booking)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, ErrBookingNotFound
	}
	return booking, err
}

// SaveRating records a rating under the instructor or student slot. A repeat
// submission by the same role overwrites the previous value.
func (r *BookingRepo) SaveRating(ctx context.Context, bookingID int, role string, rating int, review string) (models.Booking, error) {
	column := "student_rating"
	reviewColumn := "student_review"
	if role == models.RaterInstructor {
		column = "instructor_rating"
		reviewColumn = "instructor_review"
	}

	var booking models.Booking
	err := r.db.QueryRowxContext(ctx,
		`UPDATE bookings SET `+column+`=$2, `+reviewColumn+`=$3, updated_at=NOW() WHERE id=$1
         RETURNING `+bookingColumns, bookingID, rating, review).
		StructScan(&booking)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Booking{}, ErrBookingNotFound
	}
	return booking, err
}

// CompleteCourse marks one booking completed with a shared course rating.
// Course completion iterates bookings and saves them independently; a
// failure mid-batch leaves earlier rows completed (no transaction, matching
// the last-write-wins policy used everywhere else).
func (r *BookingRepo) CompleteCourse(ctx context.Context, bookingID int, rating int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status=$2, course_completed=TRUE, course_rating=$3, updated_at=NOW()
         WHERE id=$1`, bookingID, models.BookingCompleted, rating)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// CountBookings returns the total number of bookings.
func (r *BookingRepo) CountBookings(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM bookings`)
	return count, err
}

// AddDocument appends a document record to a booking.
func (r *BookingRepo) AddDocument(ctx context.Context, doc models.BookingDocument) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO booking_documents (id, booking_id, file_name, url, size_bytes, uploaded_by)
         VALUES ($1, $2, $3, $4, $5, $6)`,
		doc.ID, doc.BookingID, doc.FileName, doc.URL, doc.SizeBytes, doc.UploadedBy)
	return err
}

// GetDocument fetches a document record by id.
func (r *BookingRepo) GetDocument(ctx context.Context, docID string) (models.BookingDocument, error) {
	var doc models.BookingDocument
	err := r.db.GetContext(ctx, &doc,
		`SELECT id, booking_id, file_name, url, size_bytes, uploaded_by, created_at
         FROM booking_documents WHERE id=$1`, docID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.BookingDocument{}, ErrDocumentNotFound
	}
	return doc, err
}

// ListDocuments returns the documents attached to a booking.
func (r *BookingRepo) ListDocuments(ctx context.Context, bookingID int) ([]models.BookingDocument, error) {
	var docs []models.BookingDocument
	err := r.db.SelectContext(ctx, &docs,
		`SELECT id, booking_id, file_name, url, size_bytes, uploaded_by, created_at
         FROM booking_documents WHERE booking_id=$1 ORDER BY created_at ASC`, bookingID)
	return docs, err
}

// DeleteDocument removes a document record from a booking.
func (r *BookingRepo) DeleteDocument(ctx context.Context, bookingID int, docID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM booking_documents WHERE id=$1 AND booking_id=$2`, docID, bookingID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrDocumentNotFound
	}
	return nil
}
