package models

import "time"

// Booking statuses. Cancelled and completed are terminal.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// Rating roles accepted by the completion endpoints.
const (
	RaterInstructor = "instructor"
	RaterStudent    = "student"
)

// Booking represents one scheduled session between an instructor and a
// student around one skill.
type Booking struct {
	ID               int       `db:"id" json:"id"`
	InstructorID     int       `db:"instructor_id" json:"instructor_id"`
	StudentID        int       `db:"student_id" json:"student_id"`
	SkillID          int       `db:"skill_id" json:"skill_id"`
	SessionDate      time.Time `db:"session_date" json:"session_date"`
	DurationMinutes  int       `db:"duration_minutes" json:"duration_minutes"`
	Notes            string    `db:"notes" json:"notes"`
	Status           string    `db:"status" json:"status"`
	InstructorRating *int      `db:"instructor_rating" json:"instructor_rating,omitempty"`
	InstructorReview *string   `db:"instructor_review" json:"instructor_review,omitempty"`
	StudentRating    *int      `db:"student_rating" json:"student_rating,omitempty"`
	StudentReview    *string   `db:"student_review" json:"student_review,omitempty"`
	CourseCompleted  bool      `db:"course_completed" json:"course_completed"`
	CourseRating     *int      `db:"course_rating" json:"course_rating,omitempty"`
	SessionCurrent   int       `db:"session_current" json:"session_current"`
	SessionTotal     int       `db:"session_total" json:"session_total"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// BothRated reports whether each side has submitted its rating.
func (b Booking) BothRated() bool {
	return b.InstructorRating != nil && b.StudentRating != nil
}

// IsTerminal reports whether no further status transition is allowed.
func (b Booking) IsTerminal() bool {
	return b.Status == BookingCancelled || b.Status == BookingCompleted
}

// CanTransitionTo implements the booking state machine:
// pending -> confirmed | cancelled, confirmed -> completed | cancelled.
func (b Booking) CanTransitionTo(status string) bool {
	switch b.Status {
	case BookingPending:
		return status == BookingConfirmed || status == BookingCancelled
	case BookingConfirmed:
		return status == BookingCompleted || status == BookingCancelled
	default:
		return false
	}
}

// BookingDocument is a file attached to a booking for its lifetime.
type BookingDocument struct {
	ID         string    `db:"id" json:"id"`
	BookingID  int       `db:"booking_id" json:"booking_id"`
	FileName   string    `db:"file_name" json:"file_name"`
	URL        string    `db:"url" json:"url"`
	SizeBytes  int64     `db:"size_bytes" json:"size_bytes"`
	UploadedBy int       `db:"uploaded_by" json:"uploaded_by"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
