package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"collablearn/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// UserRepository abstracts account persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, email, passwordHash, name string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUser(ctx context.Context, userID int) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateProfile(ctx context.Context, userID int, name, bio, avatarURL string) (models.User, error)
	DeleteUser(ctx context.Context, userID int) error
	CountUsers(ctx context.Context) (int, error)
}

// UserRepo is a sqlx implementation of UserRepository.
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo constructs a UserRepo.
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `id, email, password_hash, name, bio, avatar_url, role, created_at`

// CreateUser inserts a new account.
func (r *UserRepo) CreateUser(ctx context.Context, email, passwordHash, name string) (models.User, error) {
	var user models.User
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO users (email, password_hash, name) VALUES ($1, $2, $3)
         RETURNING `+userColumns, email, passwordHash, name).
		StructScan(&user)
	if err != nil && isUniqueViolation(err) {
		return models.User{}, ErrEmailTaken
	}
	return user, err
}

// GetUserByEmail fetches an account by email.
func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// GetUser fetches an account by id.
func (r *UserRepo) GetUser(ctx context.Context, userID int) (models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id=$1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// ListUsers returns all accounts, newest first.
func (r *UserRepo) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.SelectContext(ctx, &users, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	return users, err
}

// UpdateProfile updates the mutable profile fields.
func (r *UserRepo) UpdateProfile(ctx context.Context, userID int, name, bio, avatarURL string) (models.User, error) {
	var user models.User
	err := r.db.QueryRowxContext(ctx,
		`UPDATE users SET name=$2, bio=$3, avatar_url=$4 WHERE id=$1
         RETURNING `+userColumns, userID, name, bio, avatarURL).
		StructScan(&user)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return user, err
}

// DeleteUser removes an account.
func (r *UserRepo) DeleteUser(ctx context.Context, userID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id=$1`, userID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrUserNotFound
	}
	return nil
}

// CountUsers returns the total number of accounts.
func (r *UserRepo) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM users`)
	return count, err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
