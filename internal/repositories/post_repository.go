package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"collablearn/internal/models"
)

var ErrPostNotFound = errors.New("post not found")

// PostRepository abstracts forum post persistence.
type PostRepository interface {
	CreatePost(ctx context.Context, authorID int, title, body string) (models.Post, error)
	GetPost(ctx context.Context, postID int) (models.Post, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	DeletePost(ctx context.Context, postID int) error
	CountPosts(ctx context.Context) (int, error)
}

// PostRepo is a sqlx implementation of PostRepository.
type PostRepo struct {
	db *sqlx.DB
}

// NewPostRepo constructs a PostRepo.
func NewPostRepo(db *sqlx.DB) *PostRepo {
	return &PostRepo{db: db}
}

// CreatePost stores a forum post.
func (r *PostRepo) CreatePost(ctx context.Context, authorID int, title, body string) (models.Post, error) {
	var post models.Post
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO posts (author_id, title, body) VALUES ($1, $2, $3)
         RETURNING id, author_id, title, body, created_at`, authorID, title, body).
		StructScan(&post)
	return post, err
}

// GetPost fetches a post by id.
func (r *PostRepo) GetPost(ctx context.Context, postID int) (models.Post, error) {
	var post models.Post
	err := r.db.GetContext(ctx, &post,
		`SELECT id, author_id, title, body, created_at FROM posts WHERE id=$1`, postID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Post{}, ErrPostNotFound
	}
	return post, err
}

// ListPosts returns posts, newest first.
func (r *PostRepo) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.SelectContext(ctx, &posts,
		`SELECT id, author_id, title, body, created_at FROM posts ORDER BY created_at DESC`)
	return posts, err
}

// DeletePost removes a post.
func (r *PostRepo) DeletePost(ctx context.Context, postID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id=$1`, postID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrPostNotFound
	}
	return nil
}

// CountPosts returns the total number of posts.
func (r *PostRepo) CountPosts(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts`)
	return count, err
}
