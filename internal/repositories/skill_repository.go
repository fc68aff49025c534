package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"collablearn/internal/models"
)

var ErrSkillNotFound = errors.New("skill not found")

// SkillRepository abstracts skill persistence.
type SkillRepository interface {
	CreateSkill(ctx context.Context, ownerID int, title, description, category string) (models.Skill, error)
	GetSkill(ctx context.Context, skillID int) (models.Skill, error)
	ListSkills(ctx context.Context, category string) ([]models.Skill, error)
	DeleteSkill(ctx context.Context, skillID int) error
	CountSkills(ctx context.Context) (int, error)
}

// SkillRepo is a sqlx implementation of SkillRepository.
type SkillRepo struct {
	db *sqlx.DB
}

// NewSkillRepo constructs a SkillRepo.
func NewSkillRepo(db *sqlx.DB) *SkillRepo {
	return &SkillRepo{db: db}
}

// CreateSkill publishes a new skill.
func (r *SkillRepo) CreateSkill(ctx context.Context, ownerID int, title, description, category string) (models.Skill, error) {
	var skill models.Skill
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO skills (owner_id, title, description, category) VALUES ($1, $2, $3, $4)
         RETURNING id, owner_id, title, description, category, created_at`,
		ownerID, title, description, category).
		StructScan(&skill)
	return skill, err
}

// GetSkill fetches a skill by id.
func (r *SkillRepo) GetSkill(ctx context.Context, skillID int) (models.Skill, error) {
	var skill models.Skill
	err := r.db.GetContext(ctx, &skill,
		`SELECT id, owner_id, title, description, category, created_at FROM skills WHERE id=$1`, skillID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Skill{}, ErrSkillNotFound
	}
	return skill, err
}

// ListSkills returns skills, optionally filtered by category.
func (r *SkillRepo) ListSkills(ctx context.Context, category string) ([]models.Skill, error) {
	var skills []models.Skill
	if category != "" {
		err := r.db.SelectContext(ctx, &skills,
			`SELECT id, owner_id, title, description, category, created_at FROM skills
             WHERE category=$1 ORDER BY created_at DESC`, category)
		return skills, err
	}
	err := r.db.SelectContext(ctx, &skills,
		`SELECT id, owner_id, title, description, category, created_at FROM skills ORDER BY created_at DESC`)
	return skills, err
}

// DeleteSkill removes a skill.
func (r *SkillRepo) DeleteSkill(ctx context.Context, skillID int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM skills WHERE id=$1`, skillID)
	if err != nil {
		return err
	}
	count, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrSkillNotFound
	}
	return nil
}

// CountSkills returns the total number of published skills.
func (r *SkillRepo) CountSkills(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM skills`)
	return count, err
}
