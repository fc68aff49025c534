package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"collablearn/internal/models"
)

// SettingsRepository abstracts the single-row platform settings.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (models.Settings, error)
	UpdateSettings(ctx context.Context, settings models.Settings) (models.Settings, error)
}

// SettingsRepo is a sqlx implementation of SettingsRepository.
type SettingsRepo struct {
	db *sqlx.DB
}

// NewSettingsRepo constructs a SettingsRepo.
func NewSettingsRepo(db *sqlx.DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

// GetSettings loads the settings row.
func (r *SettingsRepo) GetSettings(ctx context.Context) (models.Settings, error) {
	var settings models.Settings
	err := r.db.GetContext(ctx, &settings,
		`SELECT id, maintenance_mode, registration_closed, max_upload_size_mb FROM settings WHERE id=1`)
	return settings, err
}

// UpdateSettings overwrites the settings row.
func (r *SettingsRepo) UpdateSettings(ctx context.Context, settings models.Settings) (models.Settings, error) {
	var updated models.Settings
	err := r.db.QueryRowxContext(ctx,
		`UPDATE settings SET maintenance_mode=$1, registration_closed=$2, max_upload_size_mb=$3 WHERE id=1
         RETURNING id, maintenance_mode, registration_closed, max_upload_size_mb`,
		settings.MaintenanceMode, settings.RegistrationClosed, settings.MaxUploadSizeMB).
		StructScan(&updated)
	return updated, err
}
