package models

// Settings is the single-row platform configuration. It is loaded through
// the settings repository and passed explicitly where needed; there is no
// module-level singleton.
type Settings struct {
	ID                 int  `db:"id" json:"-"`
	MaintenanceMode    bool `db:"maintenance_mode" json:"maintenance_mode"`
	RegistrationClosed bool `db:"registration_closed" json:"registration_closed"`
	MaxUploadSizeMB    int  `db:"max_upload_size_mb" json:"max_upload_size_mb"`
}
