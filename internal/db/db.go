package db

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            email TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            name TEXT NOT NULL,
            bio TEXT NOT NULL DEFAULT '',
            avatar_url TEXT NOT NULL DEFAULT '',
            role TEXT NOT NULL DEFAULT 'user',
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS skills (
            id SERIAL PRIMARY KEY,
            owner_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            title TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            category TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS posts (
            id SERIAL PRIMARY KEY,
            author_id INT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            title TEXT NOT NULL,
            body TEXT NOT NULL,
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS messages (
            id SERIAL PRIMARY KEY,
            chat_id TEXT NOT NULL,
            sender_id INT NOT NULL,
            content TEXT NOT NULL,
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE INDEX IF NOT EXISTS idx_messages_chat_id_created_at
            ON messages (chat_id, created_at);`,
		`CREATE TABLE IF NOT EXISTS bookings (
            id SERIAL PRIMARY KEY,
            instructor_id INT NOT NULL REFERENCES users(id),
            student_id INT NOT NULL REFERENCES users(id),
            skill_id INT NOT NULL REFERENCES skills(id),
            session_date TIMESTAMPTZ NOT NULL,
            duration_minutes INT NOT NULL,
            notes TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL DEFAULT 'pending',
            instructor_rating INT,
            instructor_review TEXT,
            student_rating INT,
            student_review TEXT,
            course_completed BOOLEAN NOT NULL DEFAULT FALSE,
            course_rating INT,
            session_current INT NOT NULL DEFAULT 0,
            session_total INT NOT NULL DEFAULT 1,
            created_at TIMESTAMPTZ DEFAULT NOW(),
            updated_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS booking_documents (
            id TEXT PRIMARY KEY,
            booking_id INT NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
            file_name TEXT NOT NULL,
            url TEXT NOT NULL,
            size_bytes BIGINT NOT NULL,
            uploaded_by INT NOT NULL,
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS settings (
            id INT PRIMARY KEY DEFAULT 1,
            maintenance_mode BOOLEAN NOT NULL DEFAULT FALSE,
            registration_closed BOOLEAN NOT NULL DEFAULT FALSE,
            max_upload_size_mb INT NOT NULL DEFAULT 10,
            CHECK (id = 1)
        );`,
		`INSERT INTO settings (id) VALUES (1) ON CONFLICT (id) DO NOTHING;`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}
	log.Println("database migrations applied")
	return nil
}
