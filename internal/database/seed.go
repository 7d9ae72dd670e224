package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin user, a page template, an SEO preset, and a default category
// carrying that preset. No-op if users already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	if _, err := db.Exec(`
		INSERT INTO users (email, password_hash, name, role)
		VALUES ($1, $2, $3, $4)
	`, "admin@focusword.local", string(hash), "Admin", "admin"); err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	if _, err := db.Exec(`INSERT INTO templates (name) VALUES ('Default')`); err != nil {
		return fmt.Errorf("seed insert template: %w", err)
	}

	if _, err := db.Exec(`
		INSERT INTO seo_presets (name, seo_title, seo_description, seo_keywords)
		VALUES ('Site default', 'FocusWord', 'A FocusWord site', 'focusword,cms')
	`); err != nil {
		return fmt.Errorf("seed insert seo preset: %w", err)
	}

	if _, err := db.Exec(`
		INSERT INTO categories (name, seo_preset_id)
		VALUES ('General', (SELECT id FROM seo_presets LIMIT 1))
	`); err != nil {
		return fmt.Errorf("seed insert category: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@focusword.local",
		"password", "admin",
	)

	return nil
}
