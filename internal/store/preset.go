// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"focusword/internal/models"
)

// SEOPresetStore handles SEO preset database operations. Presets are
// read-only from the content core's perspective; Create exists for
// administration and tests.
type SEOPresetStore struct {
	db *sql.DB
}

// NewSEOPresetStore creates a new SEOPresetStore with the given database connection.
func NewSEOPresetStore(db *sql.DB) *SEOPresetStore {
	return &SEOPresetStore{db: db}
}

// FindByID retrieves a preset by its UUID. Returns nil if not found.
func (s *SEOPresetStore) FindByID(ctx context.Context, id uuid.UUID) (*models.SEOPreset, error) {
	p := &models.SEOPreset{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, seo_title, seo_description, seo_keywords, seo_label, created_at, updated_at
		FROM seo_presets WHERE id = $1
	`, id).Scan(
		&p.ID, &p.Name, &p.Title, &p.Description, &p.Keywords, &p.Label,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find seo preset by id: %w", err)
	}
	return p, nil
}

// Create inserts a new preset and returns it with the generated ID.
func (s *SEOPresetStore) Create(ctx context.Context, name string, defaults models.SEO) (*models.SEOPreset, error) {
	p := &models.SEOPreset{}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO seo_presets (name, seo_title, seo_description, seo_keywords, seo_label)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, seo_title, seo_description, seo_keywords, seo_label, created_at, updated_at
	`, name, defaults.Title, defaults.Description, defaults.Keywords, defaults.Label).Scan(
		&p.ID, &p.Name, &p.Title, &p.Description, &p.Keywords, &p.Label,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create seo preset: %w", err)
	}
	return p, nil
}
