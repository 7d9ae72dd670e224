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

// CategoryStore handles post-category database operations.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore creates a new CategoryStore with the given database connection.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// FindByID retrieves a category with its attached SEO preset, if any.
// Returns nil if not found.
func (s *CategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	c := &models.Category{}
	var (
		presetID   *uuid.UUID
		presetName sql.NullString
		title      sql.NullString
		desc       sql.NullString
		keywords   sql.NullString
		label      sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT c.id, c.name, c.seo_preset_id, c.created_at, c.updated_at,
		       p.name, p.seo_title, p.seo_description, p.seo_keywords, p.seo_label
		FROM categories c
		LEFT JOIN seo_presets p ON p.id = c.seo_preset_id
		WHERE c.id = $1
	`, id).Scan(
		&c.ID, &c.Name, &presetID, &c.CreatedAt, &c.UpdatedAt,
		&presetName, &title, &desc, &keywords, &label,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}

	c.SEOPresetID = presetID
	if presetID != nil {
		c.Preset = &models.SEOPreset{
			ID:   *presetID,
			Name: presetName.String,
			SEO: models.SEO{
				Title:       title.String,
				Description: desc.String,
				Keywords:    keywords.String,
				Label:       label.String,
			},
		}
	}
	return c, nil
}

// Create inserts a new category, optionally linked to an SEO preset.
func (s *CategoryStore) Create(ctx context.Context, name string, presetID *uuid.UUID) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, seo_preset_id) VALUES ($1, $2)
		RETURNING id, name, seo_preset_id, created_at, updated_at
	`, name, presetID).Scan(&c.ID, &c.Name, &c.SEOPresetID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}
