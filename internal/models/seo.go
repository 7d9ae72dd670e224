// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// SEO is the bundle of search-metadata fields owned by a content or
// draft row. The json tags match the persisted column names and the
// wire contract of the original API.
type SEO struct {
	Title       string `json:"seo_title"`
	Description string `json:"seo_description"`
	Keywords    string `json:"seo_keywords"`
	Label       string `json:"seo_label"`
}

// SEOPreset is a named bundle of default SEO values. Presets are
// attached to categories (posts) or referenced directly (pages); the
// content core reads them but never writes them.
type SEOPreset struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	SEO
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
