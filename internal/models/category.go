// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category represents a post category. Each category may carry an SEO
// preset whose values act as the inherited defaults for its posts.
type Category struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	SEOPresetID *uuid.UUID `json:"seo_preset_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Preset is populated by store reads when a preset is attached.
	Preset *SEOPreset `json:"seo_preset,omitempty"`
}
