// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Kind distinguishes between posts and pages in the unified content table.
type Kind string

const (
	KindPage Kind = "page"
	KindPost Kind = "post"
)

// ParseKind converts a URL segment into a Kind. The second return value
// is false for anything other than "page(s)" or "post(s)".
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "page", "pages":
		return KindPage, true
	case "post", "posts":
		return KindPost, true
	}
	return "", false
}

// Status represents the publishing state of a content item. The literal
// values are persisted and exposed over the API; they must not change.
type Status string

const (
	StatusDraft          Status = "DRAFT"
	StatusWaitForPublish Status = "WAIT_FOR_PUBLISH"
	StatusPublished      Status = "PUBLISHED"
)

// Content is the live, public-facing record of a page or post. Every
// content row owns exactly one draft row holding its pending edits;
// the live row is only touched when a publish materializes the draft.
type Content struct {
	ID           uuid.UUID  `json:"id"`
	Kind         Kind       `json:"kind"`
	Title        string     `json:"title"`
	Text         string     `json:"text"`
	Announcement string     `json:"announcement,omitempty"` // posts only
	Visibility   bool       `json:"visibility"`             // posts only
	Status       Status     `json:"status"`
	ManualSEO    bool       `json:"manual_seo"`
	SEO          SEO        `json:"seo"`
	TemplateID   *uuid.UUID `json:"template_id,omitempty"`   // pages
	CategoryID   *uuid.UUID `json:"category_id,omitempty"`   // posts
	SEOPresetID  *uuid.UUID `json:"seo_preset_id,omitempty"` // pages; posts inherit via category
	FileID       *uuid.UUID `json:"file_id,omitempty"`
	UserID       uuid.UUID  `json:"user_id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// IsPublished returns true if the content item is in published status.
func (c *Content) IsPublished() bool {
	return c.Status == StatusPublished
}

// Draft is the editable staging row paired 1:1 with a Content row.
// Incoming edits always land here; DateToPublish carries the instant a
// deferred publish should fire.
type Draft struct {
	ID            uuid.UUID  `json:"id"`
	ContentID     uuid.UUID  `json:"content_id"`
	Title         string     `json:"title"`
	Text          string     `json:"text"`
	Announcement  string     `json:"announcement,omitempty"`
	Visibility    bool       `json:"visibility"`
	Status        Status     `json:"status"`
	ManualSEO     bool       `json:"manual_seo"`
	SEO           SEO        `json:"seo"`
	DateToPublish *time.Time `json:"date_to_publish,omitempty"`
	TemplateID    *uuid.UUID `json:"template_id,omitempty"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	SEOPresetID   *uuid.UUID `json:"seo_preset_id,omitempty"`
	FileID        *uuid.UUID `json:"file_id,omitempty"`
	UserID        uuid.UUID  `json:"user_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Kind mirrors the parent content row's kind. Populated by store
	// reads that join the content table; not a draft column itself.
	Kind Kind `json:"-"`
}
