// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// views.go assembles the read-side responses: the hydrated single-entity
// view with effective SEO applied, and the paginated admin listing.
package content

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"focusword/internal/apperr"
	"focusword/internal/models"
	"focusword/internal/seo"
)

// UserRef is the slim user reference embedded in views.
type UserRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// DraftView is the draft half of an entity view. SEO here is the stored
// draft values, not the resolved ones; the editor needs the raw fields.
type DraftView struct {
	ID            uuid.UUID         `json:"id"`
	Title         string            `json:"title"`
	Text          string            `json:"text"`
	Announcement  string            `json:"announcement,omitempty"`
	Visibility    bool              `json:"visibility"`
	Status        models.Status     `json:"status"`
	ManualSEO     bool              `json:"manual_seo"`
	SEO           models.SEO        `json:"seo"`
	DateToPublish *time.Time        `json:"date_to_publish,omitempty"`
	Template      *models.Template  `json:"template,omitempty"`
	Category      *models.Category  `json:"category,omitempty"`
	Preset        *models.SEOPreset `json:"seo_preset,omitempty"`
	Image         *models.File      `json:"image,omitempty"`
	User          *UserRef          `json:"user,omitempty"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// EntityView is the full get-by-id response for a page or post. SEO on
// the live half is the effective bundle: preset values overlaid unless
// the entity carries manual SEO.
type EntityView struct {
	ID           uuid.UUID         `json:"id"`
	Kind         models.Kind       `json:"kind"`
	Title        string            `json:"title"`
	Text         string            `json:"text"`
	Announcement string            `json:"announcement,omitempty"`
	Visibility   bool              `json:"visibility"`
	Status       models.Status     `json:"status"`
	ManualSEO    bool              `json:"manual_seo"`
	SEO          models.SEO        `json:"seo"`
	Template     *models.Template  `json:"template,omitempty"`
	Category     *models.Category  `json:"category,omitempty"`
	Preset       *models.SEOPreset `json:"seo_preset,omitempty"`
	Image        *models.File      `json:"image,omitempty"`
	User         *UserRef          `json:"user,omitempty"`
	Draft        *DraftView        `json:"draft"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// ListRow is one entry of the paginated admin listing.
type ListRow struct {
	ID        uuid.UUID     `json:"id"`
	DraftID   uuid.UUID     `json:"draft_id"`
	Title     string        `json:"title"`
	Status    models.Status `json:"status"`
	ManualSEO bool          `json:"manual_seo"`
	User      *UserRef      `json:"user,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// PageResult is the paginated listing envelope.
type PageResult struct {
	CurrentPage int       `json:"current_page"`
	TotalPages  int       `json:"total_pages"`
	Count       int       `json:"count"`
	Rows        []ListRow `json:"rows"`
}

// GetByID returns the hydrated view of an entity, serving from the view
// cache when possible.
func (s *Service) GetByID(ctx context.Context, kind models.Kind, id uuid.UUID) (*EntityView, error) {
	if raw, ok := s.views.Get(ctx, kind, id); ok {
		view := &EntityView{}
		if err := json.Unmarshal(raw, view); err == nil {
			return view, nil
		}
		// Unreadable cache entry; drop it and rebuild.
		s.views.Invalidate(ctx, kind, id)
	}

	entity, err := s.repo.FindEntity(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, apperr.NotFound("%s with id %s not found", kind, id)
	}

	view, err := s.buildView(ctx, entity)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(view); err == nil {
		s.views.Set(ctx, kind, id, raw)
	}
	return view, nil
}

// buildView hydrates the collaborators of an entity and its draft and
// resolves the effective SEO of the live half.
func (s *Service) buildView(ctx context.Context, entity *models.Content) (*EntityView, error) {
	view := &EntityView{
		ID:           entity.ID,
		Kind:         entity.Kind,
		Title:        entity.Title,
		Text:         entity.Text,
		Announcement: entity.Announcement,
		Visibility:   entity.Visibility,
		Status:       entity.Status,
		ManualSEO:    entity.ManualSEO,
		CreatedAt:    entity.CreatedAt,
		UpdatedAt:    entity.UpdatedAt,
	}

	view.User = s.userRef(ctx, entity.UserID)
	view.Image = s.fileRef(ctx, entity.FileID)

	if entity.TemplateID != nil {
		tpl, err := s.templates.FindByID(ctx, *entity.TemplateID)
		if err != nil {
			return nil, err
		}
		view.Template = tpl
	}

	var preset *models.SEOPreset
	switch entity.Kind {
	case models.KindPage:
		if entity.SEOPresetID != nil {
			p, err := s.presets.FindByID(ctx, *entity.SEOPresetID)
			if err != nil {
				return nil, err
			}
			preset = p
		}
	case models.KindPost:
		if entity.CategoryID != nil {
			cat, err := s.categories.FindByID(ctx, *entity.CategoryID)
			if err != nil {
				return nil, err
			}
			view.Category = cat
			if cat != nil {
				preset = cat.Preset
			}
		}
	}
	view.Preset = preset
	view.SEO = seo.Effective(entity.ManualSEO, entity.SEO, preset)

	draft, err := s.repo.FindDraftByContent(ctx, entity.ID)
	if err != nil {
		return nil, err
	}
	if draft != nil {
		view.Draft = s.buildDraftView(ctx, draft)
	}
	return view, nil
}

func (s *Service) buildDraftView(ctx context.Context, d *models.Draft) *DraftView {
	dv := &DraftView{
		ID:            d.ID,
		Title:         d.Title,
		Text:          d.Text,
		Announcement:  d.Announcement,
		Visibility:    d.Visibility,
		Status:        d.Status,
		ManualSEO:     d.ManualSEO,
		SEO:           d.SEO,
		DateToPublish: d.DateToPublish,
		UpdatedAt:     d.UpdatedAt,
	}
	dv.User = s.userRef(ctx, d.UserID)
	dv.Image = s.fileRef(ctx, d.FileID)
	if d.TemplateID != nil {
		if tpl, err := s.templates.FindByID(ctx, *d.TemplateID); err == nil {
			dv.Template = tpl
		}
	}
	if d.CategoryID != nil {
		if cat, err := s.categories.FindByID(ctx, *d.CategoryID); err == nil {
			dv.Category = cat
		}
	}
	if d.SEOPresetID != nil {
		if p, err := s.presets.FindByID(ctx, *d.SEOPresetID); err == nil {
			dv.Preset = p
		}
	}
	return dv
}

// userRef resolves a slim user reference, tolerating missing users.
func (s *Service) userRef(ctx context.Context, id uuid.UUID) *UserRef {
	user, err := s.users.FindByID(ctx, id)
	if err != nil || user == nil {
		return nil
	}
	return &UserRef{ID: user.ID, Name: user.Name}
}

// fileRef resolves attached file metadata, tolerating missing files.
func (s *Service) fileRef(ctx context.Context, id *uuid.UUID) *models.File {
	if id == nil {
		return nil
	}
	f, err := s.files.FindByID(ctx, *id)
	if err != nil {
		return nil
	}
	return f
}

// Paginate lists entities of a kind, newest first. Requesting a page
// beyond the available rows fails with NotFound.
func (s *Service) Paginate(ctx context.Context, kind models.Kind, page, perPage int) (*PageResult, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	items, total, err := s.repo.List(ctx, kind, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 && page > 1 {
		return nil, apperr.NotFound("%ss on page %d not found", kind, page)
	}

	rows := make([]ListRow, 0, len(items))
	for i := range items {
		item := &items[i]
		row := ListRow{
			ID:        item.ID,
			Title:     item.Title,
			Status:    item.Status,
			ManualSEO: item.ManualSEO,
			User:      s.userRef(ctx, item.UserID),
			CreatedAt: item.CreatedAt,
			UpdatedAt: item.UpdatedAt,
		}
		if d, err := s.repo.FindDraftByContent(ctx, item.ID); err == nil && d != nil {
			row.DraftID = d.ID
		}
		rows = append(rows, row)
	}

	totalPages := (total + perPage - 1) / perPage
	return &PageResult{
		CurrentPage: page,
		TotalPages:  totalPages,
		Count:       total,
		Rows:        rows,
	}, nil
}
