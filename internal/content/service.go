// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content implements the draft/publish workflow shared by pages
// and posts. Every entity is a pair of rows: the live record served to
// the public and a draft holding pending edits. Edits always land on
// the draft; publishing either materializes the draft immediately or
// registers a deferred job that materializes it at the requested
// instant.
package content

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"focusword/internal/apperr"
	"focusword/internal/cache"
	"focusword/internal/metrics"
	"focusword/internal/models"
	"focusword/internal/sanitize"
	"focusword/internal/scheduler"
	"focusword/internal/seo"
)

// Repo is the persistence contract the engine needs from the content store.
type Repo interface {
	CreateWithDraft(ctx context.Context, c *models.Content, d *models.Draft) error
	FindEntity(ctx context.Context, kind models.Kind, id uuid.UUID) (*models.Content, error)
	FindDraft(ctx context.Context, kind models.Kind, id uuid.UUID) (*models.Draft, error)
	FindDraftByContent(ctx context.Context, contentID uuid.UUID) (*models.Draft, error)
	UpdateDraft(ctx context.Context, d *models.Draft) error
	UpdateEntityAndDraft(ctx context.Context, c *models.Content, d *models.Draft) error
	ExistingIDs(ctx context.Context, kind models.Kind, ids []uuid.UUID) ([]uuid.UUID, error)
	DeleteMany(ctx context.Context, kind models.Kind, ids []uuid.UUID) error
	List(ctx context.Context, kind models.Kind, limit, offset int) ([]models.Content, int, error)
	ListWaitingDrafts(ctx context.Context) ([]models.Draft, error)
}

// UserLookup resolves the editing user.
type UserLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// TemplateLookup resolves page templates.
type TemplateLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Template, error)
}

// CategoryLookup resolves post categories, preset included.
type CategoryLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

// PresetLookup resolves SEO presets. A missing preset is not an error —
// the entity simply has nothing to inherit from.
type PresetLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.SEOPreset, error)
}

// FileLookup resolves uploaded-file metadata for image attachments.
type FileLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.File, error)
}

// Input is the create/update payload for both kinds. On updates, nil
// pointers and an empty title mean "keep the current value", which is
// what lets a forward-publish run with an empty patch.
type Input struct {
	Title         string      `json:"title"`
	Text          *string     `json:"text"`
	Announcement  *string     `json:"announcement"` // posts only
	Visibility    *bool       `json:"visibility"`   // posts only
	TemplateID    *uuid.UUID  `json:"template_id"`  // pages
	CategoryID    *uuid.UUID  `json:"category_id"`  // posts
	SEOPresetID   *uuid.UUID  `json:"seo_preset_id"`
	FileID        *uuid.UUID  `json:"file_id"`
	SEO           *models.SEO `json:"seo"`
	DateToPublish *time.Time  `json:"date_to_publish"`
}

// Service is the content transition engine. It owns the status state
// machine and the publish-job lifecycle; persistence and collaborator
// resolution are behind the injected interfaces.
type Service struct {
	repo       Repo
	users      UserLookup
	templates  TemplateLookup
	categories CategoryLookup
	presets    PresetLookup
	files      FileLookup
	jobs       *scheduler.Registry
	views      *cache.ViewCache
	stats      *metrics.Collector

	now func() time.Time
}

// New creates the content service. views and stats may be nil.
func New(
	repo Repo,
	users UserLookup,
	templates TemplateLookup,
	categories CategoryLookup,
	presets PresetLookup,
	files FileLookup,
	jobs *scheduler.Registry,
	views *cache.ViewCache,
	stats *metrics.Collector,
) *Service {
	return &Service{
		repo:       repo,
		users:      users,
		templates:  templates,
		categories: categories,
		presets:    presets,
		files:      files,
		jobs:       jobs,
		views:      views,
		stats:      stats,
		now:        time.Now,
	}
}

// refs holds the resolved collaborator references for one operation.
type refs struct {
	user     *models.User
	template *models.Template
	category *models.Category
	preset   *models.SEOPreset
	file     *models.File
}

// resolveRefs loads and validates every reference the input names.
// Required references that cannot be found fail with NotFound; a file
// that is not an image fails with BadRequest. A missing SEO preset is
// treated as absent, not as an error.
func (s *Service) resolveRefs(ctx context.Context, kind models.Kind, in Input, userID uuid.UUID) (*refs, error) {
	r := &refs{}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user with id %s not found", userID)
	}
	r.user = user

	if in.FileID != nil {
		file, err := s.files.FindByID(ctx, *in.FileID)
		if err != nil {
			return nil, fmt.Errorf("resolve file: %w", err)
		}
		if file == nil {
			return nil, apperr.NotFound("file with id %s not found", *in.FileID)
		}
		if !file.IsImage {
			return nil, apperr.BadRequest("file is not an image")
		}
		r.file = file
	}

	switch kind {
	case models.KindPage:
		if in.TemplateID != nil {
			tpl, err := s.templates.FindByID(ctx, *in.TemplateID)
			if err != nil {
				return nil, fmt.Errorf("resolve template: %w", err)
			}
			if tpl == nil {
				return nil, apperr.NotFound("template with id %s not found", *in.TemplateID)
			}
			r.template = tpl
		}
		if in.SEOPresetID != nil {
			preset, err := s.presets.FindByID(ctx, *in.SEOPresetID)
			if err != nil {
				return nil, fmt.Errorf("resolve seo preset: %w", err)
			}
			r.preset = preset
		}
	case models.KindPost:
		if in.CategoryID != nil {
			cat, err := s.categories.FindByID(ctx, *in.CategoryID)
			if err != nil {
				return nil, fmt.Errorf("resolve category: %w", err)
			}
			if cat == nil {
				return nil, apperr.NotFound("category with id %s not found", *in.CategoryID)
			}
			r.category = cat
			r.preset = cat.Preset
		}
	}

	return r, nil
}

// CreateSave creates an entity+draft pair that stays in DRAFT status.
func (s *Service) CreateSave(ctx context.Context, kind models.Kind, in Input, userID uuid.UUID) (*EntityView, error) {
	return s.create(ctx, kind, in, userID, models.StatusDraft)
}

// CreatePublish creates an entity+draft pair and publishes it: at once
// when no future publish instant was requested, otherwise by queueing a
// deferred job and leaving both rows in WAIT_FOR_PUBLISH.
func (s *Service) CreatePublish(ctx context.Context, kind models.Kind, in Input, userID uuid.UUID) (*EntityView, error) {
	if s.immediate(in.DateToPublish) {
		return s.create(ctx, kind, in, userID, models.StatusPublished)
	}

	view, err := s.create(ctx, kind, in, userID, models.StatusWaitForPublish)
	if err != nil {
		return nil, err
	}
	s.scheduleMaterialize(kind, view.ID, view.Draft.ID, *in.DateToPublish)
	return view, nil
}

// create persists the entity+draft pair in the given status and returns
// the hydrated view.
func (s *Service) create(ctx context.Context, kind models.Kind, in Input, userID uuid.UUID, status models.Status) (*EntityView, error) {
	title := sanitize.Text(strings.TrimSpace(in.Title))
	if title == "" {
		return nil, apperr.BadRequest("title is required")
	}

	r, err := s.resolveRefs(ctx, kind, in, userID)
	if err != nil {
		return nil, err
	}
	if kind == models.KindPost && r.category == nil {
		return nil, apperr.BadRequest("category_id is required for posts")
	}

	manual := seo.ManualChange(in.SEO, r.preset)
	seoRow := seo.FromPreset(in.SEO, r.preset)

	c := &models.Content{
		Kind:        kind,
		Title:       title,
		Status:      status,
		ManualSEO:   manual,
		SEO:         seoRow,
		TemplateID:  in.TemplateID,
		CategoryID:  in.CategoryID,
		SEOPresetID: in.SEOPresetID,
		FileID:      in.FileID,
		UserID:      userID,
	}
	d := &models.Draft{
		Title:       title,
		Status:      status,
		ManualSEO:   manual,
		SEO:         seoRow,
		TemplateID:  in.TemplateID,
		CategoryID:  in.CategoryID,
		SEOPresetID: in.SEOPresetID,
		FileID:      in.FileID,
		UserID:      userID,

		DateToPublish: in.DateToPublish,
	}
	if in.Text != nil {
		body := sanitize.HTML(*in.Text)
		c.Text, d.Text = body, body
	}
	if in.Announcement != nil {
		ann := sanitize.Text(*in.Announcement)
		c.Announcement, d.Announcement = ann, ann
	}
	if in.Visibility != nil {
		d.Visibility = *in.Visibility
	}
	// The live row of a new post stays hidden until its first
	// materialization; the draft keeps the submitted flag.
	if kind == models.KindPost && status == models.StatusPublished && in.Visibility != nil {
		c.Visibility = *in.Visibility
	}

	if err := s.repo.CreateWithDraft(ctx, c, d); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, kind, c.ID)
}

// UpdateSave updates a draft without touching the live row. Rejected
// with Forbidden while the parent is queued for a deferred publish —
// saving over a pending job would silently detach its data.
func (s *Service) UpdateSave(ctx context.Context, kind models.Kind, draftID uuid.UUID, in Input, userID uuid.UUID) (*EntityView, error) {
	d, err := s.updateDraft(ctx, kind, draftID, in, userID, models.StatusDraft, true)
	if err != nil {
		return nil, err
	}
	s.views.Invalidate(ctx, kind, d.ContentID)
	return s.GetByID(ctx, kind, d.ContentID)
}

// UpdatePublish updates a draft and publishes it: any pending job for
// the entity is canceled first, the draft fields are materialized onto
// the live row, and a fresh job is registered when the publish instant
// lies in the future.
func (s *Service) UpdatePublish(ctx context.Context, kind models.Kind, draftID uuid.UUID, in Input, userID uuid.UUID) (*EntityView, error) {
	existing, err := s.repo.FindDraft(ctx, kind, draftID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound("draft with id %s not found", draftID)
	}

	key := scheduler.Key{Kind: kind, ID: existing.ContentID}
	if s.jobs.Cancel(key) {
		s.stats.JobCanceled()
	}

	status := models.StatusPublished
	if !s.immediate(in.DateToPublish) {
		status = models.StatusWaitForPublish
	}

	d, err := s.updateDraft(ctx, kind, draftID, in, userID, status, false)
	if err != nil {
		return nil, err
	}

	entity, err := s.repo.FindEntity(ctx, kind, d.ContentID)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, apperr.NotFound("%s with id %s not found", kind, d.ContentID)
	}

	copyDraftToEntity(entity, d)
	entity.Status = status
	if err := s.repo.UpdateEntityAndDraft(ctx, entity, d); err != nil {
		return nil, err
	}

	if status == models.StatusWaitForPublish {
		s.scheduleMaterialize(kind, entity.ID, d.ID, *in.DateToPublish)
	}

	s.views.Invalidate(ctx, kind, entity.ID)
	return s.GetByID(ctx, kind, entity.ID)
}

// updateDraft loads, patches, and persists a draft. saveOnly guards the
// save path against parents already queued for publishing.
func (s *Service) updateDraft(ctx context.Context, kind models.Kind, draftID uuid.UUID, in Input, userID uuid.UUID, status models.Status, saveOnly bool) (*models.Draft, error) {
	d, err := s.repo.FindDraft(ctx, kind, draftID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.NotFound("draft with id %s not found", draftID)
	}

	parent, err := s.repo.FindEntity(ctx, kind, d.ContentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, apperr.NotFound("%s with id %s not found", kind, d.ContentID)
	}
	if saveOnly && parent.Status == models.StatusWaitForPublish {
		return nil, apperr.Forbidden("%s is waiting for publication; use the publish endpoint", kind)
	}

	// Absent input fields keep the draft's current references.
	merged := in
	if merged.TemplateID == nil {
		merged.TemplateID = d.TemplateID
	}
	if merged.CategoryID == nil {
		merged.CategoryID = d.CategoryID
	}
	if merged.SEOPresetID == nil {
		merged.SEOPresetID = d.SEOPresetID
	}

	r, err := s.resolveRefs(ctx, kind, merged, userID)
	if err != nil {
		return nil, err
	}

	if title := sanitize.Text(strings.TrimSpace(in.Title)); title != "" {
		d.Title = title
	}
	if in.Text != nil {
		d.Text = sanitize.HTML(*in.Text)
	}
	if in.Announcement != nil {
		d.Announcement = sanitize.Text(*in.Announcement)
	}
	if in.Visibility != nil {
		d.Visibility = *in.Visibility
	}
	if in.SEO != nil {
		d.SEO = *in.SEO
	}
	if in.DateToPublish != nil {
		d.DateToPublish = in.DateToPublish
	}
	d.TemplateID = merged.TemplateID
	d.CategoryID = merged.CategoryID
	d.SEOPresetID = merged.SEOPresetID
	if in.FileID != nil {
		d.FileID = in.FileID
	}
	d.ManualSEO = seo.ManualChange(in.SEO, r.preset)
	d.Status = status
	d.UserID = userID

	if err := s.repo.UpdateDraft(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// DeleteMany removes a batch of entities. The whole batch is rejected
// with NotFound naming the missing subset if any id does not resolve;
// pending jobs for the survivors are canceled best-effort.
func (s *Service) DeleteMany(ctx context.Context, kind models.Kind, ids []uuid.UUID) ([]uuid.UUID, error) {
	ids = dedupeIDs(ids)
	if err := s.checkExist(ctx, kind, ids); err != nil {
		return nil, err
	}

	for _, id := range ids {
		if s.jobs.Cancel(scheduler.Key{Kind: kind, ID: id}) {
			s.stats.JobCanceled()
		}
	}

	if err := s.repo.DeleteMany(ctx, kind, ids); err != nil {
		return nil, err
	}
	s.views.InvalidateMany(ctx, kind, ids)
	s.stats.SetPendingJobs(s.jobs.Len())
	return ids, nil
}

// PublishMany force-publishes a batch of entities with an empty patch.
// Existence is all-or-nothing; the publishes themselves run
// sequentially and stop at the first failure.
func (s *Service) PublishMany(ctx context.Context, kind models.Kind, ids []uuid.UUID, userID uuid.UUID) ([]uuid.UUID, error) {
	ids = dedupeIDs(ids)
	if err := s.checkExist(ctx, kind, ids); err != nil {
		return nil, err
	}

	for _, id := range ids {
		d, err := s.repo.FindDraftByContent(ctx, id)
		if err != nil {
			return nil, err
		}
		if d == nil {
			return nil, apperr.NotFound("draft for %s %s not found", kind, id)
		}
		if _, err := s.UpdatePublish(ctx, kind, d.ID, Input{}, userID); err != nil {
			return nil, fmt.Errorf("publish %s %s: %w", kind, id, err)
		}
	}
	return ids, nil
}

// checkExist verifies every id resolves to a live row of the given
// kind, failing with NotFound that names exactly the missing subset.
func (s *Service) checkExist(ctx context.Context, kind models.Kind, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return apperr.BadRequest("no ids given")
	}

	found, err := s.repo.ExistingIDs(ctx, kind, ids)
	if err != nil {
		return err
	}
	if len(found) == len(ids) {
		return nil
	}

	foundSet := make(map[uuid.UUID]struct{}, len(found))
	for _, id := range found {
		foundSet[id] = struct{}{}
	}
	var missing []string
	for _, id := range ids {
		if _, ok := foundSet[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	return apperr.NotFound("%ss with ids %s not found", kind, strings.Join(missing, ", "))
}

// dedupeIDs drops repeated ids, keeping first-seen order, so a batch
// like [x, x] counts x once against the existence check.
func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// immediate reports whether a requested publish instant means "now".
func (s *Service) immediate(at *time.Time) bool {
	return at == nil || !at.After(s.now())
}

// copyDraftToEntity materializes the draft's content fields onto the
// live row. Status is set by the caller.
func copyDraftToEntity(c *models.Content, d *models.Draft) {
	c.Title = d.Title
	c.Text = d.Text
	c.Announcement = d.Announcement
	c.Visibility = d.Visibility
	c.ManualSEO = d.ManualSEO
	c.SEO = d.SEO
	c.TemplateID = d.TemplateID
	c.CategoryID = d.CategoryID
	c.SEOPresetID = d.SEOPresetID
	c.FileID = d.FileID
	c.UserID = d.UserID
}
