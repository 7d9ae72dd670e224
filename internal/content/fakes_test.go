// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"focusword/internal/models"
)

// fakeRepo is an in-memory Repo. Mutex-guarded because job callbacks
// run on timer goroutines.
type fakeRepo struct {
	mu       sync.Mutex
	contents map[uuid.UUID]*models.Content
	drafts   map[uuid.UUID]*models.Draft
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		contents: make(map[uuid.UUID]*models.Content),
		drafts:   make(map[uuid.UUID]*models.Draft),
	}
}

func (r *fakeRepo) CreateWithDraft(_ context.Context, c *models.Content, d *models.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = uuid.New()
	d.ID = uuid.New()
	d.ContentID = c.ID
	d.Kind = c.Kind

	cc, dd := *c, *d
	r.contents[c.ID] = &cc
	r.drafts[d.ID] = &dd
	return nil
}

func (r *fakeRepo) FindEntity(_ context.Context, kind models.Kind, id uuid.UUID) (*models.Content, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.contents[id]
	if !ok || c.Kind != kind {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

func (r *fakeRepo) FindDraft(_ context.Context, kind models.Kind, id uuid.UUID) (*models.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drafts[id]
	if !ok || d.Kind != kind {
		return nil, nil
	}
	dd := *d
	return &dd, nil
}

func (r *fakeRepo) FindDraftByContent(_ context.Context, contentID uuid.UUID) (*models.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range r.drafts {
		if d.ContentID == contentID {
			dd := *d
			return &dd, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) UpdateDraft(_ context.Context, d *models.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	dd := *d
	r.drafts[d.ID] = &dd
	return nil
}

func (r *fakeRepo) UpdateEntityAndDraft(_ context.Context, c *models.Content, d *models.Draft) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cc, dd := *c, *d
	r.contents[c.ID] = &cc
	r.drafts[d.ID] = &dd
	return nil
}

func (r *fakeRepo) ExistingIDs(_ context.Context, kind models.Kind, ids []uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var found []uuid.UUID
	for _, id := range ids {
		if c, ok := r.contents[id]; ok && c.Kind == kind {
			found = append(found, id)
		}
	}
	return found, nil
}

func (r *fakeRepo) DeleteMany(_ context.Context, kind models.Kind, ids []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		if c, ok := r.contents[id]; ok && c.Kind == kind {
			delete(r.contents, id)
			for did, d := range r.drafts {
				if d.ContentID == id {
					delete(r.drafts, did)
				}
			}
		}
	}
	return nil
}

func (r *fakeRepo) List(_ context.Context, kind models.Kind, limit, offset int) ([]models.Content, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var all []models.Content
	for _, c := range r.contents {
		if c.Kind == kind {
			all = append(all, *c)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID.String() < all[j].ID.String()
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *fakeRepo) ListWaitingDrafts(_ context.Context) ([]models.Draft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Draft
	for _, d := range r.drafts {
		if d.Status == models.StatusWaitForPublish {
			out = append(out, *d)
		}
	}
	return out, nil
}

// entity and draft read rows back for assertions.
func (r *fakeRepo) entity(id uuid.UUID) *models.Content {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.contents[id]; ok {
		cc := *c
		return &cc
	}
	return nil
}

func (r *fakeRepo) draft(id uuid.UUID) *models.Draft {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.drafts[id]; ok {
		dd := *d
		return &dd
	}
	return nil
}

// seedWaiting plants an entity+draft pair already in WAIT_FOR_PUBLISH,
// as a restart would find them.
func (r *fakeRepo) seedWaiting(kind models.Kind, c *models.Content, d *models.Draft) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = uuid.New()
	c.Kind = kind
	c.Status = models.StatusWaitForPublish
	d.ID = uuid.New()
	d.ContentID = c.ID
	d.Kind = kind
	d.Status = models.StatusWaitForPublish

	cc, dd := *c, *d
	r.contents[c.ID] = &cc
	r.drafts[d.ID] = &dd
}

type fakeUsers struct{ m map[uuid.UUID]*models.User }

func (f *fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	return f.m[id], nil
}

type fakeTemplates struct{ m map[uuid.UUID]*models.Template }

func (f *fakeTemplates) FindByID(_ context.Context, id uuid.UUID) (*models.Template, error) {
	return f.m[id], nil
}

type fakeCategories struct{ m map[uuid.UUID]*models.Category }

func (f *fakeCategories) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	return f.m[id], nil
}

type fakePresets struct{ m map[uuid.UUID]*models.SEOPreset }

func (f *fakePresets) FindByID(_ context.Context, id uuid.UUID) (*models.SEOPreset, error) {
	return f.m[id], nil
}

type fakeFiles struct{ m map[uuid.UUID]*models.File }

func (f *fakeFiles) FindByID(_ context.Context, id uuid.UUID) (*models.File, error) {
	return f.m[id], nil
}
