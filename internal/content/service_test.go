// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"focusword/internal/apperr"
	"focusword/internal/models"
	"focusword/internal/scheduler"
)

type fixture struct {
	svc  *Service
	repo *fakeRepo
	jobs *scheduler.Registry

	userID     uuid.UUID
	templateID uuid.UUID
	presetID   uuid.UUID
	categoryID uuid.UUID
	imageID    uuid.UUID
	docID      uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		repo:       newFakeRepo(),
		jobs:       scheduler.New(),
		userID:     uuid.New(),
		templateID: uuid.New(),
		presetID:   uuid.New(),
		categoryID: uuid.New(),
		imageID:    uuid.New(),
		docID:      uuid.New(),
	}

	preset := &models.SEOPreset{
		ID:   f.presetID,
		Name: "News",
		SEO: models.SEO{
			Title:       "Preset title",
			Description: "Preset description",
			Keywords:    "preset,keywords",
			Label:       "Preset label",
		},
	}

	users := &fakeUsers{m: map[uuid.UUID]*models.User{
		f.userID: {ID: f.userID, Name: "Editor", Email: "editor@example.com", Role: models.RoleEditor},
	}}
	templates := &fakeTemplates{m: map[uuid.UUID]*models.Template{
		f.templateID: {ID: f.templateID, Name: "Default"},
	}}
	categories := &fakeCategories{m: map[uuid.UUID]*models.Category{
		f.categoryID: {ID: f.categoryID, Name: "General", SEOPresetID: &f.presetID, Preset: preset},
	}}
	presets := &fakePresets{m: map[uuid.UUID]*models.SEOPreset{
		f.presetID: preset,
	}}
	files := &fakeFiles{m: map[uuid.UUID]*models.File{
		f.imageID: {ID: f.imageID, Filepath: "uploads/cover.jpg", IsImage: true},
		f.docID:   {ID: f.docID, Filepath: "uploads/report.pdf", IsImage: false},
	}}

	f.svc = New(f.repo, users, templates, categories, presets, files, f.jobs, nil, nil)
	t.Cleanup(f.jobs.StopAll)
	return f
}

func (f *fixture) pageInput(title string) Input {
	text := "<p>Body</p>"
	return Input{Title: title, Text: &text, TemplateID: &f.templateID}
}

func (f *fixture) postInput(title string) Input {
	text := "<p>Body</p>"
	vis := true
	return Input{Title: title, Text: &text, Visibility: &vis, CategoryID: &f.categoryID}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestCreateSaveStaysDraft(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.CreateSave(ctx, models.KindPage, f.pageInput("About us"), f.userID)
	if err != nil {
		t.Fatalf("CreateSave: %v", err)
	}
	if view.Status != models.StatusDraft {
		t.Errorf("status = %s, want DRAFT", view.Status)
	}
	if view.Draft == nil {
		t.Fatal("view has no draft")
	}
	if view.Draft.Status != models.StatusDraft {
		t.Errorf("draft status = %s, want DRAFT", view.Draft.Status)
	}
	if got := f.jobs.Len(); got != 0 {
		t.Errorf("pending jobs = %d, want 0", got)
	}
}

func TestCreatePublishImmediate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.CreatePublish(ctx, models.KindPage, f.pageInput("Home"), f.userID)
	if err != nil {
		t.Fatalf("CreatePublish: %v", err)
	}
	if view.Status != models.StatusPublished {
		t.Errorf("status = %s, want PUBLISHED", view.Status)
	}
	if view.Draft.Status != models.StatusPublished {
		t.Errorf("draft status = %s, want PUBLISHED", view.Draft.Status)
	}
	if got := f.jobs.Len(); got != 0 {
		t.Errorf("pending jobs = %d, want 0", got)
	}
}

func TestCreatePublishPastDateIsImmediate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.pageInput("Archive")
	past := time.Now().Add(-time.Hour)
	in.DateToPublish = &past

	view, err := f.svc.CreatePublish(ctx, models.KindPage, in, f.userID)
	if err != nil {
		t.Fatalf("CreatePublish: %v", err)
	}
	if view.Status != models.StatusPublished {
		t.Errorf("status = %s, want PUBLISHED", view.Status)
	}
	if got := f.jobs.Len(); got != 0 {
		t.Errorf("pending jobs = %d, want 0", got)
	}
}

func TestCreatePublishDeferredFires(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.pageInput("Launch")
	at := time.Now().Add(40 * time.Millisecond)
	in.DateToPublish = &at

	view, err := f.svc.CreatePublish(ctx, models.KindPage, in, f.userID)
	if err != nil {
		t.Fatalf("CreatePublish: %v", err)
	}
	if view.Status != models.StatusWaitForPublish {
		t.Errorf("status = %s, want WAIT_FOR_PUBLISH", view.Status)
	}
	if got := f.jobs.Len(); got != 1 {
		t.Fatalf("pending jobs = %d, want 1", got)
	}

	waitFor(t, func() bool {
		c := f.repo.entity(view.ID)
		return c != nil && c.Status == models.StatusPublished
	})
	d := f.repo.draft(view.Draft.ID)
	if d.Status != models.StatusPublished {
		t.Errorf("draft status after fire = %s, want PUBLISHED", d.Status)
	}
	if got := f.jobs.Len(); got != 0 {
		t.Errorf("pending jobs after fire = %d, want 0", got)
	}
}

func TestUpdateSaveTouchesOnlyDraft(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.CreatePublish(ctx, models.KindPage, f.pageInput("Home"), f.userID)
	if err != nil {
		t.Fatalf("CreatePublish: %v", err)
	}

	updated, err := f.svc.UpdateSave(ctx, models.KindPage, view.Draft.ID, Input{Title: "Home v2"}, f.userID)
	if err != nil {
		t.Fatalf("UpdateSave: %v", err)
	}
	if updated.Title != "Home" {
		t.Errorf("live title = %q, want unchanged %q", updated.Title, "Home")
	}
	if updated.Status != models.StatusPublished {
		t.Errorf("live status = %s, want PUBLISHED", updated.Status)
	}
	if updated.Draft.Title != "Home v2" {
		t.Errorf("draft title = %q, want %q", updated.Draft.Title, "Home v2")
	}
	if updated.Draft.Status != models.StatusDraft {
		t.Errorf("draft status = %s, want DRAFT", updated.Draft.Status)
	}
}

func TestUpdateSaveForbiddenWhileWaiting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.pageInput("Launch")
	at := time.Now().Add(time.Hour)
	in.DateToPublish = &at

	view, err := f.svc.CreatePublish(ctx, models.KindPage, in, f.userID)
	if err != nil {
		t.Fatalf("CreatePublish: %v", err)
	}

	_, err = f.svc.UpdateSave(ctx, models.KindPage, view.Draft.ID, Input{Title: "Edit"}, f.userID)
	if apperr.StatusOf(err) != 403 {
		t.Fatalf("UpdateSave on waiting entity: status %d (%v), want 403", apperr.StatusOf(err), err)
	}
}

func TestUpdatePublishReplacesPendingJob(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.pageInput("Launch")
	far := time.Now().Add(time.Hour)
	in.DateToPublish = &far

	view, err := f.svc.CreatePublish(ctx, models.KindPage, in, f.userID)
	if err != nil {
		t.Fatalf("CreatePublish: %v", err)
	}

	key := scheduler.Key{Kind: models.KindPage, ID: view.ID}
	firstAt, ok := f.jobs.FireAt(key)
	if !ok {
		t.Fatal("no pending job after deferred create")
	}

	near := time.Now().Add(30 * time.Minute)
	if _, err := f.svc.UpdatePublish(ctx, models.KindPage, view.Draft.ID, Input{DateToPublish: &near}, f.userID); err != nil {
		t.Fatalf("UpdatePublish: %v", err)
	}

	if got := f.jobs.Len(); got != 1 {
		t.Fatalf("pending jobs = %d, want 1", got)
	}
	secondAt, ok := f.jobs.FireAt(key)
	if !ok {
		t.Fatal("no pending job after reschedule")
	}
	if !secondAt.Before(firstAt) {
		t.Errorf("fire instant not moved earlier: first %v, second %v", firstAt, secondAt)
	}
}

func TestUpdatePublishImmediateCancelsJob(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.pageInput("Launch")
	far := time.Now().Add(time.Hour)
	in.DateToPublish = &far

	view, err := f.svc.CreatePublish(ctx, models.KindPage, in, f.userID)
	if err != nil {
		t.Fatalf("CreatePublish: %v", err)
	}

	out, err := f.svc.UpdatePublish(ctx, models.KindPage, view.Draft.ID, Input{Title: "Launch now"}, f.userID)
	if err != nil {
		t.Fatalf("UpdatePublish: %v", err)
	}
	if out.Status != models.StatusPublished {
		t.Errorf("status = %s, want PUBLISHED", out.Status)
	}
	if out.Title != "Launch now" {
		t.Errorf("live title = %q, want materialized draft title", out.Title)
	}
	if got := f.jobs.Len(); got != 0 {
		t.Errorf("pending jobs = %d, want 0", got)
	}
}

func TestDeleteManyCancelsJobs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.pageInput("Launch")
	far := time.Now().Add(time.Hour)
	in.DateToPublish = &far

	view, err := f.svc.CreatePublish(ctx, models.KindPage, in, f.userID)
	if err != nil {
		t.Fatalf("CreatePublish: %v", err)
	}

	if _, err := f.svc.DeleteMany(ctx, models.KindPage, []uuid.UUID{view.ID}); err != nil {
		t.Fatalf("DeleteMany: %v", err)
	}
	if f.repo.entity(view.ID) != nil {
		t.Error("entity still present after delete")
	}
	if f.repo.draft(view.Draft.ID) != nil {
		t.Error("draft still present after delete")
	}
	if got := f.jobs.Len(); got != 0 {
		t.Errorf("pending jobs = %d, want 0", got)
	}
}

func TestDeleteManyRejectsMissingSubset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.CreateSave(ctx, models.KindPage, f.pageInput("Keep me"), f.userID)
	if err != nil {
		t.Fatalf("CreateSave: %v", err)
	}
	missing := uuid.New()

	_, err = f.svc.DeleteMany(ctx, models.KindPage, []uuid.UUID{view.ID, missing})
	if apperr.StatusOf(err) != 404 {
		t.Fatalf("status %d (%v), want 404", apperr.StatusOf(err), err)
	}
	if !strings.Contains(err.Error(), missing.String()) {
		t.Errorf("error %q does not name the missing id", err)
	}
	if strings.Contains(err.Error(), view.ID.String()) {
		t.Errorf("error %q names an existing id", err)
	}
	if f.repo.entity(view.ID) == nil {
		t.Error("existing entity deleted despite rejected batch")
	}
}

func TestDeleteManyToleratesDuplicateIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.CreateSave(ctx, models.KindPage, f.pageInput("Once"), f.userID)
	if err != nil {
		t.Fatalf("CreateSave: %v", err)
	}

	deleted, err := f.svc.DeleteMany(ctx, models.KindPage, []uuid.UUID{view.ID, view.ID})
	if err != nil {
		t.Fatalf("DeleteMany with duplicate ids: %v", err)
	}
	if len(deleted) != 1 {
		t.Errorf("deleted %d ids, want duplicate collapsed to 1", len(deleted))
	}
	if f.repo.entity(view.ID) != nil {
		t.Error("entity still present after delete")
	}
}

func TestPublishManyEmptyPatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.CreateSave(ctx, models.KindPost, f.postInput("Draft post"), f.userID)
	if err != nil {
		t.Fatalf("CreateSave: %v", err)
	}

	if _, err := f.svc.PublishMany(ctx, models.KindPost, []uuid.UUID{view.ID}, f.userID); err != nil {
		t.Fatalf("PublishMany: %v", err)
	}

	c := f.repo.entity(view.ID)
	if c.Status != models.StatusPublished {
		t.Errorf("status = %s, want PUBLISHED", c.Status)
	}
	if c.Title != "Draft post" {
		t.Errorf("live title = %q, want draft content preserved", c.Title)
	}
}

func TestPostSEOInheritsCategoryPreset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.CreatePublish(ctx, models.KindPost, f.postInput("News item"), f.userID)
	if err != nil {
		t.Fatalf("CreatePublish: %v", err)
	}
	if view.ManualSEO {
		t.Error("manual_seo = true without submitted SEO")
	}
	if view.SEO.Title != "Preset title" || view.SEO.Description != "Preset description" {
		t.Errorf("effective SEO = %+v, want preset values", view.SEO)
	}
	if view.SEO.Keywords != "preset,keywords" {
		t.Errorf("effective keywords = %q, want preset value", view.SEO.Keywords)
	}
}

func TestPostSEOMatchingPresetStaysAutomatic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.postInput("News item")
	in.SEO = &models.SEO{Title: "Preset title", Description: "Preset description", Keywords: "own,keywords"}

	view, err := f.svc.CreatePublish(ctx, models.KindPost, in, f.userID)
	if err != nil {
		t.Fatalf("CreatePublish: %v", err)
	}
	// Keywords differ but only title and description count for the
	// manual decision.
	if view.ManualSEO {
		t.Error("manual_seo = true although title and description match the preset")
	}
}

func TestPostSEOManualOverride(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.postInput("News item")
	in.SEO = &models.SEO{Title: "Custom title", Description: "Preset description"}

	view, err := f.svc.CreatePublish(ctx, models.KindPost, in, f.userID)
	if err != nil {
		t.Fatalf("CreatePublish: %v", err)
	}
	if !view.ManualSEO {
		t.Error("manual_seo = false although title differs from the preset")
	}
	if view.SEO.Title != "Custom title" {
		t.Errorf("effective title = %q, want stored manual value", view.SEO.Title)
	}
}

func TestNonImageFileRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := f.pageInput("Home")
	in.FileID = &f.docID

	_, err := f.svc.CreateSave(ctx, models.KindPage, in, f.userID)
	if apperr.StatusOf(err) != 400 {
		t.Fatalf("status %d (%v), want 400", apperr.StatusOf(err), err)
	}
}

func TestUnknownUserRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateSave(ctx, models.KindPage, f.pageInput("Home"), uuid.New())
	if apperr.StatusOf(err) != 404 {
		t.Fatalf("status %d (%v), want 404", apperr.StatusOf(err), err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetByID(context.Background(), models.KindPage, uuid.New())
	if apperr.StatusOf(err) != 404 {
		t.Fatalf("status %d (%v), want 404", apperr.StatusOf(err), err)
	}
}

func TestGetByIDKindMismatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.CreateSave(ctx, models.KindPage, f.pageInput("Home"), f.userID)
	if err != nil {
		t.Fatalf("CreateSave: %v", err)
	}

	_, err = f.svc.GetByID(ctx, models.KindPost, view.ID)
	if apperr.StatusOf(err) != 404 {
		t.Fatalf("page fetched through the post route: status %d (%v), want 404", apperr.StatusOf(err), err)
	}
}

func TestPaginate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, title := range []string{"First", "Second", "Third"} {
		if _, err := f.svc.CreateSave(ctx, models.KindPost, f.postInput(title), f.userID); err != nil {
			t.Fatalf("CreateSave %q: %v", title, err)
		}
	}

	page1, err := f.svc.Paginate(ctx, models.KindPost, 1, 2)
	if err != nil {
		t.Fatalf("Paginate page 1: %v", err)
	}
	if len(page1.Rows) != 2 || page1.Count != 3 || page1.TotalPages != 2 {
		t.Errorf("page 1 = %d rows, count %d, total pages %d; want 2/3/2",
			len(page1.Rows), page1.Count, page1.TotalPages)
	}
	for _, row := range page1.Rows {
		if row.DraftID == (uuid.UUID{}) {
			t.Errorf("row %s has no draft id", row.ID)
		}
	}

	page2, err := f.svc.Paginate(ctx, models.KindPost, 2, 2)
	if err != nil {
		t.Fatalf("Paginate page 2: %v", err)
	}
	if len(page2.Rows) != 1 {
		t.Errorf("page 2 rows = %d, want 1", len(page2.Rows))
	}

	_, err = f.svc.Paginate(ctx, models.KindPost, 3, 2)
	if apperr.StatusOf(err) != 404 {
		t.Fatalf("empty page: status %d (%v), want 404", apperr.StatusOf(err), err)
	}
}

func TestReconcileJobsReschedulesFuture(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	at := time.Now().Add(time.Hour)
	c := &models.Content{Title: "Scheduled", UserID: f.userID}
	d := &models.Draft{Title: "Scheduled", UserID: f.userID, DateToPublish: &at}
	f.repo.seedWaiting(models.KindPage, c, d)

	n, err := f.svc.ReconcileJobs(ctx)
	if err != nil {
		t.Fatalf("ReconcileJobs: %v", err)
	}
	if n != 1 {
		t.Errorf("rescheduled = %d, want 1", n)
	}
	key := scheduler.Key{Kind: models.KindPage, ID: c.ID}
	if _, ok := f.jobs.FireAt(key); !ok {
		t.Error("no job registered for waiting draft")
	}
}

func TestReconcileJobsMaterializesOverdue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	at := time.Now().Add(-time.Minute)
	c := &models.Content{Title: "Old title", UserID: f.userID}
	d := &models.Draft{Title: "New title", UserID: f.userID, DateToPublish: &at}
	f.repo.seedWaiting(models.KindPost, c, d)

	n, err := f.svc.ReconcileJobs(ctx)
	if err != nil {
		t.Fatalf("ReconcileJobs: %v", err)
	}
	if n != 0 {
		t.Errorf("rescheduled = %d, want 0", n)
	}

	got := f.repo.entity(c.ID)
	if got.Status != models.StatusPublished {
		t.Errorf("status = %s, want PUBLISHED", got.Status)
	}
	if got.Title != "New title" {
		t.Errorf("title = %q, want materialized draft title", got.Title)
	}
	if f.jobs.Len() != 0 {
		t.Errorf("pending jobs = %d, want 0", f.jobs.Len())
	}
}

func TestCreatePostRequiresCategory(t *testing.T) {
	f := newFixture(t)

	in := f.postInput("No category")
	in.CategoryID = nil

	_, err := f.svc.CreateSave(context.Background(), models.KindPost, in, f.userID)
	if apperr.StatusOf(err) != 400 {
		t.Fatalf("status %d (%v), want 400", apperr.StatusOf(err), err)
	}
}

func TestSanitizeStripsMarkup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	text := `<p>Hello</p><script>alert(1)</script>`
	in := Input{Title: `<b>Bold title</b>`, Text: &text, TemplateID: &f.templateID}

	view, err := f.svc.CreateSave(ctx, models.KindPage, in, f.userID)
	if err != nil {
		t.Fatalf("CreateSave: %v", err)
	}
	if view.Title != "Bold title" {
		t.Errorf("title = %q, want tags stripped", view.Title)
	}
	if strings.Contains(view.Text, "<script>") {
		t.Errorf("text %q retains script tag", view.Text)
	}
	if !strings.Contains(view.Text, "<p>Hello</p>") {
		t.Errorf("text %q lost allowed markup", view.Text)
	}
}
