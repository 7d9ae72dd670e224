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

// ContentStore handles the unified content table and its paired draft
// rows. Every multi-row mutation (create, materialize) runs inside a
// single transaction so the live/draft pair can never be half-written.
type ContentStore struct {
	db *sql.DB
}

// NewContentStore creates a new ContentStore with the given database connection.
func NewContentStore(db *sql.DB) *ContentStore {
	return &ContentStore{db: db}
}

const contentCols = `id, kind, title, text, announcement, visibility, status, manual_seo,
	seo_title, seo_description, seo_keywords, seo_label,
	template_id, category_id, seo_preset_id, file_id, user_id, created_at, updated_at`

const draftCols = `id, content_id, title, text, announcement, visibility, status, manual_seo,
	seo_title, seo_description, seo_keywords, seo_label, date_to_publish,
	template_id, category_id, seo_preset_id, file_id, user_id, created_at, updated_at`

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanContent(row scanner, c *models.Content) error {
	return row.Scan(
		&c.ID, &c.Kind, &c.Title, &c.Text, &c.Announcement, &c.Visibility,
		&c.Status, &c.ManualSEO,
		&c.SEO.Title, &c.SEO.Description, &c.SEO.Keywords, &c.SEO.Label,
		&c.TemplateID, &c.CategoryID, &c.SEOPresetID, &c.FileID, &c.UserID,
		&c.CreatedAt, &c.UpdatedAt,
	)
}

func scanDraft(row scanner, d *models.Draft) error {
	return row.Scan(
		&d.ID, &d.ContentID, &d.Title, &d.Text, &d.Announcement, &d.Visibility,
		&d.Status, &d.ManualSEO,
		&d.SEO.Title, &d.SEO.Description, &d.SEO.Keywords, &d.SEO.Label,
		&d.DateToPublish,
		&d.TemplateID, &d.CategoryID, &d.SEOPresetID, &d.FileID, &d.UserID,
		&d.CreatedAt, &d.UpdatedAt,
	)
}

// CreateWithDraft inserts a content row and its draft row atomically.
// Both structs are populated in place with generated ids and timestamps.
func (s *ContentStore) CreateWithDraft(ctx context.Context, c *models.Content, d *models.Draft) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create content begin tx: %w", err)
	}
	defer tx.Rollback()

	err = scanContent(tx.QueryRowContext(ctx, `
		INSERT INTO content (kind, title, text, announcement, visibility, status, manual_seo,
			seo_title, seo_description, seo_keywords, seo_label,
			template_id, category_id, seo_preset_id, file_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING `+contentCols,
		c.Kind, c.Title, c.Text, c.Announcement, c.Visibility, c.Status, c.ManualSEO,
		c.SEO.Title, c.SEO.Description, c.SEO.Keywords, c.SEO.Label,
		c.TemplateID, c.CategoryID, c.SEOPresetID, c.FileID, c.UserID,
	), c)
	if err != nil {
		return fmt.Errorf("insert content: %w", err)
	}

	d.ContentID = c.ID
	err = scanDraft(tx.QueryRowContext(ctx, `
		INSERT INTO drafts (content_id, title, text, announcement, visibility, status, manual_seo,
			seo_title, seo_description, seo_keywords, seo_label, date_to_publish,
			template_id, category_id, seo_preset_id, file_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING `+draftCols,
		d.ContentID, d.Title, d.Text, d.Announcement, d.Visibility, d.Status, d.ManualSEO,
		d.SEO.Title, d.SEO.Description, d.SEO.Keywords, d.SEO.Label, d.DateToPublish,
		d.TemplateID, d.CategoryID, d.SEOPresetID, d.FileID, d.UserID,
	), d)
	if err != nil {
		return fmt.Errorf("insert draft: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create content commit: %w", err)
	}
	return nil
}

// FindEntity retrieves a live content row by kind and id. Returns nil if not found.
func (s *ContentStore) FindEntity(ctx context.Context, kind models.Kind, id uuid.UUID) (*models.Content, error) {
	c := &models.Content{}
	err := scanContent(s.db.QueryRowContext(ctx,
		`SELECT `+contentCols+` FROM content WHERE kind = $1 AND id = $2`, kind, id), c)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find content by id: %w", err)
	}
	return c, nil
}

// draftJoinCols qualifies the draft columns for queries that join the
// content table, and appends the parent's kind.
const draftJoinCols = `d.id, d.content_id, d.title, d.text, d.announcement, d.visibility, d.status, d.manual_seo,
	d.seo_title, d.seo_description, d.seo_keywords, d.seo_label, d.date_to_publish,
	d.template_id, d.category_id, d.seo_preset_id, d.file_id, d.user_id, d.created_at, d.updated_at,
	c.kind`

func scanDraftWithKind(row scanner, d *models.Draft) error {
	return row.Scan(
		&d.ID, &d.ContentID, &d.Title, &d.Text, &d.Announcement, &d.Visibility,
		&d.Status, &d.ManualSEO,
		&d.SEO.Title, &d.SEO.Description, &d.SEO.Keywords, &d.SEO.Label,
		&d.DateToPublish,
		&d.TemplateID, &d.CategoryID, &d.SEOPresetID, &d.FileID, &d.UserID,
		&d.CreatedAt, &d.UpdatedAt,
		&d.Kind,
	)
}

// FindDraft retrieves a draft of the given kind by its own id, with the
// parent's kind populated. Returns nil if not found.
func (s *ContentStore) FindDraft(ctx context.Context, kind models.Kind, id uuid.UUID) (*models.Draft, error) {
	d := &models.Draft{}
	err := scanDraftWithKind(s.db.QueryRowContext(ctx,
		`SELECT `+draftJoinCols+` FROM drafts d JOIN content c ON c.id = d.content_id
		 WHERE c.kind = $1 AND d.id = $2`, kind, id), d)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find draft by id: %w", err)
	}
	return d, nil
}

// FindDraftByContent retrieves the draft paired with a content row.
// Returns nil if not found.
func (s *ContentStore) FindDraftByContent(ctx context.Context, contentID uuid.UUID) (*models.Draft, error) {
	d := &models.Draft{}
	err := scanDraftWithKind(s.db.QueryRowContext(ctx,
		`SELECT `+draftJoinCols+` FROM drafts d JOIN content c ON c.id = d.content_id
		 WHERE d.content_id = $1`, contentID), d)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find draft by content id: %w", err)
	}
	return d, nil
}

// UpdateDraft persists all editable draft fields. The struct is
// refreshed in place with the new updated_at.
func (s *ContentStore) UpdateDraft(ctx context.Context, d *models.Draft) error {
	err := scanDraft(s.db.QueryRowContext(ctx, `
		UPDATE drafts SET
			title = $1, text = $2, announcement = $3, visibility = $4,
			status = $5, manual_seo = $6,
			seo_title = $7, seo_description = $8, seo_keywords = $9, seo_label = $10,
			date_to_publish = $11,
			template_id = $12, category_id = $13, seo_preset_id = $14, file_id = $15,
			user_id = $16, updated_at = now()
		WHERE id = $17
		RETURNING `+draftCols,
		d.Title, d.Text, d.Announcement, d.Visibility,
		d.Status, d.ManualSEO,
		d.SEO.Title, d.SEO.Description, d.SEO.Keywords, d.SEO.Label,
		d.DateToPublish,
		d.TemplateID, d.CategoryID, d.SEOPresetID, d.FileID,
		d.UserID, d.ID,
	), d)
	if err != nil {
		return fmt.Errorf("update draft: %w", err)
	}
	return nil
}

// UpdateEntityAndDraft persists a live row and its draft in one
// transaction. Used by publishes and materialization, where the two
// rows must change together.
func (s *ContentStore) UpdateEntityAndDraft(ctx context.Context, c *models.Content, d *models.Draft) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update pair begin tx: %w", err)
	}
	defer tx.Rollback()

	err = scanContent(tx.QueryRowContext(ctx, `
		UPDATE content SET
			title = $1, text = $2, announcement = $3, visibility = $4,
			status = $5, manual_seo = $6,
			seo_title = $7, seo_description = $8, seo_keywords = $9, seo_label = $10,
			template_id = $11, category_id = $12, seo_preset_id = $13, file_id = $14,
			user_id = $15, updated_at = now()
		WHERE id = $16
		RETURNING `+contentCols,
		c.Title, c.Text, c.Announcement, c.Visibility,
		c.Status, c.ManualSEO,
		c.SEO.Title, c.SEO.Description, c.SEO.Keywords, c.SEO.Label,
		c.TemplateID, c.CategoryID, c.SEOPresetID, c.FileID,
		c.UserID, c.ID,
	), c)
	if err != nil {
		return fmt.Errorf("update content: %w", err)
	}

	err = scanDraft(tx.QueryRowContext(ctx, `
		UPDATE drafts SET
			title = $1, text = $2, announcement = $3, visibility = $4,
			status = $5, manual_seo = $6,
			seo_title = $7, seo_description = $8, seo_keywords = $9, seo_label = $10,
			date_to_publish = $11,
			template_id = $12, category_id = $13, seo_preset_id = $14, file_id = $15,
			user_id = $16, updated_at = now()
		WHERE id = $17
		RETURNING `+draftCols,
		d.Title, d.Text, d.Announcement, d.Visibility,
		d.Status, d.ManualSEO,
		d.SEO.Title, d.SEO.Description, d.SEO.Keywords, d.SEO.Label,
		d.DateToPublish,
		d.TemplateID, d.CategoryID, d.SEOPresetID, d.FileID,
		d.UserID, d.ID,
	), d)
	if err != nil {
		return fmt.Errorf("update draft: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update pair commit: %w", err)
	}
	return nil
}

// ExistingIDs returns the subset of ids that exist as live rows of the
// given kind. Order is not specified.
func (s *ContentStore) ExistingIDs(ctx context.Context, kind models.Kind, ids []uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM content WHERE kind = $1 AND id = ANY($2::uuid[])`,
		kind, uuidStrings(ids))
	if err != nil {
		return nil, fmt.Errorf("existing content ids: %w", err)
	}
	defer rows.Close()

	var found []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan content id: %w", err)
		}
		found = append(found, id)
	}
	return found, rows.Err()
}

// DeleteMany removes live rows by id in one statement. Paired drafts go
// with them via the ON DELETE CASCADE on drafts.content_id.
func (s *ContentStore) DeleteMany(ctx context.Context, kind models.Kind, ids []uuid.UUID) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM content WHERE kind = $1 AND id = ANY($2::uuid[])`,
		kind, uuidStrings(ids))
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return nil
}

// List returns one page of live rows of the given kind, newest first,
// plus the total row count for pagination.
func (s *ContentStore) List(ctx context.Context, kind models.Kind, limit, offset int) ([]models.Content, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM content WHERE kind = $1`, kind).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count content: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+contentCols+` FROM content WHERE kind = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`,
		kind, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list content: %w", err)
	}
	defer rows.Close()

	var items []models.Content
	for rows.Next() {
		var c models.Content
		if err := scanContent(rows, &c); err != nil {
			return nil, 0, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, c)
	}
	return items, total, rows.Err()
}

// ListWaitingDrafts returns every draft whose parent is queued for a
// deferred publish. Used by the startup reconciliation pass.
func (s *ContentStore) ListWaitingDrafts(ctx context.Context) ([]models.Draft, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+draftJoinCols+` FROM drafts d JOIN content c ON c.id = d.content_id
		 WHERE d.status = $1`, models.StatusWaitForPublish)
	if err != nil {
		return nil, fmt.Errorf("list waiting drafts: %w", err)
	}
	defer rows.Close()

	var drafts []models.Draft
	for rows.Next() {
		var d models.Draft
		if err := scanDraftWithKind(rows, &d); err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		drafts = append(drafts, d)
	}
	return drafts, rows.Err()
}

// uuidStrings converts ids for a $n::uuid[] parameter.
func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
