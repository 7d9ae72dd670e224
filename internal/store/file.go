package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"focusword/internal/models"
)

// FileStore reads uploaded-file metadata. Upload handling itself lives
// in a separate service; the content core only needs the image flag and
// paths for hydrated views.
type FileStore struct {
	db *sql.DB
}

// NewFileStore creates a new FileStore with the given database connection.
func NewFileStore(db *sql.DB) *FileStore {
	return &FileStore{db: db}
}

// FindByID retrieves file metadata by UUID. Returns nil if not found.
func (s *FileStore) FindByID(ctx context.Context, id uuid.UUID) (*models.File, error) {
	f := &models.File{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, filepath, image, miniature, created_at FROM files WHERE id = $1
	`, id).Scan(&f.ID, &f.Filepath, &f.IsImage, &f.MiniaturePath, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find file by id: %w", err)
	}
	return f, nil
}

// Create registers file metadata. Used by tests and the upload service.
func (s *FileStore) Create(ctx context.Context, filepath string, isImage bool) (*models.File, error) {
	f := &models.File{}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO files (filepath, image) VALUES ($1, $2)
		RETURNING id, filepath, image, miniature, created_at
	`, filepath, isImage).Scan(&f.ID, &f.Filepath, &f.IsImage, &f.MiniaturePath, &f.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	return f, nil
}
