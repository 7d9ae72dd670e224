package models

import (
	"time"

	"github.com/google/uuid"
)

// File is an uploaded asset. Upload handling lives elsewhere; the
// content core only checks IsImage before attaching a file to content.
type File struct {
	ID            uuid.UUID `json:"id"`
	Filepath      string    `json:"filepath"`
	IsImage       bool      `json:"image"`
	MiniaturePath *string   `json:"miniature,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
