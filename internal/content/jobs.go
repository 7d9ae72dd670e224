// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// jobs.go is the deferred-publish side of the engine: registering
// one-shot materialization jobs, the job callback itself, and rebuilding
// the registry from WAIT_FOR_PUBLISH drafts after a restart.
package content

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"focusword/internal/apperr"
	"focusword/internal/models"
	"focusword/internal/scheduler"
)

// materializeTimeout bounds the database work of one job firing.
const materializeTimeout = 30 * time.Second

// scheduleMaterialize registers the one-shot job that will materialize
// the draft at fireAt. An existing job for the entity is replaced.
func (s *Service) scheduleMaterialize(kind models.Kind, entityID, draftID uuid.UUID, fireAt time.Time) {
	key := scheduler.Key{Kind: kind, ID: entityID}
	s.jobs.Schedule(key, fireAt, func() {
		ctx, cancel := context.WithTimeout(context.Background(), materializeTimeout)
		defer cancel()

		if err := s.Materialize(ctx, kind, entityID, draftID); err != nil {
			slog.Error("publish job failed", "key", key.String(), "error", err)
			s.stats.JobFailed()
		} else {
			s.stats.JobFired()
		}
		s.stats.SetPendingJobs(s.jobs.Len())
	})
	s.stats.JobScheduled()
	s.stats.SetPendingJobs(s.jobs.Len())
}

// Materialize copies the draft's fields onto the live row and moves both
// rows to PUBLISHED. It is the job callback, and also runs directly for
// overdue drafts found during reconciliation.
func (s *Service) Materialize(ctx context.Context, kind models.Kind, entityID, draftID uuid.UUID) error {
	d, err := s.repo.FindDraft(ctx, kind, draftID)
	if err != nil {
		return err
	}
	if d == nil {
		return apperr.NotFound("draft with id %s not found", draftID)
	}

	entity, err := s.repo.FindEntity(ctx, kind, entityID)
	if err != nil {
		return err
	}
	if entity == nil {
		return apperr.NotFound("%s with id %s not found", kind, entityID)
	}

	copyDraftToEntity(entity, d)
	entity.Status = models.StatusPublished
	d.Status = models.StatusPublished

	if err := s.repo.UpdateEntityAndDraft(ctx, entity, d); err != nil {
		return err
	}

	s.views.Invalidate(ctx, kind, entityID)
	slog.Info("draft materialized", "kind", kind, "id", entityID)
	return nil
}

// ReconcileJobs rebuilds the job registry after a restart. Every
// WAIT_FOR_PUBLISH draft gets its job re-registered; drafts whose
// publish instant already passed (or was lost) materialize immediately.
// Returns the number of jobs re-registered.
func (s *Service) ReconcileJobs(ctx context.Context) (int, error) {
	drafts, err := s.repo.ListWaitingDrafts(ctx)
	if err != nil {
		return 0, err
	}

	scheduled := 0
	for i := range drafts {
		d := &drafts[i]
		if d.DateToPublish == nil || !d.DateToPublish.After(s.now()) {
			if err := s.Materialize(ctx, d.Kind, d.ContentID, d.ID); err != nil {
				slog.Error("overdue draft materialization failed",
					"kind", d.Kind, "id", d.ContentID, "error", err)
				s.stats.JobFailed()
			}
			continue
		}
		s.scheduleMaterialize(d.Kind, d.ContentID, d.ID, *d.DateToPublish)
		scheduled++
	}

	s.stats.SetPendingJobs(s.jobs.Len())
	if scheduled > 0 || len(drafts) > 0 {
		slog.Info("publish jobs reconciled", "waiting", len(drafts), "scheduled", scheduled)
	}
	return scheduled, nil
}
