// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package scheduler maintains the in-process registry of deferred
// publish jobs. Each job is a one-shot timer keyed by entity kind and
// id; at most one job exists per key, and scheduling over an existing
// key replaces it. The registry lives for the process lifetime — after
// a restart, pending jobs are rebuilt from WAIT_FOR_PUBLISH drafts.
package scheduler

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"focusword/internal/models"
)

// Key identifies the entity a job belongs to.
type Key struct {
	Kind models.Kind
	ID   uuid.UUID
}

// String renders the key for log output.
func (k Key) String() string {
	return fmt.Sprintf("%s %s", k.Kind, k.ID)
}

// job pairs an armed timer with its fire instant.
type job struct {
	timer  *time.Timer
	fireAt time.Time
}

// Registry holds all pending one-shot jobs. Safe for concurrent use.
type Registry struct {
	mu   sync.Mutex
	jobs map[Key]*job
}

// New creates an empty job registry.
func New() *Registry {
	return &Registry{jobs: make(map[Key]*job)}
}

// Schedule arms a one-shot timer that runs fn at fireAt. Any existing
// job for the same key is stopped and replaced. A fireAt in the past
// fires immediately.
func (r *Registry) Schedule(key Key, fireAt time.Time, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.jobs[key]; ok {
		old.timer.Stop()
		slog.Debug("publish job replaced", "key", key.String(), "old_fire_at", old.fireAt)
	}

	d := time.Until(fireAt)
	if d < 0 {
		d = 0
	}

	j := &job{fireAt: fireAt}
	j.timer = time.AfterFunc(d, func() {
		r.remove(key, j)
		fn()
	})
	r.jobs[key] = j

	slog.Info("publish job scheduled", "key", key.String(), "fire_at", fireAt)
}

// Cancel stops and removes the job for key if one exists. It never
// fails: the return value reports whether a job was found. A callback
// that has already started executing is not interrupted.
func (r *Registry) Cancel(key Key) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.jobs[key]
	if !ok {
		return false
	}
	j.timer.Stop()
	delete(r.jobs, key)
	slog.Info("publish job canceled", "key", key.String())
	return true
}

// FireAt returns the fire instant of the pending job for key, if any.
func (r *Registry) FireAt(key Key) (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	j, ok := r.jobs[key]
	if !ok {
		return time.Time{}, false
	}
	return j.fireAt, true
}

// Len returns the number of pending jobs.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.jobs)
}

// StopAll stops every pending timer. Called on shutdown so no callback
// fires into torn-down dependencies.
func (r *Registry) StopAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, j := range r.jobs {
		j.timer.Stop()
		delete(r.jobs, key)
	}
}

// remove drops the entry for key, but only if it still points at j —
// a replacement scheduled between fire and cleanup must survive.
func (r *Registry) remove(key Key, j *job) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, ok := r.jobs[key]; ok && cur == j {
		delete(r.jobs, key)
	}
}
