// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// view.go provides a Valkey-backed cache for hydrated entity views.
// A get-by-id response is expensive to assemble (entity + draft +
// collaborators + effective SEO), so the serialized view is kept in
// Valkey and invalidated on every mutation or materialization.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"focusword/internal/models"
)

const (
	// viewKeyPrefix is the Valkey key prefix for cached entity views.
	viewKeyPrefix = "view:"

	// DefaultViewTTL is how long a hydrated view stays cached.
	DefaultViewTTL = 5 * time.Minute
)

// ViewCache manages entity-view caching in Valkey. A nil *ViewCache is
// valid and behaves as a cache that always misses, so the content
// service runs unchanged when Valkey is not configured.
type ViewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewViewCache creates a view cache backed by the given Valkey client.
func NewViewCache(client *redis.Client, ttl time.Duration) *ViewCache {
	if ttl == 0 {
		ttl = DefaultViewTTL
	}
	return &ViewCache{client: client, ttl: ttl}
}

func viewKey(kind models.Kind, id uuid.UUID) string {
	return viewKeyPrefix + string(kind) + ":" + id.String()
}

// Get retrieves the cached serialized view for an entity. Returns false
// on miss or any cache error — the caller falls back to the database.
func (vc *ViewCache) Get(ctx context.Context, kind models.Kind, id uuid.UUID) ([]byte, bool) {
	if vc == nil {
		return nil, false
	}
	val, err := vc.client.Get(ctx, viewKey(kind, id)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("view cache get error", "kind", kind, "id", id, "error", err)
		return nil, false
	}
	slog.Debug("view cache hit", "kind", kind, "id", id)
	return val, true
}

// Set stores a serialized view with the configured TTL.
func (vc *ViewCache) Set(ctx context.Context, kind models.Kind, id uuid.UUID, view []byte) {
	if vc == nil {
		return
	}
	if err := vc.client.Set(ctx, viewKey(kind, id), view, vc.ttl).Err(); err != nil {
		slog.Warn("view cache set error", "kind", kind, "id", id, "error", err)
	}
}

// Invalidate removes the cached view for a single entity.
func (vc *ViewCache) Invalidate(ctx context.Context, kind models.Kind, id uuid.UUID) {
	if vc == nil {
		return
	}
	if err := vc.client.Del(ctx, viewKey(kind, id)).Err(); err != nil {
		slog.Warn("view cache invalidate error", "kind", kind, "id", id, "error", err)
	}
	slog.Debug("view cache invalidated", "kind", kind, "id", id)
}

// InvalidateMany removes the cached views for a batch of entities.
// Used by multi-id delete and publish operations.
func (vc *ViewCache) InvalidateMany(ctx context.Context, kind models.Kind, ids []uuid.UUID) {
	if vc == nil || len(ids) == 0 {
		return
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = viewKey(kind, id)
	}
	if err := vc.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("view cache bulk invalidate error", "kind", kind, "error", err)
	}
}
