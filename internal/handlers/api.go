// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON HTTP handlers of the FocusWord
// content API. One handler group serves both kinds; the kind comes from
// the URL and is parsed once per request.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"focusword/internal/apperr"
	"focusword/internal/content"
	"focusword/internal/models"
)

// userHeader carries the id of the editing user. Authentication itself
// sits in front of this API; the content core only records who edited.
const userHeader = "X-User-ID"

// Service is the content engine surface the handlers call.
type Service interface {
	CreateSave(ctx context.Context, kind models.Kind, in content.Input, userID uuid.UUID) (*content.EntityView, error)
	CreatePublish(ctx context.Context, kind models.Kind, in content.Input, userID uuid.UUID) (*content.EntityView, error)
	UpdateSave(ctx context.Context, kind models.Kind, draftID uuid.UUID, in content.Input, userID uuid.UUID) (*content.EntityView, error)
	UpdatePublish(ctx context.Context, kind models.Kind, draftID uuid.UUID, in content.Input, userID uuid.UUID) (*content.EntityView, error)
	DeleteMany(ctx context.Context, kind models.Kind, ids []uuid.UUID) ([]uuid.UUID, error)
	PublishMany(ctx context.Context, kind models.Kind, ids []uuid.UUID, userID uuid.UUID) ([]uuid.UUID, error)
	GetByID(ctx context.Context, kind models.Kind, id uuid.UUID) (*content.EntityView, error)
	Paginate(ctx context.Context, kind models.Kind, page, perPage int) (*content.PageResult, error)
}

// API groups the content endpoints around one Service.
type API struct {
	svc Service
}

// NewAPI creates the handler group.
func NewAPI(svc Service) *API {
	return &API{svc: svc}
}

// errorBody is the JSON error envelope: {"statusCode": 404, "message": "..."}.
type errorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// idsBody is the request body of the batch endpoints.
type idsBody struct {
	IDs []uuid.UUID `json:"ids"`
}

// idsResult echoes the affected ids back to the caller.
type idsResult struct {
	IDs []uuid.UUID `json:"ids"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := apperr.StatusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		msg = "Internal server error"
	}
	writeJSON(w, status, errorBody{StatusCode: status, Message: msg})
}

// kindParam parses the {kind} URL segment.
func kindParam(w http.ResponseWriter, r *http.Request) (models.Kind, bool) {
	kind, ok := models.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		writeError(w, apperr.NotFound("unknown content kind %q", chi.URLParam(r, "kind")))
		return "", false
	}
	return kind, true
}

// idParam parses a UUID URL segment.
func idParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, apperr.BadRequest("invalid %s: %s", name, chi.URLParam(r, name)))
		return uuid.UUID{}, false
	}
	return id, true
}

// editorID reads the editing user's id from the request header.
func editorID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := r.Header.Get(userHeader)
	if raw == "" {
		writeError(w, apperr.BadRequest("missing %s header", userHeader))
		return uuid.UUID{}, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, apperr.BadRequest("invalid %s header", userHeader))
		return uuid.UUID{}, false
	}
	return id, true
}

func decodeInput(w http.ResponseWriter, r *http.Request) (content.Input, bool) {
	var in content.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, apperr.BadRequest("invalid request body: %v", err))
		return in, false
	}
	return in, true
}

func decodeIDs(w http.ResponseWriter, r *http.Request) ([]uuid.UUID, bool) {
	var body idsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperr.BadRequest("invalid request body: %v", err))
		return nil, false
	}
	if len(body.IDs) == 0 {
		writeError(w, apperr.BadRequest("ids must not be empty"))
		return nil, false
	}
	return body.IDs, true
}

// CreateSave handles POST /api/v1/{kind}/save.
func (a *API) CreateSave(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}
	userID, ok := editorID(w, r)
	if !ok {
		return
	}
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	view, err := a.svc.CreateSave(r.Context(), kind, in, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// CreatePublish handles POST /api/v1/{kind}/publish.
func (a *API) CreatePublish(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}
	userID, ok := editorID(w, r)
	if !ok {
		return
	}
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	view, err := a.svc.CreatePublish(r.Context(), kind, in, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// UpdateSave handles PUT /api/v1/{kind}/save/{draftID}.
func (a *API) UpdateSave(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}
	draftID, ok := idParam(w, r, "draftID")
	if !ok {
		return
	}
	userID, ok := editorID(w, r)
	if !ok {
		return
	}
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	view, err := a.svc.UpdateSave(r.Context(), kind, draftID, in, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// UpdatePublish handles PUT /api/v1/{kind}/publish/{draftID}.
func (a *API) UpdatePublish(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}
	draftID, ok := idParam(w, r, "draftID")
	if !ok {
		return
	}
	userID, ok := editorID(w, r)
	if !ok {
		return
	}
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}

	view, err := a.svc.UpdatePublish(r.Context(), kind, draftID, in, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Get handles GET /api/v1/{kind}/{id}.
func (a *API) Get(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	view, err := a.svc.GetByID(r.Context(), kind, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// List handles GET /api/v1/{kind}?page=1&per_page=10.
func (a *API) List(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}

	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 10)

	result, err := a.svc.Paginate(r.Context(), kind, page, perPage)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// DeleteMany handles DELETE /api/v1/{kind} with {"ids": [...]}.
func (a *API) DeleteMany(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}
	ids, ok := decodeIDs(w, r)
	if !ok {
		return
	}

	deleted, err := a.svc.DeleteMany(r.Context(), kind, ids)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, idsResult{IDs: deleted})
}

// PublishMany handles POST /api/v1/{kind}/publish-many with {"ids": [...]}.
func (a *API) PublishMany(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindParam(w, r)
	if !ok {
		return
	}
	userID, ok := editorID(w, r)
	if !ok {
		return
	}
	ids, ok := decodeIDs(w, r)
	if !ok {
		return
	}

	published, err := a.svc.PublishMany(r.Context(), kind, ids, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, idsResult{IDs: published})
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
