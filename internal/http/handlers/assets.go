package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dreamforge/assetgen/internal/domain"
)

// ListAssets returns the most recently generated assets, newest first.
func (a *App) ListAssets(w http.ResponseWriter, r *http.Request) {
	limit := a.RecentLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed < limit {
			limit = parsed
		}
	}
	assets, err := a.Repo.ListRecent(r.Context(), limit)
	if err != nil {
		a.Logger.Error().Err(err).Msg("assets: list failed")
		a.error(w, http.StatusInternalServerError, "internal", "could not list assets")
		return
	}
	if assets == nil {
		assets = []domain.GeneratedAsset{}
	}
	a.json(w, http.StatusOK, map[string]any{"assets": assets})
}

// GetAsset returns one persisted asset record.
func (a *App) GetAsset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	asset, err := a.Repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "unknown asset")
			return
		}
		a.Logger.Error().Err(err).Str("asset_id", id).Msg("assets: get failed")
		a.error(w, http.StatusInternalServerError, "internal", "could not load asset")
		return
	}
	a.json(w, http.StatusOK, asset)
}
