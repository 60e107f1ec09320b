package handlers

import "net/http"

// ListStyles returns the style preset catalog.
func (a *App) ListStyles(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"styles": a.Styles.List()})
}
