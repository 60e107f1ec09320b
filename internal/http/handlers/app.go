package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dreamforge/assetgen/internal/domain"
	"github.com/dreamforge/assetgen/internal/generation"
	"github.com/dreamforge/assetgen/internal/infra"
	"github.com/dreamforge/assetgen/internal/styles"
)

// App bundles the handler dependencies.
type App struct {
	Service     *generation.Service
	Repo        domain.AssetRepository
	Styles      *styles.Catalog
	Logger      infra.Logger
	RecentLimit int
}

// NewApp constructs the handler container.
func NewApp(service *generation.Service, repo domain.AssetRepository, catalog *styles.Catalog, logger infra.Logger, recentLimit int) *App {
	if recentLimit <= 0 {
		recentLimit = 50
	}
	return &App{
		Service:     service,
		Repo:        repo,
		Styles:      catalog,
		Logger:      logger,
		RecentLimit: recentLimit,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{
		"error":   errCode,
		"message": message,
	})
}
