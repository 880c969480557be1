package api

import (
	"net/http"
)

// CatalogHandler serves the relaxation videos and mindfulness games.
type CatalogHandler struct {
	deps CatalogDependencies
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps CatalogDependencies) *CatalogHandler {
	return &CatalogHandler{deps: deps}
}

// HandleVideos handles GET /videos?category=.
func (h *CatalogHandler) HandleVideos(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "api.videos", http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Videos(r.Context(), r.URL.Query().Get("category")))
}

// HandleGames handles GET /games?difficulty=.
func (h *CatalogHandler) HandleGames(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "api.games", http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Games(r.Context(), r.URL.Query().Get("difficulty")))
}
