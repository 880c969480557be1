package api

import (
	"net/http"
	"strconv"

	"github.com/okian/mindease/internal/domain/profile"
)

// ProfileHandler serves the profile page endpoints.
type ProfileHandler struct {
	deps ProfileDependencies
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(deps ProfileDependencies) *ProfileHandler {
	return &ProfileHandler{deps: deps}
}

// HandleProfile handles GET and PUT /profile.
func (h *ProfileHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	const op = "api.profile"
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.deps.Profile(r.Context()))
	case http.MethodPut:
		var edit profile.Edit
		if err := decodeJSON(w, r, &edit); err != nil {
			writeServiceError(w, WrapKind(op, ErrBadRequest, err))
			return
		}
		p, err := h.deps.UpdateProfile(r.Context(), edit)
		if err != nil {
			writeServiceError(w, Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, p)
	default:
		methodNotAllowed(w, op, http.MethodGet, http.MethodPut)
	}
}

// HandleExport handles GET /profile/export as a file download.
func (h *ProfileHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	const op = "api.profile_export"
	if r.Method != http.MethodGet {
		methodNotAllowed(w, op, http.MethodGet)
		return
	}
	body, name, err := h.deps.ExportProfile(r.Context())
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(name))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// HandleShare handles GET /profile/share?target=native|clipboard&url=. The
// url defaults to the app on the requested host.
func (h *ProfileHandler) HandleShare(w http.ResponseWriter, r *http.Request) {
	const op = "api.profile_share"
	if r.Method != http.MethodGet {
		methodNotAllowed(w, op, http.MethodGet)
		return
	}
	q := r.URL.Query()
	url := q.Get("url")
	if url == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		url = scheme + "://" + r.Host + "/"
	}
	share, err := h.deps.ShareProfile(r.Context(), q.Get("target"), url)
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, share)
}

// HandleAnalytics handles GET /profile/analytics.
func (h *ProfileHandler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "api.profile_analytics", http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.ProfileAnalytics(r.Context()))
}
