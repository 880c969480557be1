// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/mindease/internal/adapters/repository"
	service "github.com/okian/mindease/internal/app"
	"github.com/okian/mindease/internal/domain/model"
	"github.com/okian/mindease/internal/domain/profile"
	"github.com/okian/mindease/internal/domain/session"
	"github.com/okian/mindease/internal/domain/stress"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

// ChatDependencies covers scoring and the chat session.
type ChatDependencies interface {
	Analyze(ctx context.Context, text string) (stress.Analysis, error)
	SubmitMessage(ctx context.Context, in service.SubmitInput) (service.SubmitResult, error)
	Session(ctx context.Context, id string) (session.State, error)
	Navigate(ctx context.Context, id, page string) (session.State, error)
}

// CatalogDependencies serves the video and game catalogs.
type CatalogDependencies interface {
	Videos(ctx context.Context, category string) []model.Video
	Games(ctx context.Context, difficulty string) []model.Game
}

// ProfileDependencies serves the profile page.
type ProfileDependencies interface {
	Profile(ctx context.Context) model.UserProfile
	UpdateProfile(ctx context.Context, e profile.Edit) (model.UserProfile, error)
	ExportProfile(ctx context.Context) ([]byte, string, error)
	ShareProfile(ctx context.Context, target, url string) (profile.Share, error)
	ProfileAnalytics(ctx context.Context) profile.Dashboard
}

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	ChatDependencies
	CatalogDependencies
	ProfileDependencies
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	chatHandler      *ChatHandler
	catalogHandler   *CatalogHandler
	profileHandler   *ProfileHandler
	dashboardHandler *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(deps),
		chatHandler:      NewChatHandler(deps),
		catalogHandler:   NewCatalogHandler(deps),
		profileHandler:   NewProfileHandler(deps),
		dashboardHandler: newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("/analyze", MetricsMiddleware(s.chatHandler.HandleAnalyze, "analyze"))
	mux.HandleFunc("/chat", MetricsMiddleware(s.chatHandler.HandleChat, "chat"))
	mux.HandleFunc("/navigate", MetricsMiddleware(s.chatHandler.HandleNavigate, "navigate"))

	mux.HandleFunc("/videos", MetricsMiddleware(s.catalogHandler.HandleVideos, "videos"))
	mux.HandleFunc("/games", MetricsMiddleware(s.catalogHandler.HandleGames, "games"))

	mux.HandleFunc("/profile", MetricsMiddleware(s.profileHandler.HandleProfile, "profile"))
	mux.HandleFunc("/profile/export", MetricsMiddleware(s.profileHandler.HandleExport, "profile_export"))
	mux.HandleFunc("/profile/share", MetricsMiddleware(s.profileHandler.HandleShare, "profile_share"))
	mux.HandleFunc("/profile/analytics", MetricsMiddleware(s.profileHandler.HandleAnalytics, "profile_analytics"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps service and domain sentinels to a status and code.
func writeServiceError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, "method_not_allowed"
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, service.ErrMessageTooLong),
		errors.Is(err, session.ErrUnknownPage),
		errors.Is(err, profile.ErrInvalidProfile),
		errors.Is(err, profile.ErrUnknownTarget),
		errors.Is(err, repository.ErrInvalidID):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, session.ErrReplyPending):
		return http.StatusConflict, "reply_pending"
	case errors.Is(err, service.ErrBackpressure):
		return http.StatusTooManyRequests, "backpressure"
	case errors.Is(err, repository.ErrSessionLimit):
		return http.StatusServiceUnavailable, "session_limit"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// decodeJSON reads a bounded JSON body into v, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data after JSON body")
	}
	return nil
}

func methodNotAllowed(w http.ResponseWriter, op string, allow ...string) {
	for _, m := range allow {
		w.Header().Add("Allow", m)
	}
	writeServiceError(w, NewKind(op, ErrMethodNotAllowed))
}
