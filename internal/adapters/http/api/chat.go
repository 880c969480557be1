package api

import (
	"net/http"
	"strings"

	service "github.com/okian/mindease/internal/app"
	"github.com/okian/mindease/internal/domain/session"
)

// ChatHandler serves scoring, chat turns and navigation.
type ChatHandler struct {
	deps ChatDependencies
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(deps ChatDependencies) *ChatHandler {
	return &ChatHandler{deps: deps}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type chatRequest struct {
	SessionID string `json:"session_id"`
	MessageID string `json:"message_id"`
	Text      string `json:"text"`
}

type navigateRequest struct {
	SessionID string `json:"session_id"`
	Page      string `json:"page"`
	Path      string `json:"path"`
}

// sessionView is a session plus its display helpers.
type sessionView struct {
	session.State
	Color string `json:"color"`
	Label string `json:"label"`
}

func viewOf(st session.State) sessionView {
	return sessionView{State: st, Color: st.Color(), Label: st.Label()}
}

type chatResponse struct {
	Status      string      `json:"status"`
	Duplicate   bool        `json:"duplicate"`
	SessionID   string      `json:"session_id"`
	MessageID   string      `json:"message_id"`
	StressLevel int         `json:"stress_level,omitempty"`
	Band        string      `json:"band,omitempty"`
	Session     sessionView `json:"session"`
}

// HandleAnalyze handles POST /analyze requests.
func (h *ChatHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	const op = "api.analyze"
	if r.Method != http.MethodPost {
		methodNotAllowed(w, op, http.MethodPost)
		return
	}
	var req analyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	a, err := h.deps.Analyze(r.Context(), req.Text)
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// HandleChat handles POST /chat (submit a message) and GET /chat?session_id=
// (read the session).
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleSubmit(w, r)
	case http.MethodGet:
		h.handleSession(w, r)
	default:
		methodNotAllowed(w, "api.chat", http.MethodGet, http.MethodPost)
	}
}

func (h *ChatHandler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_chat"
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	res, err := h.deps.SubmitMessage(r.Context(), service.SubmitInput(req))
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	if res.Duplicate {
		writeJSON(w, http.StatusOK, chatResponse{
			Status:    "duplicate",
			Duplicate: true,
			SessionID: res.SessionID,
			MessageID: res.MessageID,
			Session:   viewOf(res.State),
		})
		return
	}
	writeJSON(w, http.StatusAccepted, chatResponse{
		Status:      "accepted",
		SessionID:   res.SessionID,
		MessageID:   res.MessageID,
		StressLevel: res.Analysis.Score,
		Band:        string(res.Analysis.Band),
		Session:     viewOf(res.State),
	})
}

func (h *ChatHandler) handleSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_chat"
	id := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if id == "" {
		writeServiceError(w, NewKind(op, ErrBadRequest))
		return
	}
	st, err := h.deps.Session(r.Context(), id)
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, viewOf(st))
}

// HandleNavigate handles POST /navigate. The body names either a page or a
// route path; unknown paths land on home.
func (h *ChatHandler) HandleNavigate(w http.ResponseWriter, r *http.Request) {
	const op = "api.navigate"
	if r.Method != http.MethodPost {
		methodNotAllowed(w, op, http.MethodPost)
		return
	}
	var req navigateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	page := req.Page
	if page == "" {
		page = string(session.PageFromPath(req.Path))
	}
	st, err := h.deps.Navigate(r.Context(), req.SessionID, page)
	if err != nil {
		writeServiceError(w, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, viewOf(st))
}
