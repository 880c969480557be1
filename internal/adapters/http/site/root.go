// Package site serves the embedded single-page app shell.
package site

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/mindease/internal/domain/session"
)

// shellPrefix is where the app shell routes live. Page routes sit under it
// so they do not collide with the JSON API paths of the same name.
const shellPrefix = "/app/"

// Register attaches the app shell routes to mux.
// Routes:
//
//	GET /           -> redirect to /app/home
//	GET /app/<page> -> app shell; unknown pages redirect to /app/home
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	h := NewRootHandler()
	mux.HandleFunc("/{$}", h.HandleRoot)
	mux.HandleFunc(shellPrefix, h.HandleApp)
}

// RootHandler serves the app shell.
type RootHandler struct{}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// HandleRoot handles GET / by sending the browser to the home page.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, PagePath(session.PageHome), http.StatusFound)
}

// HandleApp handles GET /app/<page>. Known pages get the shell, which reads
// the page from its own URL; anything else lands on home.
func (h *RootHandler) HandleApp(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, strings.TrimSuffix(shellPrefix, "/"))
	page := session.PageFromPath(rest)
	if page.Path() != strings.TrimSuffix(rest, "/") {
		http.Redirect(w, r, PagePath(page), http.StatusFound)
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFileFS(w, r, shellFS, "index.html")
}

// PagePath returns the browser route of a page, e.g. "/app/chat".
func PagePath(p session.Page) string {
	return strings.TrimSuffix(shellPrefix, "/") + p.Path()
}
