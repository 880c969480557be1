package session

import (
	"fmt"
	"strings"
)

// Page is one of the navigable views.
type Page string

const (
	PageHome    Page = "home"
	PageChat    Page = "chat"
	PageVideos  Page = "videos"
	PageGames   Page = "games"
	PageProfile Page = "profile"
)

// Pages lists the views in navigation order.
var Pages = []Page{PageHome, PageChat, PageVideos, PageGames, PageProfile}

// Valid reports whether p is a known view.
func (p Page) Valid() bool {
	switch p {
	case PageHome, PageChat, PageVideos, PageGames, PageProfile:
		return true
	}
	return false
}

// Path returns the route of the view, e.g. "/chat".
func (p Page) Path() string { return "/" + string(p) }

// ParsePage accepts a page name, case-insensitive.
func ParsePage(s string) (Page, error) {
	p := Page(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPage, s)
	}
	return p, nil
}

// PageFromPath resolves a route to its view. Unknown routes fall back to home.
func PageFromPath(path string) Page {
	p := Page(strings.Trim(path, "/"))
	if p.Valid() {
		return p
	}
	return PageHome
}
