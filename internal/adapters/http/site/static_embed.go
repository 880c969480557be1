package site

import (
	"embed"
	"io/fs"
)

//go:embed static/index.html
var staticFS embed.FS

// shellFS is the embedded app shell rooted at static/.
var shellFS fs.FS = func() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return staticFS
	}
	return sub
}()
