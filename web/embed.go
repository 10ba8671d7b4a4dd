// Package web provides the embedded default views of the preview server.
package web

import (
	"embed"
	"io/fs"
)

//go:embed views
var viewsFS embed.FS

// Views returns the embedded templates with the views/ prefix stripped.
func Views() fs.FS {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err)
	}
	return sub
}
