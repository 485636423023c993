// Package static embeds the browser UI served at the server root.
package static

import (
	"embed"
	"io/fs"
)

//go:embed index.html css/* js/*
var embedded embed.FS

// EmbeddedFS returns the embedded UI files.
func EmbeddedFS() fs.FS {
	return embedded
}
