// Package web embeds the page templates and static files.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates static
var files embed.FS

// Templates returns the template tree (layouts/, pages/, partials/).
func Templates() fs.FS {
	return sub("templates")
}

// Static returns the files served under /static/.
func Static() fs.FS {
	return sub("static")
}

func sub(dir string) fs.FS {
	f, err := fs.Sub(files, dir)
	if err != nil {
		// dir is a compile-time constant embedded above.
		panic(err)
	}
	return f
}
