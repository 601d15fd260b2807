// Package web embeds the browser UI served next to the JSON API.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/index.html static/css/* static/js/*
var embedded embed.FS

// StaticFS returns the CSS and JavaScript assets rooted at static/.
func StaticFS() (fs.FS, error) {
	return fs.Sub(embedded, "static")
}

// Index returns the single page shell.
func Index() ([]byte, error) {
	return embedded.ReadFile("templates/index.html")
}
