package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Load parses all embedded page templates. Embedding keeps the binary
// self-contained and the templates available from any working directory.
func Load() *template.Template {
	return template.Must(template.ParseFS(files, "*.html"))
}
