package rangeslider

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// EmbeddedTemplates exposes the built-in page and bootstrap templates so
// callers can reuse or override them when building a template engine.
func EmbeddedTemplates() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}
