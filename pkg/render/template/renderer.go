package template

import (
	"io"
)

// TemplateRenderer is the seam component renderers and the page handler rely
// on. GlobalContext seeds values every later render can read; data passed to
// RenderTemplate wins over globals with the same key.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
