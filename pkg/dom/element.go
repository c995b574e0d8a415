package dom

import (
	"html"
	"io"
	"slices"
	"strings"
)

// Element is a minimal in-memory DOM node. It plays the role of the mount point
// a host hands to a control and of the nodes a control builds beneath it.
// Elements are not safe for concurrent use.
type Element struct {
	Tag string
	ID  string

	classes  []string
	style    []styleEntry
	attrs    []attrEntry
	children []*Element
	parent   *Element
}

type styleEntry struct {
	name  string
	value string
}

type attrEntry struct {
	name  string
	value string
}

// New creates a detached element with the supplied tag name.
func New(tag string) *Element {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		tag = "div"
	}
	return &Element{Tag: tag}
}

// AddClass appends class tokens, ignoring duplicates and blanks.
func (e *Element) AddClass(names ...string) {
	if e == nil {
		return
	}
	for _, raw := range names {
		for _, name := range strings.Fields(raw) {
			if slices.Contains(e.classes, name) {
				continue
			}
			e.classes = append(e.classes, name)
		}
	}
}

// RemoveClass drops the named class tokens.
func (e *Element) RemoveClass(names ...string) {
	if e == nil || len(e.classes) == 0 {
		return
	}
	e.classes = slices.DeleteFunc(e.classes, func(c string) bool {
		return slices.Contains(names, c)
	})
}

// HasClass reports whether the class token is present.
func (e *Element) HasClass(name string) bool {
	return e != nil && slices.Contains(e.classes, name)
}

// Classes returns a copy of the class list in insertion order.
func (e *Element) Classes() []string {
	if e == nil {
		return nil
	}
	return slices.Clone(e.classes)
}

// SetStyle sets an inline style property. An empty value removes it.
func (e *Element) SetStyle(name, value string) {
	if e == nil {
		return
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	for idx, entry := range e.style {
		if entry.name != name {
			continue
		}
		if value == "" {
			e.style = slices.Delete(e.style, idx, idx+1)
			return
		}
		e.style[idx].value = value
		return
	}
	if value != "" {
		e.style = append(e.style, styleEntry{name: name, value: value})
	}
}

// Style returns the inline style value for name.
func (e *Element) Style(name string) string {
	if e == nil {
		return ""
	}
	for _, entry := range e.style {
		if entry.name == name {
			return entry.value
		}
	}
	return ""
}

// SetAttr sets an attribute. Class, id and style have dedicated accessors and
// are routed to them.
func (e *Element) SetAttr(name, value string) {
	if e == nil {
		return
	}
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "":
		return
	case "id":
		e.ID = value
		return
	case "class":
		e.classes = nil
		e.AddClass(value)
		return
	}
	for idx, entry := range e.attrs {
		if entry.name == name {
			e.attrs[idx].value = value
			return
		}
	}
	e.attrs = append(e.attrs, attrEntry{name: name, value: value})
}

// Attr returns the attribute value and whether it is set.
func (e *Element) Attr(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	name = strings.ToLower(strings.TrimSpace(name))
	for _, entry := range e.attrs {
		if entry.name == name {
			return entry.value, true
		}
	}
	return "", false
}

// RemoveAttr deletes the attribute when present.
func (e *Element) RemoveAttr(name string) {
	if e == nil {
		return
	}
	name = strings.ToLower(strings.TrimSpace(name))
	e.attrs = slices.DeleteFunc(e.attrs, func(entry attrEntry) bool {
		return entry.name == name
	})
}

// AppendChild attaches child as the last child of e, detaching it from any
// previous parent first.
func (e *Element) AppendChild(child *Element) {
	if e == nil || child == nil || child == e {
		return
	}
	child.Remove()
	child.parent = e
	e.children = append(e.children, child)
}

// Remove detaches e from its parent. It is a no-op for detached elements.
func (e *Element) Remove() {
	if e == nil || e.parent == nil {
		return
	}
	parent := e.parent
	parent.children = slices.DeleteFunc(parent.children, func(c *Element) bool {
		return c == e
	})
	e.parent = nil
}

// Parent returns the parent element, or nil when detached.
func (e *Element) Parent() *Element {
	if e == nil {
		return nil
	}
	return e.parent
}

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	if e == nil {
		return nil
	}
	return slices.Clone(e.children)
}

// Find returns the first descendant (or e itself) with the given id.
func (e *Element) Find(id string) *Element {
	if e == nil || id == "" {
		return nil
	}
	if e.ID == id {
		return e
	}
	for _, child := range e.children {
		if found := child.Find(id); found != nil {
			return found
		}
	}
	return nil
}

var voidElements = map[string]struct{}{
	"br": {}, "hr": {}, "img": {}, "input": {}, "link": {}, "meta": {},
}

// Render writes the element and its subtree as HTML.
func (e *Element) Render(w io.Writer) error {
	if e == nil {
		return nil
	}
	var builder strings.Builder
	e.write(&builder)
	_, err := io.WriteString(w, builder.String())
	return err
}

// HTML returns the rendered markup.
func (e *Element) HTML() string {
	if e == nil {
		return ""
	}
	var builder strings.Builder
	e.write(&builder)
	return builder.String()
}

func (e *Element) write(builder *strings.Builder) {
	builder.WriteByte('<')
	builder.WriteString(e.Tag)
	if e.ID != "" {
		writeAttr(builder, "id", e.ID)
	}
	if len(e.classes) > 0 {
		writeAttr(builder, "class", strings.Join(e.classes, " "))
	}
	if len(e.style) > 0 {
		parts := make([]string, 0, len(e.style))
		for _, entry := range e.style {
			parts = append(parts, entry.name+": "+entry.value)
		}
		writeAttr(builder, "style", strings.Join(parts, "; "))
	}
	for _, entry := range e.attrs {
		writeAttr(builder, entry.name, entry.value)
	}
	builder.WriteByte('>')
	if _, void := voidElements[e.Tag]; void {
		return
	}
	for _, child := range e.children {
		child.write(builder)
	}
	builder.WriteString("</")
	builder.WriteString(e.Tag)
	builder.WriteByte('>')
}

func writeAttr(builder *strings.Builder, name, value string) {
	builder.WriteByte(' ')
	builder.WriteString(name)
	builder.WriteString(`="`)
	builder.WriteString(html.EscapeString(value))
	builder.WriteByte('"')
}
