package components

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-rangeslider/pkg/dom"
	rendertemplate "github.com/goliatone/go-rangeslider/pkg/render/template"
)

// Renderer writes the markup for a mounted control. container is the element
// the host handed to the control; data carries the template engine and any
// per-render configuration.
type Renderer func(buf *bytes.Buffer, container *dom.Element, data ComponentData) error

// ComponentData carries helpers and configuration for component renderers.
type ComponentData struct {
	Template rendertemplate.TemplateRenderer
	Config   map[string]any
}

// Script describes a JavaScript dependency a component needs emitted once per
// page.
type Script struct {
	Src    string
	Inline string
	Async  bool
	Defer  bool
}

// Descriptor bundles the renderer implementation with its asset dependencies.
type Descriptor struct {
	Name        string
	Renderer    Renderer
	Stylesheets []string
	Scripts     []Script
}

// Registry tracks component descriptors keyed by name.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		components: make(map[string]Descriptor),
	}
}

// Register associates a descriptor with name, replacing any existing entry.
func (r *Registry) Register(name string, descriptor Descriptor) error {
	if name = normalize(name); name == "" {
		return fmt.Errorf("components: component name is required")
	}
	if descriptor.Renderer == nil {
		return fmt.Errorf("components: renderer for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	descriptor.Name = name
	r.components[name] = cloneDescriptor(descriptor)
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(name string, descriptor Descriptor) {
	if err := r.Register(name, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor fetches a copy of the named descriptor.
func (r *Registry) Descriptor(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.components[normalize(name)]
	if !ok {
		return Descriptor{}, false
	}
	return cloneDescriptor(descriptor), true
}

// Render runs the named component renderer against container.
func (r *Registry) Render(name string, container *dom.Element, data ComponentData) (string, error) {
	descriptor, ok := r.Descriptor(name)
	if !ok {
		return "", fmt.Errorf("components: component %q not registered", name)
	}
	if container == nil {
		return "", fmt.Errorf("components: %q: container is nil", descriptor.Name)
	}
	var buf bytes.Buffer
	if err := descriptor.Renderer(&buf, container, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Assets collects the stylesheets and scripts of the named components in
// order, dropping duplicates.
func (r *Registry) Assets(names []string) (stylesheets []string, scripts []Script) {
	if len(names) == 0 {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	seenStyles := make(map[string]struct{})
	seenScripts := make(map[string]struct{})

	for _, name := range names {
		descriptor, ok := r.components[normalize(name)]
		if !ok {
			continue
		}
		for _, href := range descriptor.Stylesheets {
			if href == "" {
				continue
			}
			if _, exists := seenStyles[href]; exists {
				continue
			}
			seenStyles[href] = struct{}{}
			stylesheets = append(stylesheets, href)
		}
		for _, script := range descriptor.Scripts {
			key := scriptKey(script)
			if _, exists := seenScripts[key]; exists {
				continue
			}
			seenScripts[key] = struct{}{}
			scripts = append(scripts, script)
		}
	}
	return stylesheets, scripts
}

func cloneDescriptor(src Descriptor) Descriptor {
	return Descriptor{
		Name:        src.Name,
		Renderer:    src.Renderer,
		Stylesheets: slices.Clone(src.Stylesheets),
		Scripts:     slices.Clone(src.Scripts),
	}
}

func scriptKey(script Script) string {
	if script.Src != "" {
		return "src:" + script.Src
	}
	return "inline:" + script.Inline
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
