package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-rangeslider/pkg/dom"
	"github.com/goliatone/go-rangeslider/pkg/nouislider"
)

// RangeSlider is the registry name of the dual handle slider component.
const RangeSlider = "range-slider"

// Default asset locations for the slider bundle.
const (
	NoUiSliderScript     = "https://cdn.jsdelivr.net/npm/nouislider@15.7.1/dist/nouislider.min.js"
	NoUiSliderStylesheet = "https://cdn.jsdelivr.net/npm/nouislider@15.7.1/dist/nouislider.min.css"
	ClientScript         = "/assets/rangeslider.js"

	bootstrapTemplate = "bootstrap"
)

// NewDefaultRegistry constructs a registry holding the range-slider component.
func NewDefaultRegistry() *Registry {
	registry := New()
	registry.MustRegister(RangeSlider, RangeSliderDescriptor(
		[]string{NoUiSliderStylesheet},
		[]string{NoUiSliderScript, ClientScript},
	))
	return registry
}

// RangeSliderDescriptor builds the range-slider descriptor around the given
// asset URLs. Scripts keep their order so the widget bundle loads before the
// client glue.
func RangeSliderDescriptor(stylesheets, scripts []string) Descriptor {
	descriptor := Descriptor{
		Renderer:    rangeSliderRenderer,
		Stylesheets: append([]string(nil), stylesheets...),
	}
	for _, src := range scripts {
		if strings.TrimSpace(src) == "" {
			continue
		}
		descriptor.Scripts = append(descriptor.Scripts, Script{Src: src})
	}
	return descriptor
}

// rangeSliderRenderer serialises the control container and appends the boot
// script that mounts the browser slider on it. Config keys: mount_id
// (optional, looked up from the markup when absent) and socket_path
// (optional, otherwise the template global or "/ws").
func rangeSliderRenderer(buf *bytes.Buffer, container *dom.Element, data ComponentData) error {
	if err := container.Render(buf); err != nil {
		return fmt.Errorf("components: render container: %w", err)
	}
	if data.Template == nil {
		return fmt.Errorf("components: template renderer not configured for %q", RangeSlider)
	}

	mountID, _ := data.Config["mount_id"].(string)
	if mountID == "" {
		mount := findMount(container)
		if mount == nil {
			return fmt.Errorf("components: %q: no slider mount in container", RangeSlider)
		}
		mountID = mount.ID
	}
	view := map[string]any{"mount_id": mountID}
	if socketPath, _ := data.Config["socket_path"].(string); socketPath != "" {
		view["socket_path"] = socketPath
	}

	rendered, err := data.Template.RenderTemplate(bootstrapTemplate, view)
	if err != nil {
		return fmt.Errorf("components: render template %q: %w", bootstrapTemplate, err)
	}
	buf.WriteString(rendered)
	return nil
}

func findMount(el *dom.Element) *dom.Element {
	if _, ok := el.Attr(nouislider.OptionsAttr); ok {
		return el
	}
	for _, child := range el.Children() {
		if found := findMount(child); found != nil {
			return found
		}
	}
	return nil
}
