package manifest

import (
	"embed"
	"encoding/json"
	"fmt"
	"html"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"
)

//go:embed data/range_slider.yaml
var dataFS embed.FS

const defaultManifestPath = "data/range_slider.yaml"

var (
	defaultOnce     sync.Once
	defaultManifest Manifest
	defaultErr      error

	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Default returns the embedded range slider manifest.
func Default() (Manifest, error) {
	defaultOnce.Do(func() {
		defaultManifest, defaultErr = LoadFS(dataFS, defaultManifestPath)
	})
	if defaultErr != nil {
		return Manifest{}, defaultErr
	}
	return clone(defaultManifest), nil
}

// LoadFS reads and parses the manifest at path inside fsys.
func LoadFS(fsys fs.FS, path string) (Manifest, error) {
	if fsys == nil {
		return Manifest{}, fmt.Errorf("manifest: missing filesystem")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFile reads and parses the manifest file at path.
func LoadFile(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a JSON or YAML manifest, sanitises its display text and
// validates it.
func Parse(data []byte, source string) (Manifest, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Manifest{}, fmt.Errorf("manifest: file %s is empty", source)
	}

	var doc Manifest
	if err := json.Unmarshal(data, &doc); err != nil {
		doc = Manifest{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Manifest{}, fmt.Errorf("manifest: parse %s: invalid JSON or YAML", source)
		}
	}
	doc.Source = source
	sanitize(&doc)

	if err := doc.Validate(); err != nil {
		return Manifest{}, err
	}
	return doc, nil
}

func sanitize(doc *Manifest) {
	doc.DisplayName = sanitizeText(doc.DisplayName)
	doc.Description = sanitizeText(doc.Description)
	for idx := range doc.Properties {
		prop := &doc.Properties[idx]
		prop.Name = strings.TrimSpace(prop.Name)
		prop.Usage = strings.ToLower(strings.TrimSpace(prop.Usage))
		if prop.Usage == "" {
			prop.Usage = UsageInput
		}
		prop.DisplayName = sanitizeText(prop.DisplayName)
		prop.Description = sanitizeText(prop.Description)
	}
}

// sanitizeText strips markup and returns plain text. Templates escape it on
// output, so entities produced by the policy are decoded here.
func sanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(trimmed)))
}

func clone(src Manifest) Manifest {
	out := src
	out.Properties = append([]Property(nil), src.Properties...)
	out.Resources.Scripts = append([]string(nil), src.Resources.Scripts...)
	out.Resources.Stylesheets = append([]string(nil), src.Resources.Stylesheets...)
	return out
}
