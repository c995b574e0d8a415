package manifest

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-rangeslider/pkg/host"
)

// Property types understood by the coercion rules.
const (
	TypeDecimal    = "Decimal"
	TypeWhole      = "Whole.None"
	TypeFloat      = "FP"
	TypeTwoOptions = "TwoOptions"
	TypeText       = "SingleLine.Text"
)

// Usage values for a property.
const (
	UsageInput  = "input"
	UsageBound  = "bound"
	UsageOutput = "output"
)

// Manifest declares a control and the properties it exchanges with the host.
type Manifest struct {
	Namespace   string     `json:"namespace" yaml:"namespace"`
	Constructor string     `json:"constructor" yaml:"constructor"`
	Version     string     `json:"version" yaml:"version"`
	DisplayName string     `json:"displayName" yaml:"displayName"`
	Description string     `json:"description" yaml:"description"`
	ControlType string     `json:"controlType" yaml:"controlType"`
	Properties  []Property `json:"properties" yaml:"properties"`
	Resources   Resources  `json:"resources" yaml:"resources"`

	Source string `json:"-" yaml:"-"`
}

// Property is one entry of the control's property bag.
type Property struct {
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"displayName" yaml:"displayName"`
	Description string `json:"description" yaml:"description"`
	OfType      string `json:"ofType" yaml:"ofType"`
	Usage       string `json:"usage" yaml:"usage"`
	Required    bool   `json:"required" yaml:"required"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`
}

// Resources lists the browser assets the control needs.
type Resources struct {
	Scripts     []string `json:"scripts" yaml:"scripts"`
	Stylesheets []string `json:"stylesheets" yaml:"stylesheets"`
}

// ID returns namespace.constructor.
func (m Manifest) ID() string {
	if m.Namespace == "" {
		return m.Constructor
	}
	return m.Namespace + "." + m.Constructor
}

// Property looks up a property by name.
func (m Manifest) Property(name string) (Property, bool) {
	for _, prop := range m.Properties {
		if prop.Name == name {
			return prop, true
		}
	}
	return Property{}, false
}

// Inputs returns input and bound properties in declaration order.
func (m Manifest) Inputs() []Property {
	var out []Property
	for _, prop := range m.Properties {
		if prop.Usage != UsageOutput {
			out = append(out, prop)
		}
	}
	return out
}

// Outputs returns output and bound properties in declaration order.
func (m Manifest) Outputs() []Property {
	var out []Property
	for _, prop := range m.Properties {
		if prop.Usage == UsageOutput || prop.Usage == UsageBound {
			out = append(out, prop)
		}
	}
	return out
}

// Validate checks identifiers, property types and defaults.
func (m Manifest) Validate() error {
	if strings.TrimSpace(m.Constructor) == "" {
		return fmt.Errorf("manifest: %s: constructor is required", m.source())
	}
	seen := make(map[string]struct{}, len(m.Properties))
	for idx, prop := range m.Properties {
		name := strings.TrimSpace(prop.Name)
		if name == "" {
			return fmt.Errorf("manifest: %s: property %d has no name", m.source(), idx)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("manifest: %s: duplicate property %q", m.source(), name)
		}
		seen[name] = struct{}{}
		switch prop.OfType {
		case TypeDecimal, TypeWhole, TypeFloat, TypeTwoOptions, TypeText:
		default:
			return fmt.Errorf("manifest: %s: property %q has unsupported type %q", m.source(), name, prop.OfType)
		}
		switch prop.Usage {
		case UsageInput, UsageBound, UsageOutput:
		default:
			return fmt.Errorf("manifest: %s: property %q has unsupported usage %q", m.source(), name, prop.Usage)
		}
		if prop.Default != nil {
			if _, err := Coerce(prop.OfType, prop.Default); err != nil {
				return fmt.Errorf("manifest: %s: property %q default: %w", m.source(), name, err)
			}
		}
	}
	return nil
}

func (m Manifest) source() string {
	if m.Source == "" {
		return "<inline>"
	}
	return m.Source
}

// Parameters builds the host property bag. Input properties start from their
// manifest default; overrides replace them after coercion. Properties without
// a default or override stay absent so the control applies its fallbacks.
func (m Manifest) Parameters(overrides map[string]any) (host.Parameters, error) {
	params := host.Parameters{}
	for _, prop := range m.Inputs() {
		if prop.Default == nil {
			continue
		}
		value, err := Coerce(prop.OfType, prop.Default)
		if err != nil {
			return nil, fmt.Errorf("manifest: default for %q: %w", prop.Name, err)
		}
		params[prop.Name] = host.Property{Raw: value}
	}
	for name, raw := range overrides {
		prop, ok := m.Property(name)
		if !ok {
			return nil, fmt.Errorf("manifest: unknown property %q", name)
		}
		if prop.Usage == UsageOutput {
			return nil, fmt.Errorf("manifest: property %q is an output", name)
		}
		if raw == nil {
			delete(params, name)
			continue
		}
		value, err := Coerce(prop.OfType, raw)
		if err != nil {
			return nil, fmt.Errorf("manifest: override %q: %w", name, err)
		}
		params[name] = host.Property{Raw: value}
	}
	return params, nil
}

// Coerce converts raw into the Go type used for ofType: float64 for numbers,
// bool for TwoOptions and string for text.
func Coerce(ofType string, raw any) (any, error) {
	switch ofType {
	case TypeDecimal, TypeFloat:
		return toFloat(raw)
	case TypeWhole:
		f, err := toFloat(raw)
		if err != nil {
			return nil, err
		}
		if f != math.Trunc(f) {
			return nil, fmt.Errorf("value %v is not a whole number", raw)
		}
		return f, nil
	case TypeTwoOptions:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return nil, fmt.Errorf("value %q is not a boolean", v)
			}
			return parsed, nil
		}
		return nil, fmt.Errorf("value %v is not a boolean", raw)
	case TypeText:
		switch v := raw.(type) {
		case string:
			return v, nil
		case fmt.Stringer:
			return v.String(), nil
		}
		return fmt.Sprint(raw), nil
	}
	return nil, fmt.Errorf("unsupported type %q", ofType)
}

func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not a number", v)
		}
		return parsed, nil
	}
	return 0, fmt.Errorf("value %v (%T) is not a number", raw, raw)
}

// ParseOverride splits a Key=Value flag.
func ParseOverride(raw string) (string, string, error) {
	key, value, ok := strings.Cut(raw, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", "", fmt.Errorf("manifest: override %q must look like Key=Value", raw)
	}
	return key, strings.TrimSpace(value), nil
}

// ParseOverrides applies ParseOverride to every entry.
func ParseOverrides(entries []string) (map[string]any, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(entries))
	for _, entry := range entries {
		key, value, err := ParseOverride(entry)
		if err != nil {
			return nil, err
		}
		out[key] = value
	}
	return out, nil
}
