package host

import (
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-rangeslider/pkg/dom"
)

// Property wraps a single raw value from the host property bag. A nil Raw
// means the customizer left the property unset.
type Property struct {
	Raw any `json:"raw" yaml:"raw"`
}

// Parameters is the property bag keyed by manifest property name.
type Parameters map[string]Property

// Clone returns a shallow copy of the bag.
func (p Parameters) Clone() Parameters {
	if p == nil {
		return nil
	}
	out := make(Parameters, len(p))
	for key, value := range p {
		out[key] = value
	}
	return out
}

// Number returns the named property as a float64. ok is false when the
// property is absent or cannot be read as a number.
func (p Parameters) Number(name string) (float64, bool) {
	prop, exists := p[name]
	if !exists || prop.Raw == nil {
		return 0, false
	}
	return toFloat(prop.Raw)
}

// Bool returns the named property as a bool. Numbers are truthy when non-zero
// and strings are parsed with strconv.ParseBool.
func (p Parameters) Bool(name string) (bool, bool) {
	prop, exists := p[name]
	if !exists || prop.Raw == nil {
		return false, false
	}
	switch v := prop.Raw.(type) {
	case bool:
		return v, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, false
		}
		return parsed, true
	default:
		if f, ok := toFloat(v); ok {
			return f != 0 && !math.IsNaN(f), true
		}
	}
	return false, false
}

// String returns the named property as a string.
func (p Parameters) String(name string) (string, bool) {
	prop, exists := p[name]
	if !exists || prop.Raw == nil {
		return "", false
	}
	switch v := prop.Raw.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case bool:
		return strconv.FormatBool(v), true
	}
	return "", false
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}

// Context is the per-call view of the host handed to a control.
type Context struct {
	Parameters Parameters
}

// NewContext builds a context around params.
func NewContext(params Parameters) *Context {
	return &Context{Parameters: params.Clone()}
}

// NotifyFunc tells the host that the control has new outputs to pull.
type NotifyFunc func()

// Dictionary is the per-session state bag a host may provide.
type Dictionary map[string]any

// StandardControl is the lifecycle contract a host drives. Hosts call Init
// once, UpdateView whenever the property bag or layout changes, GetOutputs
// after every notification and Destroy on teardown.
type StandardControl[O any] interface {
	Init(ctx *Context, notify NotifyFunc, state Dictionary, container *dom.Element) error
	UpdateView(ctx *Context) error
	GetOutputs() O
	Destroy()
}
