package schemabind

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-rangeslider/pkg/host"
	"github.com/goliatone/go-rangeslider/pkg/rangeslider"
)

// ExtensionKey is the schema extension carrying slider presentation hints.
const ExtensionKey = "x-range-slider"

// ErrNotRange is returned for schemas that do not describe a pair of numbers.
var ErrNotRange = errors.New("schemabind: schema is not an array of numbers")

// FromDocument loads an OpenAPI 3 document and binds the schema at ref. ref
// names a component schema, optionally followed by dotted property names
// ("PriceFilter.range").
func FromDocument(ctx context.Context, data []byte, ref string) (host.Parameters, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, errors.New("schemabind: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("schemabind: load document: %w", err)
	}

	schema, err := lookup(doc, ref)
	if err != nil {
		return nil, err
	}
	return FromSchema(schema)
}

func lookup(doc *openapi3.T, ref string) (*openapi3.Schema, error) {
	parts := strings.Split(strings.TrimSpace(ref), ".")
	if len(parts) == 0 || parts[0] == "" {
		return nil, errors.New("schemabind: schema reference is required")
	}
	if doc.Components == nil || doc.Components.Schemas == nil {
		return nil, fmt.Errorf("schemabind: document has no component schemas")
	}
	current, ok := doc.Components.Schemas[parts[0]]
	if !ok || current == nil || current.Value == nil {
		return nil, fmt.Errorf("schemabind: schema %q not found", parts[0])
	}
	for _, name := range parts[1:] {
		next, ok := current.Value.Properties[name]
		if !ok || next == nil || next.Value == nil {
			return nil, fmt.Errorf("schemabind: property %q not found in %q", name, ref)
		}
		current = next
	}
	return current.Value, nil
}

// FromSchema maps an array-of-two-numbers schema onto slider parameters:
// item minimum/maximum become the range, multipleOf the step (integer items
// default to a step of 1) and a two element default the start values. The
// x-range-slider extension supplies tooltips, behaviour, handlePadding and
// padding.
func FromSchema(schema *openapi3.Schema) (host.Parameters, error) {
	if schema == nil {
		return nil, errors.New("schemabind: nil schema")
	}
	if schema.Type == nil || !schema.Type.Is(openapi3.TypeArray) {
		return nil, ErrNotRange
	}
	if schema.Items == nil || schema.Items.Value == nil {
		return nil, ErrNotRange
	}
	items := schema.Items.Value
	integer := items.Type != nil && items.Type.Is(openapi3.TypeInteger)
	if items.Type == nil || !(integer || items.Type.Is(openapi3.TypeNumber)) {
		return nil, ErrNotRange
	}
	if schema.MaxItems != nil && *schema.MaxItems < 2 {
		return nil, fmt.Errorf("schemabind: maxItems %d cannot hold two handles", *schema.MaxItems)
	}

	params := host.Parameters{}
	set := func(name string, value any) {
		params[name] = host.Property{Raw: value}
	}
	if items.Min != nil {
		set(rangeslider.ParamRangeLowerValue, *items.Min)
	}
	if items.Max != nil {
		set(rangeslider.ParamRangeUpperValue, *items.Max)
	}
	switch {
	case items.MultipleOf != nil:
		set(rangeslider.ParamStepValue, *items.MultipleOf)
	case integer:
		set(rangeslider.ParamStepValue, 1.0)
	}

	if schema.Default != nil {
		pair, ok := schema.Default.([]any)
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("schemabind: default must be a two element array")
		}
		lower, lok := number(pair[0])
		upper, uok := number(pair[1])
		if !lok || !uok {
			return nil, fmt.Errorf("schemabind: default values must be numbers")
		}
		set(rangeslider.ParamStartLowerValue, lower)
		set(rangeslider.ParamStartUpperValue, upper)
	}

	if err := applyExtension(params, schema.Extensions[ExtensionKey]); err != nil {
		return nil, err
	}
	return params, nil
}

func applyExtension(params host.Parameters, raw any) error {
	if raw == nil {
		return nil
	}
	ext, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("schemabind: %s must be an object", ExtensionKey)
	}
	for key, value := range ext {
		switch key {
		case "tooltips":
			b, ok := value.(bool)
			if !ok {
				return fmt.Errorf("schemabind: %s.tooltips must be a boolean", ExtensionKey)
			}
			params[rangeslider.ParamToolTips] = host.Property{Raw: b}
		case "behaviour", "behavior":
			s, ok := value.(string)
			if !ok {
				return fmt.Errorf("schemabind: %s.%s must be a string", ExtensionKey, key)
			}
			params[rangeslider.ParamBehaviourString] = host.Property{Raw: s}
		case "handlePadding":
			f, ok := number(value)
			if !ok {
				return fmt.Errorf("schemabind: %s.handlePadding must be a number", ExtensionKey)
			}
			params[rangeslider.ParamHandlePadding] = host.Property{Raw: f}
		case "padding":
			if err := applyPadding(params, value); err != nil {
				return err
			}
		}
	}
	return nil
}

var paddingParams = map[string]string{
	"top":    rangeslider.ParamPaddingTop,
	"bottom": rangeslider.ParamPaddingBottom,
	"left":   rangeslider.ParamPaddingLeft,
	"right":  rangeslider.ParamPaddingRight,
}

func applyPadding(params host.Parameters, raw any) error {
	if all, ok := number(raw); ok {
		for _, name := range paddingParams {
			params[name] = host.Property{Raw: all}
		}
		return nil
	}
	sides, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("schemabind: %s.padding must be a number or an object", ExtensionKey)
	}
	for side, value := range sides {
		name, known := paddingParams[side]
		if !known {
			return fmt.Errorf("schemabind: %s.padding has unknown side %q", ExtensionKey, side)
		}
		f, ok := number(value)
		if !ok {
			return fmt.Errorf("schemabind: %s.padding.%s must be a number", ExtensionKey, side)
		}
		params[name] = host.Property{Raw: f}
	}
	return nil
}

func number(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
