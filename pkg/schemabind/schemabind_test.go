package schemabind

import (
	"context"
	"errors"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-rangeslider/pkg/host"
	"github.com/goliatone/go-rangeslider/pkg/rangeslider"
)

const document = `{
  "openapi": "3.0.3",
  "info": {"title": "catalog", "version": "1.0.0"},
  "paths": {},
  "components": {
    "schemas": {
      "PriceFilter": {
        "type": "object",
        "properties": {
          "range": {
            "type": "array",
            "minItems": 2,
            "maxItems": 2,
            "items": {"type": "number", "minimum": 0, "maximum": 500, "multipleOf": 25},
            "default": [50, 300],
            "x-range-slider": {
              "tooltips": true,
              "behaviour": "tap-drag",
              "handlePadding": 25,
              "padding": {"top": 8, "bottom": 4}
            }
          }
        }
      },
      "Years": {
        "type": "array",
        "items": {"type": "integer", "minimum": 1990, "maximum": 2030}
      },
      "Name": {"type": "string"}
    }
  }
}`

func TestFromDocument_NestedProperty(t *testing.T) {
	params, err := FromDocument(context.Background(), []byte(document), "PriceFilter.range")
	if err != nil {
		t.Fatalf("bind: %v", err)
	}

	want := host.Parameters{
		rangeslider.ParamRangeLowerValue: {Raw: 0.0},
		rangeslider.ParamRangeUpperValue: {Raw: 500.0},
		rangeslider.ParamStepValue:       {Raw: 25.0},
		rangeslider.ParamStartLowerValue: {Raw: 50.0},
		rangeslider.ParamStartUpperValue: {Raw: 300.0},
		rangeslider.ParamToolTips:        {Raw: true},
		rangeslider.ParamBehaviourString: {Raw: "tap-drag"},
		rangeslider.ParamHandlePadding:   {Raw: 25.0},
		rangeslider.ParamPaddingTop:      {Raw: 8.0},
		rangeslider.ParamPaddingBottom:   {Raw: 4.0},
	}
	if diff := cmp.Diff(want, params); diff != "" {
		t.Fatalf("parameters mismatch (-want +got):\n%s", diff)
	}

	cfg := rangeslider.ReadConfig(params)
	if cfg.RangeUpper != 500 || cfg.Step != 25 || cfg.Behaviour != "tap-drag" {
		t.Fatalf("unexpected render config: %#v", cfg)
	}
}

func TestFromDocument_IntegerItemsDefaultStep(t *testing.T) {
	params, err := FromDocument(context.Background(), []byte(document), "Years")
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if got, _ := params.Number(rangeslider.ParamStepValue); got != 1 {
		t.Fatalf("expected integer step 1, got %v", got)
	}
	if _, ok := params[rangeslider.ParamStartLowerValue]; ok {
		t.Fatalf("expected no start values without a default")
	}
}

func TestFromDocument_Errors(t *testing.T) {
	ctx := context.Background()
	if _, err := FromDocument(ctx, []byte(document), "Name"); !errors.Is(err, ErrNotRange) {
		t.Fatalf("expected ErrNotRange, got %v", err)
	}
	if _, err := FromDocument(ctx, []byte(document), "Missing"); err == nil {
		t.Fatalf("expected error for missing schema")
	}
	if _, err := FromDocument(ctx, []byte(document), "PriceFilter.nope"); err == nil {
		t.Fatalf("expected error for missing property")
	}
	if _, err := FromDocument(ctx, nil, "PriceFilter"); err == nil {
		t.Fatalf("expected error for empty document")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := FromDocument(cancelled, []byte(document), "Years"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestFromSchema_BadDefault(t *testing.T) {
	lower := 0.0
	schema := &openapi3.Schema{
		Type:    &openapi3.Types{openapi3.TypeArray},
		Items:   openapi3.NewSchemaRef("", &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeNumber}, Min: &lower}),
		Default: []any{1.0},
	}
	if _, err := FromSchema(schema); err == nil {
		t.Fatalf("expected error for one element default")
	}
}

func TestFromSchema_UniformPadding(t *testing.T) {
	schema := &openapi3.Schema{
		Type:  &openapi3.Types{openapi3.TypeArray},
		Items: openapi3.NewSchemaRef("", &openapi3.Schema{Type: &openapi3.Types{openapi3.TypeNumber}}),
		Extensions: map[string]any{
			ExtensionKey: map[string]any{"padding": 6.0},
		},
	}
	params, err := FromSchema(schema)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	for _, name := range []string{rangeslider.ParamPaddingTop, rangeslider.ParamPaddingBottom, rangeslider.ParamPaddingLeft, rangeslider.ParamPaddingRight} {
		if got, _ := params.Number(name); got != 6 {
			t.Fatalf("expected %s = 6, got %v", name, got)
		}
	}
}
