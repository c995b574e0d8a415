package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-rangeslider/pkg/host"
)

func TestDefaultManifest(t *testing.T) {
	m, err := Default()
	if err != nil {
		t.Fatalf("default manifest: %v", err)
	}
	if m.ID() != "FormControls.RangeSliderControl" {
		t.Fatalf("unexpected id %q", m.ID())
	}

	var outputs []string
	for _, prop := range m.Outputs() {
		outputs = append(outputs, prop.Name)
	}
	if diff := cmp.Diff([]string{"SelectedLowerValue", "SelectedUpperValue"}, outputs); diff != "" {
		t.Fatalf("outputs mismatch (-want +got):\n%s", diff)
	}
	if len(m.Inputs()) != 12 {
		t.Fatalf("expected 12 inputs, got %d", len(m.Inputs()))
	}
}

func TestDefaultManifestReturnsCopies(t *testing.T) {
	first, err := Default()
	if err != nil {
		t.Fatalf("default manifest: %v", err)
	}
	first.Properties[0].Name = "mutated"

	second, err := Default()
	if err != nil {
		t.Fatalf("default manifest: %v", err)
	}
	if second.Properties[0].Name != "StartLowerValue" {
		t.Fatalf("default manifest mutated through copy: %q", second.Properties[0].Name)
	}
}

func TestParametersAppliesDefaultsAndOverrides(t *testing.T) {
	m, err := Default()
	if err != nil {
		t.Fatalf("default manifest: %v", err)
	}
	params, err := m.Parameters(map[string]any{
		"StepValue":       "5",
		"ToolTips":        "false",
		"BehaviourString": nil,
	})
	if err != nil {
		t.Fatalf("parameters: %v", err)
	}

	if got, _ := params.Number("StepValue"); got != 5 {
		t.Fatalf("expected overridden step 5, got %v", got)
	}
	if got, ok := params.Bool("ToolTips"); !ok || got {
		t.Fatalf("expected tooltips false, got %v (%v)", got, ok)
	}
	if _, ok := params["BehaviourString"]; ok {
		t.Fatalf("expected nil override to clear behaviour")
	}
	if got, _ := params.Number("RangeUpperValue"); got != 100 {
		t.Fatalf("expected default range max, got %v", got)
	}
	if _, ok := params["SelectedLowerValue"]; ok {
		t.Fatalf("outputs must not be part of the input bag")
	}
}

func TestParametersRejectsUnknownAndOutputOverrides(t *testing.T) {
	m, err := Default()
	if err != nil {
		t.Fatalf("default manifest: %v", err)
	}
	if _, err := m.Parameters(map[string]any{"Nope": 1}); err == nil {
		t.Fatalf("expected error for unknown property")
	}
	if _, err := m.Parameters(map[string]any{"SelectedLowerValue": 1}); err == nil {
		t.Fatalf("expected error for output override")
	}
	if _, err := m.Parameters(map[string]any{"PaddingTop": "1.5"}); err == nil {
		t.Fatalf("expected error for fractional whole number")
	}
}

func TestParseJSONAndSanitize(t *testing.T) {
	doc := []byte(`{
		"namespace": "Demo",
		"constructor": "Slider",
		"displayName": "<b>Demo</b> slider<script>alert(1)</script>",
		"properties": [
			{"name": "StepValue", "ofType": "Decimal", "default": 2}
		]
	}`)
	m, err := Parse(doc, "demo.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.DisplayName != "Demo slider" {
		t.Fatalf("expected sanitized display name, got %q", m.DisplayName)
	}
	if m.Properties[0].Usage != UsageInput {
		t.Fatalf("expected usage to default to input, got %q", m.Properties[0].Usage)
	}
	params, err := m.Parameters(nil)
	if err != nil {
		t.Fatalf("parameters: %v", err)
	}
	if diff := cmp.Diff(host.Parameters{"StepValue": {Raw: 2.0}}, params); diff != "" {
		t.Fatalf("parameters mismatch (-want +got):\n%s", diff)
	}
}

func TestParseKeepsDisplayTextPlain(t *testing.T) {
	doc := []byte("namespace: Demo\nconstructor: Slider\ndisplayName: Price & size\ndescription: '<i>Min</i> < \"max\"'\n")
	m, err := Parse(doc, "demo.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.DisplayName != "Price & size" {
		t.Fatalf("expected plain display name, got %q", m.DisplayName)
	}
	if m.Description != `Min < "max"` {
		t.Fatalf("expected plain description, got %q", m.Description)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"empty":       "   ",
		"invalid":     ": : :",
		"constructor": "namespace: x\nproperties: []\n",
		"duplicate":   "constructor: c\nproperties:\n  - {name: A, ofType: Decimal}\n  - {name: A, ofType: Decimal}\n",
		"type":        "constructor: c\nproperties:\n  - {name: A, ofType: Lookup.Simple}\n",
		"default":     "constructor: c\nproperties:\n  - {name: A, ofType: Decimal, default: abc}\n",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc), name+".yaml"); err == nil {
			t.Fatalf("%s: expected parse error", name)
		}
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"controls/slider.yaml": {Data: []byte("constructor: Slider\nproperties:\n  - {name: ToolTips, ofType: TwoOptions, default: true}\n")},
	}
	m, err := LoadFS(fsys, "controls/slider.yaml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.Source != "controls/slider.yaml" {
		t.Fatalf("unexpected source %q", m.Source)
	}
	if _, err := LoadFS(fsys, "missing.yaml"); err == nil || !strings.Contains(err.Error(), "missing.yaml") {
		t.Fatalf("expected read error naming the path, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slider.json")
	payload := `{"namespace":"Demo","constructor":"Slider","properties":[{"name":"StepValue","ofType":"Decimal","default":5}]}`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	m, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.ID() != "Demo.Slider" || m.Source != path {
		t.Fatalf("unexpected manifest %q from %q", m.ID(), m.Source)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParseOverrides(t *testing.T) {
	got, err := ParseOverrides([]string{"StepValue=5", " ToolTips = true "})
	if err != nil {
		t.Fatalf("parse overrides: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"StepValue": "5", "ToolTips": "true"}, got); diff != "" {
		t.Fatalf("overrides mismatch (-want +got):\n%s", diff)
	}
	if _, err := ParseOverrides([]string{"novalue"}); err == nil {
		t.Fatalf("expected error for malformed override")
	}
}
