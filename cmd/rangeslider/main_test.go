package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

const schemaDoc = `openapi: 3.0.3
info: {title: catalog, version: 1.0.0}
paths: {}
components:
  schemas:
    PriceFilter:
      type: object
      properties:
        range:
          type: array
          items: {type: number, minimum: 0, maximum: 500, multipleOf: 25}
          default: [50, 300]
`

func TestManifestCommandAppliesSchemaAndOverrides(t *testing.T) {
	schemaPath := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(schemaPath, []byte(schemaDoc), 0o600); err != nil {
		t.Fatalf("write schema: %v", err)
	}

	out, err := execute(t, "manifest",
		"--schema", schemaPath,
		"--schema-name", "PriceFilter.range",
		"--set", "StepValue=50",
		"--set", "ToolTips=true",
	)
	if err != nil {
		t.Fatalf("manifest: %v\n%s", err, out)
	}

	var report manifestReport
	if err := yaml.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if report.Control != "FormControls.RangeSliderControl" {
		t.Fatalf("unexpected control %q", report.Control)
	}
	checks := map[string]any{
		"RangeUpperValue": 500.0,
		"StartLowerValue": 50.0,
		"StartUpperValue": 300.0,
		"StepValue":       50.0,
		"ToolTips":        true,
	}
	for name, want := range checks {
		got := report.Parameters[name]
		if n, ok := got.(int); ok {
			got = float64(n)
		}
		if got != want {
			t.Fatalf("%s: expected %v, got %v (%T)", name, want, got, got)
		}
	}
	if diff := cmp.Diff([]string{"SelectedLowerValue", "SelectedUpperValue"}, report.Outputs); diff != "" {
		t.Fatalf("outputs mismatch (-want +got):\n%s", diff)
	}
}

func TestSchemaRequiresName(t *testing.T) {
	if _, err := execute(t, "manifest", "--schema", "catalog.yaml"); err == nil || !strings.Contains(err.Error(), "--schema-name") {
		t.Fatalf("expected --schema-name error, got %v", err)
	}
}

func TestRenderCommandWritesPage(t *testing.T) {
	out, err := execute(t, "render", "--title", "Budget", "--set", "StartUpperValue=70")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, fragment := range []string{"<title>Budget</title>", "RangeSlider.mount", `data-output="SelectedUpperValue">70<`} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in page:\n%s", fragment, out)
		}
	}
}

func TestUnknownOverrideFails(t *testing.T) {
	if _, err := execute(t, "manifest", "--set", "Colour=red"); err == nil {
		t.Fatalf("expected error for unknown property")
	}
}

func TestVersionShort(t *testing.T) {
	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != version {
		t.Fatalf("expected %q, got %q", version, out)
	}
}

func TestInvalidLogOptions(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--log-format", "xml", "version"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for unknown log format")
	}
}

func TestLogFileOption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rangeslider.log")
	opts := &logOptions{Level: "debug", Format: "json", File: path}
	if err := opts.apply(); err != nil {
		t.Fatalf("apply: %v", err)
	}
	t.Cleanup(func() {
		_ = (&logOptions{Level: "info", Format: "text"}).apply()
	})
	logger().Info("hello")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Fatalf("expected json entry in log file, got %q", data)
	}
}
