package rangeslider

import (
	"encoding/json"
	"math"
	"testing"
)

func TestResolve(t *testing.T) {
	if got := Resolve(0.0, 10.0); got != 10 {
		t.Fatalf("expected fallback for zero, got %v", got)
	}
	if got := Resolve(math.NaN(), 10.0); got != 10 {
		t.Fatalf("expected fallback for NaN, got %v", got)
	}
	if got := Resolve(2.5, 10.0); got != 2.5 {
		t.Fatalf("expected value kept, got %v", got)
	}
	if got := Resolve("", DefaultBehaviour); got != DefaultBehaviour {
		t.Fatalf("expected behaviour fallback, got %q", got)
	}
	if got := Resolve("tap", DefaultBehaviour); got != "tap" {
		t.Fatalf("expected explicit behaviour, got %q", got)
	}
}

func TestReadConfig_StringAndIntegerRawValues(t *testing.T) {
	cfg := ReadConfig(params(map[string]any{
		ParamRangeUpperValue: "250",
		ParamStepValue:       25,
		ParamToolTips:        "true",
		ParamPaddingBottom:   8,
	}))
	if cfg.RangeUpper != 250 || cfg.Step != 25 || !cfg.ToolTips || cfg.Padding.Bottom != 8 {
		t.Fatalf("unexpected config: %#v", cfg)
	}
	if cfg.RangeLower != DefaultRangeLower || cfg.StartLower != DefaultStartLower || cfg.StartUpper != DefaultStartUpper {
		t.Fatalf("expected defaults for absent values: %#v", cfg)
	}
	initial := cfg.InitialOutputs()
	if initial.Lower != 0 || initial.Upper != 250 {
		t.Fatalf("expected outputs seeded from range bounds, got %#v", initial)
	}
}

func TestReadConfig_ZeroStartFallsBack(t *testing.T) {
	cfg := ReadConfig(params(map[string]any{ParamStartLowerValue: 0.0}))
	if cfg.StartLower != DefaultStartLower {
		t.Fatalf("expected zero start to fall back to %v, got %v", DefaultStartLower, cfg.StartLower)
	}
}

func TestOutputsMarshalJSON(t *testing.T) {
	data, err := json.Marshal(Outputs{SelectedLowerValue: 12.5, SelectedUpperValue: math.NaN()})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"SelectedLowerValue":12.5,"SelectedUpperValue":null}` {
		t.Fatalf("unexpected json: %s", data)
	}

	var decoded Outputs
	if err := json.Unmarshal([]byte(`{"SelectedLowerValue":1,"SelectedUpperValue":2}`), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.SelectedLowerValue != 1 || decoded.SelectedUpperValue != 2 {
		t.Fatalf("unexpected decoded outputs: %#v", decoded)
	}
}
