package rangeslider

import (
	"math"
	"strconv"

	"github.com/goliatone/go-rangeslider/pkg/host"
)

// Property names read from the host property bag.
const (
	ParamStartLowerValue = "StartLowerValue"
	ParamStartUpperValue = "StartUpperValue"
	ParamRangeLowerValue = "RangeLowerValue"
	ParamRangeUpperValue = "RangeUpperValue"
	ParamStepValue       = "StepValue"
	ParamToolTips        = "ToolTips"
	ParamBehaviourString = "BehaviourString"
	ParamHandlePadding   = "HandlePadding"
	ParamPaddingTop      = "PaddingTop"
	ParamPaddingBottom   = "PaddingBottom"
	ParamPaddingLeft     = "PaddingLeft"
	ParamPaddingRight    = "PaddingRight"

	OutputSelectedLowerValue = "SelectedLowerValue"
	OutputSelectedUpperValue = "SelectedUpperValue"
)

// Fallbacks applied when a property is absent or zero-valued.
const (
	DefaultStartLower = 20.0
	DefaultStartUpper = 80.0
	DefaultRangeLower = 0.0
	DefaultRangeUpper = 100.0
	DefaultStep       = 10.0
	DefaultBehaviour  = "drag-tap-smooth-steps"
)

// Resolve returns value unless it is the zero value for its type (or NaN),
// in which case fallback is returned.
func Resolve[T comparable](value T, fallback T) T {
	var zero T
	if value == zero {
		return fallback
	}
	if f, ok := any(value).(float64); ok && math.IsNaN(f) {
		return fallback
	}
	return value
}

// Padding is the outer wrapper spacing in pixels.
type Padding struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// RenderConfig is the configuration snapshot captured once when the widget is
// rendered.
type RenderConfig struct {
	StartLower    float64
	StartUpper    float64
	RangeLower    float64
	RangeUpper    float64
	Step          float64
	ToolTips      bool
	Behaviour     string
	HandlePadding float64
	Padding       Padding

	startLowerSet bool
	startUpperSet bool
}

// ReadConfig captures a RenderConfig from the property bag with the fallback
// defaults applied.
func ReadConfig(params host.Parameters) RenderConfig {
	num := func(name string) float64 {
		v, _ := params.Number(name)
		return v
	}
	str := func(name string) string {
		v, _ := params.String(name)
		return v
	}
	tooltips, _ := params.Bool(ParamToolTips)

	cfg := RenderConfig{
		StartLower:    Resolve(num(ParamStartLowerValue), DefaultStartLower),
		StartUpper:    Resolve(num(ParamStartUpperValue), DefaultStartUpper),
		RangeLower:    Resolve(num(ParamRangeLowerValue), DefaultRangeLower),
		RangeUpper:    Resolve(num(ParamRangeUpperValue), DefaultRangeUpper),
		Step:          Resolve(num(ParamStepValue), DefaultStep),
		ToolTips:      tooltips,
		Behaviour:     Resolve(str(ParamBehaviourString), DefaultBehaviour),
		HandlePadding: Resolve(num(ParamHandlePadding), 0),
		Padding: Padding{
			Top:    Resolve(num(ParamPaddingTop), 0),
			Bottom: Resolve(num(ParamPaddingBottom), 0),
			Left:   Resolve(num(ParamPaddingLeft), 0),
			Right:  Resolve(num(ParamPaddingRight), 0),
		},
	}
	cfg.startLowerSet = Resolve(num(ParamStartLowerValue), 0) != 0
	cfg.startUpperSet = Resolve(num(ParamStartUpperValue), 0) != 0
	return cfg
}

// WidgetOptions maps the snapshot onto widget creation options.
func (c RenderConfig) WidgetOptions() WidgetOptions {
	return WidgetOptions{
		Start:     [2]float64{c.StartLower, c.StartUpper},
		Range:     Range{Min: c.RangeLower, Max: c.RangeUpper},
		Step:      c.Step,
		Direction: DirectionLTR,
		Connect:   true,
		Padding:   c.HandlePadding,
		Tooltips:  c.ToolTips,
		Behaviour: c.Behaviour,
	}
}

// InitialOutputs seeds the output state. Unset start values fall back to the
// range bounds rather than the widget's start defaults.
func (c RenderConfig) InitialOutputs() OutputState {
	state := OutputState{Lower: c.RangeLower, Upper: c.RangeUpper}
	if c.startLowerSet {
		state.Lower = c.StartLower
	}
	if c.startUpperSet {
		state.Upper = c.StartUpper
	}
	return state
}

// OutputState holds the two selected values.
type OutputState struct {
	Lower float64
	Upper float64
}

// Outputs is the record returned to the host.
type Outputs struct {
	SelectedLowerValue float64 `json:"SelectedLowerValue" yaml:"SelectedLowerValue"`
	SelectedUpperValue float64 `json:"SelectedUpperValue" yaml:"SelectedUpperValue"`
}

// Outputs converts the state into the host output record.
func (s OutputState) Outputs() Outputs {
	return Outputs{SelectedLowerValue: s.Lower, SelectedUpperValue: s.Upper}
}

func px(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64) + "px"
}

// MarshalJSON encodes non-finite values (an unparsable widget value) as null
// since JSON has no NaN.
func (o Outputs) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, 64)
	buf = append(buf, `{"SelectedLowerValue":`...)
	buf = appendJSONNumber(buf, o.SelectedLowerValue)
	buf = append(buf, `,"SelectedUpperValue":`...)
	buf = appendJSONNumber(buf, o.SelectedUpperValue)
	buf = append(buf, '}')
	return buf, nil
}

func appendJSONNumber(buf []byte, value float64) []byte {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return append(buf, "null"...)
	}
	return strconv.AppendFloat(buf, value, 'f', -1, 64)
}
