package nouislider

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-rangeslider/pkg/dom"
	"github.com/goliatone/go-rangeslider/pkg/host"
	"github.com/goliatone/go-rangeslider/pkg/rangeslider"
)

func baseOptions() rangeslider.WidgetOptions {
	return rangeslider.WidgetOptions{
		Start:     [2]float64{20, 80},
		Range:     rangeslider.Range{Min: 0, Max: 100},
		Step:      10,
		Direction: rangeslider.DirectionLTR,
		Connect:   true,
		Behaviour: rangeslider.DefaultBehaviour,
	}
}

func newSlider(t *testing.T, opts rangeslider.WidgetOptions) (*Slider, *dom.Element) {
	t.Helper()
	mount := dom.New("div")
	mount.ID = "mount"
	s, err := NewFactory(nil).New(mount, opts)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return s, mount
}

func collect(s *Slider) *[]rangeslider.UpdateEvent {
	events := &[]rangeslider.UpdateEvent{}
	s.On(rangeslider.EventUpdate, func(ev rangeslider.UpdateEvent) {
		*events = append(*events, ev)
	})
	return events
}

func TestSlider_FiresUpdateForEachHandleOnBind(t *testing.T) {
	s, _ := newSlider(t, baseOptions())
	events := collect(s)

	if len(*events) != 2 {
		t.Fatalf("expected 2 bind events, got %d", len(*events))
	}
	if diff := cmp.Diff([]string{"20.00", "80.00"}, (*events)[0].Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if (*events)[0].Handle != 0 || (*events)[1].Handle != 1 {
		t.Fatalf("unexpected handles: %d %d", (*events)[0].Handle, (*events)[1].Handle)
	}
}

func TestSlider_SetQuantisesAndClamps(t *testing.T) {
	s, _ := newSlider(t, baseOptions())

	cases := []struct {
		handle int
		value  float64
		want   [2]float64
	}{
		{0, 33, [2]float64{30, 80}},
		{0, 95, [2]float64{80, 80}},
		{0, -40, [2]float64{0, 80}},
		{1, 4, [2]float64{0, 0}},
		{1, 200, [2]float64{0, 100}},
	}
	for _, tc := range cases {
		if err := s.Set(tc.handle, tc.value); err != nil {
			t.Fatalf("set(%d, %v): %v", tc.handle, tc.value, err)
		}
		if got := s.Values(); got != tc.want {
			t.Fatalf("set(%d, %v) = %v, want %v", tc.handle, tc.value, got, tc.want)
		}
	}
}

func TestSlider_PaddingLimitsHandles(t *testing.T) {
	opts := baseOptions()
	opts.Padding = 10
	opts.Start = [2]float64{0, 100}
	s, _ := newSlider(t, opts)

	if got := s.Values(); got != [2]float64{10, 90} {
		t.Fatalf("expected padded start values, got %v", got)
	}
}

func TestSlider_UnconstrainedHandlesMayCross(t *testing.T) {
	opts := baseOptions()
	opts.Behaviour = "unconstrained-tap"
	s, _ := newSlider(t, opts)

	if err := s.Set(0, 90); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got := s.Values(); got != [2]float64{90, 80} {
		t.Fatalf("expected crossing handles, got %v", got)
	}
}

func TestSlider_TapMovesNearestHandle(t *testing.T) {
	s, _ := newSlider(t, baseOptions())
	events := collect(s)

	if err := s.Tap(70); err != nil {
		t.Fatalf("tap: %v", err)
	}
	last := (*events)[len(*events)-1]
	if last.Handle != 1 || !last.Tap || last.Values[1] != "70.00" {
		t.Fatalf("unexpected tap event: %#v", last)
	}
}

func TestSlider_TapDisabled(t *testing.T) {
	opts := baseOptions()
	opts.Behaviour = "drag"
	s, _ := newSlider(t, opts)
	if err := s.Tap(50); !errors.Is(err, ErrTapDisabled) {
		t.Fatalf("expected ErrTapDisabled, got %v", err)
	}
}

func TestSlider_NudgeUsesStep(t *testing.T) {
	s, _ := newSlider(t, baseOptions())
	if err := s.Nudge(0, 2); err != nil {
		t.Fatalf("nudge: %v", err)
	}
	if err := s.Nudge(1, -1); err != nil {
		t.Fatalf("nudge: %v", err)
	}
	if got := s.Values(); got != [2]float64{40, 70} {
		t.Fatalf("unexpected values after nudge: %v", got)
	}
}

func TestSlider_ApplyPassesValuesThrough(t *testing.T) {
	s, _ := newSlider(t, baseOptions())
	events := collect(s)

	if err := s.Apply([]string{"35.50", "80.00"}, 0, true); err != nil {
		t.Fatalf("apply: %v", err)
	}
	last := (*events)[len(*events)-1]
	if last.Values[0] != "35.50" || !last.Tap {
		t.Fatalf("unexpected relayed event: %#v", last)
	}
	if got := s.Values(); got[0] != 35.5 {
		t.Fatalf("expected stored value 35.5, got %v", got)
	}
}

func TestSlider_OffByNamespace(t *testing.T) {
	s, _ := newSlider(t, baseOptions())
	calls := map[string]int{}
	s.On("update.a", func(rangeslider.UpdateEvent) { calls["a"]++ })
	s.On("update.b", func(rangeslider.UpdateEvent) { calls["b"]++ })
	s.Off("update.a")

	if err := s.Set(0, 10); err != nil {
		t.Fatalf("set: %v", err)
	}
	if calls["a"] != 2 || calls["b"] != 3 {
		t.Fatalf("unexpected call counts: %v", calls)
	}
}

func TestSlider_DestroyClearsMount(t *testing.T) {
	s, mount := newSlider(t, baseOptions())
	if !mount.HasClass(ClassTarget) {
		t.Fatalf("expected mount marked as target")
	}
	if _, ok := mount.Attr(OptionsAttr); !ok {
		t.Fatalf("expected options attribute")
	}

	s.Destroy()
	s.Destroy()

	if mount.HasClass(ClassTarget) || len(mount.Children()) != 0 {
		t.Fatalf("expected mount cleaned up: %s", mount.HTML())
	}
	if err := s.Set(0, 10); !errors.Is(err, ErrDestroyed) {
		t.Fatalf("expected ErrDestroyed, got %v", err)
	}
}

func TestFactory_RejectsSecondSliderOnMount(t *testing.T) {
	_, mount := newSlider(t, baseOptions())
	if _, err := NewFactory(nil).Create(mount, baseOptions()); !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("expected ErrAlreadyInitialized, got %v", err)
	}
}

func TestFactory_ValidatesOptions(t *testing.T) {
	bad := []func(*rangeslider.WidgetOptions){
		func(o *rangeslider.WidgetOptions) { o.Range = rangeslider.Range{Min: 10, Max: 10} },
		func(o *rangeslider.WidgetOptions) { o.Step = -1 },
		func(o *rangeslider.WidgetOptions) { o.Padding = 60 },
		func(o *rangeslider.WidgetOptions) { o.Direction = "up" },
	}
	for idx, mutate := range bad {
		opts := baseOptions()
		mutate(&opts)
		if _, err := NewFactory(nil).Create(dom.New("div"), opts); err == nil {
			t.Fatalf("case %d: expected validation error", idx)
		}
	}
}

func TestSlider_DrivesControlThroughRuntime(t *testing.T) {
	control := rangeslider.New(rangeslider.WithFactory(NewFactory(nil)))
	runtime := host.NewRuntime[rangeslider.Outputs](control, host.Parameters{
		rangeslider.ParamStartLowerValue: {Raw: 20.0},
		rangeslider.ParamStartUpperValue: {Raw: 80.0},
	}, nil)
	if err := runtime.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if runtime.Notifications() != 2 {
		t.Fatalf("expected bind notifications for both handles, got %d", runtime.Notifications())
	}

	slider, ok := control.Widget().(*Slider)
	if !ok {
		t.Fatalf("expected *Slider widget, got %T", control.Widget())
	}
	if err := slider.Set(1, 64); err != nil {
		t.Fatalf("set: %v", err)
	}
	if diff := cmp.Diff(rangeslider.Outputs{SelectedLowerValue: 20, SelectedUpperValue: 60}, runtime.Outputs()); diff != "" {
		t.Fatalf("outputs mismatch (-want +got):\n%s", diff)
	}

	runtime.Stop()
	if err := slider.Set(0, 10); !errors.Is(err, ErrDestroyed) {
		t.Fatalf("expected slider destroyed with control, got %v", err)
	}
}
