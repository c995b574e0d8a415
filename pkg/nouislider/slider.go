package nouislider

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-rangeslider/pkg/dom"
	"github.com/goliatone/go-rangeslider/pkg/rangeslider"
)

// Class names written onto the mount element.
const (
	ClassTarget     = "noUi-target"
	ClassHorizontal = "noUi-horizontal"
	ClassTooltips   = "noUi-has-tooltips"

	// OptionsAttr carries the JSON creation options for the browser bundle.
	OptionsAttr = "data-slider-options"
)

var (
	// ErrAlreadyInitialized is returned when creating a slider on a mount that
	// already carries one.
	ErrAlreadyInitialized = errors.New("nouislider: slider was already initialized")
	// ErrTapDisabled is returned by Tap when the behaviour does not allow it.
	ErrTapDisabled = errors.New("nouislider: tap behaviour is disabled")
	// ErrDestroyed is returned by operations on a destroyed slider.
	ErrDestroyed = errors.New("nouislider: slider destroyed")
)

// Factory creates sliders. It satisfies rangeslider.Factory.
type Factory struct {
	logger *logrus.Entry
}

var _ rangeslider.Factory = (*Factory)(nil)

// NewFactory returns a factory logging through logger.
func NewFactory(logger *logrus.Entry) *Factory {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Factory{logger: logger.WithField("component", "nouislider")}
}

// Create validates opts, marks the mount and returns the slider.
func (f *Factory) Create(mount *dom.Element, opts rangeslider.WidgetOptions) (rangeslider.Handle, error) {
	return f.New(mount, opts)
}

// New is Create returning the concrete type.
func (f *Factory) New(mount *dom.Element, opts rangeslider.WidgetOptions) (*Slider, error) {
	if mount == nil {
		return nil, fmt.Errorf("nouislider: create requires a target element")
	}
	if mount.HasClass(ClassTarget) {
		return nil, ErrAlreadyInitialized
	}
	if err := validate(opts); err != nil {
		return nil, err
	}
	if opts.Direction == "" {
		opts.Direction = rangeslider.DirectionLTR
	}

	s := &Slider{
		mount:     mount,
		opts:      opts,
		behaviour: ParseBehaviour(opts.Behaviour),
		listeners: make(map[string][]namedListener),
		logger:    f.logger,
	}
	s.values[1] = opts.Range.Max
	s.values[0] = s.limit(0, opts.Start[0])
	s.values[1] = s.limit(1, opts.Start[1])
	if err := s.decorate(); err != nil {
		return nil, err
	}
	f.logger.WithFields(logrus.Fields{
		"mount":  mount.ID,
		"values": s.values,
	}).Debug("slider created")
	return s, nil
}

func validate(opts rangeslider.WidgetOptions) error {
	if math.IsNaN(opts.Range.Min) || math.IsNaN(opts.Range.Max) {
		return fmt.Errorf("nouislider: 'range' bounds must be numbers")
	}
	if opts.Range.Min >= opts.Range.Max {
		return fmt.Errorf("nouislider: 'range' 'min' (%v) must be below 'max' (%v)", opts.Range.Min, opts.Range.Max)
	}
	if opts.Step < 0 || math.IsNaN(opts.Step) {
		return fmt.Errorf("nouislider: 'step' must be a positive number")
	}
	if opts.Padding < 0 || opts.Padding*2 >= opts.Range.Max-opts.Range.Min {
		return fmt.Errorf("nouislider: 'padding' %v leaves no room on the track", opts.Padding)
	}
	switch opts.Direction {
	case "", rangeslider.DirectionLTR, rangeslider.DirectionRTL:
	default:
		return fmt.Errorf("nouislider: 'direction' %q not supported", opts.Direction)
	}
	return nil
}

type namedListener struct {
	namespace string
	fn        rangeslider.Listener
}

// Slider is a two handle slider bound to a mount element.
type Slider struct {
	mu        sync.Mutex
	mount     *dom.Element
	handles   [2]*dom.Element
	opts      rangeslider.WidgetOptions
	behaviour Behaviour
	values    [2]float64
	listeners map[string][]namedListener
	destroyed bool
	logger    *logrus.Entry
}

// Options returns the creation options.
func (s *Slider) Options() rangeslider.WidgetOptions {
	return s.opts
}

// Behaviour returns the parsed behaviour flags.
func (s *Slider) Behaviour() Behaviour {
	return s.behaviour
}

// Values returns the numeric handle values.
func (s *Slider) Values() [2]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values
}

// Get returns the formatted handle values.
func (s *Slider) Get() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.formatted()
}

// On subscribes fn to event. Events may carry a namespace ("update.form");
// the update event fires once per handle right away.
func (s *Slider) On(event string, fn rangeslider.Listener) {
	if fn == nil {
		return
	}
	name, namespace := splitEvent(event)
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	s.listeners[name] = append(s.listeners[name], namedListener{namespace: namespace, fn: fn})
	var initial []rangeslider.UpdateEvent
	if name == rangeslider.EventUpdate {
		for handle := range s.values {
			initial = append(initial, s.event(handle, false))
		}
	}
	s.mu.Unlock()

	for _, ev := range initial {
		fn(ev)
	}
}

// Off removes listeners. "update" removes every update listener, "update.ns"
// only the namespaced ones and ".ns" the namespace across events.
func (s *Slider) Off(event string) {
	name, namespace := splitEvent(event)
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entries := range s.listeners {
		if name != "" && key != name {
			continue
		}
		if namespace == "" {
			delete(s.listeners, key)
			continue
		}
		kept := entries[:0]
		for _, entry := range entries {
			if entry.namespace != namespace {
				kept = append(kept, entry)
			}
		}
		s.listeners[key] = kept
	}
}

// Set moves one handle. The value is quantised to the step, clamped by the
// padding and by the other handle, then update fires.
func (s *Slider) Set(handle int, value float64) error {
	return s.move(handle, value, false)
}

// Tap moves the handle closest to value, as a click on the track does.
func (s *Slider) Tap(value float64) error {
	s.mu.Lock()
	if !s.behaviour.Tap || s.behaviour.None {
		s.mu.Unlock()
		return ErrTapDisabled
	}
	handle := 0
	if math.Abs(value-s.values[1]) < math.Abs(value-s.values[0]) {
		handle = 1
	}
	if s.values[0] == s.values[1] && value > s.values[1] {
		handle = 1
	}
	s.mu.Unlock()
	return s.move(handle, value, true)
}

// Nudge moves a handle by a number of steps, as the arrow keys do.
func (s *Slider) Nudge(handle, steps int) error {
	s.mu.Lock()
	if handle < 0 || handle > 1 {
		s.mu.Unlock()
		return fmt.Errorf("nouislider: handle %d out of range", handle)
	}
	step := s.opts.Step
	if step == 0 {
		step = (s.opts.Range.Max - s.opts.Range.Min) / 100
	}
	target := s.values[handle] + float64(steps)*step
	s.mu.Unlock()
	return s.move(handle, target, false)
}

// Apply relays an update that already happened in a browser copy of the
// slider. The formatted values are passed on untouched; the stored numeric
// value follows when it parses.
func (s *Slider) Apply(values []string, handle int, tap bool) error {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return ErrDestroyed
	}
	if handle >= 0 && handle < len(s.values) && handle < len(values) {
		if v, err := strconv.ParseFloat(strings.TrimSpace(values[handle]), 64); err == nil {
			s.values[handle] = v
			s.updateHandle(handle)
		}
	}
	ev := rangeslider.UpdateEvent{
		Values:    append([]string(nil), values...),
		Handle:    handle,
		Unencoded: []float64{s.values[0], s.values[1]},
		Tap:       tap,
		Positions: s.positions(),
	}
	listeners := s.listenersFor(rangeslider.EventUpdate)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
	return nil
}

// Destroy removes listeners and the markup written onto the mount.
func (s *Slider) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.listeners = make(map[string][]namedListener)
	s.mount.RemoveClass(ClassTarget, ClassHorizontal, ClassTooltips, "noUi-"+s.opts.Direction)
	s.mount.RemoveAttr(OptionsAttr)
	for _, child := range s.mount.Children() {
		child.Remove()
	}
	s.logger.WithField("mount", s.mount.ID).Debug("slider destroyed")
}

func (s *Slider) move(handle int, value float64, tap bool) error {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return ErrDestroyed
	}
	if handle < 0 || handle > 1 {
		s.mu.Unlock()
		return fmt.Errorf("nouislider: handle %d out of range", handle)
	}
	if math.IsNaN(value) {
		s.mu.Unlock()
		return fmt.Errorf("nouislider: value for handle %d is not a number", handle)
	}
	s.values[handle] = s.limit(handle, value)
	s.updateHandle(handle)
	ev := s.event(handle, tap)
	listeners := s.listenersFor(rangeslider.EventUpdate)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
	return nil
}

// limit quantises value and keeps it inside the padded track and, unless
// unconstrained, on its side of the other handle.
func (s *Slider) limit(handle int, value float64) float64 {
	lo := s.opts.Range.Min + s.opts.Padding
	hi := s.opts.Range.Max - s.opts.Padding
	if step := s.opts.Step; step > 0 {
		value = s.opts.Range.Min + math.Round((value-s.opts.Range.Min)/step)*step
		value = roundTo(value, decimals(step))
	}
	if !s.behaviour.Unconstrained {
		if handle == 0 {
			hi = math.Min(hi, s.values[1])
		} else {
			lo = math.Max(lo, s.values[0])
		}
	}
	return math.Max(lo, math.Min(hi, value))
}

func (s *Slider) event(handle int, tap bool) rangeslider.UpdateEvent {
	return rangeslider.UpdateEvent{
		Values:    s.formatted(),
		Handle:    handle,
		Unencoded: []float64{s.values[0], s.values[1]},
		Tap:       tap,
		Positions: s.positions(),
	}
}

func (s *Slider) formatted() []string {
	return []string{format(s.values[0]), format(s.values[1])}
}

func (s *Slider) positions() []float64 {
	span := s.opts.Range.Max - s.opts.Range.Min
	out := make([]float64, len(s.values))
	for idx, v := range s.values {
		out[idx] = (v - s.opts.Range.Min) / span * 100
	}
	return out
}

func (s *Slider) listenersFor(name string) []rangeslider.Listener {
	entries := s.listeners[name]
	out := make([]rangeslider.Listener, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.fn)
	}
	return out
}

func (s *Slider) decorate() error {
	s.mount.AddClass(ClassTarget, "noUi-"+s.opts.Direction, ClassHorizontal)
	if s.opts.Tooltips {
		s.mount.AddClass(ClassTooltips)
	}
	payload, err := json.Marshal(s.opts)
	if err != nil {
		return fmt.Errorf("nouislider: encode options: %w", err)
	}
	s.mount.SetAttr(OptionsAttr, string(payload))

	base := dom.New("div")
	base.AddClass("noUi-base")
	connects := dom.New("div")
	connects.AddClass("noUi-connects")
	if s.opts.Connect {
		connect := dom.New("div")
		connect.AddClass("noUi-connect")
		connects.AppendChild(connect)
	}
	base.AppendChild(connects)
	for idx := range s.handles {
		origin := dom.New("div")
		origin.AddClass("noUi-origin")
		handle := dom.New("div")
		handle.AddClass("noUi-handle")
		if idx == 0 {
			handle.AddClass("noUi-handle-lower")
		} else {
			handle.AddClass("noUi-handle-upper")
		}
		handle.SetAttr("data-handle", strconv.Itoa(idx))
		origin.AppendChild(handle)
		base.AppendChild(origin)
		s.handles[idx] = handle
		s.updateHandle(idx)
	}
	s.mount.AppendChild(base)
	return nil
}

func (s *Slider) updateHandle(idx int) {
	handle := s.handles[idx]
	if handle == nil {
		return
	}
	handle.SetAttr("aria-valuenow", format(s.values[idx]))
	if s.opts.Tooltips {
		handle.SetAttr("data-tooltip", format(s.values[idx]))
	}
}

func splitEvent(event string) (string, string) {
	event = strings.TrimSpace(event)
	name, namespace, _ := strings.Cut(event, ".")
	return name, namespace
}

func format(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

func decimals(step float64) int {
	text := strconv.FormatFloat(step, 'f', -1, 64)
	if _, frac, ok := strings.Cut(text, "."); ok {
		return len(frac)
	}
	return 0
}

func roundTo(value float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(value*pow) / pow
}
