package rangeslider

import "github.com/goliatone/go-rangeslider/pkg/dom"

// EventUpdate is fired by the widget on every handle move: drag, tap,
// keyboard step and programmatic set.
const EventUpdate = "update"

// Direction values accepted by the widget.
const (
	DirectionLTR = "ltr"
	DirectionRTL = "rtl"
)

// Range bounds the selectable values.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// WidgetOptions are the creation options passed to the slider widget. The
// JSON names match the browser library so the struct can be shipped as-is.
type WidgetOptions struct {
	Start     [2]float64 `json:"start"`
	Range     Range      `json:"range"`
	Step      float64    `json:"step"`
	Direction string     `json:"direction"`
	Connect   bool       `json:"connect"`
	Padding   float64    `json:"padding"`
	Tooltips  bool       `json:"tooltips"`
	Behaviour string     `json:"behaviour"`
}

// UpdateEvent is the payload of an update event. Values holds the formatted
// value of every handle; Handle is the index of the handle that moved.
type UpdateEvent struct {
	Values    []string
	Handle    int
	Unencoded []float64
	Tap       bool
	Positions []float64
}

// Listener receives widget events.
type Listener func(UpdateEvent)

// Handle is a created widget instance.
type Handle interface {
	On(event string, fn Listener)
	Off(event string)
	Destroy()
}

// Factory creates widget instances on a mount element.
type Factory interface {
	Create(mount *dom.Element, opts WidgetOptions) (Handle, error)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(mount *dom.Element, opts WidgetOptions) (Handle, error)

// Create implements Factory.
func (f FactoryFunc) Create(mount *dom.Element, opts WidgetOptions) (Handle, error) {
	return f(mount, opts)
}
