package rangeslider

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-rangeslider/pkg/dom"
	"github.com/goliatone/go-rangeslider/pkg/host"
)

var (
	// ErrNoContainer is returned by Init when the host supplies no mount point.
	ErrNoContainer = errors.New("rangeslider: missing container")
	// ErrNoFactory is returned when rendering without a widget factory.
	ErrNoFactory = errors.New("rangeslider: missing widget factory")
	// ErrDestroyed is returned by Init on a destroyed control.
	ErrDestroyed = errors.New("rangeslider: control destroyed")
)

// State is the lifecycle position of a Control.
type State int

const (
	StateConstructed State = iota
	StateInitialized
	StateRendered
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateInitialized:
		return "initialized"
	case StateRendered:
		return "rendered"
	case StateDestroyed:
		return "destroyed"
	}
	return "unknown"
}

// Control is the dual-handle range slider component. It implements
// host.StandardControl[Outputs].
type Control struct {
	opts Options

	mu        sync.Mutex
	state     State
	ctx       *host.Context
	notify    host.NotifyFunc
	container *dom.Element
	wrapper   *dom.Element
	mount     *dom.Element
	widget    Handle
	rendering bool
	config    RenderConfig
	output    OutputState
}

var _ host.StandardControl[Outputs] = (*Control)(nil)

// New constructs a control. No work happens until Init.
func New(fns ...OptionFn) *Control {
	return &Control{opts: NewOptions(fns...)}
}

// Init stores the host collaborators, builds the wrapper and mount elements
// and seeds the outputs. With the eager strategy the widget is rendered here.
func (c *Control) Init(ctx *host.Context, notify host.NotifyFunc, state host.Dictionary, container *dom.Element) error {
	if container == nil {
		return ErrNoContainer
	}

	c.mu.Lock()
	if c.state == StateDestroyed {
		c.mu.Unlock()
		return ErrDestroyed
	}
	if c.state != StateConstructed {
		c.mu.Unlock()
		return fmt.Errorf("rangeslider: init called in state %s", c.state)
	}
	if ctx == nil {
		ctx = host.NewContext(nil)
	}
	c.ctx = ctx
	c.notify = notify
	c.container = container

	cfg := ReadConfig(ctx.Parameters)
	wrapper := dom.New("div")
	wrapper.AddClass(WrapperClass)
	wrapper.SetStyle("padding-top", px(cfg.Padding.Top))
	wrapper.SetStyle("padding-bottom", px(cfg.Padding.Bottom))
	wrapper.SetStyle("padding-left", px(cfg.Padding.Left))
	wrapper.SetStyle("padding-right", px(cfg.Padding.Right))

	mount := dom.New("div")
	mount.ID = c.opts.IDFunc()
	wrapper.AppendChild(mount)
	container.AppendChild(wrapper)

	c.wrapper = wrapper
	c.mount = mount
	c.output = cfg.InitialOutputs()
	c.state = StateInitialized
	c.mu.Unlock()

	c.opts.Logger.WithField("mount", mount.ID).Debug("control initialized")

	if c.opts.Strategy == RenderEager {
		return c.render(ctx)
	}
	return nil
}

// UpdateView renders the widget the first time it is called under the
// deferred strategy. Later calls are no-ops.
func (c *Control) UpdateView(ctx *host.Context) error {
	c.mu.Lock()
	state := c.state
	if ctx == nil {
		ctx = c.ctx
	}
	c.mu.Unlock()

	if state != StateInitialized {
		return nil
	}
	return c.render(ctx)
}

func (c *Control) render(ctx *host.Context) error {
	if c.opts.Factory == nil {
		return ErrNoFactory
	}

	c.mu.Lock()
	if c.state != StateInitialized || c.rendering {
		c.mu.Unlock()
		return nil
	}
	c.rendering = true
	c.ctx = ctx
	c.config = ReadConfig(ctx.Parameters)
	mount := c.mount
	opts := c.config.WidgetOptions()
	c.mu.Unlock()

	widget, err := c.opts.Factory.Create(mount, opts)

	c.mu.Lock()
	c.rendering = false
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("rangeslider: create widget: %w", err)
	}
	if c.state == StateDestroyed {
		c.mu.Unlock()
		widget.Off(EventUpdate)
		widget.Destroy()
		return ErrDestroyed
	}
	c.widget = widget
	c.state = StateRendered
	c.mu.Unlock()

	c.opts.Logger.WithFields(logrus.Fields{
		"mount": mount.ID,
		"range": opts.Range,
		"step":  opts.Step,
	}).Debug("widget rendered")

	// The widget may fire update synchronously on subscription, so the lock
	// must not be held here.
	widget.On(EventUpdate, c.HandleUpdate)
	return nil
}

// HandleUpdate applies one widget update event: the value of the moved handle
// is parsed and stored on the matching side, then the host is notified. The
// notifier fires once per event, also when the value did not change or did
// not parse.
func (c *Control) HandleUpdate(event UpdateEvent) {
	raw := ""
	if event.Handle >= 0 && event.Handle < len(event.Values) {
		raw = event.Values[event.Handle]
	}
	value := parseFloat(raw)

	c.mu.Lock()
	if c.state == StateDestroyed {
		c.mu.Unlock()
		return
	}
	nan := math.IsNaN(value)
	switch {
	case nan && c.opts.KeepLastOnNaN:
	case event.Handle == 0:
		c.output.Lower = value
	default:
		c.output.Upper = value
	}
	notify := c.notify
	c.mu.Unlock()

	if nan {
		c.opts.Logger.WithFields(logrus.Fields{
			"handle": event.Handle,
			"raw":    raw,
		}).Warn("widget reported a non-numeric value")
	}
	if notify != nil {
		notify()
	}
}

// GetOutputs returns the current selected values.
func (c *Control) GetOutputs() Outputs {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.output.Outputs()
}

// Destroy unsubscribes from the widget, tears it down and detaches the
// wrapper. Outputs keep their last values. Calling Destroy more than once, or
// before Init, is safe.
func (c *Control) Destroy() {
	c.mu.Lock()
	if c.state == StateDestroyed {
		c.mu.Unlock()
		return
	}
	widget := c.widget
	wrapper := c.wrapper
	c.widget = nil
	c.wrapper = nil
	c.mount = nil
	c.container = nil
	c.notify = nil
	c.ctx = nil
	c.state = StateDestroyed
	c.mu.Unlock()

	if widget != nil {
		widget.Off(EventUpdate)
		widget.Destroy()
	}
	if wrapper != nil {
		wrapper.Remove()
	}
	c.opts.Logger.Debug("control destroyed")
}

// State reports the lifecycle state.
func (c *Control) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Config returns the snapshot captured at render time. It is the zero value
// before rendering.
func (c *Control) Config() RenderConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config
}

// Widget returns the rendered widget handle, or nil.
func (c *Control) Widget() Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.widget
}

// Mount returns the element the widget is mounted on, or nil once destroyed.
func (c *Control) Mount() *dom.Element {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mount
}

// parseFloat reads the longest leading decimal literal the way a browser
// parseFloat does: leading whitespace is skipped, an optional sign and
// "Infinity" are accepted, hex and digit separators are not, and overflow
// becomes an infinity. No literal at all is NaN.
func parseFloat(raw string) float64 {
	s := strings.TrimLeftFunc(raw, unicode.IsSpace)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	digitsFrom := func(at int) int {
		for at < len(s) && s[at] >= '0' && s[at] <= '9' {
			at++
		}
		return at
	}

	end := digitsFrom(i)
	intDigits := end - i
	if end < len(s) && s[end] == '.' {
		if frac := digitsFrom(end + 1); frac > end+1 {
			end = frac
		} else if intDigits > 0 {
			end = frac
		}
	}
	if intDigits == 0 && end == i {
		return math.NaN()
	}
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		at := end + 1
		if at < len(s) && (s[at] == '+' || s[at] == '-') {
			at++
		}
		if exp := digitsFrom(at); exp > at {
			end = exp
		}
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return v
		}
		return math.NaN()
	}
	return v
}
