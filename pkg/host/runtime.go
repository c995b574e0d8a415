package host

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-rangeslider/pkg/dom"
)

// OutputObserver receives the outputs pulled after each notification.
type OutputObserver[O any] func(O)

// Runtime drives a StandardControl the way a form host does: it owns the
// container, calls UpdateView after Init and pulls outputs every time the
// control signals a change.
type Runtime[O any] struct {
	mu        sync.Mutex
	control   StandardControl[O]
	ctx       *Context
	container *dom.Element
	state     Dictionary
	observers []OutputObserver[O]
	notified  int
	started   bool
	logger    *logrus.Entry
}

// NewRuntime wraps control with a fresh container element.
func NewRuntime[O any](control StandardControl[O], params Parameters, logger *logrus.Entry) *Runtime[O] {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	container := dom.New("div")
	container.AddClass("control-container")
	return &Runtime[O]{
		control:   control,
		ctx:       NewContext(params),
		container: container,
		state:     Dictionary{},
		logger:    logger.WithField("component", "host"),
	}
}

// OnOutputs registers an observer for pulled outputs.
func (r *Runtime[O]) OnOutputs(fn OutputObserver[O]) {
	if r == nil || fn == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, fn)
}

// Start runs Init followed by the first UpdateView.
func (r *Runtime[O]) Start() error {
	if r == nil || r.control == nil {
		return fmt.Errorf("host: missing control")
	}
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return fmt.Errorf("host: runtime already started")
	}
	r.started = true
	ctx := r.ctx
	r.mu.Unlock()

	if err := r.control.Init(ctx, r.notify, r.state, r.container); err != nil {
		return fmt.Errorf("host: init control: %w", err)
	}
	return r.refresh()
}

// refresh calls UpdateView with the current context.
func (r *Runtime[O]) refresh() error {
	r.mu.Lock()
	ctx := r.ctx
	r.mu.Unlock()
	if err := r.control.UpdateView(ctx); err != nil {
		return fmt.Errorf("host: update view: %w", err)
	}
	return nil
}

// Outputs pulls the current outputs from the control.
func (r *Runtime[O]) Outputs() O {
	return r.control.GetOutputs()
}

// Notifications reports how many change notifications the control raised.
func (r *Runtime[O]) Notifications() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.notified
}

// Container exposes the mount element handed to the control.
func (r *Runtime[O]) Container() *dom.Element {
	return r.container
}

// Stop destroys the control. It is safe to call more than once.
func (r *Runtime[O]) Stop() {
	if r == nil || r.control == nil {
		return
	}
	r.control.Destroy()
}

func (r *Runtime[O]) notify() {
	r.mu.Lock()
	r.notified++
	observers := append([]OutputObserver[O](nil), r.observers...)
	r.mu.Unlock()

	outputs := r.control.GetOutputs()
	r.logger.WithField("outputs", outputs).Debug("outputs changed")
	for _, fn := range observers {
		fn(outputs)
	}
}
