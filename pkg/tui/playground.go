package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-rangeslider/pkg/host"
	"github.com/goliatone/go-rangeslider/pkg/nouislider"
	"github.com/goliatone/go-rangeslider/pkg/rangeslider"
)

// Menu entries in display order.
const (
	ActionMoveLower = iota
	ActionMoveUpper
	ActionTap
	ActionNudge
	ActionShowOutputs
	ActionQuit
)

var actions = []string{
	"Move lower handle",
	"Move upper handle",
	"Tap the track",
	"Nudge a handle",
	"Show outputs",
	"Quit",
}

var handles = []string{"Lower", "Upper"}

// Option configures a Playground.
type Option func(*Playground)

// WithPromptDriver overrides the prompt driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(p *Playground) {
		if driver != nil {
			p.driver = driver
		}
	}
}

// WithLogger sets the logger handed to the control and the slider.
func WithLogger(logger *logrus.Entry) Option {
	return func(p *Playground) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Playground hosts one control in the terminal.
type Playground struct {
	driver PromptDriver
	params host.Parameters
	logger *logrus.Entry

	mu  sync.Mutex
	ctx context.Context
}

// NewPlayground builds a playground for the given property bag.
func NewPlayground(params host.Parameters, opts ...Option) *Playground {
	p := &Playground{params: params.Clone()}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if p.driver == nil {
		p.driver = NewSurveyDriver(nil)
	}
	if p.logger == nil {
		p.logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return p
}

// Run starts the control and loops over the menu until the user quits. It
// returns the outputs at the time of quitting.
func (p *Playground) Run(ctx context.Context) (rangeslider.Outputs, error) {
	p.mu.Lock()
	p.ctx = ctx
	p.mu.Unlock()

	control := rangeslider.New(
		rangeslider.WithFactory(nouislider.NewFactory(p.logger)),
		rangeslider.WithLogger(p.logger),
	)
	runtime := host.NewRuntime[rangeslider.Outputs](control, p.params, p.logger)
	runtime.OnOutputs(p.printOutputs)
	if err := runtime.Start(); err != nil {
		return rangeslider.Outputs{}, err
	}
	defer runtime.Stop()

	slider, ok := control.Widget().(*nouislider.Slider)
	if !ok {
		return rangeslider.Outputs{}, fmt.Errorf("tui: unexpected widget %T", control.Widget())
	}
	opts := slider.Options()
	if err := p.driver.Info(ctx, fmt.Sprintf("Range %s to %s, step %s, behaviour %q",
		formatValue(opts.Range.Min), formatValue(opts.Range.Max), formatValue(opts.Step), opts.Behaviour)); err != nil {
		return rangeslider.Outputs{}, err
	}

	for {
		choice, err := p.driver.Select(ctx, SelectConfig{
			Message:  "Action",
			Options:  actions,
			PageSize: len(actions),
		})
		if err != nil {
			return runtime.Outputs(), err
		}
		if choice == ActionQuit {
			return runtime.Outputs(), nil
		}
		if err := p.perform(ctx, choice, slider, runtime); err != nil {
			return runtime.Outputs(), err
		}
	}
}

func (p *Playground) perform(ctx context.Context, choice int, slider *nouislider.Slider, runtime *host.Runtime[rangeslider.Outputs]) error {
	var err error
	switch choice {
	case ActionMoveLower, ActionMoveUpper:
		var value float64
		value, err = p.askNumber(ctx, fmt.Sprintf("%s handle value", handles[choice]))
		if err == nil {
			err = slider.Set(choice, value)
		}
	case ActionTap:
		var value float64
		value, err = p.askNumber(ctx, "Tap at")
		if err == nil {
			err = slider.Tap(value)
		}
	case ActionNudge:
		var handle int
		handle, err = p.driver.Select(ctx, SelectConfig{Message: "Handle", Options: handles})
		if err != nil {
			return err
		}
		var steps int
		steps, err = p.askSteps(ctx)
		if err == nil {
			err = slider.Nudge(handle, steps)
		}
	case ActionShowOutputs:
		p.printOutputs(runtime.Outputs())
		return nil
	default:
		return fmt.Errorf("tui: unknown action %d", choice)
	}
	if errors.Is(err, nouislider.ErrTapDisabled) {
		return p.driver.Info(ctx, "Tapping is disabled by the behaviour string.")
	}
	return err
}

func (p *Playground) askNumber(ctx context.Context, message string) (float64, error) {
	raw, err := p.driver.Input(ctx, InputConfig{
		Message: message,
		Validator: func(s string) error {
			_, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			return err
		},
	})
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("tui: %q is not a number", raw)
	}
	return value, nil
}

func (p *Playground) askSteps(ctx context.Context) (int, error) {
	raw, err := p.driver.Input(ctx, InputConfig{
		Message: "Steps (negative moves left)",
		Validator: func(s string) error {
			if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
				return fmt.Errorf("enter a whole number of steps")
			}
			return nil
		},
	})
	if err != nil {
		return 0, err
	}
	steps, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("tui: %q is not a whole number", raw)
	}
	return steps, nil
}

func (p *Playground) printOutputs(outputs rangeslider.Outputs) {
	p.mu.Lock()
	ctx := p.ctx
	p.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}
	msg := fmt.Sprintf("%s=%s %s=%s",
		rangeslider.OutputSelectedLowerValue, formatValue(outputs.SelectedLowerValue),
		rangeslider.OutputSelectedUpperValue, formatValue(outputs.SelectedUpperValue))
	if err := p.driver.Info(ctx, msg); err != nil {
		p.logger.WithError(err).Debug("print outputs")
	}
}

func formatValue(value float64) string {
	if math.IsNaN(value) {
		return "NaN"
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
