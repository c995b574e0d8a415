package server

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-rangeslider/pkg/host"
	"github.com/goliatone/go-rangeslider/pkg/nouislider"
	"github.com/goliatone/go-rangeslider/pkg/rangeslider"
)

// Frame types pushed to the browser.
const (
	FrameSession = "session"
	FrameOutputs = "outputs"
	FrameError   = "error"
)

// clientFrame is an update relayed by the browser copy of the slider.
type clientFrame struct {
	Event  string   `json:"event"`
	Values []string `json:"values"`
	Handle int      `json:"handle"`
	Tap    bool     `json:"tap"`
}

type serverFrame struct {
	Type    string               `json:"type"`
	Session string               `json:"session,omitempty"`
	Outputs *rangeslider.Outputs `json:"outputs,omitempty"`
	Error   string               `json:"error,omitempty"`
}

// Session is one hosted control bound to one websocket connection.
type Session struct {
	ID string

	runtime *host.Runtime[rangeslider.Outputs]
	control *rangeslider.Control
	slider  *nouislider.Slider
	conn    *websocket.Conn
	writeMu sync.Mutex
	logger  *logrus.Entry
}

// hostControl builds a control over a server side slider and starts it.
// observer runs on every notification, including the ones fired while the
// widget binds.
func hostControl(id string, params host.Parameters, logger *logrus.Entry, observer host.OutputObserver[rangeslider.Outputs]) (*host.Runtime[rangeslider.Outputs], *rangeslider.Control, *nouislider.Slider, error) {
	control := rangeslider.New(
		rangeslider.WithFactory(nouislider.NewFactory(logger)),
		rangeslider.WithLogger(logger),
		rangeslider.WithIDFunc(func() string { return "range-slider-" + id }),
	)
	runtime := host.NewRuntime[rangeslider.Outputs](control, params, logger)
	runtime.OnOutputs(observer)
	if err := runtime.Start(); err != nil {
		runtime.Stop()
		return nil, nil, nil, err
	}
	slider, ok := control.Widget().(*nouislider.Slider)
	if !ok {
		runtime.Stop()
		return nil, nil, nil, fmt.Errorf("server: unexpected widget %T", control.Widget())
	}
	return runtime, control, slider, nil
}

func newSessionID() string {
	return uuid.NewString()
}

// Outputs returns the current outputs of the hosted control.
func (s *Session) Outputs() rangeslider.Outputs {
	return s.runtime.Outputs()
}

func (s *Session) send(frame serverFrame) error {
	if s.conn == nil {
		return nil
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(frame)
}

func (s *Session) pushOutputs(outputs rangeslider.Outputs) {
	if err := s.send(serverFrame{Type: FrameOutputs, Session: s.ID, Outputs: &outputs}); err != nil {
		s.logger.WithError(err).Debug("push outputs failed")
	}
}

// apply relays one browser frame to the slider.
func (s *Session) apply(frame clientFrame) error {
	if frame.Event != rangeslider.EventUpdate {
		return fmt.Errorf("unsupported event %q", frame.Event)
	}
	if frame.Handle < 0 || frame.Handle > 1 {
		return fmt.Errorf("handle %d out of range", frame.Handle)
	}
	if len(frame.Values) != 2 {
		return errors.New("update needs the values of both handles")
	}
	return s.slider.Apply(frame.Values, frame.Handle, frame.Tap)
}

func (s *Session) close() {
	s.runtime.Stop()
	if s.conn != nil {
		_ = s.conn.Close()
	}
}

// sessionStore tracks connected sessions by id.
type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*Session)}
}

func (s *sessionStore) add(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
}

func (s *sessionStore) get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *sessionStore) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

func (s *sessionStore) drain() []*Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Session, 0, len(s.sessions))
	for id, sess := range s.sessions {
		out = append(out, sess)
		delete(s.sessions, id)
	}
	return out
}

func (s *sessionStore) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
