package session

import (
	"fmt"
	"sync"

	"SafeSphere/pkg/nlp"
)

type Config struct {
	Language    nlp.SupportedLanguage
	Interpreter nlp.IInterpreter
	Observer    Observer
	// Continuous restarts listening after every recognized or empty utterance.
	Continuous  bool
	MaxRetries  int
	HistorySize int
}

// Machine is the continuous listening state machine of one voice session.
// Observer callbacks run after the lock is released.
type Machine struct {
	mu          sync.Mutex
	state       State
	failures    int
	language    nlp.SupportedLanguage
	interpreter nlp.IInterpreter
	observer    Observer
	continuous  bool
	maxRetries  int
	history     *History
}

func NewMachine(cfg Config) *Machine {
	m := &Machine{
		state:       StateIdle,
		language:    cfg.Language,
		interpreter: cfg.Interpreter,
		observer:    cfg.Observer,
		continuous:  cfg.Continuous,
		maxRetries:  cfg.MaxRetries,
		history:     NewHistory(cfg.HistorySize),
	}
	if m.interpreter == nil {
		m.interpreter = nlp.NewInterpreter()
	}
	if m.observer == nil {
		m.observer = nopObserver{}
	}
	if m.maxRetries <= 0 {
		m.maxRetries = DefaultMaxRetries
	}
	return m
}

type notification func(o Observer)

func (m *Machine) notify(events []notification) {
	for _, e := range events {
		e(m.observer)
	}
}

// move must be called with mu held.
func (m *Machine) move(to State, events []notification) []notification {
	from := m.state
	if from == to {
		return events
	}
	m.state = to
	return append(events, func(o Observer) { o.OnStateChange(from, to) })
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) Language() nlp.SupportedLanguage {
	return m.language
}

func (m *Machine) History() []nlp.VoiceCommand {
	return m.history.Items()
}

// Failures is the number of consecutive recognizer errors.
func (m *Machine) Failures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.failures
}

func (m *Machine) Start(readiness Readiness) error {
	m.mu.Lock()
	if m.state != StateIdle {
		state := m.state
		m.mu.Unlock()
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, state)
	}
	if !readiness.Ready() {
		m.mu.Unlock()
		return ErrNotReady
	}
	m.failures = 0
	events := m.move(StateListening, nil)
	m.mu.Unlock()

	m.notify(events)
	return nil
}

func (m *Machine) EndOfUtterance() error {
	m.mu.Lock()
	if m.state != StateListening {
		state := m.state
		m.mu.Unlock()
		return fmt.Errorf("%w: end of utterance in %s", ErrInvalidTransition, state)
	}
	events := m.move(StateRecognizing, nil)
	m.mu.Unlock()

	m.notify(events)
	return nil
}

// Complete finishes recognition. A transcript without any words leaves the
// machine Unrecognized and returns a nil command.
func (m *Machine) Complete(transcript string) (*nlp.VoiceCommand, error) {
	m.mu.Lock()
	if m.state != StateRecognizing {
		state := m.state
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: complete in %s", ErrInvalidTransition, state)
	}

	if len(nlp.Tokenize(transcript)) == 0 {
		events := m.move(StateUnrecognized, nil)
		m.mu.Unlock()
		m.notify(events)
		return nil, nil
	}

	m.failures = 0
	cmd := m.interpreter.Interpret(transcript, m.language)
	m.history.Add(cmd)
	events := m.move(StateDispatched, nil)
	events = append(events, func(o Observer) { o.OnCommand(cmd) })
	m.mu.Unlock()

	m.notify(events)
	return &cmd, nil
}

// Resume closes a recognition cycle: back to Listening in continuous mode,
// Idle otherwise.
func (m *Machine) Resume() (State, error) {
	m.mu.Lock()
	if m.state != StateDispatched && m.state != StateUnrecognized {
		state := m.state
		m.mu.Unlock()
		return state, fmt.Errorf("%w: resume from %s", ErrInvalidTransition, state)
	}
	next := StateIdle
	if m.continuous {
		next = StateListening
	}
	events := m.move(next, nil)
	m.mu.Unlock()

	m.notify(events)
	return next, nil
}

// Fail reports a recognizer error. The session keeps listening until
// maxRetries consecutive failures, then goes Idle.
func (m *Machine) Fail(err error) (State, error) {
	m.mu.Lock()
	if m.state != StateListening && m.state != StateRecognizing {
		state := m.state
		m.mu.Unlock()
		return state, fmt.Errorf("%w: recognizer error in %s", ErrInvalidTransition, state)
	}

	m.failures++
	attempt := m.failures
	events := []notification{func(o Observer) {
		o.OnAdvisory(fmt.Sprintf("speech recognition failed (%d/%d): %v", attempt, m.maxRetries, err))
	}}

	if m.failures >= m.maxRetries {
		events = m.move(StateIdle, events)
		m.mu.Unlock()
		m.notify(events)
		return StateIdle, ErrRetriesExhausted
	}

	events = m.move(StateListening, events)
	m.mu.Unlock()

	m.notify(events)
	return StateListening, nil
}

// Advise surfaces a message to the observer without changing state.
func (m *Machine) Advise(message string) {
	m.observer.OnAdvisory(message)
}

func (m *Machine) Stop() {
	m.mu.Lock()
	events := m.move(StateIdle, nil)
	m.mu.Unlock()

	m.notify(events)
}

func (m *Machine) Revoke() {
	m.mu.Lock()
	events := m.move(StateIdle, nil)
	m.mu.Unlock()

	events = append(events, func(o Observer) { o.OnAdvisory("microphone permission revoked") })
	m.notify(events)
}
