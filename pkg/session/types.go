package session

import (
	"context"
	"errors"

	"SafeSphere/pkg/nlp"
)

type State string

const (
	StateIdle         State = "IDLE"
	StateListening    State = "LISTENING"
	StateRecognizing  State = "RECOGNIZING"
	StateDispatched   State = "DISPATCHED"
	StateUnrecognized State = "UNRECOGNIZED"
)

const (
	DefaultMaxRetries  = 3
	DefaultHistorySize = 10
)

var (
	ErrNotReady          = errors.New("voice session is not ready")
	ErrInvalidTransition = errors.New("invalid voice session transition")
	ErrRetriesExhausted  = errors.New("speech recognizer retries exhausted")
	ErrRecognizerClosed  = errors.New("speech recognizer closed")
)

// Readiness gates the Idle to Listening transition.
type Readiness struct {
	RecognizerAvailable bool `json:"recognizer_available"`
	PermissionGranted   bool `json:"permission_granted"`
	LanguageLoaded      bool `json:"language_loaded"`
}

func (r Readiness) Ready() bool {
	return r.RecognizerAvailable && r.PermissionGranted && r.LanguageLoaded
}

type Observer interface {
	OnStateChange(from, to State)
	OnCommand(cmd nlp.VoiceCommand)
	OnAdvisory(message string)
}

// Recognizer blocks until the platform finalizes one utterance.
type Recognizer interface {
	Listen(ctx context.Context) (string, error)
}

type Dispatcher interface {
	Dispatch(ctx context.Context, cmd nlp.VoiceCommand) error
}

type DispatcherFunc func(ctx context.Context, cmd nlp.VoiceCommand) error

func (f DispatcherFunc) Dispatch(ctx context.Context, cmd nlp.VoiceCommand) error {
	return f(ctx, cmd)
}

type nopObserver struct{}

func (nopObserver) OnStateChange(State, State) {}
func (nopObserver) OnCommand(nlp.VoiceCommand) {}
func (nopObserver) OnAdvisory(string) {}
