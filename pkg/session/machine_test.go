package session

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"SafeSphere/pkg/nlp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ready = Readiness{RecognizerAvailable: true, PermissionGranted: true, LanguageLoaded: true}

type recordingObserver struct {
	transitions []string
	commands    []nlp.VoiceCommand
	advisories  []string
}

func (o *recordingObserver) OnStateChange(from, to State) {
	o.transitions = append(o.transitions, fmt.Sprintf("%s>%s", from, to))
}

func (o *recordingObserver) OnCommand(cmd nlp.VoiceCommand) {
	o.commands = append(o.commands, cmd)
}

func (o *recordingObserver) OnAdvisory(message string) {
	o.advisories = append(o.advisories, message)
}

func english(t *testing.T) nlp.SupportedLanguage {
	t.Helper()
	r, err := nlp.NewRegistry("en-US")
	require.NoError(t, err)
	return r.Default()
}

func newTestMachine(t *testing.T, continuous bool) (*Machine, *recordingObserver) {
	t.Helper()
	obs := &recordingObserver{}
	m := NewMachine(Config{
		Language:    english(t),
		Interpreter: nlp.NewInterpreterWithClock(func() time.Time { return time.Unix(0, 0) }),
		Observer:    obs,
		Continuous:  continuous,
	})
	return m, obs
}

func TestStartRequiresReadiness(t *testing.T) {
	tests := []struct {
		name      string
		readiness Readiness
	}{
		{"no recognizer", Readiness{PermissionGranted: true, LanguageLoaded: true}},
		{"no permission", Readiness{RecognizerAvailable: true, LanguageLoaded: true}},
		{"no language", Readiness{RecognizerAvailable: true, PermissionGranted: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestMachine(t, true)
			assert.ErrorIs(t, m.Start(tt.readiness), ErrNotReady)
			assert.Equal(t, StateIdle, m.State())
		})
	}

	m, _ := newTestMachine(t, true)
	require.NoError(t, m.Start(ready))
	assert.Equal(t, StateListening, m.State())
	assert.ErrorIs(t, m.Start(ready), ErrInvalidTransition)
}

func TestRecognitionCycle(t *testing.T) {
	m, obs := newTestMachine(t, true)
	require.NoError(t, m.Start(ready))

	require.NoError(t, m.EndOfUtterance())
	cmd, err := m.Complete("open my twitter password")
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.Equal(t, nlp.ActionOpenPassword, cmd.Action)
	assert.Equal(t, StateDispatched, m.State())

	next, err := m.Resume()
	require.NoError(t, err)
	assert.Equal(t, StateListening, next)

	require.NoError(t, m.EndOfUtterance())
	cmd, err = m.Complete("  ... ")
	require.NoError(t, err)
	assert.Nil(t, cmd)
	assert.Equal(t, StateUnrecognized, m.State())

	_, err = m.Resume()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"IDLE>LISTENING",
		"LISTENING>RECOGNIZING",
		"RECOGNIZING>DISPATCHED",
		"DISPATCHED>LISTENING",
		"LISTENING>RECOGNIZING",
		"RECOGNIZING>UNRECOGNIZED",
		"UNRECOGNIZED>LISTENING",
	}, obs.transitions)
	require.Len(t, obs.commands, 1)
	assert.Len(t, m.History(), 1)
}

func TestUnknownCommandIsDispatched(t *testing.T) {
	m, _ := newTestMachine(t, true)
	require.NoError(t, m.Start(ready))
	require.NoError(t, m.EndOfUtterance())

	cmd, err := m.Complete("asdkjasd")
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.Equal(t, nlp.ActionUnknown, cmd.Action)
	assert.Equal(t, StateDispatched, m.State())
}

func TestSingleShotReturnsToIdle(t *testing.T) {
	m, _ := newTestMachine(t, false)
	require.NoError(t, m.Start(ready))
	require.NoError(t, m.EndOfUtterance())
	_, err := m.Complete("lock app")
	require.NoError(t, err)

	next, err := m.Resume()
	require.NoError(t, err)
	assert.Equal(t, StateIdle, next)
}

func TestInvalidTransitions(t *testing.T) {
	m, _ := newTestMachine(t, true)

	assert.ErrorIs(t, m.EndOfUtterance(), ErrInvalidTransition)
	_, err := m.Complete("help")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = m.Resume()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = m.Fail(errors.New("boom"))
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, m.Start(ready))
	_, err = m.Complete("help")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRecognizerFailuresExhaustRetries(t *testing.T) {
	m, obs := newTestMachine(t, true)
	require.NoError(t, m.Start(ready))

	state, err := m.Fail(errors.New("network"))
	require.NoError(t, err)
	assert.Equal(t, StateListening, state)

	require.NoError(t, m.EndOfUtterance())
	state, err = m.Fail(errors.New("no match"))
	require.NoError(t, err)
	assert.Equal(t, StateListening, state)
	assert.Equal(t, 2, m.Failures())

	state, err = m.Fail(errors.New("busy"))
	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.Equal(t, StateIdle, state)
	assert.Equal(t, StateIdle, m.State())
	assert.Len(t, obs.advisories, 3)
	assert.Contains(t, obs.advisories[2], "(3/3)")
}

func TestSuccessResetsRetryBudget(t *testing.T) {
	m, _ := newTestMachine(t, true)
	require.NoError(t, m.Start(ready))

	for i := 0; i < 2; i++ {
		_, err := m.Fail(errors.New("network"))
		require.NoError(t, err)
	}

	require.NoError(t, m.EndOfUtterance())
	_, err := m.Complete("help")
	require.NoError(t, err)
	assert.Equal(t, 0, m.Failures())
	_, err = m.Resume()
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		state, err := m.Fail(errors.New("network"))
		require.NoError(t, err)
		assert.Equal(t, StateListening, state)
	}
}

func TestUnrecognizedKeepsRetryBudget(t *testing.T) {
	m, _ := newTestMachine(t, true)
	require.NoError(t, m.Start(ready))

	for i := 0; i < 2; i++ {
		_, err := m.Fail(errors.New("network"))
		require.NoError(t, err)
	}

	require.NoError(t, m.EndOfUtterance())
	cmd, err := m.Complete("  ?! ")
	require.NoError(t, err)
	assert.Nil(t, cmd)
	assert.Equal(t, StateUnrecognized, m.State())
	assert.Equal(t, 2, m.Failures())

	_, err = m.Resume()
	require.NoError(t, err)

	state, err := m.Fail(errors.New("network"))
	assert.ErrorIs(t, err, ErrRetriesExhausted)
	assert.Equal(t, StateIdle, state)
}

func TestStopAndRevokeFromAnyState(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *Machine)
	}{
		{"idle", func(m *Machine) {}},
		{"listening", func(m *Machine) { _ = m.Start(ready) }},
		{"recognizing", func(m *Machine) {
			_ = m.Start(ready)
			_ = m.EndOfUtterance()
		}},
		{"dispatched", func(m *Machine) {
			_ = m.Start(ready)
			_ = m.EndOfUtterance()
			_, _ = m.Complete("help")
		}},
		{"unrecognized", func(m *Machine) {
			_ = m.Start(ready)
			_ = m.EndOfUtterance()
			_, _ = m.Complete("")
		}},
	}

	for _, tt := range tests {
		t.Run("stop "+tt.name, func(t *testing.T) {
			m, _ := newTestMachine(t, true)
			tt.setup(m)
			m.Stop()
			assert.Equal(t, StateIdle, m.State())
		})
		t.Run("revoke "+tt.name, func(t *testing.T) {
			m, obs := newTestMachine(t, true)
			tt.setup(m)
			m.Revoke()
			assert.Equal(t, StateIdle, m.State())
			assert.Contains(t, obs.advisories, "microphone permission revoked")
		})
	}
}

func TestHistoryIsBounded(t *testing.T) {
	m, _ := newTestMachine(t, true)
	require.NoError(t, m.Start(ready))

	for i := 0; i < 15; i++ {
		require.NoError(t, m.EndOfUtterance())
		_, err := m.Complete(fmt.Sprintf("search for site%d", i))
		require.NoError(t, err)
		_, err = m.Resume()
		require.NoError(t, err)
	}

	history := m.History()
	require.Len(t, history, DefaultHistorySize)
	assert.Equal(t, "site14", history[0].Parameters[nlp.ParamTarget])
	assert.Equal(t, "site5", history[9].Parameters[nlp.ParamTarget])
}
