package nlp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newTestInterpreter() IInterpreter {
	return NewInterpreterWithClock(func() time.Time { return fixedNow })
}

func mustRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry("en-US")
	require.NoError(t, err)
	return r
}

func TestInterpretEnglish(t *testing.T) {
	english := mustRegistry(t).Resolve("en-US")
	in := newTestInterpreter()

	tests := []struct {
		transcript string
		action     VoiceAction
		params     map[string]string
	}{
		{"open my twitter password", ActionOpenPassword, map[string]string{ParamTarget: "twitter"}},
		{"Show my Gmail password, please", ActionOpenPassword, map[string]string{ParamTarget: "gmail"}},
		{"find my bank password", ActionSearchPassword, map[string]string{ParamTarget: "bank"}},
		{"search for netflix", ActionSearchPassword, map[string]string{ParamTarget: "netflix"}},
		{"generate a 24 character password", ActionGeneratePassword, map[string]string{ParamLength: "24"}},
		{"generate a twenty four character password", ActionGeneratePassword, map[string]string{ParamLength: "24"}},
		{"create a password", ActionGeneratePassword, map[string]string{ParamLength: "16"}},
		{"show my passwords", ActionListPasswords, map[string]string{}},
		{"What's my security score?", ActionSecurityScore, map[string]string{}},
		{"lock the app now", ActionLockApp, map[string]string{}},
		{"go to settings", ActionNavigateSettings, map[string]string{}},
		{"asdkjasd", ActionUnknown, map[string]string{}},
		{"", ActionUnknown, map[string]string{}},
		{"   ?!  ", ActionUnknown, map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.transcript, func(t *testing.T) {
			cmd := in.Interpret(tt.transcript, english)
			assert.Equal(t, tt.action, cmd.Action)
			assert.Equal(t, tt.params, cmd.Parameters)
			assert.Equal(t, tt.transcript, cmd.RawText)
			assert.Equal(t, "en-US", cmd.Language)
			assert.Equal(t, fixedNow, cmd.Timestamp)
		})
	}
}

func TestInterpretOtherLanguages(t *testing.T) {
	r := mustRegistry(t)
	in := newTestInterpreter()

	tests := []struct {
		code       string
		transcript string
		action     VoiceAction
		target     string
	}{
		{"es-ES", "Abre mi contraseña de Netflix", ActionOpenPassword, "netflix"},
		{"es-ES", "ayuda", ActionHelp, ""},
		{"fr-FR", "Ouvre mon mot de passe Gmail", ActionOpenPassword, "gmail"},
		{"fr-FR", "Que peux-tu faire ?", ActionHelp, ""},
		{"de-DE", "Öffne mein Netflix Passwort", ActionOpenPassword, "netflix"},
		{"de-DE", "Einstellungen", ActionNavigateSettings, ""},
	}

	for _, tt := range tests {
		t.Run(tt.code+"/"+tt.transcript, func(t *testing.T) {
			cmd := in.Interpret(tt.transcript, r.Resolve(tt.code))
			assert.Equal(t, tt.action, cmd.Action)
			assert.Equal(t, tt.target, cmd.Parameters[ParamTarget])
		})
	}
}

func TestEveryPatternRoundTrips(t *testing.T) {
	in := newTestInterpreter()

	for _, lang := range mustRegistry(t).List() {
		for _, cp := range lang.CommandPatterns {
			for _, pattern := range cp.Patterns {
				cmd := in.Interpret(pattern, lang)
				assert.Equal(t, cp.Action, cmd.Action, "%s: %q", lang.Code, pattern)
			}
		}
	}
}

func TestFirstDeclaredActionWins(t *testing.T) {
	in := newTestInterpreter()

	lockFirst, err := Prepare(SupportedLanguage{
		Code: "xx-XX",
		CommandPatterns: []CommandPattern{
			{Action: ActionLockApp, Patterns: []string{"vault"}},
			{Action: ActionNavigateVault, Patterns: []string{"open vault"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, ActionLockApp, in.Interpret("open vault", lockFirst).Action)

	vaultFirst, err := Prepare(SupportedLanguage{
		Code: "xx-XX",
		CommandPatterns: []CommandPattern{
			{Action: ActionNavigateVault, Patterns: []string{"open vault"}},
			{Action: ActionLockApp, Patterns: []string{"vault"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, ActionNavigateVault, in.Interpret("open vault", vaultFirst).Action)

	english := mustRegistry(t).Resolve("en-US")
	assert.Equal(t, ActionGeneratePassword, in.Interpret("help me generate a password", english).Action)
}

func TestInterpretUnpreparedLanguage(t *testing.T) {
	lang := SupportedLanguage{
		Code:            "xx-XX",
		CommandPatterns: []CommandPattern{{Action: ActionHelp, Patterns: []string{"assist * please"}}},
		FillerWords:     []string{"me"},
	}

	cmd := newTestInterpreter().Interpret("assist me now please", lang)
	assert.Equal(t, ActionHelp, cmd.Action)
}

func TestInterpretDeterministic(t *testing.T) {
	english := mustRegistry(t).Resolve("en-US")
	in := newTestInterpreter()

	first := in.Interpret("open my twitter password", english)
	second := in.Interpret("open my twitter password", english)
	assert.Equal(t, first, second)
}

func TestRespond(t *testing.T) {
	r := mustRegistry(t)
	in := newTestInterpreter()
	english := r.Resolve("en-US")

	assert.Equal(t, "Opening your twitter password",
		in.Respond(in.Interpret("open my twitter password", english), english))
	assert.Equal(t, "Opening your password",
		in.Respond(in.Interpret("open password", english), english))
	assert.Equal(t, "Generating a new 16 character password",
		in.Respond(in.Interpret("new password", english), english))
	assert.Equal(t, english.FallbackResponse,
		in.Respond(in.Interpret("asdkjasd", english), english))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"contrasena", "ya"}, Tokenize("Contraseña, ¡YA!"))
	assert.Equal(t, []string{"verrouiller", "l", "application"}, Tokenize("Verrouiller l'application"))
	assert.Empty(t, Tokenize(" *  "))
	assert.Equal(t, "offne mein passwort", Normalize("Öffne  mein Passwort"))
}
