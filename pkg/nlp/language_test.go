package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := mustRegistry(t)

	codes := make([]string, 0)
	for _, lang := range r.List() {
		codes = append(codes, lang.Code)
		assert.NotEmpty(t, lang.DisplayName)
		assert.NotEmpty(t, lang.Flag)
	}
	assert.Equal(t, []string{"de-DE", "en-US", "es-ES", "fr-FR"}, codes)

	lang, ok := r.Get("FR-fr")
	require.True(t, ok)
	assert.Equal(t, "fr-FR", lang.Code)

	_, ok = r.Get("it-IT")
	assert.False(t, ok)
	assert.Equal(t, "en-US", r.Resolve("it-IT").Code)
	assert.Equal(t, "en-US", r.Default().Code)
}

func TestRegistryUnknownDefault(t *testing.T) {
	_, err := NewRegistry("it-IT")
	assert.ErrorIs(t, err, ErrLanguageNotFound)
}

func TestLoadLanguageRejectsBadPacks(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: `{`},
		{name: "missing commands", data: `{"code":"xx-XX","display_name":"X","flag":"x","fallback_response":"?"}`},
		{name: "unknown action", data: `{"code":"xx-XX","display_name":"X","flag":"x","fallback_response":"?",
			"commands":[{"action":"FLY","patterns":["fly"],"response":"ok"}]}`},
		{name: "gap only pattern", data: `{"code":"xx-XX","display_name":"X","flag":"x","fallback_response":"?",
			"commands":[{"action":"HELP","patterns":["*"],"response":"ok"}]}`},
		{name: "duplicate action", data: `{"code":"xx-XX","display_name":"X","flag":"x","fallback_response":"?",
			"commands":[{"action":"HELP","patterns":["help"],"response":"ok"},{"action":"HELP","patterns":["aid"],"response":"ok"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadLanguage([]byte(tt.data))
			assert.ErrorIs(t, err, ErrInvalidLanguagePack)
		})
	}
}

func TestLoadLanguage(t *testing.T) {
	lang, err := LoadLanguage([]byte(`{
		"code": "nl-NL",
		"display_name": "Nederlands",
		"flag": "🇳🇱",
		"fallback_response": "Sorry?",
		"filler_words": ["mijn"],
		"number_words": {"twaalf": 12},
		"commands": [
			{"action": "GENERATE_PASSWORD", "patterns": ["maak * wachtwoord"], "response": "Nieuw wachtwoord van {length} tekens"},
			{"action": "OPEN_PASSWORD", "patterns": ["open * wachtwoord"], "response": "Open {target}"}
		]
	}`))
	require.NoError(t, err)

	in := newTestInterpreter()
	cmd := in.Interpret("maak een twaalf tekens wachtwoord", lang)
	assert.Equal(t, ActionGeneratePassword, cmd.Action)
	assert.Equal(t, "12", cmd.Parameters[ParamLength])

	cmd = in.Interpret("open mijn bol wachtwoord", lang)
	assert.Equal(t, ActionOpenPassword, cmd.Action)
	assert.Equal(t, "Open bol", in.Respond(cmd, lang))
}

func TestExtractLengthBounds(t *testing.T) {
	english := mustRegistry(t).Resolve("en-US")

	_, ok := english.ExtractLength(Tokenize("generate a 2 character password"))
	assert.False(t, ok)

	_, ok = english.ExtractLength(Tokenize("generate a 500 character password"))
	assert.False(t, ok)

	n, ok := english.ExtractLength(Tokenize("make it sixty long"))
	require.True(t, ok)
	assert.Equal(t, 60, n)
}
