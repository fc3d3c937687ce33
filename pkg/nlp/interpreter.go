package nlp

import (
	"regexp"
	"strings"
	"time"
)

var placeholderPattern = regexp.MustCompile(`\{[a-z_]+\}`)

type Interpreter struct {
	now func() time.Time
}

func NewInterpreter() IInterpreter {
	return &Interpreter{now: time.Now}
}

// NewInterpreterWithClock is used where command timestamps must be stable.
func NewInterpreterWithClock(now func() time.Time) IInterpreter {
	return &Interpreter{now: now}
}

// Interpret maps a transcript to the first declared action of language that
// has a matching pattern. Nothing matching, empty input included, yields
// ActionUnknown.
func (in *Interpreter) Interpret(transcript string, language SupportedLanguage) VoiceCommand {
	cmd := VoiceCommand{
		RawText:    transcript,
		Action:     ActionUnknown,
		Language:   language.Code,
		Parameters: map[string]string{},
		Timestamp:  in.now(),
	}

	tokens := Tokenize(transcript)
	if len(tokens) == 0 {
		return cmd
	}

	for _, command := range language.commands() {
		for _, pattern := range command.patterns {
			m, ok := pattern.match(tokens)
			if !ok {
				continue
			}
			cmd.Action = command.action
			cmd.Parameters = language.extractParameters(command.action, tokens, m)
			return cmd
		}
	}

	return cmd
}

// Respond renders the spoken confirmation for cmd.
func (in *Interpreter) Respond(cmd VoiceCommand, language SupportedLanguage) string {
	template := language.FallbackResponse
	for _, cp := range language.CommandPatterns {
		if cp.Action == cmd.Action {
			template = cp.Response
			break
		}
	}

	rendered := placeholderPattern.ReplaceAllStringFunc(template, func(p string) string {
		return cmd.Parameters[p[1:len(p)-1]]
	})

	return strings.Join(strings.Fields(rendered), " ")
}

func (l SupportedLanguage) commands() []compiledCommand {
	if l.compiled != nil {
		return l.compiled
	}
	return compileCommands(l.CommandPatterns)
}
