package nlp

import "strings"

const (
	gapToken    = "*"
	maxGapWords = 4
)

type element struct {
	word string
	gap  bool
}

type compiledPattern struct {
	source   string
	elements []element
	firstGap int
}

type compiledCommand struct {
	action   VoiceAction
	patterns []compiledPattern
}

type patternMatch struct {
	gap []string
	end int
}

func compilePattern(source string) compiledPattern {
	p := compiledPattern{source: source, firstGap: -1}
	for _, field := range strings.Fields(source) {
		if field == gapToken {
			if p.firstGap < 0 {
				p.firstGap = len(p.elements)
			}
			p.elements = append(p.elements, element{gap: true})
			continue
		}
		for _, word := range Tokenize(field) {
			p.elements = append(p.elements, element{word: word})
		}
	}
	return p
}

func (p compiledPattern) hasWords() bool {
	for _, el := range p.elements {
		if !el.gap {
			return true
		}
	}
	return false
}

func compileCommands(patterns []CommandPattern) []compiledCommand {
	commands := make([]compiledCommand, 0, len(patterns))
	for _, cp := range patterns {
		command := compiledCommand{action: cp.Action}
		for _, source := range cp.Patterns {
			command.patterns = append(command.patterns, compilePattern(source))
		}
		commands = append(commands, command)
	}
	return commands
}

// match reports the leftmost contiguous occurrence of the pattern in tokens.
// Interior gaps take as few words as possible, a trailing gap as many as it
// can (up to maxGapWords) so it captures the rest of the phrase.
func (p compiledPattern) match(tokens []string) (patternMatch, bool) {
	if !p.hasWords() {
		return patternMatch{}, false
	}

	for start := range tokens {
		var m patternMatch
		if end, ok := p.matchFrom(0, start, tokens, &m); ok {
			m.end = end
			return m, true
		}
	}
	return patternMatch{}, false
}

func (p compiledPattern) matchFrom(pi, ti int, tokens []string, m *patternMatch) (int, bool) {
	if pi == len(p.elements) {
		return ti, true
	}

	el := p.elements[pi]
	if !el.gap {
		if ti < len(tokens) && tokens[ti] == el.word {
			return p.matchFrom(pi+1, ti+1, tokens, m)
		}
		return 0, false
	}

	limit := min(maxGapWords, len(tokens)-ti)
	trailing := pi == len(p.elements)-1
	for i := 0; i <= limit; i++ {
		size := i
		if trailing {
			size = limit - i
		}
		if end, ok := p.matchFrom(pi+1, ti+size, tokens, m); ok {
			if pi == p.firstGap {
				m.gap = tokens[ti : ti+size]
			}
			return end, true
		}
	}
	return 0, false
}
