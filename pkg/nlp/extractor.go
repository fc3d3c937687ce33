package nlp

import (
	"strconv"
	"strings"
)

const (
	DefaultPasswordLength = 16
	minPasswordLength     = 4
	maxPasswordLength     = 128
)

func (l SupportedLanguage) extractParameters(action VoiceAction, tokens []string, m patternMatch) map[string]string {
	params := make(map[string]string)

	switch action {
	case ActionOpenPassword, ActionSearchPassword:
		target := l.target(m.gap)
		if target == "" {
			end := min(m.end+maxGapWords, len(tokens))
			target = l.target(tokens[m.end:end])
		}
		if target != "" {
			params[ParamTarget] = target
		}
	case ActionGeneratePassword:
		length, ok := l.ExtractLength(tokens)
		if !ok {
			length = DefaultPasswordLength
		}
		params[ParamLength] = strconv.Itoa(length)
	}

	return params
}

// target keeps the content words of a captured span.
func (l SupportedLanguage) target(words []string) string {
	var kept []string
	for _, w := range words {
		if l.isFiller(w) {
			continue
		}
		if _, err := strconv.Atoi(w); err == nil {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}

func (l SupportedLanguage) isFiller(word string) bool {
	if l.fillers != nil {
		return l.fillers[word]
	}
	for _, f := range l.FillerWords {
		if Normalize(f) == word {
			return true
		}
	}
	return false
}

func (l SupportedLanguage) numberWord(word string) (int, bool) {
	if l.numbers != nil {
		n, ok := l.numbers[word]
		return n, ok
	}
	for k, v := range l.NumberWords {
		if Normalize(k) == word {
			return v, true
		}
	}
	return 0, false
}

// ExtractLength finds the first number in tokens, either as digits or as a
// run of number words ("twenty four"), and accepts it only when it is a
// usable password length.
func (l SupportedLanguage) ExtractLength(tokens []string) (int, bool) {
	current := 0
	inWords := false

	for _, token := range tokens {
		if n, err := strconv.Atoi(token); err == nil {
			if inWords {
				break
			}
			return validLength(n)
		}

		if n, ok := l.numberWord(token); ok {
			current += n
			inWords = true
			continue
		}

		if inWords {
			break
		}
	}

	if !inWords {
		return 0, false
	}
	return validLength(current)
}

func validLength(n int) (int, bool) {
	if n < minPasswordLength || n > maxPasswordLength {
		return 0, false
	}
	return n, true
}
