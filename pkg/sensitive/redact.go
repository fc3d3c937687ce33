package sensitive

import "regexp"

type replacement struct {
	pattern *regexp.Regexp
	with    string
}

// API keys go first so the label survives while the value is replaced; SSN
// and card numbers go before phones because the phone pattern is looser.
var redactions = []replacement{
	{apiKeyPattern, "[API_KEY]"},
	{creditCardPattern, "[CARD]"},
	{ssnPattern, "[SSN]"},
	{emailPattern, "[EMAIL]"},
	{phonePattern, "[PHONE]"},
	{datePattern, "[DATE]"},
}

// Redact replaces every pattern-based match in text with a placeholder.
// Keyword rules carry no value to replace and are left alone.
func Redact(text string) string {
	for _, r := range redactions {
		if r.pattern == apiKeyPattern {
			text = redactGroup(text, r.pattern, r.with)
			continue
		}
		text = r.pattern.ReplaceAllString(text, r.with)
	}
	return text
}

func redactGroup(text string, pattern *regexp.Regexp, with string) string {
	matches := pattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text
	}

	out := make([]byte, 0, len(text))
	last := 0
	for _, m := range matches {
		out = append(out, text[last:m[2]]...)
		out = append(out, with...)
		last = m[3]
	}
	out = append(out, text[last:]...)
	return string(out)
}
