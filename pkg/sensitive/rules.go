package sensitive

import (
	"regexp"
	"strings"
)

var (
	creditCardPattern = regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`)
	emailPattern      = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern      = regexp.MustCompile(`(?:\+?1[\s.-]?)?(?:\(\d{3}\)|\b\d{3})[\s.-]?\d{3}[\s.-]?\d{4}\b`)
	ssnPattern        = regexp.MustCompile(`\d{3}-\d{2}-\d{4}`)
	apiKeyPattern     = regexp.MustCompile(`(?i)\b(?:api[_-]key|token)["']?\s*[:=]?\s*["']?([A-Za-z0-9_\-]{20,})`)
	datePattern       = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`)
)

var (
	passwordKeywords = []string{"password", "pwd", "pass", "passwd", "credential"}
	bankKeywords     = []string{"account", "routing", "bank", "swift", "iban"}
)

type matchMode uint8

const (
	// every match is reported in text order
	everyMatch matchMode = iota
	// a single detection when the rule fires at all
	existenceOnly
)

// rule is one row of a profile. Exactly one of keywords or pattern is set.
type rule struct {
	infoType   SensitiveInfoType
	keywords   []string
	pattern    *regexp.Regexp
	group      int
	confidence float64
	mode       matchMode
	mask       func(string) string
}

func verbatim(s string) string { return s }

func constant(text string) func(string) string {
	return func(string) string { return text }
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func maskCardLastFour(s string) string {
	digits := digitsOnly(s)
	if len(digits) < 4 {
		return "**** **** **** ****"
	}
	return "**** **** **** " + digits[len(digits)-4:]
}

func maskSSNLastFour(s string) string {
	digits := digitsOnly(s)
	if len(digits) < 4 {
		return "***-**-****"
	}
	return "***-**-" + digits[len(digits)-4:]
}

func maskKeepPrefix(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", 8)
}
