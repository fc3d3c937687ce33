package sensitive

import (
	"strings"

	"golang.org/x/text/cases"
)

// Profile is a named configuration of the rule engine. The document scanner
// and the screenshot guardian share rule logic but differ in confidences,
// masking and rule set.
type Profile struct {
	name  string
	rules []rule
}

var (
	DocumentScanner = Profile{
		name: "document_scanner",
		rules: []rule{
			{infoType: Password, keywords: passwordKeywords, confidence: 0.92, mode: existenceOnly, mask: constant("[REDACTED]")},
			{infoType: CreditCard, pattern: creditCardPattern, confidence: 0.96, mode: everyMatch, mask: maskCardLastFour},
			{infoType: Email, pattern: emailPattern, confidence: 0.95, mode: everyMatch, mask: verbatim},
			{infoType: PhoneNumber, pattern: phonePattern, confidence: 0.88, mode: everyMatch, mask: verbatim},
			{infoType: SSN, pattern: ssnPattern, confidence: 0.98, mode: everyMatch, mask: maskSSNLastFour},
			{infoType: BankAccount, keywords: bankKeywords, confidence: 0.85, mode: existenceOnly, mask: verbatim},
			{infoType: APIKey, pattern: apiKeyPattern, group: 1, confidence: 0.91, mode: everyMatch, mask: maskKeepPrefix},
			{infoType: Date, pattern: datePattern, confidence: 0.90, mode: everyMatch, mask: verbatim},
		},
	}

	ScreenshotGuardian = Profile{
		name: "screenshot_guardian",
		rules: []rule{
			{infoType: Password, keywords: passwordKeywords, confidence: 0.92, mode: existenceOnly, mask: constant("[REDACTED]")},
			{infoType: CreditCard, pattern: creditCardPattern, confidence: 0.92, mode: everyMatch, mask: constant("**** **** **** ****")},
			{infoType: Email, pattern: emailPattern, confidence: 0.94, mode: existenceOnly, mask: constant("Email address detected")},
			{infoType: PhoneNumber, pattern: phonePattern, confidence: 0.88, mode: everyMatch, mask: verbatim},
			{infoType: SSN, pattern: ssnPattern, confidence: 0.98, mode: everyMatch, mask: constant("***-**-****")},
			{infoType: BankAccount, keywords: bankKeywords, confidence: 0.85, mode: existenceOnly, mask: verbatim},
			{infoType: APIKey, pattern: apiKeyPattern, group: 1, confidence: 0.91, mode: everyMatch, mask: maskKeepPrefix},
		},
	}
)

var profiles = map[string]Profile{
	DocumentScanner.name:    DocumentScanner,
	ScreenshotGuardian.name: ScreenshotGuardian,
}

// ProfileByName returns the profile registered under name.
func ProfileByName(name string) (Profile, bool) {
	p, ok := profiles[name]
	return p, ok
}

func New(p Profile) IDetector {
	return p
}

func (p Profile) Name() string {
	return p.name
}

// Types lists the info types this profile can emit, in evaluation order.
func (p Profile) Types() []SensitiveInfoType {
	types := make([]SensitiveInfoType, 0, len(p.rules))
	for _, r := range p.rules {
		types = append(types, r.infoType)
	}
	return types
}

// Detect runs every rule of the profile over text. It never fails; input
// without any signal gives an empty slice.
func (p Profile) Detect(text string) []Detection {
	detections := make([]Detection, 0)
	if strings.TrimSpace(text) == "" {
		return detections
	}

	folded := cases.Fold().String(text)
	for _, r := range p.rules {
		detections = append(detections, r.apply(text, folded)...)
	}

	return detections
}

// Detect runs the document scanner profile.
func Detect(text string) []Detection {
	return DocumentScanner.Detect(text)
}

func (r rule) apply(text, folded string) []Detection {
	if r.pattern == nil {
		for _, keyword := range r.keywords {
			if strings.Contains(folded, keyword) {
				return []Detection{r.detection(keyword)}
			}
		}
		return nil
	}

	if r.mode == existenceOnly {
		match := r.pattern.FindStringSubmatch(text)
		if match == nil {
			return nil
		}
		return []Detection{r.detection(match[r.group])}
	}

	var out []Detection
	for _, match := range r.pattern.FindAllStringSubmatch(text, -1) {
		out = append(out, r.detection(match[r.group]))
	}
	return out
}

func (r rule) detection(matched string) Detection {
	return Detection{
		Type:        r.infoType,
		MatchedText: r.mask(matched),
		Confidence:  r.confidence,
	}
}
