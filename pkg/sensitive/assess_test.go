package sensitive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssess(t *testing.T) {
	tests := []struct {
		name string
		text string
		want RiskLevel
	}{
		{name: "nothing", text: "just words", want: RiskNone},
		{name: "single phone", text: "555-123-4567", want: RiskLow},
		{name: "bank keyword", text: "bank", want: RiskMedium},
		{name: "two low signals", text: "a@b.co 555-123-4567", want: RiskMedium},
		{name: "card", text: "4532 1234 5678 9010", want: RiskHigh},
		{name: "password", text: "password", want: RiskHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Assess(ScreenshotGuardian.Detect(tt.text)))
		})
	}
}

func TestSummary(t *testing.T) {
	counts := Summary(Detect("a@b.co c@d.io 555-123-4567"))

	assert.Equal(t, 2, counts[Email])
	assert.Equal(t, 1, counts[PhoneNumber])
	assert.Zero(t, counts[SSN])
}

func TestRedact(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"card 4532-1234-5678-9010 ok", "card [CARD] ok"},
		{"ssn 123-45-6789", "ssn [SSN]"},
		{"SSN_123-45-6789", "SSN_[SSN]"},
		{"id123-45-6789 end", "id[SSN] end"},
		{"mail a@b.co now", "mail [EMAIL] now"},
		{"call 555-123-4567", "call [PHONE]"},
		{"api_key=sk_live_abcdefghijklmnopqrstuv", "api_key=[API_KEY]"},
		{"on 1/2/2024", "on [DATE]"},
		{"on12/25/2024", "on[DATE]"},
		{"nothing here", "nothing here"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Redact(tt.in))
	}
}
