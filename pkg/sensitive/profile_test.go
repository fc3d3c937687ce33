package sensitive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typesOf(detections []Detection) []SensitiveInfoType {
	out := make([]SensitiveInfoType, 0, len(detections))
	for _, d := range detections {
		out = append(out, d.Type)
	}
	return out
}

func findType(detections []Detection, t SensitiveInfoType) []Detection {
	var out []Detection
	for _, d := range detections {
		if d.Type == t {
			out = append(out, d)
		}
	}
	return out
}

func TestDetectPasswordAndCard(t *testing.T) {
	got := Detect("My password is test123, card: 4532-1234-5678-9010")

	assert.Contains(t, typesOf(got), Password)
	assert.Contains(t, typesOf(got), CreditCard)

	cards := findType(got, CreditCard)
	require.Len(t, cards, 1)
	assert.Equal(t, "**** **** **** 9010", cards[0].MatchedText)
	assert.Equal(t, 0.96, cards[0].Confidence)
}

func TestDetectNothing(t *testing.T) {
	for _, profile := range []Profile{DocumentScanner, ScreenshotGuardian} {
		for _, input := range []string{"", "   ", "Hello world, nice weather today", "\x00\xff\xfe"} {
			got := profile.Detect(input)
			assert.NotNil(t, got, "%s %q", profile.Name(), input)
			assert.Empty(t, got, "%s %q", profile.Name(), input)
		}
	}
}

func TestDetectSSN(t *testing.T) {
	inputs := []string{
		"SSN 123-45-6789",
		"numbers: 000-00-0000 and more",
		"ssn:987-65-4321.",
		"SSN_123-45-6789",
		"id123-45-6789",
		"123-45-67890",
	}

	for _, input := range inputs {
		for _, profile := range []Profile{DocumentScanner, ScreenshotGuardian} {
			ssns := findType(profile.Detect(input), SSN)
			require.NotEmpty(t, ssns, input)
			assert.Equal(t, 0.98, ssns[0].Confidence)
		}
	}

	assert.Equal(t, "***-**-6789", findType(DocumentScanner.Detect("SSN 123-45-6789"), SSN)[0].MatchedText)
	assert.Equal(t, "***-**-****", findType(ScreenshotGuardian.Detect("SSN 123-45-6789"), SSN)[0].MatchedText)
}

func TestPasswordKeywordFiresOnce(t *testing.T) {
	got := Detect("PASSWORD: x, pwd: y, passwd: z, credential: w")

	passwords := findType(got, Password)
	require.Len(t, passwords, 1)
	assert.Equal(t, "[REDACTED]", passwords[0].MatchedText)
	assert.Equal(t, 0.92, passwords[0].Confidence)
}

func TestBankKeyword(t *testing.T) {
	got := Detect("Routing number and IBAN attached")

	banks := findType(got, BankAccount)
	require.Len(t, banks, 1)
	assert.Equal(t, "routing", banks[0].MatchedText)
	assert.Equal(t, 0.85, banks[0].Confidence)
}

func TestEmailVariants(t *testing.T) {
	text := "write to alice@example.com or bob.smith@corp.org"

	docs := findType(DocumentScanner.Detect(text), Email)
	require.Len(t, docs, 2)
	assert.Equal(t, "alice@example.com", docs[0].MatchedText)
	assert.Equal(t, "bob.smith@corp.org", docs[1].MatchedText)
	assert.Equal(t, 0.95, docs[0].Confidence)

	guardian := findType(ScreenshotGuardian.Detect(text), Email)
	require.Len(t, guardian, 1)
	assert.Equal(t, "Email address detected", guardian[0].MatchedText)
	assert.Equal(t, 0.94, guardian[0].Confidence)
}

func TestCardMaskingPerProfile(t *testing.T) {
	text := "4532123456789010 and 4111 1111 1111 1111"

	docs := findType(DocumentScanner.Detect(text), CreditCard)
	require.Len(t, docs, 2)
	assert.Equal(t, "**** **** **** 9010", docs[0].MatchedText)
	assert.Equal(t, "**** **** **** 1111", docs[1].MatchedText)

	guardian := findType(ScreenshotGuardian.Detect(text), CreditCard)
	require.Len(t, guardian, 2)
	assert.Equal(t, "**** **** **** ****", guardian[0].MatchedText)
	assert.Equal(t, 0.92, guardian[0].Confidence)
}

func TestPhoneNumbers(t *testing.T) {
	phones := findType(Detect("call +1 (555) 123-4567 or 555.987.6543"), PhoneNumber)

	require.Len(t, phones, 2)
	assert.Equal(t, "+1 (555) 123-4567", phones[0].MatchedText)
	assert.Equal(t, "555.987.6543", phones[1].MatchedText)
	assert.Equal(t, 0.88, phones[0].Confidence)
}

func TestAPIKey(t *testing.T) {
	keys := findType(Detect("api_key=sk_live_abcdefghijklmnopqrstuv"), APIKey)

	require.Len(t, keys, 1)
	assert.Equal(t, "sk_l********", keys[0].MatchedText)
	assert.Equal(t, 0.91, keys[0].Confidence)

	assert.Empty(t, findType(Detect("token: short"), APIKey))
}

func TestDateOnlyInDocumentScanner(t *testing.T) {
	text := "Issued 12/31/1990"

	dates := findType(DocumentScanner.Detect(text), Date)
	require.Len(t, dates, 1)
	assert.Equal(t, "12/31/1990", dates[0].MatchedText)
	assert.Equal(t, 0.90, dates[0].Confidence)

	glued := findType(DocumentScanner.Detect("on12/25/2024"), Date)
	require.Len(t, glued, 1)
	assert.Equal(t, "12/25/2024", glued[0].MatchedText)

	assert.Empty(t, findType(ScreenshotGuardian.Detect(text), Date))
	assert.NotContains(t, ScreenshotGuardian.Types(), Date)
}

func TestDetectOrderFollowsRules(t *testing.T) {
	text := "SSN 123-45-6789 mail me@x.io, my bank password"

	assert.Equal(t,
		[]SensitiveInfoType{Password, Email, SSN, BankAccount},
		typesOf(Detect(text)))
}

func TestDetectDeterministic(t *testing.T) {
	text := "password 4532-1234-5678-9010 a@b.co 555-123-4567 123-45-6789 iban token=abcdefghijklmnopqrstuvwxyz 1/2/2024"

	for _, profile := range []Profile{DocumentScanner, ScreenshotGuardian} {
		first := profile.Detect(text)
		second := profile.Detect(text)
		assert.Equal(t, first, second)

		for _, d := range first {
			assert.GreaterOrEqual(t, d.Confidence, 0.0)
			assert.LessOrEqual(t, d.Confidence, 1.0)
		}
	}
}

func TestProfileByName(t *testing.T) {
	p, ok := ProfileByName("screenshot_guardian")
	require.True(t, ok)
	assert.Equal(t, ScreenshotGuardian.Name(), p.Name())

	_, ok = ProfileByName("nope")
	assert.False(t, ok)
}

func TestTypeMetadata(t *testing.T) {
	for _, infoType := range DocumentScanner.Types() {
		assert.NotEmpty(t, infoType.Label())
		assert.NotEmpty(t, infoType.Icon())
	}
}
