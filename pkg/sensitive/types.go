package sensitive

type SensitiveInfoType string

const (
	Password    SensitiveInfoType = "PASSWORD"
	CreditCard  SensitiveInfoType = "CREDIT_CARD"
	Email       SensitiveInfoType = "EMAIL"
	PhoneNumber SensitiveInfoType = "PHONE_NUMBER"
	SSN         SensitiveInfoType = "SSN"
	BankAccount SensitiveInfoType = "BANK_ACCOUNT"
	APIKey      SensitiveInfoType = "API_KEY"
	Date        SensitiveInfoType = "DATE"
)

var typeLabels = map[SensitiveInfoType]string{
	Password:    "Password",
	CreditCard:  "Credit Card",
	Email:       "Email",
	PhoneNumber: "Phone Number",
	SSN:         "SSN",
	BankAccount: "Bank Account",
	APIKey:      "API Key",
	Date:        "Date",
}

var typeIcons = map[SensitiveInfoType]string{
	Password:    "🔑",
	CreditCard:  "💳",
	Email:       "📧",
	PhoneNumber: "📱",
	SSN:         "🆔",
	BankAccount: "🏦",
	APIKey:      "🔐",
	Date:        "📅",
}

func (t SensitiveInfoType) Label() string {
	return typeLabels[t]
}

func (t SensitiveInfoType) Icon() string {
	return typeIcons[t]
}

func (t SensitiveInfoType) String() string {
	return string(t)
}

// Detection is one typed match. MatchedText is already masked according to
// the profile that produced it.
type Detection struct {
	Type        SensitiveInfoType `json:"type"`
	MatchedText string            `json:"matched_text"`
	Confidence  float64           `json:"confidence"`
}

type RiskLevel string

const (
	RiskNone   RiskLevel = "NONE"
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

type IDetector interface {
	Name() string
	Detect(text string) []Detection
}
