package sensitive

var highRiskTypes = map[SensitiveInfoType]bool{
	Password:   true,
	CreditCard: true,
	SSN:        true,
	APIKey:     true,
}

// Assess grades a detection list for the guardian banner.
func Assess(detections []Detection) RiskLevel {
	if len(detections) == 0 {
		return RiskNone
	}

	hasBank := false
	for _, d := range detections {
		if highRiskTypes[d.Type] {
			return RiskHigh
		}
		if d.Type == BankAccount {
			hasBank = true
		}
	}

	if hasBank || len(detections) >= 2 {
		return RiskMedium
	}
	return RiskLow
}

// Summary counts detections per type.
func Summary(detections []Detection) map[SensitiveInfoType]int {
	counts := make(map[SensitiveInfoType]int)
	for _, d := range detections {
		counts[d.Type]++
	}
	return counts
}
