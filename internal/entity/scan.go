package entity

import "time"

type ScanDetection struct {
	Type        string  `json:"type"`
	MatchedText string  `json:"matched_text"`
	Confidence  float64 `json:"confidence"`
}

// ScanReport never holds the scanned text, only its fingerprint and the
// already masked detections.
type ScanReport struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Profile     string          `json:"profile"`
	Fingerprint string          `json:"fingerprint"`
	RiskLevel   string          `json:"risk_level"`
	Detections  []ScanDetection `json:"detections"`
	CreatedAt   time.Time       `json:"created_at"`
}
