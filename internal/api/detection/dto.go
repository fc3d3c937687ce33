package detection

import "time"

const MaxScanTextLength = 100000

type ScanRequest struct {
	UserID string `json:"-"`
	Text   string `json:"text"`
	Save   bool   `json:"save"`
}

type RedactRequest struct {
	Text string `json:"text" validate:"required"`
}

type RedactResponse struct {
	Text string `json:"text"`
}

type DetectionResponse struct {
	Type        string  `json:"type"`
	Label       string  `json:"label"`
	Icon        string  `json:"icon"`
	MatchedText string  `json:"matched_text"`
	Confidence  float64 `json:"confidence"`
}

type ScanResponse struct {
	Profile     string              `json:"profile"`
	RiskLevel   string              `json:"risk_level"`
	Detections  []DetectionResponse `json:"detections"`
	Summary     map[string]int      `json:"summary"`
	Fingerprint string              `json:"fingerprint"`
	ReportID    string              `json:"report_id,omitempty"`
}

type ScanReportResponse struct {
	ID          string              `json:"id"`
	Profile     string              `json:"profile"`
	Fingerprint string              `json:"fingerprint"`
	RiskLevel   string              `json:"risk_level"`
	Detections  []DetectionResponse `json:"detections"`
	CreatedAt   time.Time           `json:"created_at"`
}

type ScanHistoryResponse struct {
	Reports []ScanReportResponse `json:"reports"`
	Total   int                  `json:"total"`
	Page    int                  `json:"page"`
	Limit   int                  `json:"limit"`
}
