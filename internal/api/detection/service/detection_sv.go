package detectionService

import (
	"SafeSphere/internal/api/detection"
	"SafeSphere/internal/entity"
	contextPkg "SafeSphere/pkg/context"
	"SafeSphere/pkg/sensitive"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 50
)

func (s *detectionService) Scan(ctx context.Context, profile sensitive.Profile, req detection.ScanRequest) (*detection.ScanResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if utf8.RuneCountInString(req.Text) > detection.MaxScanTextLength {
		return nil, detection.ErrTextTooLong
	}

	detections := sensitive.New(profile).Detect(req.Text)
	risk := sensitive.Assess(detections)

	resp := &detection.ScanResponse{
		Profile:     profile.Name(),
		RiskLevel:   string(risk),
		Detections:  toDetectionResponses(detections),
		Summary:     toSummary(sensitive.Summary(detections)),
		Fingerprint: s.utils.Fingerprint(req.Text),
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"profile":    profile.Name(),
		"risk_level": risk,
		"detections": len(detections),
	}).Debug("Text scanned")

	if !req.Save {
		return resp, nil
	}

	reportID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate scan report id")
		return nil, detection.ErrInternalServerError
	}

	report := entity.ScanReport{
		ID:          reportID,
		UserID:      req.UserID,
		Profile:     profile.Name(),
		Fingerprint: resp.Fingerprint,
		RiskLevel:   resp.RiskLevel,
		Detections:  toScanDetections(detections),
		CreatedAt:   time.Now(),
	}

	repo, err := s.detectionRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, detection.ErrSaveReport
	}

	if err := repo.Reports.CreateReport(ctx, report); err != nil {
		return nil, detection.ErrSaveReport
	}

	resp.ReportID = reportID
	return resp, nil
}

func (s *detectionService) Redact(ctx context.Context, text string) string {
	redacted := sensitive.Redact(text)

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"changed":    redacted != text,
	}).Debug("Text redacted")

	return redacted
}

func (s *detectionService) GetHistory(ctx context.Context, userID string, page, limit int) (*detection.ScanHistoryResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	repo, err := s.detectionRepository.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, detection.ErrInternalServerError
	}

	reports, total, err := repo.Reports.GetReportsByUserID(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, detection.ErrInternalServerError
	}

	resp := &detection.ScanHistoryResponse{
		Reports: make([]detection.ScanReportResponse, 0, len(reports)),
		Total:   total,
		Page:    page,
		Limit:   limit,
	}
	for _, report := range reports {
		resp.Reports = append(resp.Reports, detection.ScanReportResponse{
			ID:          report.ID,
			Profile:     report.Profile,
			Fingerprint: report.Fingerprint,
			RiskLevel:   report.RiskLevel,
			Detections:  fromScanDetections(report.Detections),
			CreatedAt:   report.CreatedAt,
		})
	}

	return resp, nil
}

func toDetectionResponses(detections []sensitive.Detection) []detection.DetectionResponse {
	out := make([]detection.DetectionResponse, 0, len(detections))
	for _, d := range detections {
		out = append(out, detection.DetectionResponse{
			Type:        d.Type.String(),
			Label:       d.Type.Label(),
			Icon:        d.Type.Icon(),
			MatchedText: d.MatchedText,
			Confidence:  d.Confidence,
		})
	}
	return out
}

func toScanDetections(detections []sensitive.Detection) []entity.ScanDetection {
	out := make([]entity.ScanDetection, 0, len(detections))
	for _, d := range detections {
		out = append(out, entity.ScanDetection{
			Type:        d.Type.String(),
			MatchedText: d.MatchedText,
			Confidence:  d.Confidence,
		})
	}
	return out
}

func fromScanDetections(detections []entity.ScanDetection) []detection.DetectionResponse {
	out := make([]detection.DetectionResponse, 0, len(detections))
	for _, d := range detections {
		t := sensitive.SensitiveInfoType(d.Type)
		out = append(out, detection.DetectionResponse{
			Type:        d.Type,
			Label:       t.Label(),
			Icon:        t.Icon(),
			MatchedText: d.MatchedText,
			Confidence:  d.Confidence,
		})
	}
	return out
}

func toSummary(counts map[sensitive.SensitiveInfoType]int) map[string]int {
	out := make(map[string]int, len(counts))
	for t, n := range counts {
		out[t.String()] = n
	}
	return out
}
