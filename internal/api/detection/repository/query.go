package detectionRepository

const (
	queryCreateReport = `
		INSERT INTO scan_reports (
			id, user_id, profile, fingerprint, risk_level, detections, created_at
		) VALUES (
			:id, :user_id, :profile, :fingerprint, :risk_level, :detections, :created_at
		)
	`

	queryGetReportsByUserID = `
		SELECT
			id, user_id, profile, fingerprint, risk_level, detections, created_at
		FROM scan_reports
		WHERE user_id = :user_id
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountReportsByUserID = `
		SELECT COUNT(*)
		FROM scan_reports
		WHERE user_id = :user_id
	`
)
