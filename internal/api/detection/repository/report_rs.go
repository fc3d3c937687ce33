package detectionRepository

import (
	"SafeSphere/internal/entity"
	contextPkg "SafeSphere/pkg/context"
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

type ScanReportDB struct {
	ID          sql.NullString `db:"id"`
	UserID      sql.NullString `db:"user_id"`
	Profile     sql.NullString `db:"profile"`
	Fingerprint sql.NullString `db:"fingerprint"`
	RiskLevel   sql.NullString `db:"risk_level"`
	Detections  []byte         `db:"detections"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r *reportRepository) CreateReport(ctx context.Context, report entity.ScanReport) error {
	requestID := contextPkg.GetRequestID(ctx)

	detections := report.Detections
	if detections == nil {
		detections = []entity.ScanDetection{}
	}

	detectionsJSON, err := jsoniter.Marshal(detections)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to marshal scan detections")
		return err
	}

	argsKV := map[string]interface{}{
		"id":          report.ID,
		"user_id":     report.UserID,
		"profile":     report.Profile,
		"fingerprint": report.Fingerprint,
		"risk_level":  report.RiskLevel,
		"detections":  string(detectionsJSON),
		"created_at":  report.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateReport, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateReport")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating scan report")
		return err
	}

	return nil
}

func (r *reportRepository) GetReportsByUserID(ctx context.Context, userID string, limit, offset int) ([]entity.ScanReport, int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var total int

	countQuery, countArgs, err := sqlx.Named(queryCountReportsByUserID, map[string]interface{}{
		"user_id": userID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountReportsByUserID named query preparation err")
		return nil, 0, err
	}
	countQuery = r.q.Rebind(countQuery)

	if err := r.q.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountReportsByUserID execution err")
		return nil, 0, err
	}

	query, args, err := sqlx.Named(queryGetReportsByUserID, map[string]interface{}{
		"user_id": userID,
		"limit":   limit,
		"offset":  offset,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetReportsByUserID named query preparation err")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	var rows []ScanReportDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetReportsByUserID execution err")
		return nil, 0, err
	}

	reports := make([]entity.ScanReport, 0, len(rows))
	for _, row := range rows {
		report, err := r.makeReport(row)
		if err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"report_id":  row.ID.String,
				"error":      err.Error(),
			}).Warn("Skipping scan report with unreadable detections")
			continue
		}
		reports = append(reports, report)
	}

	return reports, total, nil
}

func (r *reportRepository) makeReport(row ScanReportDB) (entity.ScanReport, error) {
	var detections []entity.ScanDetection
	if len(row.Detections) > 0 {
		if err := jsoniter.Unmarshal(row.Detections, &detections); err != nil {
			return entity.ScanReport{}, err
		}
	}

	return entity.ScanReport{
		ID:          row.ID.String,
		UserID:      row.UserID.String,
		Profile:     row.Profile.String,
		Fingerprint: row.Fingerprint.String,
		RiskLevel:   row.RiskLevel.String,
		Detections:  detections,
		CreatedAt:   row.CreatedAt,
	}, nil
}
