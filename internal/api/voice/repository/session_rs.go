package voiceRepository

import (
	"SafeSphere/internal/api/voice"
	"SafeSphere/internal/entity"
	contextPkg "SafeSphere/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type VoiceSessionDB struct {
	ID           sql.NullString `db:"id"`
	UserID       sql.NullString `db:"user_id"`
	Language     sql.NullString `db:"language"`
	State        sql.NullString `db:"state"`
	Continuous   sql.NullBool   `db:"continuous"`
	CommandCount sql.NullInt64  `db:"command_count"`
	Failures     sql.NullInt64  `db:"failures"`
	CreatedAt    time.Time      `db:"created_at"`
	LastActivity time.Time      `db:"last_activity"`
}

func (r *sessionRepository) CreateSession(ctx context.Context, session entity.VoiceSession) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":            session.ID,
		"user_id":       session.UserID,
		"language":      session.Language,
		"state":         session.State,
		"continuous":    session.Continuous,
		"command_count": session.CommandCount,
		"failures":      session.Failures,
		"created_at":    session.CreatedAt,
		"last_activity": session.LastActivity,
	}

	query, args, err := sqlx.Named(queryCreateSession, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateSession")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating session")
		return err
	}

	return nil
}

func (r *sessionRepository) GetSessionByID(ctx context.Context, id string) (entity.VoiceSession, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var sessionDB VoiceSessionDB

	query, args, err := sqlx.Named(queryGetSessionByID, map[string]interface{}{
		"id": id,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetSessionByID named query preparation err")
		return entity.VoiceSession{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&sessionDB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"session_id": id,
			}).Warn("GetSessionByID no rows found")
			return entity.VoiceSession{}, voice.ErrSessionNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetSessionByID execution err")
		return entity.VoiceSession{}, err
	}

	return entity.VoiceSession{
		ID:           sessionDB.ID.String,
		UserID:       sessionDB.UserID.String,
		Language:     sessionDB.Language.String,
		State:        sessionDB.State.String,
		Continuous:   sessionDB.Continuous.Bool,
		CommandCount: int(sessionDB.CommandCount.Int64),
		Failures:     int(sessionDB.Failures.Int64),
		CreatedAt:    sessionDB.CreatedAt,
		LastActivity: sessionDB.LastActivity,
	}, nil
}

func (r *sessionRepository) UpdateSession(ctx context.Context, session entity.VoiceSession) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":            session.ID,
		"language":      session.Language,
		"state":         session.State,
		"command_count": session.CommandCount,
		"failures":      session.Failures,
		"last_activity": session.LastActivity,
	}

	query, args, err := sqlx.Named(queryUpdateSession, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateSession named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateSession execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateSession rows affected err")
		return err
	}

	if rowsAffected == 0 {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"session_id": session.ID,
		}).Warn("UpdateSession no rows affected")
		return voice.ErrSessionNotFound
	}

	return nil
}
