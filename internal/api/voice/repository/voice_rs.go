package voiceRepository

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

type VoiceCommandDB struct {
	ID         sql.NullString `db:"id"`
	UserID     sql.NullString `db:"user_id"`
	SessionID  sql.NullString `db:"session_id"`
	Transcript sql.NullString `db:"transcript"`
	Action     sql.NullString `db:"action"`
	Language   sql.NullString `db:"language"`
	Parameters []byte         `db:"parameters"`
	Response   sql.NullString `db:"response"`
	Route      sql.NullString `db:"route"`
	CreatedAt  time.Time      `db:"created_at"`
}

func (r *voiceRepository) CreateVoiceCommand(ctx context.Context, cmd entity.VoiceCommand) error {
	requestID := contextPkg.GetRequestID(ctx)

	parameters := cmd.Parameters
	if parameters == nil {
		parameters = map[string]string{}
	}

	parametersJSON, err := jsoniter.Marshal(parameters)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to marshal command parameters")
		return err
	}

	argsKV := map[string]interface{}{
		"id":         cmd.ID,
		"user_id":    cmd.UserID,
		"session_id": sql.NullString{String: cmd.SessionID, Valid: cmd.SessionID != ""},
		"transcript": cmd.Transcript,
		"action":     cmd.Action,
		"language":   cmd.Language,
		"parameters": string(parametersJSON),
		"response":   cmd.Response,
		"route":      sql.NullString{String: cmd.Route, Valid: cmd.Route != ""},
		"created_at": cmd.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateVoiceCommand, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateVoiceCommand")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating voice command")
		return err
	}

	return nil
}

func (r *voiceRepository) GetVoiceCommandsByUserID(ctx context.Context, userID string, limit, offset int) ([]entity.VoiceCommand, int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var commandsList []VoiceCommandDB
	var total int

	countQuery, countArgs, err := sqlx.Named(queryCountVoiceCommandsByUserID, map[string]interface{}{
		"user_id": userID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountVoiceCommandsByUserID named query preparation err")
		return nil, 0, err
	}
	countQuery = r.q.Rebind(countQuery)

	if err := r.q.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountVoiceCommandsByUserID execution err")
		return nil, 0, err
	}

	query, args, err := sqlx.Named(queryGetVoiceCommandsByUserID, map[string]interface{}{
		"user_id": userID,
		"limit":   limit,
		"offset":  offset,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetVoiceCommandsByUserID named query preparation err")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &commandsList, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetVoiceCommandsByUserID execution err")
		return nil, 0, err
	}

	commands := make([]entity.VoiceCommand, 0, len(commandsList))
	for _, cmdDB := range commandsList {
		commands = append(commands, r.makeVoiceCommand(cmdDB))
	}

	return commands, total, nil
}

func (r *voiceRepository) makeVoiceCommand(cmdDB VoiceCommandDB) entity.VoiceCommand {
	var parameters map[string]string
	if len(cmdDB.Parameters) > 0 {
		if err := jsoniter.Unmarshal(cmdDB.Parameters, &parameters); err != nil {
			r.log.WithFields(logrus.Fields{
				"command_id": cmdDB.ID.String,
				"error":      err.Error(),
			}).Warn("Failed to unmarshal command parameters")
		}
	}

	return entity.VoiceCommand{
		ID:         cmdDB.ID.String,
		UserID:     cmdDB.UserID.String,
		SessionID:  cmdDB.SessionID.String,
		Transcript: cmdDB.Transcript.String,
		Action:     cmdDB.Action.String,
		Language:   cmdDB.Language.String,
		Parameters: parameters,
		Response:   cmdDB.Response.String,
		Route:      cmdDB.Route.String,
		CreatedAt:  cmdDB.CreatedAt,
	}
}
