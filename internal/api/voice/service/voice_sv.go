package voiceService

import (
	"SafeSphere/internal/api/voice"
	"SafeSphere/internal/entity"
	contextPkg "SafeSphere/pkg/context"
	"SafeSphere/pkg/nlp"
	"SafeSphere/pkg/redis"
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	HistorySourceCache    = "cache"
	HistorySourceDatabase = "database"
)

func (s *voiceService) ListLanguages(ctx context.Context, userID string) (*voice.LanguagesResponse, error) {
	current := s.preferredLanguage(ctx, userID)

	resp := &voice.LanguagesResponse{Current: current.Code}
	for _, lang := range s.languages.List() {
		resp.Languages = append(resp.Languages, toLanguageResponse(lang, current.Code))
	}

	return resp, nil
}

func (s *voiceService) SetLanguage(ctx context.Context, userID string, req voice.SetLanguageRequest) (*voice.LanguageResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	lang, ok := s.languages.Get(req.Language)
	if !ok {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"language":   req.Language,
		}).Warn("Requested language is not installed")
		return nil, voice.ErrLanguageNotSupported
	}

	if err := s.redis.SetPreferredLanguage(ctx, userID, lang.Code); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to store preferred language")
		return nil, voice.ErrInternalServerError
	}

	resp := toLanguageResponse(lang, lang.Code)
	return &resp, nil
}

// ResolveLanguage picks the explicitly requested language, then the stored
// preference, then the registry default. Only an explicit unknown code fails.
func (s *voiceService) ResolveLanguage(ctx context.Context, userID string, code string) (nlp.SupportedLanguage, error) {
	if code != "" {
		lang, ok := s.languages.Get(code)
		if !ok {
			return nlp.SupportedLanguage{}, voice.ErrLanguageNotSupported
		}
		return lang, nil
	}

	return s.preferredLanguage(ctx, userID), nil
}

func (s *voiceService) preferredLanguage(ctx context.Context, userID string) nlp.SupportedLanguage {
	code, err := s.redis.GetPreferredLanguage(ctx, userID)
	if err != nil {
		if !errors.Is(err, redis.ErrCacheMiss) {
			s.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"error":      err.Error(),
			}).Warn("Falling back to default language")
		}
		return s.languages.Default()
	}

	return s.languages.Resolve(code)
}

func (s *voiceService) ProcessCommand(ctx context.Context, userID string, req voice.ProcessCommandRequest) (*voice.CommandResponse, error) {
	lang, err := s.ResolveLanguage(ctx, userID, req.Language)
	if err != nil {
		return nil, err
	}

	cmd := s.interpreter.Interpret(req.Transcript, lang)
	return s.RecordCommand(ctx, userID, req.SessionID, cmd)
}

// RecordCommand answers an interpreted command and stores it in postgres and
// in the capped recent list. A cache failure is logged but not returned.
func (s *voiceService) RecordCommand(ctx context.Context, userID, sessionID string, cmd nlp.VoiceCommand) (*voice.CommandResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)
	lang := s.languages.Resolve(cmd.Language)

	createdAt := cmd.Timestamp
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	id, err := s.utils.NewULIDFromTimestamp(createdAt)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate voice command id")
		return nil, voice.ErrInternalServerError
	}

	record := entity.VoiceCommand{
		ID:         id,
		UserID:     userID,
		SessionID:  sessionID,
		Transcript: cmd.RawText,
		Action:     string(cmd.Action),
		Language:   lang.Code,
		Parameters: cmd.Parameters,
		Response:   s.interpreter.Respond(cmd, lang),
		Route:      RouteFor(cmd.Action),
		CreatedAt:  createdAt,
	}

	repo, err := s.voiceRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, voice.ErrSaveCommand
	}

	if err := repo.VoiceCommands.CreateVoiceCommand(ctx, record); err != nil {
		return nil, voice.ErrSaveCommand
	}

	if err := s.redis.PushRecentCommand(ctx, userID, record, s.config.HistorySize); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to cache recent voice command")
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"action":     record.Action,
		"language":   record.Language,
		"session_id": sessionID,
	}).Info("Voice command recorded")

	resp := toCommandResponse(record)
	return &resp, nil
}

func (s *voiceService) GetHistory(ctx context.Context, userID string) (*voice.HistoryResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	cached, err := s.redis.RecentCommands(ctx, userID, s.config.HistorySize)
	if err == nil {
		return toHistoryResponse(cached, HistorySourceCache), nil
	}
	if !errors.Is(err, redis.ErrCacheMiss) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Recent command cache unavailable, reading from database")
	}

	repo, err := s.voiceRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, voice.ErrInternalServerError
	}

	commands, _, err := repo.VoiceCommands.GetVoiceCommandsByUserID(ctx, userID, s.config.HistorySize, 0)
	if err != nil {
		return nil, voice.ErrInternalServerError
	}

	return toHistoryResponse(commands, HistorySourceDatabase), nil
}

func toLanguageResponse(lang nlp.SupportedLanguage, current string) voice.LanguageResponse {
	return voice.LanguageResponse{
		Code:    lang.Code,
		Name:    lang.DisplayName,
		Flag:    lang.Flag,
		Current: lang.Code == current,
	}
}

func toCommandResponse(cmd entity.VoiceCommand) voice.CommandResponse {
	return voice.CommandResponse{
		ID:         cmd.ID,
		SessionID:  cmd.SessionID,
		Transcript: cmd.Transcript,
		Action:     cmd.Action,
		Language:   cmd.Language,
		Parameters: cmd.Parameters,
		Response:   cmd.Response,
		Route:      cmd.Route,
		CreatedAt:  cmd.CreatedAt,
	}
}

func toHistoryResponse(commands []entity.VoiceCommand, source string) *voice.HistoryResponse {
	resp := &voice.HistoryResponse{
		Commands: make([]voice.CommandResponse, 0, len(commands)),
		Source:   source,
	}
	for _, cmd := range commands {
		resp.Commands = append(resp.Commands, toCommandResponse(cmd))
	}
	return resp
}
