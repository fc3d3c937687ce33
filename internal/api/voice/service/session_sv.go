package voiceService

import (
	"SafeSphere/internal/api/voice"
	"SafeSphere/internal/entity"
	contextPkg "SafeSphere/pkg/context"
	"SafeSphere/pkg/nlp"
	"SafeSphere/pkg/session"
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

func (s *voiceService) StartSession(ctx context.Context, userID string, language nlp.SupportedLanguage, continuous bool) (*entity.VoiceSession, error) {
	requestID := contextPkg.GetRequestID(ctx)
	now := time.Now()

	id, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate voice session id")
		return nil, voice.ErrInternalServerError
	}

	sess := entity.VoiceSession{
		ID:           id,
		UserID:       userID,
		Language:     language.Code,
		State:        string(session.StateIdle),
		Continuous:   continuous,
		CreatedAt:    now,
		LastActivity: now,
	}

	repo, err := s.voiceRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, voice.ErrInternalServerError
	}

	if err := repo.Sessions.CreateSession(ctx, sess); err != nil {
		return nil, voice.ErrInternalServerError
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": sess.ID,
		"language":   sess.Language,
		"continuous": continuous,
	}).Info("Voice session started")

	return &sess, nil
}

func (s *voiceService) EndSession(ctx context.Context, sess entity.VoiceSession) error {
	requestID := contextPkg.GetRequestID(ctx)
	sess.LastActivity = time.Now()

	repo, err := s.voiceRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return voice.ErrInternalServerError
	}

	if err := repo.Sessions.UpdateSession(ctx, sess); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"request_id":    requestID,
		"session_id":    sess.ID,
		"state":         sess.State,
		"command_count": sess.CommandCount,
		"failures":      sess.Failures,
	}).Info("Voice session ended")

	return nil
}

func (s *voiceService) NewMachine(language nlp.SupportedLanguage, observer session.Observer, continuous bool) *session.Machine {
	return session.NewMachine(session.Config{
		Language:    language,
		Interpreter: s.interpreter,
		Observer:    observer,
		Continuous:  continuous,
		MaxRetries:  s.config.MaxRetries,
		HistorySize: s.config.HistorySize,
	})
}
