package voiceService

import (
	"SafeSphere/internal/api/voice"
	voiceRepository "SafeSphere/internal/api/voice/repository"
	"SafeSphere/internal/entity"
	"SafeSphere/pkg/nlp"
	"SafeSphere/pkg/redis"
	"SafeSphere/pkg/session"
	"SafeSphere/pkg/utils"
	"context"

	"github.com/sirupsen/logrus"
)

type IVoiceService interface {
	ListLanguages(ctx context.Context, userID string) (*voice.LanguagesResponse, error)
	SetLanguage(ctx context.Context, userID string, req voice.SetLanguageRequest) (*voice.LanguageResponse, error)
	ResolveLanguage(ctx context.Context, userID string, code string) (nlp.SupportedLanguage, error)

	ProcessCommand(ctx context.Context, userID string, req voice.ProcessCommandRequest) (*voice.CommandResponse, error)
	RecordCommand(ctx context.Context, userID, sessionID string, cmd nlp.VoiceCommand) (*voice.CommandResponse, error)
	GetHistory(ctx context.Context, userID string) (*voice.HistoryResponse, error)

	StartSession(ctx context.Context, userID string, language nlp.SupportedLanguage, continuous bool) (*entity.VoiceSession, error)
	EndSession(ctx context.Context, sess entity.VoiceSession) error
	NewMachine(language nlp.SupportedLanguage, observer session.Observer, continuous bool) *session.Machine
}

type voiceService struct {
	log         *logrus.Logger
	voiceRepo   voiceRepository.Repository
	redis       redis.IRedis
	utils       utils.IUtils
	languages   *nlp.Registry
	interpreter nlp.IInterpreter
	config      *VoiceConfig
}

type VoiceConfig struct {
	MaxRetries  int `json:"max_retries"`
	HistorySize int `json:"history_size"`
}

func DefaultVoiceConfig() *VoiceConfig {
	return &VoiceConfig{
		MaxRetries:  session.DefaultMaxRetries,
		HistorySize: session.DefaultHistorySize,
	}
}

func NewVoiceService(
	log *logrus.Logger,
	voiceRepo voiceRepository.Repository,
	redis redis.IRedis,
	utils utils.IUtils,
	languages *nlp.Registry,
	interpreter nlp.IInterpreter,
	config *VoiceConfig,
) IVoiceService {
	if config == nil {
		config = DefaultVoiceConfig()
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = session.DefaultMaxRetries
	}
	if config.HistorySize <= 0 {
		config.HistorySize = session.DefaultHistorySize
	}
	if interpreter == nil {
		interpreter = nlp.NewInterpreter()
	}

	return &voiceService{
		log:         log,
		voiceRepo:   voiceRepo,
		redis:       redis,
		utils:       utils,
		languages:   languages,
		interpreter: interpreter,
		config:      config,
	}
}
