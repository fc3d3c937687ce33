package config

import (
	"SafeSphere/database/postgres"
	detectionHandler "SafeSphere/internal/api/detection/handler"
	detectionRepository "SafeSphere/internal/api/detection/repository"
	detectionService "SafeSphere/internal/api/detection/service"
	voiceHandler "SafeSphere/internal/api/voice/handler"
	voiceRepository "SafeSphere/internal/api/voice/repository"
	voiceService "SafeSphere/internal/api/voice/service"
	"SafeSphere/internal/middleware"
	"SafeSphere/pkg/nlp"
	"SafeSphere/pkg/redis"
	"SafeSphere/pkg/utils"
	websocketPkg "SafeSphere/pkg/websocket"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

const defaultLanguage = "en-US"

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	handlers    []handler
	redisServer redis.IRedis
	languages   *nlp.Registry
	speech      websocketPkg.ISpeechRecognizer
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithSpeechRecognizer(speech websocketPkg.ISpeechRecognizer) ServerOption {
	return func(s *Server) error {
		s.speech = speech
		return nil
	}
}

// WithLanguageRegistry loads the embedded language packs. VOICE_DEFAULT_LANGUAGE
// picks the fallback language.
func WithLanguageRegistry() ServerOption {
	return func(s *Server) error {
		code := os.Getenv("VOICE_DEFAULT_LANGUAGE")
		if code == "" {
			code = defaultLanguage
		}

		registry, err := nlp.NewRegistry(code)
		if err != nil {
			return fmt.Errorf("failed to load language packs: %w", err)
		}
		s.languages = registry
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Detection
	detectionRepo := detectionRepository.New(s.db, s.log)
	detectionServices := detectionService.NewDetectionService(detectionRepo, s.utils, s.log)
	detectionHandlers := detectionHandler.New(s.log, s.validator, s.middleware, detectionServices)

	// Voice
	voiceRepo := voiceRepository.New(s.db, s.log)
	voiceServices := voiceService.NewVoiceService(s.log, voiceRepo, s.redisServer, s.utils, s.languages, nlp.NewInterpreter(), voiceConfigFromEnv())
	voiceHandlers := voiceHandler.New(s.log, s.validator, s.middleware, voiceServices, s.speech)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, detectionHandlers, voiceHandlers)
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware(), s.middleware.NewLoggingMiddleware)
	router := s.engine.Group("/api/v1")

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) Shutdown() error {
	if s.speech != nil {
		s.speech.CloseConnection()
	}
	if s.redisServer != nil {
		if err := s.redisServer.Close(); err != nil {
			s.log.Warnf("Error closing redis: %v", err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.log.Warnf("Error closing database: %v", err)
		}
	}
	return s.engine.Shutdown()
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}

func voiceConfigFromEnv() *voiceService.VoiceConfig {
	cfg := voiceService.DefaultVoiceConfig()

	if n, err := strconv.Atoi(os.Getenv("VOICE_MAX_RECOGNIZER_RETRIES")); err == nil && n > 0 {
		cfg.MaxRetries = n
	}
	if n, err := strconv.Atoi(os.Getenv("VOICE_HISTORY_SIZE")); err == nil && n > 0 {
		cfg.HistorySize = n
	}

	return cfg
}
