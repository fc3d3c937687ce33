package voiceHandler

import (
	voiceService "SafeSphere/internal/api/voice/service"
	"SafeSphere/internal/middleware"
	websocketPkg "SafeSphere/pkg/websocket"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type VoiceHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	voiceService voiceService.IVoiceService
	speech       websocketPkg.ISpeechRecognizer
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	vs voiceService.IVoiceService,
	speech websocketPkg.ISpeechRecognizer,
) *VoiceHandler {
	return &VoiceHandler{
		log:          log,
		validator:    validate,
		middleware:   middleware,
		voiceService: vs,
		speech:       speech,
	}
}

func (h *VoiceHandler) Start(srv fiber.Router) {
	voice := srv.Group("/voice")

	voice.Use(h.middleware.NewTokenMiddleware)

	voice.Get("/languages", h.GetLanguages)
	voice.Put("/language", h.SetLanguage)

	voice.Post("/command", h.middleware.NewRateLimiter, h.ProcessCommand)
	voice.Get("/history", h.GetHistory)

	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	voice.Use("/session/ws", wsMiddleware)
	voice.Get("/session/ws", websocket.New(h.handleSession))
}
