package detectionHandler

import (
	detectionService "SafeSphere/internal/api/detection/service"
	"SafeSphere/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type DetectionHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	detectionService detectionService.IDetectionService
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	ds detectionService.IDetectionService,
) *DetectionHandler {
	return &DetectionHandler{
		detectionService: ds,
		log:              log,
		validator:        validator,
		middleware:       middleware,
	}
}

func (h *DetectionHandler) Start(srv fiber.Router) {
	scan := srv.Group("/scan")
	scan.Use(h.middleware.NewTokenMiddleware, h.middleware.NewRateLimiter)

	scan.Post("/document", h.ScanDocument)
	scan.Post("/guardian", h.ScanGuardian)
	scan.Post("/redact", h.Redact)
	scan.Get("/history", h.GetHistory)
}
