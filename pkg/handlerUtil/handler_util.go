package handlerUtil

import (
	"SafeSphere/pkg/log"
	"SafeSphere/pkg/nlp"
	"SafeSphere/pkg/response"
	"SafeSphere/pkg/session"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	fields := log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		fields["code"] = respErr.Code
		entry := h.logger.WithFields(fields)
		if respErr.Code >= fiber.StatusInternalServerError {
			entry.Error("Operation failed with error response")
		} else {
			entry.Warn("Operation failed with error response")
		}
		return c.Status(respErr.Code).JSON(ErrorResponse{Error: respErr.Error()})
	}

	// Voice session errors
	if errors.Is(err, session.ErrNotReady) {
		h.logger.WithFields(fields).Warn("Voice session not ready")
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error: "Voice recognition is not ready",
			Code:  "SESSION_NOT_READY",
		})
	}

	if errors.Is(err, session.ErrInvalidTransition) {
		h.logger.WithFields(fields).Warn("Invalid voice session transition")
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Error: "Voice session is busy",
			Code:  "INVALID_TRANSITION",
		})
	}

	if errors.Is(err, session.ErrRetriesExhausted) {
		h.logger.WithFields(fields).Warn("Speech recognition retries exhausted")
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{
			Error: "Speech recognition failed too many times",
			Code:  "RETRIES_EXHAUSTED",
		})
	}

	// Language pack errors
	if errors.Is(err, nlp.ErrLanguageNotFound) {
		h.logger.WithFields(fields).Warn("Language not supported")
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Language not supported",
			Code:  "LANGUAGE_NOT_SUPPORTED",
		})
	}

	h.logger.WithFields(fields).Error("Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: "An unexpected error occurred",
	})
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error: "Validation failed: " + err.Error(),
		Code:  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(utils.StatusMessage(fiber.StatusRequestTimeout))
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error: message,
		Code:  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
