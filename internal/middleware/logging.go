package middleware

import (
	"strings"
	"time"

	"SafeSphere/pkg/log"
	"SafeSphere/pkg/sensitive"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var secretFields = []string{
	"password", "token", "secret", "key", "auth",
	"credential", "authorization", "pin", "credit_card",
	"card_number", "cvv", "ssn", "api_key", "access_token",
}

func (m *middleware) NewLoggingMiddleware(c *fiber.Ctx) error {
	start := time.Now()
	requestID := m.GetRequestID(c)

	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		status = fiberStatus(err, status)
	}

	fields := log.Fields{
		"request_id":    requestID,
		"method":        c.Method(),
		"path":          c.Path(),
		"status":        status,
		"latency_ms":    time.Since(start).Milliseconds(),
		"ip":            c.IP(),
		"user_agent":    c.Get("User-Agent"),
		"response_size": len(c.Response().Body()),
	}

	if body := c.Request().Body(); len(body) > 0 {
		fields["request_body"] = sanitizeRequestBody(body)
	}

	entry := m.logging.logger.WithFields(fields)
	switch {
	case status >= 500:
		entry.Error("Server error")
	case status >= 400:
		entry.Warn("Client error")
	default:
		entry.Info("Success")
	}

	return err
}

func fiberStatus(err error, fallback int) int {
	if e, ok := err.(*fiber.Error); ok {
		return e.Code
	}
	return fallback
}

// sanitizeRequestBody hides secret JSON keys outright and redacts every other
// top-level string value.
func sanitizeRequestBody(body []byte) string {
	var jsonBody map[string]interface{}
	if err := jsoniter.Unmarshal(body, &jsonBody); err != nil {
		return "[non-JSON body]"
	}

	for k, v := range jsonBody {
		if isSecretField(k) {
			jsonBody[k] = "[SECRET]"
			continue
		}
		if s, ok := v.(string); ok {
			jsonBody[k] = sensitive.Redact(s)
		}
	}

	sanitized, err := jsoniter.Marshal(jsonBody)
	if err != nil {
		return "[sanitization-failed]"
	}

	return string(sanitized)
}

func isSecretField(name string) bool {
	name = strings.ToLower(name)
	for _, f := range secretFields {
		if name == f || strings.HasSuffix(name, "_"+f) {
			return true
		}
	}
	return false
}

type loggingMiddleware struct {
	logger *logrus.Logger
}

func newLoggingMiddleware(logger *logrus.Logger) *loggingMiddleware {
	return &loggingMiddleware{
		logger: logger,
	}
}
