package context

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

type key string

const RequestIDKey = "request_id"

const userIDKey key = "user_id"

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	requestID, ok := ctx.Value(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}

// FromFiberCtx detaches the request id (and the user, once the token
// middleware ran) from the fasthttp request so it survives into goroutines.
func FromFiberCtx(c *fiber.Ctx) context.Context {
	ctx := context.Background()

	requestID, ok := c.Locals("X-Request-ID").(string)
	if !ok || requestID == "" {
		requestID = c.Get("X-Request-ID")

		if requestID == "" {
			requestID = "unknown"
		}
	}
	ctx = WithRequestID(ctx, requestID)

	if userID, ok := c.Locals(userIDKey).(string); ok && userID != "" {
		ctx = WithUserID(ctx, userID)
	}

	return ctx
}

// SetFiberUserID records the authenticated user for FromFiberCtx.
func SetFiberUserID(c *fiber.Ctx, userID string) {
	c.Locals(userIDKey, userID)
}
