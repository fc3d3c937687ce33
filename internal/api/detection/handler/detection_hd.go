package detectionHandler

import (
	"SafeSphere/internal/api/detection"
	contextPkg "SafeSphere/pkg/context"
	"SafeSphere/pkg/handlerUtil"
	jwtPkg "SafeSphere/pkg/jwt"
	"SafeSphere/pkg/log"
	"SafeSphere/pkg/sensitive"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *DetectionHandler) ScanDocument(ctx *fiber.Ctx) error {
	return h.scan(ctx, sensitive.DocumentScanner)
}

func (h *DetectionHandler) ScanGuardian(ctx *fiber.Ctx) error {
	return h.scan(ctx, sensitive.ScreenshotGuardian)
}

func (h *DetectionHandler) scan(ctx *fiber.Ctx, profile sensitive.Profile) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"profile":    profile.Name(),
	}).Debug("Processing scan request")

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	var req detection.ScanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, detection.ErrBadRequest, ctx.Path(), "parse_request_body")
	}
	req.UserID = userData.ID

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	res, err := h.detectionService.Scan(c, profile, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "scan_"+profile.Name())
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		h.log.WithFields(log.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"risk_level": res.RiskLevel,
			"saved":      res.ReportID != "",
		}).Info("Scan completed")
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *DetectionHandler) Redact(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req detection.RedactRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, detection.ErrBadRequest, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	if utf8.RuneCountInString(req.Text) > detection.MaxScanTextLength {
		return errHandler.Handle(ctx, requestID, detection.ErrTextTooLong, ctx.Path(), "redact")
	}

	redacted := h.detectionService.Redact(c, req.Text)

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, detection.RedactResponse{Text: redacted})
	}
}

func (h *DetectionHandler) GetHistory(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 10)

	res, err := h.detectionService.GetHistory(c, userData.ID, page, limit)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_scan_history")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}
