package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"reportapi/internal/curriculum"
	"reportapi/internal/http/middleware"
	"reportapi/internal/render"
	"reportapi/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// emptyPayload answers a selection that matched no course. It is not an error.
type emptyPayload struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps service and pipeline errors to responses. Course data
// errors carry their own safe message (which record, which field).
func writeServiceError(c *fiber.Ctx, err error) error {
	var (
		transportErr *curriculum.TransportError
		schemaErr    *curriculum.SchemaError
		formatErr    *curriculum.FormatError
	)
	switch {
	case errors.Is(err, curriculum.ErrEmptyResult):
		return c.Status(fiber.StatusOK).JSON(emptyPayload{
			RequestID: requestIDFromCtx(c),
			Status:    "no_matching_rows",
			Message:   "no course matches the selection",
		})
	case errors.As(err, &transportErr):
		return writeError(c, fiber.StatusBadGateway, "SOURCE_UNAVAILABLE", "course record store unavailable")
	case errors.As(err, &schemaErr):
		return writeError(c, fiber.StatusServiceUnavailable, "NO_DATA", schemaErr.Error())
	case errors.As(err, &formatErr):
		return writeError(c, fiber.StatusUnprocessableEntity, "INVALID_COURSE_DATA", formatErr.Error())
	case errors.Is(err, service.ErrProgramRequired):
		return writeError(c, fiber.StatusBadRequest, "PROGRAM_REQUIRED", "program is required")
	case errors.Is(err, service.ErrUnknownView):
		return writeError(c, fiber.StatusNotFound, "UNKNOWN_VIEW", "unknown report view")
	case errors.Is(err, render.ErrUnsupportedFormat):
		return writeError(c, fiber.StatusBadRequest, "UNSUPPORTED_FORMAT", "format must be one of docx, csv, xlsx")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "record file not found")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
	case errors.Is(err, service.ErrUnsupportedFile):
		return writeError(c, fiber.StatusBadRequest, "UNSUPPORTED_FILE", "only .json, .yaml and .yml files are accepted")
	case errors.Is(err, service.ErrFileTooLarge):
		return writeError(c, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "record file too large")
	case errors.Is(err, service.ErrInvalidRecord):
		return writeError(c, fiber.StatusBadRequest, "INVALID_RECORD", "file must hold exactly one flat course record")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "FILE_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
