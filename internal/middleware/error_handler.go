package middleware

import (
	"errors"

	"ordermgr/internal/errs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// StatusFor maps an error onto the HTTP status it is answered with.
func StatusFor(err error) int {
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, errs.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, errs.ErrOrderLocked):
		return fiber.StatusLocked
	case errors.Is(err, errs.ErrConstraintViolation):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

var messages = map[int]string{
	fiber.StatusBadRequest:          "Invalid request",
	fiber.StatusNotFound:            "Resource not found",
	fiber.StatusLocked:              "Order is concluded and can no longer be changed",
	fiber.StatusConflict:            "Request conflicts with stored data",
	fiber.StatusInternalServerError: "Internal server error",
}

// ErrorHandler is the Fiber error handler for the application. Every handler
// returns its errors and this turns them into a JSON response.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := StatusFor(err)
	message := messages[code]
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		message = fiberErr.Message
	} else if message == "" {
		message = messages[fiber.StatusInternalServerError]
	}

	if code >= fiber.StatusInternalServerError {
		log.Errorw("Request failed", "method", c.Method(), "path", c.Path(), "error", err)
	} else {
		log.Debugw("Request rejected", "method", c.Method(), "path", c.Path(), "status", code, "error", err)
	}

	body := fiber.Map{"message": message}
	if code < fiber.StatusInternalServerError {
		body["error"] = err.Error()
	}
	return c.Status(code).JSON(body)
}
