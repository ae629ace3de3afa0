package middleware

import (
	"errors"
	"log"

	"brainswap/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type AppError struct {
	StatusCode int
	Message    string
	Data       any
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data any, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

// ErrorMiddleware turns handler errors into the response envelope. Details of
// 5xx causes never reach the client.
type ErrorMiddleware struct {
	logger *log.Logger
}

func NewErrorMiddleware(logger *log.Logger) *ErrorMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &ErrorMiddleware{logger: logger}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Printf("panic recovered path=%s: %v", c.Path(), r)
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg, data := m.normalizeError(c, err)
		return response.Error(c, status, msg, data)
	}
}

func (m *ErrorMiddleware) normalizeError(c fiber.Ctx, err error) (int, string, any) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.StatusCode
		// 503 passes through so clients can tell a degraded dependency
		// from a bug; everything else in the 5xx range is masked.
		if status <= 0 || (status >= 500 && status != fiber.StatusServiceUnavailable) {
			m.logger.Printf("request failed path=%s: %v", c.Path(), err)
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}
		return status, appErr.Message, appErr.Data
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 || status >= 500 {
			m.logger.Printf("request failed path=%s: %v", c.Path(), err)
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}
		return status, fiberErr.Message, nil
	}

	m.logger.Printf("request failed path=%s: %v", c.Path(), err)
	return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
}
