package server

import (
	"errors"
	"log/slog"

	"devconnector/internal/middleware"
	"devconnector/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// statusFor maps an AppError code to its HTTP status. Not-found statuses vary
// by endpoint so the caller supplies it.
func statusFor(err error, notFoundStatus int) int {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}

	switch appErr.Code {
	case models.CodeValidation, models.CodeBadCredentials, models.CodeConflict, models.CodeUpstream:
		return fiber.StatusBadRequest
	case models.CodeUnauthorized, models.CodeForbidden:
		return fiber.StatusUnauthorized
	case models.CodeNotFound:
		return notFoundStatus
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the error envelope, logging anything that maps to a 500.
func respondError(c *fiber.Ctx, err error, notFoundStatus int) error {
	status := statusFor(err, notFoundStatus)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request error",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}
	return models.RespondWithError(c, status, err)
}

// parseBody decodes the JSON request body into dst. An empty body decodes as
// an empty object so missing fields surface as validation messages.
func parseBody(c *fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(dst); err != nil {
		return models.NewValidationError("Invalid request body")
	}
	return nil
}

// paramUUID parses a route parameter, returning uuid.Nil when it is malformed.
// A nil id never matches a stored row, so lookups report their usual not-found.
func paramUUID(c *fiber.Ctx, name string) uuid.UUID {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// currentUserID returns the id stored by middleware.AuthRequired.
func currentUserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(middleware.UserIDLocal).(uuid.UUID)
	return id
}
