package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/reciboo-portal/internal/application/dto"
	"github.com/jhoicas/reciboo-portal/internal/domain"
	"github.com/jhoicas/reciboo-portal/internal/domain/schema"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// El orden importa: un *schema.Error envuelto en ErrInvalidResponse es un error del backend.
var errorMappings = []errorMapping{
	{domain.ErrInvalidResponse, fiber.StatusBadGateway, "INVALID_RESPONSE"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrMissingParams, fiber.StatusBadRequest, "MISSING_PARAMS"},
	{domain.ErrFileTooLarge, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
	{domain.ErrFileType, fiber.StatusUnsupportedMediaType, "UNSUPPORTED_FILE_TYPE"},
	{domain.ErrNoSupplier, fiber.StatusConflict, "NO_SUPPLIER"},
	{domain.ErrAlreadyInvoiced, fiber.StatusConflict, "ALREADY_INVOICED"},
	{domain.ErrGateNotSatisfied, fiber.StatusConflict, "GATE_NOT_SATISFIED"},
	{domain.ErrSubmitInProgress, fiber.StatusConflict, "SUBMIT_IN_PROGRESS"},
	{domain.ErrStaleResponse, fiber.StatusConflict, "STALE_RESPONSE"},
	{domain.ErrUpstream, fiber.StatusBadGateway, "UPSTREAM"},
	{context.DeadlineExceeded, fiber.StatusGatewayTimeout, "TIMEOUT"},
	{context.Canceled, fiber.StatusGatewayTimeout, "CANCELED"},
}

// writeError traduce un error de la aplicación a dto.ErrorResponse.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	if se, ok := schema.AsError(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: se.Error(),
			Issues:  issuesOf(se),
		})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func issuesOf(se *schema.Error) []dto.FieldIssue {
	out := make([]dto.FieldIssue, 0, len(se.Issues))
	for _, is := range se.Issues {
		out = append(out, dto.FieldIssue{Path: is.Path, Message: is.Message})
	}
	return out
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
