package http

import (
	"errors"
	"io/fs"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/roteiro-api/internal/application/dto"
	"github.com/jhoicas/roteiro-api/internal/domain"
)

// respondError traduce los errores de dominio a status HTTP con dto.ErrorResponse.
// El orden importa: una referencia colgante también envuelve ErrStepNotFound.
func respondError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrDanglingReference):
		status, code = fiber.StatusConflict, "DANGLING_REFERENCE"
	case errors.Is(err, domain.ErrNoActiveSession):
		status, code = fiber.StatusConflict, "NO_ACTIVE_SESSION"
	case errors.Is(err, domain.ErrProductNotFound):
		status, code = fiber.StatusNotFound, "PRODUCT_NOT_FOUND"
	case errors.Is(err, domain.ErrStepNotFound):
		status, code = fiber.StatusNotFound, "STEP_NOT_FOUND"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, fs.ErrNotExist):
		status, code = fiber.StatusNotFound, "FILE_NOT_FOUND"
	case errors.Is(err, domain.ErrFileNotAllowed):
		status, code = fiber.StatusBadRequest, "FILE_NOT_ALLOWED"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUsernameTaken):
		status, code = fiber.StatusConflict, "USERNAME_TAKEN"
	case errors.Is(err, domain.ErrDuplicate):
		status, code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrStoreUnavailable):
		status, code = fiber.StatusServiceUnavailable, "STORE_UNAVAILABLE"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: message})
}

// pageParams lee limit/offset; valores ilegibles se tratan como ausentes.
func pageParams(c *fiber.Ctx) (limit, offset int) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		page = dto.PageRequest{}
	}
	page.DefaultPage()
	return page.Limit, page.Offset
}
