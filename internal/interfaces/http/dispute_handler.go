package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/colis-express/internal/application/dto"
	"github.com/tu-usuario/colis-express/internal/application/usecase"
	"github.com/tu-usuario/colis-express/internal/domain"
)

// DisputeHandler maneja los litigios sobre paquetes.
type DisputeHandler struct {
	uc *usecase.DisputeUseCase
}

// NewDisputeHandler construye el handler.
func NewDisputeHandler(uc *usecase.DisputeUseCase) *DisputeHandler {
	return &DisputeHandler{uc: uc}
}

// Open abre una disputa y pasa el paquete a litige.
// POST /api/disputes
func (h *DisputeHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenDisputeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Open(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return disputeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Resolve cierra una disputa y devuelve el paquete a receptionne.
// POST /api/disputes/:id/resolve
func (h *DisputeHandler) Resolve(c *fiber.Ctx) error {
	var in dto.ResolveDisputeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Resolve(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return disputeError(c, err)
	}
	return c.JSON(out)
}

// List lista las disputas de la agencia.
// GET /api/disputes?status=&limit=&offset=
func (h *DisputeHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(GetCompanyID(c), c.Query("status"), page)
	if err != nil {
		return disputeError(c, err)
	}
	return c.JSON(out)
}

func disputeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
