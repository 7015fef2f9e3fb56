package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/colis-express/internal/application/dto"
	"github.com/tu-usuario/colis-express/internal/application/usecase"
	"github.com/tu-usuario/colis-express/internal/domain"
)

// RateHandler maneja el catálogo de tarifas (solo admin).
type RateHandler struct {
	uc *usecase.RateUseCase
}

// NewRateHandler construye el handler.
func NewRateHandler(uc *usecase.RateUseCase) *RateHandler {
	return &RateHandler{uc: uc}
}

// Create da de alta una tarifa.
// POST /api/rates
func (h *RateHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return rateError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista el catálogo de tarifas.
// GET /api/rates?limit=&offset=
func (h *RateHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(page)
	if err != nil {
		return rateError(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene una tarifa.
// GET /api/rates/:id
func (h *RateHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return rateError(c, err)
	}
	return c.JSON(out)
}

// Update cambia precio, unidad o moneda de una tarifa.
// PUT /api/rates/:id
func (h *RateHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return rateError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina una tarifa.
// DELETE /api/rates/:id
func (h *RateHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return rateError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func rateError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tarifa no encontrada"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidShippingType), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
