package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/colis-express/internal/application/billing"
	"github.com/tu-usuario/colis-express/internal/application/dto"
	"github.com/tu-usuario/colis-express/internal/application/parcels"
	"github.com/tu-usuario/colis-express/internal/domain"
)

// ParcelHandler maneja las peticiones HTTP de paquetes, incluida la emisión
// de factura y la descarga del PDF.
type ParcelHandler struct {
	uc      *parcels.UseCase
	invoice *billing.IssueInvoiceUseCase
	pdf     *billing.PDFUseCase
}

// NewParcelHandler construye el handler.
func NewParcelHandler(uc *parcels.UseCase, invoice *billing.IssueInvoiceUseCase, pdf *billing.PDFUseCase) *ParcelHandler {
	return &ParcelHandler{uc: uc, invoice: invoice, pdf: pdf}
}

// Create registra un paquete.
// POST /api/parcels
func (h *ParcelHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateParcelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return parcelError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista paquetes de la agencia, con filtro opcional por estado.
// GET /api/parcels?status=&limit=&offset=
func (h *ParcelHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.Context(), GetCompanyID(c), c.Query("status"), page)
	if err != nil {
		return parcelError(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene un paquete.
// GET /api/parcels/:id
func (h *ParcelHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return parcelError(c, err)
	}
	return c.JSON(out)
}

// Track busca un paquete por código de seguimiento.
// GET /api/parcels/track/:code
func (h *ParcelHandler) Track(c *fiber.Ctx) error {
	out, err := h.uc.GetByTrackingCode(c.Context(), GetCompanyID(c), c.Params("code"))
	if err != nil {
		return parcelError(c, err)
	}
	return c.JSON(out)
}

// Update edita un paquete aún no facturado.
// PUT /api/parcels/:id
func (h *ParcelHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateParcelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Context(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return parcelError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus avanza el paquete en el flujo de estados.
// POST /api/parcels/:id/status
func (h *ParcelHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ChangeStatus(c.Context(), GetCompanyID(c), c.Params("id"), in.Status)
	if err != nil {
		return parcelError(c, err)
	}
	return c.JSON(out)
}

// Quote godoc
// @Summary      Cotizar un paquete sin facturarlo
// @Tags         parcels
// @Produce      json
// @Param        id   path  string  true  "ID del paquete"
// @Success      200  {object}  dto.QuoteResponse
// @Failure      404  {object}  dto.ErrorResponse  "paquete o tarifa inexistente"
// @Router       /api/parcels/{id}/quote [get]
func (h *ParcelHandler) Quote(c *fiber.Ctx) error {
	out, err := h.uc.Quote(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNoRuleFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_RULE", Message: "no hay tarifa para esa ruta"})
		}
		return parcelError(c, err)
	}
	return c.JSON(out)
}

// IssueInvoice godoc
// @Summary      Generar la factura del paquete (idempotente)
// @Tags         parcels
// @Produce      json
// @Param        id   path  string  true  "ID del paquete"
// @Success      201  {object}  dto.InvoiceResult
// @Failure      409  {object}  dto.ErrorResponse  "ya facturado"
// @Failure      422  {object}  dto.ErrorResponse  "precio no disponible"
// @Router       /api/parcels/{id}/invoice [post]
func (h *ParcelHandler) IssueInvoice(c *fiber.Ctx) error {
	out, err := h.invoice.IssueInvoice(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyInvoiced) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_INVOICED", Message: "el paquete ya tiene factura"})
		}
		if errors.Is(err, domain.ErrPriceUnavailable) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "PRICE_UNAVAILABLE", Message: err.Error()})
		}
		return parcelError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DownloadPDF descarga la factura en PDF.
// GET /api/parcels/:id/invoice/pdf
func (h *ParcelHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.DownloadInvoicePDF(c.Context(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NOT_INVOICED", Message: "el paquete no tiene factura generada"})
		}
		return parcelError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// parcelError mapea errores de dominio a códigos HTTP.
func parcelError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidShippingType), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
