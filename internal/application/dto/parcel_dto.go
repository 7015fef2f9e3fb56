package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateParcelRequest body para POST /api/parcels.
// WeightKg y VolumeCbm son opcionales: el paquete puede registrarse antes de
// pesarlo o cubicarlo; mientras falte la medida relevante no habrá precio.
type CreateParcelRequest struct {
	SenderID           string           `json:"sender_id"`
	RecipientID        string           `json:"recipient_id"`
	DestinationCountry string           `json:"destination_country"`
	ShippingType       string           `json:"shipping_type"` // standard | express | maritime
	Description        string           `json:"description,omitempty"`
	WeightKg           *decimal.Decimal `json:"weight_kg,omitempty"`
	VolumeCbm          *decimal.Decimal `json:"volume_cbm,omitempty"`
}

// UpdateParcelRequest body para PUT /api/parcels/:id.
// Solo se permite antes de generar la factura.
type UpdateParcelRequest struct {
	DestinationCountry string           `json:"destination_country"`
	ShippingType       string           `json:"shipping_type"`
	Description        string           `json:"description,omitempty"`
	WeightKg           *decimal.Decimal `json:"weight_kg,omitempty"`
	VolumeCbm          *decimal.Decimal `json:"volume_cbm,omitempty"`
}

// ChangeStatusRequest body para POST /api/parcels/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status"` // recu | expedie | receptionne | termine | litige
}

// ParcelResponse paquete en respuestas.
type ParcelResponse struct {
	ID                 string           `json:"id"`
	CompanyID          string           `json:"company_id"`
	TrackingCode       string           `json:"tracking_code"`
	SenderID           string           `json:"sender_id"`
	RecipientID        string           `json:"recipient_id"`
	DestinationCountry string           `json:"destination_country"`
	ShippingType       string           `json:"shipping_type"`
	Description        string           `json:"description,omitempty"`
	WeightKg           *decimal.Decimal `json:"weight_kg,omitempty"`
	VolumeCbm          *decimal.Decimal `json:"volume_cbm,omitempty"`
	Status             string           `json:"status"`
	InvoiceNumber      *string          `json:"invoice_number,omitempty"`
	InvoiceDate        *time.Time       `json:"invoice_date,omitempty"`
	TotalPrice         *decimal.Decimal `json:"total_price,omitempty"`
	Currency           *string          `json:"currency,omitempty"`
	InvoiceStatus      *string          `json:"invoice_status,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// QuoteResponse vista previa de precio para GET /api/parcels/:id/quote.
// HasPrice=false es el estado normal "aún sin medida": el front muestra un
// placeholder en lugar de un precio.
type QuoteResponse struct {
	HasPrice  bool             `json:"has_price"`
	Total     *decimal.Decimal `json:"total,omitempty"`
	Currency  string           `json:"currency,omitempty"`
	UnitType  string           `json:"unit_type,omitempty"`
	Formatted string           `json:"formatted,omitempty"` // ej: "600.000 XAF"
}
