package dto

import "github.com/shopspring/decimal"

// CreateRateRequest body para POST /api/rates.
type CreateRateRequest struct {
	CountryCode  string          `json:"country_code"`
	ShippingType string          `json:"shipping_type"` // standard | express | maritime
	UnitType     string          `json:"unit_type"`     // kg | cbm
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Currency     string          `json:"currency"` // EUR, USD, XAF, ...
}

// UpdateRateRequest body para PUT /api/rates/:id. Solo precio, unidad y moneda;
// cambiar de par (país, tipo) equivale a borrar y crear otra tarifa.
type UpdateRateRequest struct {
	UnitType     string          `json:"unit_type"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Currency     string          `json:"currency"`
}

// RateResponse tarifa en respuestas.
type RateResponse struct {
	ID           string          `json:"id"`
	CountryCode  string          `json:"country_code"`
	ShippingType string          `json:"shipping_type"`
	UnitType     string          `json:"unit_type"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Currency     string          `json:"currency"`
}
