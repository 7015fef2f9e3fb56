package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de envío soportados (deben coincidir con el CHECK de la tabla pricing_rules).
const (
	ShippingStandard = "standard"
	ShippingExpress  = "express"
	ShippingMaritime = "maritime"
)

// Unidades de cobro de una tarifa.
const (
	UnitKg  = "kg"  // se factura por peso
	UnitCbm = "cbm" // se factura por volumen (metros cúbicos)
)

// ValidShippingType indica si el tipo de envío (ya normalizado a minúsculas) es válido.
func ValidShippingType(s string) bool {
	return s == ShippingStandard || s == ShippingExpress || s == ShippingMaritime
}

// PricingRule representa una tarifa de envío: precio por unidad (kg o cbm)
// para un país de destino y un tipo de envío.
// Invariante: a lo sumo una tarifa activa por par (CountryCode, ShippingType),
// garantizado por UNIQUE(country_code, shipping_type) en la tabla.
type PricingRule struct {
	ID           string
	CountryCode  string          // clave de país en minúsculas sin acentos, ej: "france", "gabon"
	ShippingType string          // standard | express | maritime
	UnitType     string          // kg | cbm
	PricePerUnit decimal.Decimal // >= 0
	Currency     string          // código ISO 4217, ej: EUR, USD, XAF
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
