// Package pricing implementa el motor de precios de envío: dado un destino,
// un tipo de envío y la medida del paquete (peso o volumen), busca la tarifa
// aplicable y calcula el total en la moneda de la tarifa.
//
// El servicio es puro: no tiene efectos secundarios más allá de la consulta a
// la tarifa. Históricamente este cálculo vivía duplicado en cada pantalla del
// back-office; aquí queda consolidado y las vistas son llamadores delgados.
package pricing

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tu-usuario/colis-express/internal/domain"
	"github.com/tu-usuario/colis-express/internal/domain/entity"
	"github.com/tu-usuario/colis-express/pkg/money"
)

// RuleFinder es el colaborador de búsqueda de tarifas que consume el motor.
// Retorna (nil, nil) cuando no existe tarifa para el par.
// repository.PricingRuleRepository lo satisface.
type RuleFinder interface {
	FindRule(countryCode, shippingType string) (*entity.PricingRule, error)
}

// PriceResult resultado de un cálculo de precio.
type PriceResult struct {
	Total    decimal.Decimal
	Currency string
	UnitType string // kg | cbm — indica qué medida se usó
}

// Resolver calcula precios de envío contra el catálogo de tarifas.
type Resolver struct {
	rules RuleFinder
}

// NewResolver construye el motor de precios.
func NewResolver(rules RuleFinder) *Resolver {
	return &Resolver{rules: rules}
}

// Resolve busca la tarifa para (país, tipo de envío) y calcula el total.
//
// Retorna:
//   - (result, nil) con el total redondeado a la precisión de la moneda.
//   - (nil, nil) si la medida relevante (peso o volumen según la tarifa)
//     falta o no es positiva: estado normal "aún sin precio", no un error.
//     El front-office lo usa para mostrar un placeholder en los formularios.
//   - domain.ErrInvalidShippingType, domain.ErrNoRuleFound o
//     domain.ErrInvalidInput según corresponda. Una tarifa ausente nunca se
//     interpreta como costo cero.
func (r *Resolver) Resolve(destinationCountry, shippingType string, weightKg, volumeCbm *decimal.Decimal) (*PriceResult, error) {
	country := NormalizeCountry(destinationCountry)
	if country == "" {
		return nil, domain.ErrInvalidInput
	}
	shipType := strings.ToLower(strings.TrimSpace(shippingType))
	if !entity.ValidShippingType(shipType) {
		return nil, domain.ErrInvalidShippingType
	}

	rule, err := r.rules.FindRule(country, shipType)
	if err != nil {
		return nil, fmt.Errorf("pricing: buscar tarifa %s/%s: %w", country, shipType, err)
	}
	if rule == nil {
		return nil, domain.ErrNoRuleFound
	}

	var qty *decimal.Decimal
	switch rule.UnitType {
	case entity.UnitKg:
		qty = weightKg
	case entity.UnitCbm:
		qty = volumeCbm
	default:
		return nil, fmt.Errorf("pricing: tarifa %s con unidad desconocida %q", rule.ID, rule.UnitType)
	}
	if qty == nil || !qty.GreaterThan(decimal.Zero) {
		// Aún sin medida: no hay precio, pero tampoco error.
		return nil, nil
	}

	total := money.Round(rule.PricePerUnit.Mul(*qty), rule.Currency)
	return &PriceResult{
		Total:    total,
		Currency: rule.Currency,
		UnitType: rule.UnitType,
	}, nil
}

// countryFolder descompone, elimina diacríticos y recompone (é → e).
var countryFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeCountry normaliza la clave de país para el lookup de tarifas:
// minúsculas, sin espacios en los bordes y sin acentos, de modo que
// "Fráncia", "FRANCIA" y "francia" resuelven la misma tarifa.
func NormalizeCountry(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if folded, _, err := transform.String(countryFolder, s); err == nil {
		s = folded
	}
	return s
}
