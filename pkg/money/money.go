// Package money centraliza el manejo de montos por moneda: precisión decimal
// canónica, redondeo y formato para mostrar. Tanto el motor de precios como el
// PDF y los DTOs pasan por aquí; ninguna vista reimplementa el formato.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// exponents precisión decimal canónica por código ISO 4217.
// Las monedas sin subunidad (franco CFA y similares) usan 0 decimales;
// cualquier moneda no listada usa el default de 2.
var exponents = map[string]int32{
	"XAF": 0,
	"XOF": 0,
	"CDF": 0,
	"KMF": 0,
	"GNF": 0,
	"JPY": 0,
}

const defaultExponent = int32(2)

// Exponent devuelve la cantidad de decimales canónica de la moneda.
func Exponent(currency string) int32 {
	if exp, ok := exponents[strings.ToUpper(strings.TrimSpace(currency))]; ok {
		return exp
	}
	return defaultExponent
}

// Round redondea el monto a la precisión canónica de la moneda.
// Es el único punto de redondeo del sistema: el total almacenado ya viene
// redondeado y el formato solo agrupa, nunca vuelve a redondear de más.
func Round(amount decimal.Decimal, currency string) decimal.Decimal {
	return amount.Round(Exponent(currency))
}

// Format produce la representación para mostrar: miles agrupados con punto,
// decimales con coma y el código de moneda al final.
// Ej: Format(600000, "XAF") → "600.000 XAF"; Format(1234.5, "EUR") → "1.234,50 EUR".
func Format(amount decimal.Decimal, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	fixed := Round(amount, code).StringFixed(Exponent(code))

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart := fixed
	fracPart := ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, fracPart = fixed[:i], fixed[i+1:]
	}

	out := groupThousands(intPart)
	if fracPart != "" {
		out += "," + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out + " " + code
}

// ParseAmount recupera el valor numérico de un string formateado con Format
// (ignora el código de moneda y la agrupación de miles).
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	// Quitar el código de moneda final si está presente ("600.000 XAF").
	if i := strings.LastIndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("money: monto inválido %q: %w", s, err)
	}
	return d, nil
}

// groupThousands inserta puntos de miles en un string de dígitos.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i := 0; i < n; i++ {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, s[i])
	}
	return string(buf)
}
