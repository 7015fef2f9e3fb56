package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/colis-express/pkg/money"
)

// TestExponent_TablaDePrecision valida la precisión canónica por moneda:
// 0 decimales para las monedas sin subunidad (XAF y familia), 2 por defecto.
func TestExponent_TablaDePrecision(t *testing.T) {
	assert.Equal(t, int32(0), money.Exponent("XAF"))
	assert.Equal(t, int32(0), money.Exponent("XOF"))
	assert.Equal(t, int32(0), money.Exponent("JPY"))
	assert.Equal(t, int32(2), money.Exponent("EUR"))
	assert.Equal(t, int32(2), money.Exponent("USD"))
	// moneda desconocida → default de 2 decimales
	assert.Equal(t, int32(2), money.Exponent("GBP"))
}

func TestExponent_IgnoraMayusculasYEspacios(t *testing.T) {
	assert.Equal(t, int32(0), money.Exponent(" xaf "))
	assert.Equal(t, int32(2), money.Exponent("eur"))
}

// TestRound_PorMoneda valida que el redondeo respete la tabla y no un valor fijo.
func TestRound_PorMoneda(t *testing.T) {
	d := decimal.RequireFromString("1234.567")

	assert.True(t, decimal.RequireFromString("1235").Equal(money.Round(d, "XAF")),
		"XAF redondea a 0 decimales")
	assert.True(t, decimal.RequireFromString("1234.57").Equal(money.Round(d, "EUR")),
		"EUR redondea a 2 decimales")
}

// TestFormat_XAFSinDecimales cubre el escenario de referencia:
// 600000 XAF debe mostrarse como "600.000 XAF" (0 decimales, miles con punto).
func TestFormat_XAFSinDecimales(t *testing.T) {
	total := decimal.NewFromInt(600000)
	assert.Equal(t, "600.000 XAF", money.Format(total, "XAF"))
}

func TestFormat_EURConDecimales(t *testing.T) {
	assert.Equal(t, "1.234,50 EUR", money.Format(decimal.RequireFromString("1234.5"), "EUR"))
	assert.Equal(t, "50,00 EUR", money.Format(decimal.NewFromInt(50), "EUR"))
	assert.Equal(t, "1.000.000,00 USD", money.Format(decimal.NewFromInt(1_000_000), "USD"))
}

func TestFormat_MontoPequenoSinAgrupar(t *testing.T) {
	assert.Equal(t, "999 XAF", money.Format(decimal.NewFromInt(999), "XAF"))
}

func TestFormat_Negativo(t *testing.T) {
	assert.Equal(t, "-25.000 XAF", money.Format(decimal.NewFromInt(-25000), "XAF"))
}

// TestParseAmount_RoundTrip valida la propiedad de ida y vuelta: formatear y
// volver a parsear reproduce el monto exacto para monedas de 0 y 2 decimales.
func TestParseAmount_RoundTrip(t *testing.T) {
	cases := []struct {
		amount   string
		currency string
	}{
		{"600000", "XAF"},
		{"999", "XAF"},
		{"1234.50", "EUR"},
		{"50.00", "EUR"},
		{"1000000.00", "USD"},
		{"0", "XAF"},
		{"0.00", "EUR"},
	}
	for _, c := range cases {
		d := decimal.RequireFromString(c.amount)
		formatted := money.Format(d, c.currency)

		parsed, err := money.ParseAmount(formatted)
		require.NoError(t, err, "parsear %q no debe fallar", formatted)
		assert.True(t, d.Equal(parsed),
			"round-trip de %s %s: formateado %q, parseado %s", c.amount, c.currency, formatted, parsed)
	}
}

func TestParseAmount_StringInvalido(t *testing.T) {
	_, err := money.ParseAmount("no-es-un-monto XAF")
	assert.Error(t, err)
}
