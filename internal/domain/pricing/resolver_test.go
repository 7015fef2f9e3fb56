package pricing_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/colis-express/internal/domain"
	"github.com/tu-usuario/colis-express/internal/domain/entity"
	"github.com/tu-usuario/colis-express/internal/domain/pricing"
	"github.com/tu-usuario/colis-express/pkg/money"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del catálogo de tarifas
// ──────────────────────────────────────────────────────────────────────────────

type fakeRuleStore struct {
	rules map[string]*entity.PricingRule // clave: país/tipo
	err   error
}

func (f *fakeRuleStore) FindRule(countryCode, shippingType string) (*entity.PricingRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rules[countryCode+"/"+shippingType], nil
}

func newStoreWith(rules ...*entity.PricingRule) *fakeRuleStore {
	s := &fakeRuleStore{rules: make(map[string]*entity.PricingRule)}
	for _, r := range rules {
		s.rules[r.CountryCode+"/"+r.ShippingType] = r
	}
	return s
}

func ruleFranceStandardKg() *entity.PricingRule {
	return &entity.PricingRule{
		ID:           "rule-fr-std",
		CountryCode:  "france",
		ShippingType: entity.ShippingStandard,
		UnitType:     entity.UnitKg,
		PricePerUnit: decimal.NewFromInt(10),
		Currency:     "EUR",
	}
}

func ruleGabonMaritimeCbm() *entity.PricingRule {
	return &entity.PricingRule{
		ID:           "rule-ga-mar",
		CountryCode:  "gabon",
		ShippingType: entity.ShippingMaritime,
		UnitType:     entity.UnitCbm,
		PricePerUnit: decimal.NewFromInt(300000),
		Currency:     "XAF",
	}
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios de referencia
// ──────────────────────────────────────────────────────────────────────────────

// Francia standard, tarifa 10 EUR/kg, 5 kg → 50 EUR.
func TestResolve_FranceStandardPorPeso(t *testing.T) {
	r := pricing.NewResolver(newStoreWith(ruleFranceStandardKg()))

	res, err := r.Resolve("france", "standard", dec("5"), nil)
	require.NoError(t, err)
	require.NotNil(t, res, "con peso positivo debe haber precio")

	assert.True(t, decimal.NewFromInt(50).Equal(res.Total), "total = 10 × 5 = 50, fue %s", res.Total)
	assert.Equal(t, "EUR", res.Currency)
	assert.Equal(t, entity.UnitKg, res.UnitType)
}

// Gabón maritime, tarifa 300000 XAF/cbm, 2 cbm → 600000 XAF, mostrado "600.000 XAF".
func TestResolve_GabonMaritimePorVolumen(t *testing.T) {
	r := pricing.NewResolver(newStoreWith(ruleGabonMaritimeCbm()))

	res, err := r.Resolve("gabon", "maritime", nil, dec("2"))
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.True(t, decimal.NewFromInt(600000).Equal(res.Total))
	assert.Equal(t, "XAF", res.Currency)
	assert.Equal(t, entity.UnitCbm, res.UnitType)
	assert.Equal(t, "600.000 XAF", money.Format(res.Total, res.Currency))
}

// El peso se ignora cuando la tarifa cobra por volumen (y viceversa).
func TestResolve_IgnoraMedidaIrrelevante(t *testing.T) {
	r := pricing.NewResolver(newStoreWith(ruleGabonMaritimeCbm()))

	// peso presente pero la tarifa es por cbm y no hay volumen → sin precio
	res, err := r.Resolve("gabon", "maritime", dec("120"), nil)
	require.NoError(t, err)
	assert.Nil(t, res, "sin volumen no hay precio aunque haya peso")

	// con volumen, el peso extra no altera el total
	res, err = r.Resolve("gabon", "maritime", dec("120"), dec("2"))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, decimal.NewFromInt(600000).Equal(res.Total))
}

// ──────────────────────────────────────────────────────────────────────────────
// Normalización de entradas
// ──────────────────────────────────────────────────────────────────────────────

func TestResolve_PaisYTipoInsensiblesAMayusculas(t *testing.T) {
	r := pricing.NewResolver(newStoreWith(ruleFranceStandardKg()))

	res, err := r.Resolve("  FRANCE ", "Standard", dec("5"), nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, decimal.NewFromInt(50).Equal(res.Total))
}

func TestNormalizeCountry_QuitaAcentos(t *testing.T) {
	assert.Equal(t, "gabon", pricing.NormalizeCountry("Gábon"))
	assert.Equal(t, "cote d'ivoire", pricing.NormalizeCountry("Côte d'Ivoire"))
	assert.Equal(t, "france", pricing.NormalizeCountry("  FRANCE  "))
}

// ──────────────────────────────────────────────────────────────────────────────
// "Sin precio" vs errores
// ──────────────────────────────────────────────────────────────────────────────

// Peso cero o ausente sobre una tarifa por kg → sin precio, no un error ni 0.
func TestResolve_SinPesoNoHayPrecio(t *testing.T) {
	r := pricing.NewResolver(newStoreWith(ruleFranceStandardKg()))

	res, err := r.Resolve("france", "standard", nil, nil)
	require.NoError(t, err)
	assert.Nil(t, res, "sin peso no hay precio")

	res, err = r.Resolve("france", "standard", dec("0"), nil)
	require.NoError(t, err)
	assert.Nil(t, res, "peso 0 no produce precio 0")

	res, err = r.Resolve("france", "standard", dec("-3"), nil)
	require.NoError(t, err)
	assert.Nil(t, res, "peso negativo se tolera como sin precio")
}

// Sin tarifa definida → ErrNoRuleFound, nunca precio cero.
func TestResolve_SinTarifaRetornaError(t *testing.T) {
	r := pricing.NewResolver(newStoreWith(ruleFranceStandardKg()))

	res, err := r.Resolve("cameroun", "standard", dec("5"), nil)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrNoRuleFound)
}

func TestResolve_TipoDeEnvioInvalido(t *testing.T) {
	r := pricing.NewResolver(newStoreWith(ruleFranceStandardKg()))

	_, err := r.Resolve("france", "aereo", dec("5"), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidShippingType)
}

func TestResolve_PaisVacio(t *testing.T) {
	r := pricing.NewResolver(newStoreWith(ruleFranceStandardKg()))

	_, err := r.Resolve("   ", "standard", dec("5"), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Una falla del catálogo se propaga envuelta, nunca se silencia.
func TestResolve_FallaDePersistenciaSePropaga(t *testing.T) {
	boom := errors.New("conexión perdida")
	r := pricing.NewResolver(&fakeRuleStore{err: boom})

	_, err := r.Resolve("france", "standard", dec("5"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

// ──────────────────────────────────────────────────────────────────────────────
// Redondeo por moneda
// ──────────────────────────────────────────────────────────────────────────────

// El total se redondea a la precisión de la moneda de la tarifa: 2 decimales
// para EUR, 0 para XAF. La tabla vive en pkg/money, no en cada llamador.
func TestResolve_RedondeoSegunMoneda(t *testing.T) {
	eurRule := ruleFranceStandardKg()
	eurRule.PricePerUnit = decimal.RequireFromString("10.333")

	xafRule := ruleGabonMaritimeCbm()
	xafRule.PricePerUnit = decimal.RequireFromString("1000.4")

	r := pricing.NewResolver(newStoreWith(eurRule, xafRule))

	res, err := r.Resolve("france", "standard", dec("3"), nil)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, decimal.RequireFromString("31.00").Equal(res.Total),
		"10.333 × 3 = 30.999 → 31.00 EUR, fue %s", res.Total)

	res, err = r.Resolve("gabon", "maritime", nil, dec("1"))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.True(t, decimal.NewFromInt(1000).Equal(res.Total),
		"1000.4 XAF redondea a 1000, fue %s", res.Total)
}
