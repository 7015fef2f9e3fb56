package billing_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/colis-express/internal/application/billing"
	"github.com/tu-usuario/colis-express/internal/domain"
	"github.com/tu-usuario/colis-express/internal/domain/entity"
	"github.com/tu-usuario/colis-express/internal/domain/pricing"
	"github.com/tu-usuario/colis-express/internal/domain/repository"
	"github.com/tu-usuario/colis-express/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeParcelStore implementa ParcelRepository en memoria con el mismo contrato
// condicional que el repositorio PostgreSQL: UpdateInvoiceFields solo aplica si
// el paquete sigue sin factura, bajo mutex, igual que el UPDATE ... WHERE
// invoice_number IS NULL de la base.
type fakeParcelStore struct {
	mu      sync.Mutex
	parcels map[string]*entity.Parcel
}

func newFakeParcelStore(parcels ...*entity.Parcel) *fakeParcelStore {
	s := &fakeParcelStore{parcels: make(map[string]*entity.Parcel)}
	for _, p := range parcels {
		cp := *p
		s.parcels[p.ID] = &cp
	}
	return s
}

func (s *fakeParcelStore) GetByID(id string) (*entity.Parcel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.parcels[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *fakeParcelStore) UpdateInvoiceFields(id string, fields repository.InvoiceFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.parcels[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.InvoiceNumber != nil {
		// 0 filas afectadas por la condición invoice_number IS NULL
		return domain.ErrAlreadyInvoiced
	}
	p.InvoiceNumber = &fields.InvoiceNumber
	p.InvoiceDate = &fields.InvoiceDate
	p.TotalPrice = &fields.TotalPrice
	p.Currency = &fields.Currency
	p.InvoiceStatus = &fields.InvoiceStatus
	return nil
}

func (s *fakeParcelStore) Create(*entity.Parcel) error { return nil }
func (s *fakeParcelStore) GetByTrackingCode(string, string) (*entity.Parcel, error) {
	return nil, nil
}
func (s *fakeParcelStore) ListByCompany(string, string, int, int) ([]*entity.Parcel, error) {
	return nil, nil
}
func (s *fakeParcelStore) Update(*entity.Parcel) error                 { return nil }
func (s *fakeParcelStore) UpdateStatus(string, string, time.Time) error { return nil }

type fakeNotifStore struct {
	mu      sync.Mutex
	created []*entity.Notification
	err     error
}

func (s *fakeNotifStore) Create(n *entity.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, n)
	return nil
}

func (s *fakeNotifStore) ListByCompany(string, bool, int, int) ([]*entity.Notification, error) {
	return nil, nil
}
func (s *fakeNotifStore) MarkRead(string) error { return nil }

type fakeRuleStore struct {
	rules map[string]*entity.PricingRule
}

func (f *fakeRuleStore) FindRule(countryCode, shippingType string) (*entity.PricingRule, error) {
	return f.rules[countryCode+"/"+shippingType], nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCompanyID = "company-1"
	testParcelID  = "parcel-1"
)

func gabonMaritimeRules() *fakeRuleStore {
	return &fakeRuleStore{rules: map[string]*entity.PricingRule{
		"gabon/maritime": {
			ID:           "rule-ga-mar",
			CountryCode:  "gabon",
			ShippingType: entity.ShippingMaritime,
			UnitType:     entity.UnitCbm,
			PricePerUnit: decimal.NewFromInt(300000),
			Currency:     "XAF",
		},
	}}
}

func parcelGabon(volume string) *entity.Parcel {
	p := &entity.Parcel{
		ID:                 testParcelID,
		CompanyID:          testCompanyID,
		TrackingCode:       "CX-TEST0001",
		DestinationCountry: "gabon",
		ShippingType:       entity.ShippingMaritime,
		Status:             entity.StatusReceptionne,
	}
	if volume != "" {
		v := decimal.RequireFromString(volume)
		p.VolumeCbm = &v
	}
	return p
}

func newUseCase(parcels *fakeParcelStore, notifs *fakeNotifStore, rules pricing.RuleFinder) *billing.IssueInvoiceUseCase {
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return billing.NewIssueInvoiceUseCase(
		parcels, notifs, pricing.NewResolver(rules),
		billing.Config{InvoicePrefix: "INV"}, log,
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Emisión exitosa
// ──────────────────────────────────────────────────────────────────────────────

func TestIssueInvoice_EstampaTodosLosCampos(t *testing.T) {
	parcels := newFakeParcelStore(parcelGabon("2"))
	notifs := &fakeNotifStore{}
	uc := newUseCase(parcels, notifs, gabonMaritimeRules())

	before := time.Now()
	res, err := uc.IssueInvoice(context.Background(), testCompanyID, testParcelID)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.True(t, strings.HasPrefix(res.InvoiceNumber, "INV-"),
		"el número debe llevar el prefijo configurado, fue %s", res.InvoiceNumber)
	assert.True(t, decimal.NewFromInt(600000).Equal(res.TotalPrice),
		"300000 × 2 = 600000, fue %s", res.TotalPrice)
	assert.Equal(t, "XAF", res.Currency)
	assert.Equal(t, "600.000 XAF", res.Formatted)
	assert.False(t, res.InvoiceDate.Before(before), "la fecha de factura debe ser de ahora")

	// Los campos quedaron persistidos en una sola escritura
	stored, err := parcels.GetByID(testParcelID)
	require.NoError(t, err)
	require.NotNil(t, stored.InvoiceNumber)
	assert.Equal(t, res.InvoiceNumber, *stored.InvoiceNumber)
	assert.Equal(t, entity.InvoiceStatusGenerated, *stored.InvoiceStatus)
	assert.True(t, res.TotalPrice.Equal(*stored.TotalPrice))

	// Y se creó la notificación
	require.Len(t, notifs.created, 1)
	assert.Equal(t, entity.NotifInvoiceGenerated, notifs.created[0].Type)
}

// Una falla al crear la notificación no revierte la factura.
func TestIssueInvoice_FallaDeNotificacionNoRevierte(t *testing.T) {
	parcels := newFakeParcelStore(parcelGabon("2"))
	notifs := &fakeNotifStore{err: errors.New("tabla llena")}
	uc := newUseCase(parcels, notifs, gabonMaritimeRules())

	res, err := uc.IssueInvoice(context.Background(), testCompanyID, testParcelID)
	require.NoError(t, err, "la factura debe emitirse aunque la notificación falle")
	require.NotNil(t, res)

	stored, _ := parcels.GetByID(testParcelID)
	assert.NotNil(t, stored.InvoiceNumber)
}

// ──────────────────────────────────────────────────────────────────────────────
// Idempotencia
// ──────────────────────────────────────────────────────────────────────────────

// Emitir dos veces en secuencia: la segunda llamada recibe ErrAlreadyInvoiced
// y la factura original queda intacta.
func TestIssueInvoice_SegundaLlamadaEsRechazada(t *testing.T) {
	parcels := newFakeParcelStore(parcelGabon("2"))
	uc := newUseCase(parcels, &fakeNotifStore{}, gabonMaritimeRules())

	first, err := uc.IssueInvoice(context.Background(), testCompanyID, testParcelID)
	require.NoError(t, err)

	_, err = uc.IssueInvoice(context.Background(), testCompanyID, testParcelID)
	assert.ErrorIs(t, err, domain.ErrAlreadyInvoiced)

	stored, _ := parcels.GetByID(testParcelID)
	require.NotNil(t, stored.InvoiceNumber)
	assert.Equal(t, first.InvoiceNumber, *stored.InvoiceNumber, "la primera factura no debe sobreescribirse")
	assert.True(t, first.TotalPrice.Equal(*stored.TotalPrice))
}

// Dos emisiones simultáneas sobre el mismo paquete: exactamente una gana; la
// otra recibe ErrAlreadyInvoiced gracias a la escritura condicional.
func TestIssueInvoice_CarreraConcurrente(t *testing.T) {
	parcels := newFakeParcelStore(parcelGabon("2"))
	uc := newUseCase(parcels, &fakeNotifStore{}, gabonMaritimeRules())

	var wg sync.WaitGroup
	results := make([]error, 2)
	invoices := make([]string, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := uc.IssueInvoice(context.Background(), testCompanyID, testParcelID)
			results[i] = err
			if res != nil {
				invoices[i] = res.InvoiceNumber
			}
		}(i)
	}
	wg.Wait()

	var wins, losses int
	var winner string
	for i := 0; i < 2; i++ {
		if results[i] == nil {
			wins++
			winner = invoices[i]
		} else {
			losses++
			assert.ErrorIs(t, results[i], domain.ErrAlreadyInvoiced)
		}
	}
	assert.Equal(t, 1, wins, "exactamente una emisión debe ganar")
	assert.Equal(t, 1, losses, "la otra debe perder con ErrAlreadyInvoiced")

	stored, _ := parcels.GetByID(testParcelID)
	require.NotNil(t, stored.InvoiceNumber)
	assert.Equal(t, winner, *stored.InvoiceNumber, "el paquete termina con la factura del ganador")
}

// ──────────────────────────────────────────────────────────────────────────────
// Precio no disponible
// ──────────────────────────────────────────────────────────────────────────────

// Sin volumen (la tarifa es por cbm) no hay precio → no se crea factura.
func TestIssueInvoice_SinMedidaNoFactura(t *testing.T) {
	parcels := newFakeParcelStore(parcelGabon(""))
	uc := newUseCase(parcels, &fakeNotifStore{}, gabonMaritimeRules())

	_, err := uc.IssueInvoice(context.Background(), testCompanyID, testParcelID)
	assert.ErrorIs(t, err, domain.ErrPriceUnavailable)

	stored, _ := parcels.GetByID(testParcelID)
	assert.Nil(t, stored.InvoiceNumber, "no debe quedar ninguna factura parcial")
	assert.Nil(t, stored.TotalPrice)
}

// Sin tarifa definida para la ruta → ErrPriceUnavailable, nunca factura en cero.
func TestIssueInvoice_SinTarifaNoFactura(t *testing.T) {
	p := parcelGabon("2")
	p.DestinationCountry = "cameroun"
	parcels := newFakeParcelStore(p)
	uc := newUseCase(parcels, &fakeNotifStore{}, gabonMaritimeRules())

	_, err := uc.IssueInvoice(context.Background(), testCompanyID, testParcelID)
	assert.ErrorIs(t, err, domain.ErrPriceUnavailable)

	stored, _ := parcels.GetByID(testParcelID)
	assert.Nil(t, stored.InvoiceNumber)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alcance por agencia
// ──────────────────────────────────────────────────────────────────────────────

func TestIssueInvoice_PaqueteInexistente(t *testing.T) {
	uc := newUseCase(newFakeParcelStore(), &fakeNotifStore{}, gabonMaritimeRules())

	_, err := uc.IssueInvoice(context.Background(), testCompanyID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIssueInvoice_OtraAgencia(t *testing.T) {
	uc := newUseCase(newFakeParcelStore(parcelGabon("2")), &fakeNotifStore{}, gabonMaritimeRules())

	_, err := uc.IssueInvoice(context.Background(), "otra-agencia", testParcelID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
