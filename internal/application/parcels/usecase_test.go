package parcels_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/colis-express/internal/application/dto"
	"github.com/tu-usuario/colis-express/internal/application/parcels"
	"github.com/tu-usuario/colis-express/internal/domain"
	"github.com/tu-usuario/colis-express/internal/domain/entity"
	"github.com/tu-usuario/colis-express/internal/domain/pricing"
	"github.com/tu-usuario/colis-express/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeParcelRepo struct {
	parcels map[string]*entity.Parcel
	created []*entity.Parcel
}

func newFakeParcelRepo(parcels ...*entity.Parcel) *fakeParcelRepo {
	r := &fakeParcelRepo{parcels: make(map[string]*entity.Parcel)}
	for _, p := range parcels {
		cp := *p
		r.parcels[p.ID] = &cp
	}
	return r
}

func (r *fakeParcelRepo) Create(p *entity.Parcel) error {
	cp := *p
	r.parcels[p.ID] = &cp
	r.created = append(r.created, &cp)
	return nil
}

func (r *fakeParcelRepo) GetByID(id string) (*entity.Parcel, error) {
	p, ok := r.parcels[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeParcelRepo) GetByTrackingCode(companyID, code string) (*entity.Parcel, error) {
	for _, p := range r.parcels {
		if p.CompanyID == companyID && p.TrackingCode == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeParcelRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.Parcel, error) {
	var out []*entity.Parcel
	for _, p := range r.parcels {
		if p.CompanyID == companyID && (status == "" || p.Status == status) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeParcelRepo) Update(p *entity.Parcel) error {
	cp := *p
	r.parcels[p.ID] = &cp
	return nil
}

func (r *fakeParcelRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	p, ok := r.parcels[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	p.UpdatedAt = updatedAt
	return nil
}

func (r *fakeParcelRepo) UpdateInvoiceFields(string, repository.InvoiceFields) error {
	return nil
}

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func (r *fakeClientRepo) Create(*entity.Client) error { return nil }
func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	return r.clients[id], nil
}
func (r *fakeClientRepo) GetByCompanyAndPhone(string, string) (*entity.Client, error) {
	return nil, nil
}
func (r *fakeClientRepo) ListByCompany(string, int, int) ([]*entity.Client, error) {
	return nil, nil
}
func (r *fakeClientRepo) Update(*entity.Client) error { return nil }
func (r *fakeClientRepo) Delete(string) error         { return nil }

type fakeNotifRepo struct {
	created []*entity.Notification
}

func (r *fakeNotifRepo) Create(n *entity.Notification) error {
	r.created = append(r.created, n)
	return nil
}
func (r *fakeNotifRepo) ListByCompany(string, bool, int, int) ([]*entity.Notification, error) {
	return nil, nil
}
func (r *fakeNotifRepo) MarkRead(string) error { return nil }

// fakeTxRunner ejecuta el callback directo contra los mismos fakes, sin tx real.
type fakeTxRunner struct {
	parcelRepo *fakeParcelRepo
	notifRepo  *fakeNotifRepo
}

func (r *fakeTxRunner) RunStatusChange(ctx context.Context, fn func(
	parcelRepo repository.ParcelRepository,
	notifRepo repository.NotificationRepository,
) error) error {
	return fn(r.parcelRepo, r.notifRepo)
}

type fakeRuleStore struct {
	rules map[string]*entity.PricingRule
}

func (f *fakeRuleStore) FindRule(countryCode, shippingType string) (*entity.PricingRule, error) {
	return f.rules[countryCode+"/"+shippingType], nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const companyID = "company-1"

type fixture struct {
	uc      *parcels.UseCase
	parcels *fakeParcelRepo
	notifs  *fakeNotifRepo
}

func newFixture(stored ...*entity.Parcel) *fixture {
	parcelRepo := newFakeParcelRepo(stored...)
	notifRepo := &fakeNotifRepo{}
	clientRepo := &fakeClientRepo{clients: map[string]*entity.Client{
		"client-exp":  {ID: "client-exp", CompanyID: companyID, Name: "Awa Ndiaye"},
		"client-dest": {ID: "client-dest", CompanyID: companyID, Name: "Paul Obame"},
	}}
	rules := &fakeRuleStore{rules: map[string]*entity.PricingRule{
		"france/standard": {
			ID: "rule-fr-std", CountryCode: "france", ShippingType: entity.ShippingStandard,
			UnitType: entity.UnitKg, PricePerUnit: decimal.NewFromInt(10), Currency: "EUR",
		},
	}}
	uc := parcels.NewUseCase(
		parcelRepo, clientRepo,
		&fakeTxRunner{parcelRepo: parcelRepo, notifRepo: notifRepo},
		pricing.NewResolver(rules),
	)
	return &fixture{uc: uc, parcels: parcelRepo, notifs: notifRepo}
}

func storedParcel(id, status string) *entity.Parcel {
	return &entity.Parcel{
		ID:                 id,
		CompanyID:          companyID,
		TrackingCode:       "CX-ABCD1234",
		SenderID:           "client-exp",
		RecipientID:        "client-dest",
		DestinationCountry: "france",
		ShippingType:       entity.ShippingStandard,
		Status:             status,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_AsignaCodigoYEstadoInicial(t *testing.T) {
	f := newFixture()

	res, err := f.uc.Create(context.Background(), companyID, dto.CreateParcelRequest{
		SenderID:           "client-exp",
		RecipientID:        "client-dest",
		DestinationCountry: "  France ", // se normaliza
		ShippingType:       entity.ShippingStandard,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusRecu, res.Status, "todo paquete nace en recu")
	assert.True(t, strings.HasPrefix(res.TrackingCode, "CX-"), "código fue %s", res.TrackingCode)
	assert.Equal(t, "france", res.DestinationCountry)
	assert.Nil(t, res.WeightKg, "sin medida al registrar es válido")
}

func TestCreate_ClienteDeOtraAgencia(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(context.Background(), "otra-agencia", dto.CreateParcelRequest{
		SenderID:           "client-exp",
		RecipientID:        "client-dest",
		DestinationCountry: "france",
		ShippingType:       entity.ShippingStandard,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_TipoDeEnvioInvalido(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(context.Background(), companyID, dto.CreateParcelRequest{
		SenderID:           "client-exp",
		RecipientID:        "client-dest",
		DestinationCountry: "france",
		ShippingType:       "avion",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidShippingType)
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo de estados
// ──────────────────────────────────────────────────────────────────────────────

func TestChangeStatus_PasoPermitido(t *testing.T) {
	f := newFixture(storedParcel("p1", entity.StatusRecu))

	res, err := f.uc.ChangeStatus(context.Background(), companyID, "p1", entity.StatusExpedie)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusExpedie, res.Status)

	stored, _ := f.parcels.GetByID("p1")
	assert.Equal(t, entity.StatusExpedie, stored.Status)

	require.Len(t, f.notifs.created, 1, "el cambio de estado genera una notificación")
	assert.Equal(t, entity.NotifStatusChanged, f.notifs.created[0].Type)
}

func TestChangeStatus_SaltoNoPermitido(t *testing.T) {
	f := newFixture(storedParcel("p1", entity.StatusRecu))

	// recu → termine se salta expedie y receptionne
	_, err := f.uc.ChangeStatus(context.Background(), companyID, "p1", entity.StatusTermine)
	assert.ErrorIs(t, err, domain.ErrConflict)

	stored, _ := f.parcels.GetByID("p1")
	assert.Equal(t, entity.StatusRecu, stored.Status, "el estado no debe cambiar")
	assert.Empty(t, f.notifs.created)
}

func TestChangeStatus_TermineEsTerminal(t *testing.T) {
	f := newFixture(storedParcel("p1", entity.StatusTermine))

	_, err := f.uc.ChangeStatus(context.Background(), companyID, "p1", entity.StatusExpedie)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestChangeStatus_EstadoDesconocido(t *testing.T) {
	f := newFixture(storedParcel("p1", entity.StatusRecu))

	_, err := f.uc.ChangeStatus(context.Background(), companyID, "p1", "perdido")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_PaqueteFacturadoQuedaCongelado(t *testing.T) {
	p := storedParcel("p1", entity.StatusReceptionne)
	num := "INV-1735689600"
	p.InvoiceNumber = &num
	f := newFixture(p)

	w := decimal.NewFromInt(7)
	_, err := f.uc.Update(context.Background(), companyID, "p1", dto.UpdateParcelRequest{
		DestinationCountry: "france",
		ShippingType:       entity.ShippingStandard,
		WeightKg:           &w,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestUpdate_ActualizaMedidas(t *testing.T) {
	f := newFixture(storedParcel("p1", entity.StatusRecu))

	w := decimal.NewFromInt(5)
	res, err := f.uc.Update(context.Background(), companyID, "p1", dto.UpdateParcelRequest{
		DestinationCountry: "france",
		ShippingType:       entity.ShippingStandard,
		WeightKg:           &w,
	})
	require.NoError(t, err)
	require.NotNil(t, res.WeightKg)
	assert.True(t, w.Equal(*res.WeightKg))
}

// ──────────────────────────────────────────────────────────────────────────────
// Cotización
// ──────────────────────────────────────────────────────────────────────────────

func TestQuote_SinMedidaRetornaSinPrecio(t *testing.T) {
	f := newFixture(storedParcel("p1", entity.StatusRecu))

	quote, err := f.uc.Quote(context.Background(), companyID, "p1")
	require.NoError(t, err, "sin medida no es un error, es un estado normal")
	assert.False(t, quote.HasPrice)
	assert.Nil(t, quote.Total)
}

func TestQuote_ConMedidaRetornaPrecioFormateado(t *testing.T) {
	p := storedParcel("p1", entity.StatusRecu)
	w := decimal.NewFromInt(5)
	p.WeightKg = &w
	f := newFixture(p)

	quote, err := f.uc.Quote(context.Background(), companyID, "p1")
	require.NoError(t, err)
	assert.True(t, quote.HasPrice)
	require.NotNil(t, quote.Total)
	assert.True(t, decimal.NewFromInt(50).Equal(*quote.Total), "10 EUR × 5 kg")
	assert.Equal(t, "50,00 EUR", quote.Formatted)
}

func TestQuote_SinTarifa(t *testing.T) {
	p := storedParcel("p1", entity.StatusRecu)
	p.DestinationCountry = "gabon"
	w := decimal.NewFromInt(5)
	p.WeightKg = &w
	f := newFixture(p)

	_, err := f.uc.Quote(context.Background(), companyID, "p1")
	assert.ErrorIs(t, err, domain.ErrNoRuleFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alcance
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByID_OtraAgencia(t *testing.T) {
	f := newFixture(storedParcel("p1", entity.StatusRecu))

	_, err := f.uc.GetByID(context.Background(), "otra-agencia", "p1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetByTrackingCode(t *testing.T) {
	f := newFixture(storedParcel("p1", entity.StatusRecu))

	res, err := f.uc.GetByTrackingCode(context.Background(), companyID, "CX-ABCD1234")
	require.NoError(t, err)
	assert.Equal(t, "p1", res.ID)

	_, err = f.uc.GetByTrackingCode(context.Background(), companyID, "CX-NOEXISTE")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
