package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/colis-express/internal/application/dto"
	"github.com/tu-usuario/colis-express/internal/domain"
	"github.com/tu-usuario/colis-express/internal/domain/entity"
	"github.com/tu-usuario/colis-express/internal/domain/pricing"
	"github.com/tu-usuario/colis-express/internal/domain/repository"
)

// RateUseCase administra el catálogo de tarifas (solo rol admin). El país se
// normaliza al guardar para que el motor de precios encuentre la tarifa sin
// importar mayúsculas ni acentos en la entrada.
type RateUseCase struct {
	repo repository.PricingRuleRepository
}

// NewRateUseCase construye el caso de uso.
func NewRateUseCase(repo repository.PricingRuleRepository) *RateUseCase {
	return &RateUseCase{repo: repo}
}

// Create da de alta una tarifa. A lo sumo una tarifa por par (país, tipo de
// envío): si ya existe retorna ErrDuplicate.
func (uc *RateUseCase) Create(in dto.CreateRateRequest) (*dto.RateResponse, error) {
	country := pricing.NormalizeCountry(in.CountryCode)
	if country == "" {
		return nil, fmt.Errorf("%w: país vacío", domain.ErrInvalidInput)
	}
	if !entity.ValidShippingType(in.ShippingType) {
		return nil, domain.ErrInvalidShippingType
	}
	if err := validateRateFields(in.UnitType, in.PricePerUnit, in.Currency); err != nil {
		return nil, err
	}

	existing, err := uc.repo.FindRule(country, in.ShippingType)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya hay tarifa para %s/%s", domain.ErrDuplicate, country, in.ShippingType)
	}

	now := time.Now()
	rule := &entity.PricingRule{
		ID:           uuid.New().String(),
		CountryCode:  country,
		ShippingType: in.ShippingType,
		UnitType:     in.UnitType,
		PricePerUnit: in.PricePerUnit,
		Currency:     strings.ToUpper(strings.TrimSpace(in.Currency)),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(rule); err != nil {
		return nil, err
	}
	return toRateResponse(rule), nil
}

// Update cambia precio, unidad o moneda de una tarifa existente. El par
// (país, tipo) es inmutable: para cambiar de ruta se borra y se crea otra.
func (uc *RateUseCase) Update(id string, in dto.UpdateRateRequest) (*dto.RateResponse, error) {
	rule, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, domain.ErrNotFound
	}
	if err := validateRateFields(in.UnitType, in.PricePerUnit, in.Currency); err != nil {
		return nil, err
	}
	rule.UnitType = in.UnitType
	rule.PricePerUnit = in.PricePerUnit
	rule.Currency = strings.ToUpper(strings.TrimSpace(in.Currency))
	rule.UpdatedAt = time.Now()
	if err := uc.repo.Update(rule); err != nil {
		return nil, err
	}
	return toRateResponse(rule), nil
}

// GetByID obtiene una tarifa.
func (uc *RateUseCase) GetByID(id string) (*dto.RateResponse, error) {
	rule, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, domain.ErrNotFound
	}
	return toRateResponse(rule), nil
}

// List lista el catálogo de tarifas.
func (uc *RateUseCase) List(page dto.PageRequest) ([]*dto.RateResponse, error) {
	page.DefaultPage()
	rules, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.RateResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, toRateResponse(r))
	}
	return out, nil
}

// Delete elimina una tarifa del catálogo. Los paquetes ya facturados con esa
// tarifa conservan su total: la factura guarda el resultado, no la referencia.
func (uc *RateUseCase) Delete(id string) error {
	rule, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if rule == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func validateRateFields(unitType string, price decimal.Decimal, currency string) error {
	if unitType != entity.UnitKg && unitType != entity.UnitCbm {
		return fmt.Errorf("%w: unidad %q desconocida", domain.ErrInvalidInput, unitType)
	}
	if price.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: precio negativo", domain.ErrInvalidInput)
	}
	if len(strings.TrimSpace(currency)) != 3 {
		return fmt.Errorf("%w: moneda %q no es código ISO 4217", domain.ErrInvalidInput, currency)
	}
	return nil
}

func toRateResponse(r *entity.PricingRule) *dto.RateResponse {
	return &dto.RateResponse{
		ID:           r.ID,
		CountryCode:  r.CountryCode,
		ShippingType: r.ShippingType,
		UnitType:     r.UnitType,
		PricePerUnit: r.PricePerUnit,
		Currency:     r.Currency,
	}
}
