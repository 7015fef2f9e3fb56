package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/colis-express/internal/domain"
	"github.com/tu-usuario/colis-express/internal/domain/entity"
	"github.com/tu-usuario/colis-express/internal/domain/repository"
)

var _ repository.PricingRuleRepository = (*PricingRuleRepo)(nil)

// PricingRuleRepo implementación de PricingRuleRepository (usable con pool o tx).
// La tabla lleva UNIQUE(country_code, shipping_type): a lo sumo una tarifa por ruta.
type PricingRuleRepo struct {
	q Querier
}

// NewPricingRuleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPricingRuleRepository(q Querier) *PricingRuleRepo {
	return &PricingRuleRepo{q: q}
}

// FindRule busca la tarifa para (país, tipo de envío), ambos ya normalizados.
// Retorna (nil, nil) si no hay tarifa definida para la ruta.
func (r *PricingRuleRepo) FindRule(countryCode, shippingType string) (*entity.PricingRule, error) {
	query := `
		SELECT id, country_code, shipping_type, unit_type, price_per_unit, currency, created_at, updated_at
		FROM pricing_rules WHERE country_code = $1 AND shipping_type = $2`
	var rule entity.PricingRule
	err := r.q.QueryRow(context.Background(), query, countryCode, shippingType).Scan(
		&rule.ID, &rule.CountryCode, &rule.ShippingType, &rule.UnitType,
		&rule.PricePerUnit, &rule.Currency, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find pricing rule: %w", err)
	}
	return &rule, nil
}

// Create persiste una tarifa nueva.
func (r *PricingRuleRepo) Create(rule *entity.PricingRule) error {
	query := `
		INSERT INTO pricing_rules (id, country_code, shipping_type, unit_type, price_per_unit, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		rule.ID, rule.CountryCode, rule.ShippingType, rule.UnitType,
		rule.PricePerUnit, rule.Currency, rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert pricing rule: %w", err)
	}
	return nil
}

// Update actualiza unidad, precio y moneda de una tarifa.
func (r *PricingRuleRepo) Update(rule *entity.PricingRule) error {
	query := `
		UPDATE pricing_rules
		SET unit_type = $2, price_per_unit = $3, currency = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		rule.ID, rule.UnitType, rule.PricePerUnit, rule.Currency, rule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update pricing rule: %w", err)
	}
	return nil
}

// GetByID obtiene una tarifa por ID.
func (r *PricingRuleRepo) GetByID(id string) (*entity.PricingRule, error) {
	query := `
		SELECT id, country_code, shipping_type, unit_type, price_per_unit, currency, created_at, updated_at
		FROM pricing_rules WHERE id = $1`
	var rule entity.PricingRule
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&rule.ID, &rule.CountryCode, &rule.ShippingType, &rule.UnitType,
		&rule.PricePerUnit, &rule.Currency, &rule.CreatedAt, &rule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pricing rule: %w", err)
	}
	return &rule, nil
}

// List lista el catálogo de tarifas ordenado por país y tipo.
func (r *PricingRuleRepo) List(limit, offset int) ([]*entity.PricingRule, error) {
	query := `
		SELECT id, country_code, shipping_type, unit_type, price_per_unit, currency, created_at, updated_at
		FROM pricing_rules ORDER BY country_code, shipping_type LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pricing rules: %w", err)
	}
	defer rows.Close()
	var list []*entity.PricingRule
	for rows.Next() {
		var rule entity.PricingRule
		if err := rows.Scan(
			&rule.ID, &rule.CountryCode, &rule.ShippingType, &rule.UnitType,
			&rule.PricePerUnit, &rule.Currency, &rule.CreatedAt, &rule.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan pricing rule: %w", err)
		}
		list = append(list, &rule)
	}
	return list, rows.Err()
}

// Delete elimina una tarifa por ID.
func (r *PricingRuleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM pricing_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pricing rule: %w", err)
	}
	return nil
}
