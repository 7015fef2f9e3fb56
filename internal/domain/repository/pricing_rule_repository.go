package repository

import "github.com/tu-usuario/colis-express/internal/domain/entity"

// PricingRuleRepository define el puerto de persistencia para tarifas.
// FindRule es la única operación que consume el motor de precios; el resto
// sirve a la pantalla de configuración del back-office.
type PricingRuleRepository interface {
	// FindRule busca la tarifa única para (countryCode, shippingType), ambos
	// ya normalizados a minúsculas. Retorna (nil, nil) si no existe.
	FindRule(countryCode, shippingType string) (*entity.PricingRule, error)
	Create(rule *entity.PricingRule) error
	Update(rule *entity.PricingRule) error
	GetByID(id string) (*entity.PricingRule, error)
	List(limit, offset int) ([]*entity.PricingRule, error)
	Delete(id string) error
}
