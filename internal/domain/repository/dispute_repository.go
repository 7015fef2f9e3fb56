package repository

import "github.com/tu-usuario/colis-express/internal/domain/entity"

// DisputeRepository define el puerto de persistencia para disputas.
type DisputeRepository interface {
	Create(dispute *entity.Dispute) error
	GetByID(id string) (*entity.Dispute, error)
	// GetOpenByParcel retorna la disputa abierta del paquete, o (nil, nil).
	GetOpenByParcel(parcelID string) (*entity.Dispute, error)
	ListByCompany(companyID string, status string, limit, offset int) ([]*entity.Dispute, error)
	Update(dispute *entity.Dispute) error
}
