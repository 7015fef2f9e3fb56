package repository

import "github.com/tu-usuario/colis-express/internal/domain/entity"

// ClientRepository define el puerto de persistencia para clientes
// (expedidores y destinatarios).
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	GetByCompanyAndPhone(companyID, phone string) (*entity.Client, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Client, error)
	Update(client *entity.Client) error
	Delete(id string) error
}
