package repository

import "github.com/tu-usuario/colis-express/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para agencias.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	List(limit, offset int) ([]*entity.Company, error)
}
