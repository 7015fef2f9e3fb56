package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/colis-express/internal/domain/entity"
)

// InvoiceFields campos que estampa la emisión de factura sobre el paquete.
// Se escriben todos juntos en un único UPDATE (sin actualizaciones parciales).
type InvoiceFields struct {
	InvoiceNumber string
	InvoiceDate   time.Time
	TotalPrice    decimal.Decimal
	Currency      string
	InvoiceStatus string
}

// ParcelRepository define el puerto de persistencia para paquetes.
type ParcelRepository interface {
	Create(parcel *entity.Parcel) error
	GetByID(id string) (*entity.Parcel, error)
	GetByTrackingCode(companyID, trackingCode string) (*entity.Parcel, error)
	ListByCompany(companyID string, status string, limit, offset int) ([]*entity.Parcel, error)
	// Update persiste destino, tipo de envío, medidas y descripción.
	// No toca los campos de factura.
	Update(parcel *entity.Parcel) error
	UpdateStatus(id, status string, updatedAt time.Time) error
	// UpdateInvoiceFields estampa los campos de factura de forma condicional:
	// el UPDATE solo aplica si invoice_number sigue en NULL. Retorna
	// domain.ErrAlreadyInvoiced si otra emisión concurrente ganó la carrera.
	UpdateInvoiceFields(id string, fields InvoiceFields) error
}
