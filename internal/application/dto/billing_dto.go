package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceResult resultado de POST /api/parcels/:id/invoice.
// El llamador actualiza su propia vista con estos campos; la emisión no
// depende de ninguna recarga de página ni estado global.
type InvoiceResult struct {
	ParcelID      string          `json:"parcel_id"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   time.Time       `json:"invoice_date"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Currency      string          `json:"currency"`
	Formatted     string          `json:"formatted"` // total para mostrar, ej: "600.000 XAF"
}
