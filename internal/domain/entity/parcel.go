package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un paquete (valores en francés, como los usa el front-office).
const (
	StatusRecu        = "recu"        // recibido en agencia de origen
	StatusExpedie     = "expedie"     // expedido hacia destino
	StatusReceptionne = "receptionne" // recibido en agencia de destino
	StatusTermine     = "termine"     // entregado al destinatario (terminal)
	StatusLitige      = "litige"      // en disputa
)

// Estado de facturación de un paquete.
const InvoiceStatusGenerated = "generated"

// Parcel representa un paquete del back-office.
// WeightKg y VolumeCbm son opcionales: según la tarifa aplicable solo uno de
// los dos es relevante para el precio; el otro se ignora aunque esté presente.
// Los campos Invoice* quedan en nil hasta que se genera la factura y después
// no se vuelven a escribir (la emisión es idempotente).
type Parcel struct {
	ID                 string
	CompanyID          string
	TrackingCode       string
	SenderID           string // cliente expedidor
	RecipientID        string // cliente destinatario
	DestinationCountry string
	ShippingType       string // standard | express | maritime
	Description        string
	WeightKg           *decimal.Decimal
	VolumeCbm          *decimal.Decimal
	Status             string
	InvoiceNumber      *string
	InvoiceDate        *time.Time
	TotalPrice         *decimal.Decimal
	Currency           *string
	InvoiceStatus      *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Invoiced indica si el paquete ya tiene factura generada.
func (p *Parcel) Invoiced() bool {
	return p.InvoiceNumber != nil && *p.InvoiceNumber != ""
}

// transiciones válidas del flujo de estados. litige se alcanza desde expedie o
// receptionne y se resuelve volviendo a receptionne; termine es terminal.
var statusTransitions = map[string][]string{
	StatusRecu:        {StatusExpedie},
	StatusExpedie:     {StatusReceptionne, StatusLitige},
	StatusReceptionne: {StatusTermine, StatusLitige},
	StatusLitige:      {StatusReceptionne},
	StatusTermine:     {},
}

// ValidStatus indica si el valor es un estado conocido.
func ValidStatus(s string) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition indica si el paso from→to está permitido por el flujo.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
