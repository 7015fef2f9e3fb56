package entity

import "time"

// Tipos de notificación generados por el backend.
const (
	NotifStatusChanged    = "status_changed"
	NotifInvoiceGenerated = "invoice_generated"
	NotifDisputeOpened    = "dispute_opened"
	NotifDisputeResolved  = "dispute_resolved"
)

// Notification registro de evento para la campana del back-office.
// La UI de la campana está fuera de alcance; aquí solo se crean y listan filas.
type Notification struct {
	ID        string
	CompanyID string
	ParcelID  string
	Type      string
	Message   string
	Read      bool
	CreatedAt time.Time
}
