package entity

import "time"

// Estados de una disputa.
const (
	DisputeOpen     = "ouvert"
	DisputeResolved = "resolu"
)

// Dispute representa un litigio abierto sobre un paquete (pérdida, daño,
// reclamo del destinatario). Mientras la disputa está abierta el paquete
// queda en estado litige.
type Dispute struct {
	ID         string
	CompanyID  string
	ParcelID   string
	Reason     string
	Status     string // ouvert | resolu
	OpenedBy   string // user ID
	Resolution string // comentario al resolver, vacío mientras esté abierta
	CreatedAt  time.Time
	ResolvedAt *time.Time
}
