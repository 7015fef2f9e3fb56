package entity

import "time"

// Company representa una agencia de envíos (tenant del sistema).
// Sus datos se imprimen en la cabecera de la factura PDF.
type Company struct {
	ID        string
	Name      string
	TaxID     string // NIF de la agencia
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
