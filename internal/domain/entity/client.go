package entity

import "time"

// Client representa un contacto del back-office: expedidor o destinatario de
// paquetes. La misma tabla sirve para ambos roles; un paquete referencia dos
// clientes (SenderID y RecipientID).
type Client struct {
	ID        string
	CompanyID string
	Name      string
	Phone     string
	Email     string
	Address   string
	Country   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
