package dto

import "github.com/shopspring/decimal"

// StatusCountDTO paquetes por estado.
type StatusCountDTO struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// RevenueDTO facturación acumulada por moneda (las monedas no se suman entre sí).
type RevenueDTO struct {
	Currency  string          `json:"currency"`
	Total     decimal.Decimal `json:"total"`
	Formatted string          `json:"formatted"`
	Invoices  int64           `json:"invoices"`
}

// DashboardResponse respuesta de GET /api/dashboard.
type DashboardResponse struct {
	ParcelsByStatus []StatusCountDTO `json:"parcels_by_status"`
	Revenue         []RevenueDTO     `json:"revenue"`
	OpenDisputes    int64            `json:"open_disputes"`
}
