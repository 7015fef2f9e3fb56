package repository

import "github.com/shopspring/decimal"

// StatusCount paquetes agrupados por estado.
type StatusCount struct {
	Status string
	Count  int64
}

// RevenueByCurrency suma de facturas generadas agrupadas por moneda.
// Las monedas no se mezclan entre sí: un total por código.
type RevenueByCurrency struct {
	Currency string
	Total    decimal.Decimal
	Invoices int64
}

// AnalyticsRepository consultas agregadas para el dashboard del back-office.
type AnalyticsRepository interface {
	CountParcelsByStatus(companyID string) ([]StatusCount, error)
	InvoicedRevenue(companyID string) ([]RevenueByCurrency, error)
	CountOpenDisputes(companyID string) (int64, error)
}
