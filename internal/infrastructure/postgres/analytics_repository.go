package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/colis-express/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas read-only para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// CountParcelsByStatus agrupa los paquetes de la agencia por estado.
func (r *AnalyticsRepo) CountParcelsByStatus(companyID string) ([]repository.StatusCount, error) {
	query := `
		SELECT status, COUNT(*)
		FROM parcels WHERE company_id = $1
		GROUP BY status ORDER BY status`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("count parcels by status: %w", err)
	}
	defer rows.Close()
	var out []repository.StatusCount
	for rows.Next() {
		var c repository.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// InvoicedRevenue suma las facturas generadas agrupadas por moneda.
// Cada moneda es un renglón independiente; nunca se convierten ni se suman entre sí.
func (r *AnalyticsRepo) InvoicedRevenue(companyID string) ([]repository.RevenueByCurrency, error) {
	query := `
		SELECT currency, SUM(total_price), COUNT(*)
		FROM parcels
		WHERE company_id = $1 AND invoice_number IS NOT NULL
		GROUP BY currency ORDER BY currency`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("invoiced revenue: %w", err)
	}
	defer rows.Close()
	var out []repository.RevenueByCurrency
	for rows.Next() {
		var rev repository.RevenueByCurrency
		if err := rows.Scan(&rev.Currency, &rev.Total, &rev.Invoices); err != nil {
			return nil, fmt.Errorf("scan revenue: %w", err)
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

// CountOpenDisputes cuenta las disputas abiertas de la agencia.
func (r *AnalyticsRepo) CountOpenDisputes(companyID string) (int64, error) {
	var count int64
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM disputes WHERE company_id = $1 AND status = 'ouvert'`,
		companyID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count open disputes: %w", err)
	}
	return count, nil
}
