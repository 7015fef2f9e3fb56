package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/colis-express/internal/domain/entity"
	"github.com/tu-usuario/colis-express/internal/domain/repository"
)

var _ repository.DisputeRepository = (*DisputeRepo)(nil)

const disputeColumns = `id, company_id, parcel_id, reason, status, opened_by, resolution, created_at, resolved_at`

// DisputeRepo implementación de DisputeRepository (usable con pool o tx).
type DisputeRepo struct {
	q Querier
}

// NewDisputeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDisputeRepository(q Querier) *DisputeRepo {
	return &DisputeRepo{q: q}
}

// Create persiste una disputa nueva.
func (r *DisputeRepo) Create(d *entity.Dispute) error {
	query := `
		INSERT INTO disputes (id, company_id, parcel_id, reason, status, opened_by, resolution, created_at, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.CompanyID, d.ParcelID, d.Reason, d.Status, d.OpenedBy, d.Resolution,
		d.CreatedAt, d.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("insert dispute: %w", err)
	}
	return nil
}

// GetByID obtiene una disputa por ID.
func (r *DisputeRepo) GetByID(id string) (*entity.Dispute, error) {
	query := `SELECT ` + disputeColumns + ` FROM disputes WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetOpenByParcel retorna la disputa abierta del paquete, o (nil, nil).
func (r *DisputeRepo) GetOpenByParcel(parcelID string) (*entity.Dispute, error) {
	query := `SELECT ` + disputeColumns + ` FROM disputes WHERE parcel_id = $1 AND status = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, parcelID, entity.DisputeOpen))
}

// ListByCompany lista disputas de la agencia, opcionalmente por estado.
func (r *DisputeRepo) ListByCompany(companyID string, status string, limit, offset int) ([]*entity.Dispute, error) {
	query := `SELECT ` + disputeColumns + `
		FROM disputes
		WHERE company_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list disputes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Dispute
	for rows.Next() {
		var d entity.Dispute
		if err := rows.Scan(
			&d.ID, &d.CompanyID, &d.ParcelID, &d.Reason, &d.Status, &d.OpenedBy, &d.Resolution,
			&d.CreatedAt, &d.ResolvedAt,
		); err != nil {
			return nil, fmt.Errorf("scan dispute: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Update actualiza estado, resolución y fecha de resolución.
func (r *DisputeRepo) Update(d *entity.Dispute) error {
	query := `
		UPDATE disputes SET status = $2, resolution = $3, resolved_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, d.ID, d.Status, d.Resolution, d.ResolvedAt)
	if err != nil {
		return fmt.Errorf("update dispute: %w", err)
	}
	return nil
}

func (r *DisputeRepo) scanOne(row pgx.Row) (*entity.Dispute, error) {
	var d entity.Dispute
	err := row.Scan(
		&d.ID, &d.CompanyID, &d.ParcelID, &d.Reason, &d.Status, &d.OpenedBy, &d.Resolution,
		&d.CreatedAt, &d.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get dispute: %w", err)
	}
	return &d, nil
}
