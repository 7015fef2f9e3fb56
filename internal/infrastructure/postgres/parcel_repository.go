package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/colis-express/internal/domain"
	"github.com/tu-usuario/colis-express/internal/domain/entity"
	"github.com/tu-usuario/colis-express/internal/domain/repository"
)

var _ repository.ParcelRepository = (*ParcelRepo)(nil)

const parcelColumns = `id, company_id, tracking_code, sender_id, recipient_id,
		destination_country, shipping_type, description, weight_kg, volume_cbm, status,
		invoice_number, invoice_date, total_price, currency, invoice_status,
		created_at, updated_at`

// ParcelRepo implementación de ParcelRepository (usable con pool o tx).
type ParcelRepo struct {
	q Querier
}

// NewParcelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewParcelRepository(q Querier) *ParcelRepo {
	return &ParcelRepo{q: q}
}

// Create persiste un paquete nuevo (sin campos de factura).
func (r *ParcelRepo) Create(p *entity.Parcel) error {
	query := `
		INSERT INTO parcels (id, company_id, tracking_code, sender_id, recipient_id,
			destination_country, shipping_type, description, weight_kg, volume_cbm, status,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CompanyID, p.TrackingCode, p.SenderID, p.RecipientID,
		p.DestinationCountry, p.ShippingType, p.Description, p.WeightKg, p.VolumeCbm, p.Status,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert parcel: %w", err)
	}
	return nil
}

// GetByID obtiene un paquete por ID.
func (r *ParcelRepo) GetByID(id string) (*entity.Parcel, error) {
	query := `SELECT ` + parcelColumns + ` FROM parcels WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByTrackingCode obtiene un paquete por código de seguimiento dentro de la agencia.
func (r *ParcelRepo) GetByTrackingCode(companyID, trackingCode string) (*entity.Parcel, error) {
	query := `SELECT ` + parcelColumns + ` FROM parcels WHERE company_id = $1 AND tracking_code = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, trackingCode))
}

// ListByCompany lista paquetes de la agencia, opcionalmente filtrados por estado.
func (r *ParcelRepo) ListByCompany(companyID string, status string, limit, offset int) ([]*entity.Parcel, error) {
	query := `SELECT ` + parcelColumns + `
		FROM parcels
		WHERE company_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list parcels: %w", err)
	}
	defer rows.Close()
	var list []*entity.Parcel
	for rows.Next() {
		p, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan parcel: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Update persiste destino, tipo de envío, medidas y descripción.
// No toca los campos de factura ni el estado.
func (r *ParcelRepo) Update(p *entity.Parcel) error {
	query := `
		UPDATE parcels
		SET destination_country = $2, shipping_type = $3, description = $4,
			weight_kg = $5, volume_cbm = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.DestinationCountry, p.ShippingType, p.Description,
		p.WeightKg, p.VolumeCbm, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update parcel: %w", err)
	}
	return nil
}

// UpdateStatus cambia el estado del paquete.
func (r *ParcelRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE parcels SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update parcel status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateInvoiceFields estampa los campos de factura en un único UPDATE
// condicionado a que el paquete siga sin factura. Si otra emisión concurrente
// ya escribió (0 filas afectadas), retorna ErrAlreadyInvoiced y no toca nada.
func (r *ParcelRepo) UpdateInvoiceFields(id string, fields repository.InvoiceFields) error {
	query := `
		UPDATE parcels
		SET invoice_number = $2, invoice_date = $3, total_price = $4,
			currency = $5, invoice_status = $6, updated_at = $3
		WHERE id = $1 AND invoice_number IS NULL`
	tag, err := r.q.Exec(context.Background(), query,
		id, fields.InvoiceNumber, fields.InvoiceDate, fields.TotalPrice,
		fields.Currency, fields.InvoiceStatus,
	)
	if err != nil {
		if isUniqueViolation(err) {
			// Chocó con el UNIQUE de invoice_number
			return domain.ErrAlreadyInvoiced
		}
		return fmt.Errorf("update invoice fields: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyInvoiced
	}
	return nil
}

func (r *ParcelRepo) scanOne(row pgx.Row) (*entity.Parcel, error) {
	p, err := scanParcel(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get parcel: %w", err)
	}
	return p, nil
}

func (r *ParcelRepo) scanRow(rows pgx.Rows) (*entity.Parcel, error) {
	return scanParcel(rows)
}

func scanParcel(row pgx.Row) (*entity.Parcel, error) {
	var p entity.Parcel
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.TrackingCode, &p.SenderID, &p.RecipientID,
		&p.DestinationCountry, &p.ShippingType, &p.Description, &p.WeightKg, &p.VolumeCbm, &p.Status,
		&p.InvoiceNumber, &p.InvoiceDate, &p.TotalPrice, &p.Currency, &p.InvoiceStatus,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
