package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/colis-express/internal/application/parcels"
	"github.com/tu-usuario/colis-express/internal/application/usecase"
	"github.com/tu-usuario/colis-express/internal/domain/repository"
)

// Ensure TxRunner implements parcels.TxRunner and usecase.DisputeTxRunner.
var _ parcels.TxRunner = (*TxRunner)(nil)
var _ usecase.DisputeTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunStatusChange inicia una transacción con los repos que toca un cambio de
// estado (paquete + notificación) y hace Commit o Rollback.
func (r *TxRunner) RunStatusChange(ctx context.Context, fn func(
	parcelRepo repository.ParcelRepository,
	notifRepo repository.NotificationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	parcelRepo := NewParcelRepository(tx)
	notifRepo := NewNotificationRepository(tx)

	if err := fn(parcelRepo, notifRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunDispute inicia una transacción con los repos que toca una disputa
// (paquete + disputa + notificación) y hace Commit o Rollback.
func (r *TxRunner) RunDispute(ctx context.Context, fn func(
	parcelRepo repository.ParcelRepository,
	disputeRepo repository.DisputeRepository,
	notifRepo repository.NotificationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	parcelRepo := NewParcelRepository(tx)
	disputeRepo := NewDisputeRepository(tx)
	notifRepo := NewNotificationRepository(tx)

	if err := fn(parcelRepo, disputeRepo, notifRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
