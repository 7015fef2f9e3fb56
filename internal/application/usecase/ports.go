package usecase

import (
	"context"

	"github.com/tu-usuario/colis-express/internal/domain/repository"
)

// DisputeTxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios que toca una disputa: la fila de la disputa, el estado del
// paquete y la notificación se escriben juntos o no se escriben.
type DisputeTxRunner interface {
	RunDispute(ctx context.Context, fn func(
		parcelRepo repository.ParcelRepository,
		disputeRepo repository.DisputeRepository,
		notifRepo repository.NotificationRepository,
	) error) error
}
