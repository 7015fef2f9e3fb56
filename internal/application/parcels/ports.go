package parcels

import (
	"context"

	"github.com/tu-usuario/colis-express/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el cambio de estado y su
// notificación se escriban juntos o no se escriban.
type TxRunner interface {
	RunStatusChange(ctx context.Context, fn func(
		parcelRepo repository.ParcelRepository,
		notifRepo repository.NotificationRepository,
	) error) error
}
