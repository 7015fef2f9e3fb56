package repository

import "github.com/tu-usuario/colis-express/internal/domain/entity"

// NotificationRepository define el puerto de persistencia para notificaciones.
type NotificationRepository interface {
	Create(notification *entity.Notification) error
	ListByCompany(companyID string, onlyUnread bool, limit, offset int) ([]*entity.Notification, error)
	MarkRead(id string) error
}
