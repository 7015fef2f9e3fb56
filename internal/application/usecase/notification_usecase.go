package usecase

import (
	"github.com/tu-usuario/colis-express/internal/application/dto"
	"github.com/tu-usuario/colis-express/internal/domain/entity"
	"github.com/tu-usuario/colis-express/internal/domain/repository"
)

// NotificationUseCase lista y marca como leídas las notificaciones de la
// campana del back-office.
type NotificationUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// List lista las notificaciones de la agencia, las más recientes primero.
func (uc *NotificationUseCase) List(companyID string, onlyUnread bool, page dto.PageRequest) ([]*dto.NotificationResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(companyID, onlyUnread, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toNotificationResponse(n))
	}
	return out, nil
}

// MarkRead marca una notificación como leída.
func (uc *NotificationUseCase) MarkRead(id string) error {
	return uc.repo.MarkRead(id)
}

func toNotificationResponse(n *entity.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        n.ID,
		ParcelID:  n.ParcelID,
		Type:      n.Type,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}
