package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/colis-express/internal/application/dto"
	"github.com/tu-usuario/colis-express/internal/domain"
	"github.com/tu-usuario/colis-express/internal/domain/entity"
	"github.com/tu-usuario/colis-express/internal/domain/repository"
)

// DisputeUseCase maneja los litigios sobre paquetes. Abrir una disputa pasa el
// paquete a litige; resolverla lo devuelve a receptionne. A lo sumo una
// disputa abierta por paquete.
type DisputeUseCase struct {
	parcelRepo  repository.ParcelRepository
	disputeRepo repository.DisputeRepository
	txRunner    DisputeTxRunner
}

// NewDisputeUseCase construye el caso de uso.
func NewDisputeUseCase(
	parcelRepo repository.ParcelRepository,
	disputeRepo repository.DisputeRepository,
	txRunner DisputeTxRunner,
) *DisputeUseCase {
	return &DisputeUseCase{
		parcelRepo:  parcelRepo,
		disputeRepo: disputeRepo,
		txRunner:    txRunner,
	}
}

// Open abre una disputa sobre el paquete y lo pasa a litige en la misma
// transacción. Solo se permite desde expedie o receptionne.
func (uc *DisputeUseCase) Open(ctx context.Context, companyID, userID string, in dto.OpenDisputeRequest) (*dto.DisputeResponse, error) {
	if strings.TrimSpace(in.Reason) == "" {
		return nil, fmt.Errorf("%w: motivo vacío", domain.ErrInvalidInput)
	}
	parcel, err := uc.parcelRepo.GetByID(in.ParcelID)
	if err != nil {
		return nil, fmt.Errorf("disputas: obtener paquete: %w", err)
	}
	if parcel == nil {
		return nil, domain.ErrNotFound
	}
	if parcel.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if !entity.CanTransition(parcel.Status, entity.StatusLitige) {
		return nil, fmt.Errorf("%w: no se puede abrir disputa en estado %s", domain.ErrConflict, parcel.Status)
	}
	open, err := uc.disputeRepo.GetOpenByParcel(parcel.ID)
	if err != nil {
		return nil, fmt.Errorf("disputas: buscar abierta: %w", err)
	}
	if open != nil {
		return nil, fmt.Errorf("%w: el paquete %s ya tiene una disputa abierta", domain.ErrDuplicate, parcel.TrackingCode)
	}

	now := time.Now()
	dispute := &entity.Dispute{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		ParcelID:  parcel.ID,
		Reason:    strings.TrimSpace(in.Reason),
		Status:    entity.DisputeOpen,
		OpenedBy:  userID,
		CreatedAt: now,
	}
	err = uc.txRunner.RunDispute(ctx, func(
		parcelRepo repository.ParcelRepository,
		disputeRepo repository.DisputeRepository,
		notifRepo repository.NotificationRepository,
	) error {
		if err := disputeRepo.Create(dispute); err != nil {
			return err
		}
		if err := parcelRepo.UpdateStatus(parcel.ID, entity.StatusLitige, now); err != nil {
			return err
		}
		return notifRepo.Create(&entity.Notification{
			ID:        uuid.New().String(),
			CompanyID: companyID,
			ParcelID:  parcel.ID,
			Type:      entity.NotifDisputeOpened,
			Message:   fmt.Sprintf("Litige ouvert sur le colis %s : %s", parcel.TrackingCode, dispute.Reason),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("disputas: abrir: %w", err)
	}
	return toDisputeResponse(dispute), nil
}

// Resolve cierra la disputa y devuelve el paquete a receptionne en la misma
// transacción.
func (uc *DisputeUseCase) Resolve(ctx context.Context, companyID, id string, in dto.ResolveDisputeRequest) (*dto.DisputeResponse, error) {
	dispute, err := uc.disputeRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("disputas: obtener: %w", err)
	}
	if dispute == nil {
		return nil, domain.ErrNotFound
	}
	if dispute.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if dispute.Status != entity.DisputeOpen {
		return nil, fmt.Errorf("%w: la disputa ya está resuelta", domain.ErrConflict)
	}
	parcel, err := uc.parcelRepo.GetByID(dispute.ParcelID)
	if err != nil {
		return nil, fmt.Errorf("disputas: obtener paquete: %w", err)
	}
	if parcel == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	dispute.Status = entity.DisputeResolved
	dispute.Resolution = strings.TrimSpace(in.Resolution)
	dispute.ResolvedAt = &now

	err = uc.txRunner.RunDispute(ctx, func(
		parcelRepo repository.ParcelRepository,
		disputeRepo repository.DisputeRepository,
		notifRepo repository.NotificationRepository,
	) error {
		if err := disputeRepo.Update(dispute); err != nil {
			return err
		}
		if err := parcelRepo.UpdateStatus(parcel.ID, entity.StatusReceptionne, now); err != nil {
			return err
		}
		return notifRepo.Create(&entity.Notification{
			ID:        uuid.New().String(),
			CompanyID: companyID,
			ParcelID:  parcel.ID,
			Type:      entity.NotifDisputeResolved,
			Message:   fmt.Sprintf("Litige résolu sur le colis %s", parcel.TrackingCode),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("disputas: resolver: %w", err)
	}
	return toDisputeResponse(dispute), nil
}

// List lista las disputas de la agencia, opcionalmente por estado.
func (uc *DisputeUseCase) List(companyID, status string, page dto.PageRequest) ([]*dto.DisputeResponse, error) {
	if status != "" && status != entity.DisputeOpen && status != entity.DisputeResolved {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	disputes, err := uc.disputeRepo.ListByCompany(companyID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DisputeResponse, 0, len(disputes))
	for _, d := range disputes {
		out = append(out, toDisputeResponse(d))
	}
	return out, nil
}

func toDisputeResponse(d *entity.Dispute) *dto.DisputeResponse {
	return &dto.DisputeResponse{
		ID:         d.ID,
		ParcelID:   d.ParcelID,
		Reason:     d.Reason,
		Status:     d.Status,
		OpenedBy:   d.OpenedBy,
		Resolution: d.Resolution,
		CreatedAt:  d.CreatedAt,
		ResolvedAt: d.ResolvedAt,
	}
}
