package parcels

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/colis-express/internal/application/dto"
	"github.com/tu-usuario/colis-express/internal/domain"
	"github.com/tu-usuario/colis-express/internal/domain/entity"
	"github.com/tu-usuario/colis-express/internal/domain/pricing"
	"github.com/tu-usuario/colis-express/internal/domain/repository"
	"github.com/tu-usuario/colis-express/pkg/money"
)

// UseCase agrupa las operaciones sobre paquetes: registro, consulta,
// edición, cotización y flujo de estados.
type UseCase struct {
	parcelRepo repository.ParcelRepository
	clientRepo repository.ClientRepository
	txRunner   TxRunner
	resolver   *pricing.Resolver
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	parcelRepo repository.ParcelRepository,
	clientRepo repository.ClientRepository,
	txRunner TxRunner,
	resolver *pricing.Resolver,
) *UseCase {
	return &UseCase{
		parcelRepo: parcelRepo,
		clientRepo: clientRepo,
		txRunner:   txRunner,
		resolver:   resolver,
	}
}

// Create registra un paquete nuevo en estado recu y le asigna un código de
// seguimiento. Las medidas son opcionales: un paquete puede registrarse antes
// de pesarlo o cubicarlo.
func (uc *UseCase) Create(ctx context.Context, companyID string, req dto.CreateParcelRequest) (*dto.ParcelResponse, error) {
	if req.SenderID == "" || req.RecipientID == "" || strings.TrimSpace(req.DestinationCountry) == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidShippingType(req.ShippingType) {
		return nil, domain.ErrInvalidShippingType
	}
	if err := validateMeasures(req.WeightKg, req.VolumeCbm); err != nil {
		return nil, err
	}

	// Expedidor y destinatario deben existir y ser de la misma agencia
	for _, clientID := range []string{req.SenderID, req.RecipientID} {
		c, err := uc.clientRepo.GetByID(clientID)
		if err != nil {
			return nil, fmt.Errorf("paquetes: verificar cliente: %w", err)
		}
		if c == nil || c.CompanyID != companyID {
			return nil, fmt.Errorf("%w: cliente %s", domain.ErrNotFound, clientID)
		}
	}

	now := time.Now()
	parcel := &entity.Parcel{
		ID:                 uuid.New().String(),
		CompanyID:          companyID,
		TrackingCode:       newTrackingCode(),
		SenderID:           req.SenderID,
		RecipientID:        req.RecipientID,
		DestinationCountry: pricing.NormalizeCountry(req.DestinationCountry),
		ShippingType:       req.ShippingType,
		Description:        strings.TrimSpace(req.Description),
		WeightKg:           req.WeightKg,
		VolumeCbm:          req.VolumeCbm,
		Status:             entity.StatusRecu,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.parcelRepo.Create(parcel); err != nil {
		return nil, fmt.Errorf("paquetes: crear: %w", err)
	}
	return toParcelResponse(parcel), nil
}

// List retorna los paquetes de la agencia, opcionalmente filtrados por estado.
func (uc *UseCase) List(ctx context.Context, companyID, status string, page dto.PageRequest) ([]*dto.ParcelResponse, error) {
	if status != "" && !entity.ValidStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	parcels, err := uc.parcelRepo.ListByCompany(companyID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("paquetes: listar: %w", err)
	}
	out := make([]*dto.ParcelResponse, 0, len(parcels))
	for _, p := range parcels {
		out = append(out, toParcelResponse(p))
	}
	return out, nil
}

// GetByID retorna el paquete si existe y pertenece a la agencia.
func (uc *UseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ParcelResponse, error) {
	parcel, err := uc.loadScoped(companyID, id)
	if err != nil {
		return nil, err
	}
	return toParcelResponse(parcel), nil
}

// GetByTrackingCode busca un paquete por su código de seguimiento dentro de la agencia.
func (uc *UseCase) GetByTrackingCode(ctx context.Context, companyID, code string) (*dto.ParcelResponse, error) {
	parcel, err := uc.parcelRepo.GetByTrackingCode(companyID, strings.TrimSpace(code))
	if err != nil {
		return nil, fmt.Errorf("paquetes: buscar por código: %w", err)
	}
	if parcel == nil {
		return nil, domain.ErrNotFound
	}
	return toParcelResponse(parcel), nil
}

// Update modifica destino, tipo de envío, medidas y descripción. Un paquete
// ya facturado queda congelado: cualquier edición retorna ErrConflict.
func (uc *UseCase) Update(ctx context.Context, companyID, id string, req dto.UpdateParcelRequest) (*dto.ParcelResponse, error) {
	parcel, err := uc.loadScoped(companyID, id)
	if err != nil {
		return nil, err
	}
	if parcel.Invoiced() {
		return nil, fmt.Errorf("%w: el paquete %s ya tiene factura", domain.ErrConflict, parcel.TrackingCode)
	}
	if strings.TrimSpace(req.DestinationCountry) == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidShippingType(req.ShippingType) {
		return nil, domain.ErrInvalidShippingType
	}
	if err := validateMeasures(req.WeightKg, req.VolumeCbm); err != nil {
		return nil, err
	}

	parcel.DestinationCountry = pricing.NormalizeCountry(req.DestinationCountry)
	parcel.ShippingType = req.ShippingType
	parcel.Description = strings.TrimSpace(req.Description)
	parcel.WeightKg = req.WeightKg
	parcel.VolumeCbm = req.VolumeCbm
	parcel.UpdatedAt = time.Now()

	if err := uc.parcelRepo.Update(parcel); err != nil {
		return nil, fmt.Errorf("paquetes: actualizar: %w", err)
	}
	return toParcelResponse(parcel), nil
}

// Quote calcula el precio del paquete sin facturarlo. Si falta la medida
// relevante retorna HasPrice=false, que es un estado normal (el front muestra
// un guion en lugar de precio). Sin tarifa para la ruta, el error sube tal cual.
func (uc *UseCase) Quote(ctx context.Context, companyID, id string) (*dto.QuoteResponse, error) {
	parcel, err := uc.loadScoped(companyID, id)
	if err != nil {
		return nil, err
	}
	result, err := uc.resolver.Resolve(parcel.DestinationCountry, parcel.ShippingType, parcel.WeightKg, parcel.VolumeCbm)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return &dto.QuoteResponse{HasPrice: false}, nil
	}
	return &dto.QuoteResponse{
		HasPrice:  true,
		Total:     &result.Total,
		Currency:  result.Currency,
		UnitType:  result.UnitType,
		Formatted: money.Format(result.Total, result.Currency),
	}, nil
}

// ChangeStatus avanza el paquete en el flujo recu → expedie → receptionne →
// termine. Un paso no permitido por el flujo retorna ErrConflict. El cambio y
// su notificación se escriben en la misma transacción.
func (uc *UseCase) ChangeStatus(ctx context.Context, companyID, id, newStatus string) (*dto.ParcelResponse, error) {
	if !entity.ValidStatus(newStatus) {
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrInvalidInput, newStatus)
	}
	parcel, err := uc.loadScoped(companyID, id)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(parcel.Status, newStatus) {
		return nil, fmt.Errorf("%w: transición %s → %s no permitida", domain.ErrConflict, parcel.Status, newStatus)
	}

	now := time.Now()
	err = uc.txRunner.RunStatusChange(ctx, func(
		parcelRepo repository.ParcelRepository,
		notifRepo repository.NotificationRepository,
	) error {
		if err := parcelRepo.UpdateStatus(parcel.ID, newStatus, now); err != nil {
			return err
		}
		return notifRepo.Create(&entity.Notification{
			ID:        uuid.New().String(),
			CompanyID: parcel.CompanyID,
			ParcelID:  parcel.ID,
			Type:      entity.NotifStatusChanged,
			Message:   fmt.Sprintf("Le colis %s est passé au statut %s", parcel.TrackingCode, newStatus),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("paquetes: cambiar estado: %w", err)
	}

	parcel.Status = newStatus
	parcel.UpdatedAt = now
	return toParcelResponse(parcel), nil
}

// loadScoped carga el paquete y verifica que pertenezca a la agencia.
func (uc *UseCase) loadScoped(companyID, id string) (*entity.Parcel, error) {
	parcel, err := uc.parcelRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("paquetes: obtener: %w", err)
	}
	if parcel == nil {
		return nil, domain.ErrNotFound
	}
	if parcel.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return parcel, nil
}

// newTrackingCode genera un código corto tipo CX-9F3A21C4 a partir de un UUID.
func newTrackingCode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "CX-" + strings.ToUpper(raw[:8])
}

// validateMeasures rechaza medidas negativas; nil o cero son válidos (sin medida aún).
func validateMeasures(weightKg, volumeCbm *decimal.Decimal) error {
	if weightKg != nil && weightKg.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: peso negativo", domain.ErrInvalidInput)
	}
	if volumeCbm != nil && volumeCbm.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: volumen negativo", domain.ErrInvalidInput)
	}
	return nil
}

func toParcelResponse(p *entity.Parcel) *dto.ParcelResponse {
	return &dto.ParcelResponse{
		ID:                 p.ID,
		CompanyID:          p.CompanyID,
		TrackingCode:       p.TrackingCode,
		SenderID:           p.SenderID,
		RecipientID:        p.RecipientID,
		DestinationCountry: p.DestinationCountry,
		ShippingType:       p.ShippingType,
		Description:        p.Description,
		WeightKg:           p.WeightKg,
		VolumeCbm:          p.VolumeCbm,
		Status:             p.Status,
		InvoiceNumber:      p.InvoiceNumber,
		InvoiceDate:        p.InvoiceDate,
		TotalPrice:         p.TotalPrice,
		Currency:           p.Currency,
		InvoiceStatus:      p.InvoiceStatus,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
