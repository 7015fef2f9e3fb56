package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/colis-express/internal/application/dto"
	"github.com/tu-usuario/colis-express/internal/domain"
	"github.com/tu-usuario/colis-express/internal/domain/entity"
	"github.com/tu-usuario/colis-express/internal/domain/pricing"
	"github.com/tu-usuario/colis-express/internal/domain/repository"
	"github.com/tu-usuario/colis-express/pkg/logger"
	"github.com/tu-usuario/colis-express/pkg/money"
)

// Config de facturación para el caso de uso.
type Config struct {
	InvoicePrefix string // ej: "INV" → números INV-1735689600
}

// IssueInvoiceUseCase genera la factura de un paquete: resuelve el precio con
// el motor de tarifas y estampa número, fecha, total y estado en un único
// UPDATE condicional. La emisión es idempotente: un paquete ya facturado
// retorna ErrAlreadyInvoiced y conserva su factura original.
type IssueInvoiceUseCase struct {
	parcelRepo repository.ParcelRepository
	notifRepo  repository.NotificationRepository
	resolver   *pricing.Resolver
	cfg        Config
	log        *logger.Logger
}

// NewIssueInvoiceUseCase construye el caso de uso.
func NewIssueInvoiceUseCase(
	parcelRepo repository.ParcelRepository,
	notifRepo repository.NotificationRepository,
	resolver *pricing.Resolver,
	cfg Config,
	log *logger.Logger,
) *IssueInvoiceUseCase {
	if cfg.InvoicePrefix == "" {
		cfg.InvoicePrefix = "INV"
	}
	return &IssueInvoiceUseCase{
		parcelRepo: parcelRepo,
		notifRepo:  notifRepo,
		resolver:   resolver,
		cfg:        cfg,
		log:        log,
	}
}

// IssueInvoice genera la factura del paquete.
//
// Precondición: el paquete no tiene factura (invoice_number en NULL). El
// chequeo de lectura es solo un atajo; la garantía real contra dos emisiones
// concurrentes es el UPDATE condicional del repositorio (UpdateInvoiceFields):
// a lo sumo una de las llamadas simultáneas gana, la otra recibe
// ErrAlreadyInvoiced sin sobreescribir nada.
//
// Si el motor de precios no encuentra tarifa o falta la medida, la operación
// falla completa con ErrPriceUnavailable: nunca se crea una factura parcial.
func (uc *IssueInvoiceUseCase) IssueInvoice(ctx context.Context, companyID, parcelID string) (*dto.InvoiceResult, error) {
	parcel, err := uc.parcelRepo.GetByID(parcelID)
	if err != nil {
		return nil, fmt.Errorf("facturar: obtener paquete: %w", err)
	}
	if parcel == nil {
		return nil, domain.ErrNotFound
	}
	if parcel.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if parcel.Invoiced() {
		return nil, domain.ErrAlreadyInvoiced
	}

	result, err := uc.resolver.Resolve(parcel.DestinationCountry, parcel.ShippingType, parcel.WeightKg, parcel.VolumeCbm)
	if err != nil {
		// Tarifa ausente o entrada inválida bloquean la factura; una falla de
		// persistencia del catálogo se propaga tal cual (reintentable por el caller).
		if errors.Is(err, domain.ErrNoRuleFound) ||
			errors.Is(err, domain.ErrInvalidShippingType) ||
			errors.Is(err, domain.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPriceUnavailable, err)
		}
		return nil, err
	}
	if result == nil {
		// Sin medida todavía: no hay precio que facturar.
		return nil, domain.ErrPriceUnavailable
	}

	now := time.Now()
	fields := repository.InvoiceFields{
		// Unicidad best-effort por granularidad del timestamp; la tabla lleva
		// además un índice UNIQUE sobre invoice_number como respaldo.
		InvoiceNumber: fmt.Sprintf("%s-%d", uc.cfg.InvoicePrefix, now.Unix()),
		InvoiceDate:   now,
		TotalPrice:    result.Total,
		Currency:      result.Currency,
		InvoiceStatus: entity.InvoiceStatusGenerated,
	}

	// Único UPDATE, condicionado a invoice_number IS NULL: sin escrituras
	// parciales y sin carrera entre el chequeo de arriba y esta escritura.
	if err := uc.parcelRepo.UpdateInvoiceFields(parcel.ID, fields); err != nil {
		if errors.Is(err, domain.ErrAlreadyInvoiced) {
			return nil, domain.ErrAlreadyInvoiced
		}
		return nil, fmt.Errorf("facturar: estampar factura: %w", err)
	}

	// Notificación best-effort después de la escritura; una falla aquí no
	// revierte la factura, solo se registra.
	notif := &entity.Notification{
		ID:        uuid.New().String(),
		CompanyID: parcel.CompanyID,
		ParcelID:  parcel.ID,
		Type:      entity.NotifInvoiceGenerated,
		Message:   fmt.Sprintf("Facture %s générée pour le colis %s (%s)", fields.InvoiceNumber, parcel.TrackingCode, money.Format(result.Total, result.Currency)),
		CreatedAt: now,
	}
	if err := uc.notifRepo.Create(notif); err != nil {
		uc.log.Warn().Err(err).Str("parcel_id", parcel.ID).Msg("no se pudo crear la notificación de factura")
	}

	return &dto.InvoiceResult{
		ParcelID:      parcel.ID,
		InvoiceNumber: fields.InvoiceNumber,
		InvoiceDate:   fields.InvoiceDate,
		TotalPrice:    fields.TotalPrice,
		Currency:      fields.Currency,
		Formatted:     money.Format(fields.TotalPrice, fields.Currency),
	}, nil
}
