package billing

import (
	"context"
	"fmt"

	"github.com/tu-usuario/colis-express/internal/domain"
	"github.com/tu-usuario/colis-express/internal/domain/repository"
)

// PDFUseCase genera la representación imprimible (PDF) de la factura de un
// paquete. Solo se permite si la factura ya fue generada.
type PDFUseCase struct {
	parcelRepo  repository.ParcelRepository
	companyRepo repository.CompanyRepository
	clientRepo  repository.ClientRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(
	parcelRepo repository.ParcelRepository,
	companyRepo repository.CompanyRepository,
	clientRepo repository.ClientRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		parcelRepo:  parcelRepo,
		companyRepo: companyRepo,
		clientRepo:  clientRepo,
		generator:   generator,
	}
}

// DownloadInvoicePDF recupera paquete, agencia y contactos, verifica que la
// factura exista y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el paquete no existe.
//   - domain.ErrForbidden        si el paquete no pertenece a la agencia del token.
//   - domain.ErrInvalidInput     si el paquete aún no tiene factura generada.
func (uc *PDFUseCase) DownloadInvoicePDF(
	ctx context.Context,
	companyID, parcelID string,
) (pdfBytes []byte, filename string, err error) {
	parcel, err := uc.parcelRepo.GetByID(parcelID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener paquete: %w", err)
	}
	if parcel == nil {
		return nil, "", domain.ErrNotFound
	}
	if parcel.CompanyID != companyID {
		return nil, "", domain.ErrForbidden
	}
	if !parcel.Invoiced() {
		return nil, "", fmt.Errorf("%w: el paquete %s no tiene factura generada", domain.ErrInvalidInput, parcel.TrackingCode)
	}

	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, "", fmt.Errorf("pdf: obtener agencia: %w", err)
	}

	sender, err := uc.clientRepo.GetByID(parcel.SenderID)
	if err != nil || sender == nil {
		return nil, "", fmt.Errorf("pdf: obtener expedidor: %w", err)
	}
	recipient, err := uc.clientRepo.GetByID(parcel.RecipientID)
	if err != nil || recipient == nil {
		return nil, "", fmt.Errorf("pdf: obtener destinatario: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, parcel, company, sender, recipient)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("facture_%s.pdf", *parcel.InvoiceNumber)
	return pdfBytes, filename, nil
}
