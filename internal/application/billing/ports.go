package billing

import (
	"context"

	"github.com/tu-usuario/colis-express/internal/domain/entity"
)

// InvoicePDFGenerator renderiza la representación imprimible de una factura.
// El documento lleva cabecera de la agencia, bloque del destinatario, una
// única línea de detalle (la factura siempre tiene un solo ítem) y el total.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		parcel *entity.Parcel,
		company *entity.Company,
		sender *entity.Client,
		recipient *entity.Client,
	) ([]byte, error)
}
