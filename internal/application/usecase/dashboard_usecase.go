package usecase

import (
	"fmt"

	"github.com/tu-usuario/colis-express/internal/application/dto"
	"github.com/tu-usuario/colis-express/internal/domain/repository"
	"github.com/tu-usuario/colis-express/pkg/money"
)

// DashboardUseCase genera el resumen operativo de la agencia: paquetes por
// estado, facturación acumulada por moneda y disputas abiertas.
//
// Fuente de datos: AnalyticsRepository (consultas read-only). Las monedas
// nunca se suman entre sí: un total por código.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye el DashboardResponse para la agencia indicada.
//
// Tres consultas en paralelo:
//  1. CountParcelsByStatus → ParcelsByStatus
//  2. InvoicedRevenue      → Revenue (un renglón por moneda)
//  3. CountOpenDisputes    → OpenDisputes
func (uc *DashboardUseCase) GetSummary(companyID string) (*dto.DashboardResponse, error) {
	type statusResult struct {
		counts []repository.StatusCount
		err    error
	}
	type revenueResult struct {
		rows []repository.RevenueByCurrency
		err  error
	}
	type disputesResult struct {
		count int64
		err   error
	}

	statusCh := make(chan statusResult, 1)
	revenueCh := make(chan revenueResult, 1)
	disputesCh := make(chan disputesResult, 1)

	go func() {
		counts, err := uc.analyticsRepo.CountParcelsByStatus(companyID)
		statusCh <- statusResult{counts, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.InvoicedRevenue(companyID)
		revenueCh <- revenueResult{rows, err}
	}()
	go func() {
		count, err := uc.analyticsRepo.CountOpenDisputes(companyID)
		disputesCh <- disputesResult{count, err}
	}()

	status := <-statusCh
	revenue := <-revenueCh
	disputes := <-disputesCh

	if status.err != nil {
		return nil, fmt.Errorf("dashboard: paquetes por estado: %w", status.err)
	}
	if revenue.err != nil {
		return nil, fmt.Errorf("dashboard: facturación: %w", revenue.err)
	}
	if disputes.err != nil {
		return nil, fmt.Errorf("dashboard: disputas abiertas: %w", disputes.err)
	}

	byStatus := make([]dto.StatusCountDTO, 0, len(status.counts))
	for _, c := range status.counts {
		byStatus = append(byStatus, dto.StatusCountDTO{Status: c.Status, Count: c.Count})
	}
	rev := make([]dto.RevenueDTO, 0, len(revenue.rows))
	for _, r := range revenue.rows {
		rev = append(rev, dto.RevenueDTO{
			Currency:  r.Currency,
			Total:     r.Total,
			Formatted: money.Format(r.Total, r.Currency),
			Invoices:  r.Invoices,
		})
	}

	return &dto.DashboardResponse{
		ParcelsByStatus: byStatus,
		Revenue:         rev,
		OpenDisputes:    disputes.count,
	}, nil
}
