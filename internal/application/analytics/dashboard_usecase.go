// Package analytics contiene los casos de uso del dashboard financiero y la
// exportación del reporte del negocio.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/bizflow-api/internal/application/dto"
	"github.com/jhoicas/bizflow-api/internal/domain"
	"github.com/jhoicas/bizflow-api/internal/domain/finance"
	"github.com/jhoicas/bizflow-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen financiero de la cuenta.
//
// No hay tablas de agregados: cada lectura trae las cuatro colecciones y
// recalcula todo con finance.Summarize.
type DashboardUseCase struct {
	repos repository.Repositories
	opts  finance.Options
	now   func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repos repository.Repositories, opts finance.Options) *DashboardUseCase {
	return &DashboardUseCase{repos: repos, opts: opts, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO de la cuenta.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, accountID string) (*dto.DashboardSummaryDTO, error) {
	snap, err := uc.Snapshot(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return dto.SummaryToDTO(finance.Summarize(snap, uc.opts), uc.now()), nil
}

// Summary resumen del agregador sin mapear (CLI y asistente).
func (uc *DashboardUseCase) Summary(ctx context.Context, accountID string) (finance.Summary, finance.Snapshot, error) {
	snap, err := uc.Snapshot(ctx, accountID)
	if err != nil {
		return finance.Summary{}, finance.Snapshot{}, err
	}
	return finance.Summarize(snap, uc.opts), snap, nil
}

// Snapshot lee en paralelo:
//  1. artículos
//  2. clientes
//  3. ventas
//  4. gastos
//  5. proveedores
func (uc *DashboardUseCase) Snapshot(ctx context.Context, accountID string) (finance.Snapshot, error) {
	var snap finance.Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		items, err := uc.repos.Items.List(gctx, accountID)
		if err != nil {
			return fmt.Errorf("dashboard: artículos: %w", err)
		}
		snap.Items = items
		return nil
	})
	g.Go(func() error {
		customers, err := uc.repos.Customers.List(gctx, accountID)
		if err != nil {
			return fmt.Errorf("dashboard: clientes: %w", err)
		}
		snap.Customers = customers
		return nil
	})
	g.Go(func() error {
		sales, err := uc.repos.Sales.List(gctx, accountID)
		if err != nil {
			return fmt.Errorf("dashboard: ventas: %w", err)
		}
		snap.Sales = sales
		return nil
	})
	g.Go(func() error {
		expenses, err := uc.repos.Expenses.List(gctx, accountID)
		if err != nil {
			return fmt.Errorf("dashboard: gastos: %w", err)
		}
		snap.Expenses = expenses
		return nil
	})
	g.Go(func() error {
		suppliers, err := uc.repos.Suppliers.List(gctx, accountID)
		if err != nil {
			return fmt.Errorf("dashboard: proveedores: %w", err)
		}
		snap.Suppliers = suppliers
		return nil
	})

	if err := g.Wait(); err != nil {
		return finance.Snapshot{}, domain.Persistence("leer resumen", err)
	}
	return snap, nil
}

// LowStock artículos en o por debajo del umbral configurado.
func (uc *DashboardUseCase) LowStock(ctx context.Context, accountID string) ([]dto.ItemResponse, error) {
	items, err := uc.repos.Items.List(ctx, accountID)
	if err != nil {
		return nil, domain.Persistence("listar artículos", err)
	}
	threshold := uc.opts.LowStockThreshold
	if threshold <= 0 {
		threshold = finance.DefaultLowStockThreshold
	}
	return dto.ItemsToResponse(finance.LowStock(items, threshold)), nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
