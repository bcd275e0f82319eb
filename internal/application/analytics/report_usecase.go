package analytics

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/bizflow-api/internal/application/dto"
	"github.com/jhoicas/bizflow-api/internal/application/ports"
)

// ReportUseCase exporta el estado completo del negocio a un libro de cálculo.
type ReportUseCase struct {
	dashboard *DashboardUseCase
	margins   *MarginsUseCase
	exporter  ports.ReportExporter
	shop      ports.ShopInfo
	log       zerolog.Logger
}

func NewReportUseCase(dashboard *DashboardUseCase, margins *MarginsUseCase, exporter ports.ReportExporter, shop ports.ShopInfo, log zerolog.Logger) *ReportUseCase {
	return &ReportUseCase{dashboard: dashboard, margins: margins, exporter: exporter, shop: shop, log: log}
}

// Export genera el archivo y su nombre sugerido, ej. "reporte_octubre_2026.xlsx".
func (uc *ReportUseCase) Export(ctx context.Context, accountID string) ([]byte, string, error) {
	summary, snap, err := uc.dashboard.Summary(ctx, accountID)
	if err != nil {
		return nil, "", err
	}
	margins, err := uc.margins.GetMarginsReport(ctx, accountID, dto.MarginsReportRequest{TopN: maxTopN})
	if err != nil {
		return nil, "", err
	}

	now := uc.dashboard.now()
	data, err := uc.exporter.ExportReport(ctx, ports.Report{
		Shop:        uc.shop,
		GeneratedAt: now,
		Summary:     summary,
		Items:       snap.Items,
		Customers:   snap.Customers,
		Sales:       snap.Sales,
		Expenses:    snap.Expenses,
		Margins:     margins.Ranking,
	})
	if err != nil {
		return nil, "", fmt.Errorf("reporte: exportación fallida: %w", err)
	}
	uc.log.Info().Str("account_id", accountID).Int("bytes", len(data)).Msg("reporte exportado")

	name := "reporte_" + strings.ReplaceAll(strings.ToLower(monthLabel(now)), " ", "_") + uc.exporter.Extension()
	return data, name, nil
}

// ContentType MIME del archivo que genera Export.
func (uc *ReportUseCase) ContentType() string { return uc.exporter.ContentType() }
