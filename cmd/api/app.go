package main

import (
	"context"
	"fmt"
	"io"

	"github.com/jhoicas/bizflow-api/internal/application/analytics"
	"github.com/jhoicas/bizflow-api/internal/application/billing"
	"github.com/jhoicas/bizflow-api/internal/application/inventory"
	"github.com/jhoicas/bizflow-api/internal/application/ledger"
	"github.com/jhoicas/bizflow-api/internal/application/ports"
	"github.com/jhoicas/bizflow-api/internal/application/usecase"
	"github.com/jhoicas/bizflow-api/internal/domain/customer"
	"github.com/jhoicas/bizflow-api/internal/domain/finance"
	"github.com/jhoicas/bizflow-api/internal/domain/repository"
	infraai "github.com/jhoicas/bizflow-api/internal/infrastructure/ai"
	"github.com/jhoicas/bizflow-api/internal/infrastructure/localstore"
	infrapdf "github.com/jhoicas/bizflow-api/internal/infrastructure/pdf"
	"github.com/jhoicas/bizflow-api/internal/infrastructure/postgres"
	"github.com/jhoicas/bizflow-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/bizflow-api/internal/interfaces/http"
	"github.com/jhoicas/bizflow-api/pkg/config"
	"github.com/jhoicas/bizflow-api/pkg/logger"
	"github.com/jhoicas/bizflow-api/pkg/money"
)

// backend repositorios activos según STORE_DRIVER. tx es nil en el almacén local
// y las ventas corren como saga.
type backend struct {
	repos repository.Repositories
	tx    ledger.TxRunner
	close func()
}

func loadConfig(out io.Writer) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: out})
	return cfg, log, nil
}

// openBackend es el único lugar donde se elige el almacenamiento.
func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverLocal:
		var store *localstore.Store
		if cfg.Store.LocalDataPath == "" {
			store = localstore.New()
		} else {
			s, err := localstore.Open(cfg.Store.LocalDataPath)
			if err != nil {
				return nil, err
			}
			store = s
		}
		log.Info().Str("driver", config.StoreDriverLocal).Str("path", cfg.Store.LocalDataPath).Msg("almacén local")
		return &backend{repos: store.Repositories(), close: func() {}}, nil

	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
			log.Info().Msg("migraciones aplicadas")
		}
		return &backend{repos: postgres.NewRepositories(pool), tx: postgres.NewTxRunner(pool), close: pool.Close}, nil
	}
	return nil, fmt.Errorf("STORE_DRIVER inválido: %q", cfg.Store.Driver)
}

// buildPolicies traduce la configuración del libro a políticas.
func buildPolicies(cfg config.LedgerConfig) (ledger.Policies, error) {
	identity, err := customer.NewKeyPolicy(cfg.CustomerMatchPolicy)
	if err != nil {
		return ledger.Policies{}, err
	}
	spent, err := ledger.ParseSpentPolicy(cfg.CustomerSpentPolicy)
	if err != nil {
		return ledger.Policies{}, err
	}
	overpayment, err := ledger.ParseOverpaymentPolicy(cfg.OverpaymentPolicy)
	if err != nil {
		return ledger.Policies{}, err
	}
	return ledger.Policies{Identity: identity, Spent: spent, Overpayment: overpayment}, nil
}

func financeOptions(cfg config.LedgerConfig) finance.Options {
	return finance.Options{LowStockThreshold: cfg.LowStockThreshold, TopDebtors: cfg.TopDebtors}
}

// buildRouterDeps arma los casos de uso sobre el backend elegido.
func buildRouterDeps(cfg *config.Config, b *backend, log *logger.Logger) (httpRouter.RouterDeps, error) {
	policies, err := buildPolicies(cfg.Ledger)
	if err != nil {
		return httpRouter.RouterDeps{}, err
	}
	if policies.Spent == ledger.SpentCashReceived {
		log.Warn().Msg("CUSTOMER_SPENT_POLICY=cash_received: total_spent cuenta dos veces lo cobrado después de la venta")
	}

	ledgerLog := log.Component("ledger")
	amounts := money.NewFormatter(cfg.App.MoneyLocale, cfg.App.MoneySymbol)
	shop := ports.ShopInfo{Name: cfg.App.Name, Locale: cfg.App.MoneyLocale, Symbol: cfg.App.MoneySymbol}

	stock := ledger.NewStockLedger()
	balance := ledger.NewBalanceLedger(policies)
	processor := ledger.NewSaleProcessor(b.repos, b.tx, stock, balance, ledgerLog)

	dashboardUC := analytics.NewDashboardUseCase(b.repos, financeOptions(cfg.Ledger))
	marginsUC := analytics.NewMarginsUseCase(b.repos)

	advisor, err := infraai.NewAdvisor(cfg.AI)
	if err != nil {
		return httpRouter.RouterDeps{}, err
	}
	aiUC := usecase.NewAIUseCase(advisor, dashboardUC, amounts)
	if !aiUC.Enabled() {
		log.Info().Msg("asistente IA deshabilitado (AI_PROVIDER vacío)")
	}

	return httpRouter.RouterDeps{
		ItemUC:          inventory.NewItemUseCase(b.repos, b.tx, stock, ledgerLog),
		ReplenishmentUC: inventory.NewReplenishmentUseCase(b.repos, cfg.Ledger.LowStockThreshold),
		ItemParser:      xlsx.NewItemImporter(),
		SaleUC:          billing.NewSaleUseCase(b.repos.Sales, processor),
		ReceiptUC:       billing.NewReceiptUseCase(b.repos.Sales, shop, infrapdf.NewMarotoReceiptRenderer()),
		CustomerUC:      billing.NewCustomerUseCase(b.repos.Customers, balance, amounts),
		ExpenseUC:       billing.NewExpenseUseCase(b.repos.Expenses, ledgerLog),
		SupplierUC:      inventory.NewSupplierUseCase(b.repos.Suppliers, ledgerLog),
		DashboardUC:     dashboardUC,
		MarginsUC:       marginsUC,
		ReportUC:        analytics.NewReportUseCase(dashboardUC, marginsUC, xlsx.NewExporter(), shop, log.Component("reports")),
		AIUC:            aiUC,
		JWTSecret:       cfg.JWT.Secret,
		Log:             log.Component("http"),
	}, nil
}
