package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bizflow-api/internal/application/dto"
	"github.com/jhoicas/bizflow-api/internal/domain"
	"github.com/jhoicas/bizflow-api/internal/domain/entity"
	"github.com/jhoicas/bizflow-api/internal/domain/repository"
)

// SupplierUseCase agenda de proveedores de la tienda.
type SupplierUseCase struct {
	repo repository.SupplierRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewSupplierUseCase(repo repository.SupplierRepository, log zerolog.Logger) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, log: log, now: time.Now}
}

// Create registra un proveedor. Solo el nombre es obligatorio.
func (uc *SupplierUseCase) Create(ctx context.Context, accountID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	s := &entity.Supplier{
		ID:            uuid.NewString(),
		AccountID:     accountID,
		Name:          name,
		ContactPerson: strings.TrimSpace(in.ContactPerson),
		Phone:         strings.TrimSpace(in.Phone),
		Address:       strings.TrimSpace(in.Address),
		Category:      strings.TrimSpace(in.Category),
		CreatedAt:     uc.now(),
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, domain.Persistence("guardar proveedor", err)
	}
	uc.log.Info().Str("account_id", accountID).Str("supplier_id", s.ID).Msg("proveedor registrado")
	resp := dto.SupplierToResponse(s)
	return &resp, nil
}

// List proveedores de la cuenta, más recientes primero.
func (uc *SupplierUseCase) List(ctx context.Context, accountID string) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.List(ctx, accountID)
	if err != nil {
		return nil, domain.Persistence("listar proveedores", err)
	}
	return dto.SuppliersToResponse(list), nil
}
