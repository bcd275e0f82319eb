package inventory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/bizflow-api/internal/application/dto"
	"github.com/jhoicas/bizflow-api/internal/application/ports"
	"github.com/jhoicas/bizflow-api/internal/domain"
)

// Import da de alta los artículos de una planilla. Los que ya existen (mismo nombre o SKU)
// o traen datos inválidos se omiten y se informan; una falla de almacenamiento corta la importación.
func (uc *ItemUseCase) Import(ctx context.Context, accountID string, parser ports.ItemSheetParser, r io.Reader) (*dto.ImportItemsResponse, error) {
	rows, err := parser.ParseItems(r)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repos.Items.List(ctx, accountID)
	if err != nil {
		return nil, domain.Persistence("listar artículos", err)
	}
	names := make(map[string]bool, len(existing)+len(rows))
	for _, it := range existing {
		names[nameKey(it.Name)] = true
	}

	resp := &dto.ImportItemsResponse{Created: []dto.ItemResponse{}, Skipped: []string{}}
	for i, in := range rows {
		n := i + 1
		key := nameKey(in.Name)
		if names[key] {
			resp.Skipped = append(resp.Skipped, fmt.Sprintf("registro %d: ya existe %q", n, strings.TrimSpace(in.Name)))
			continue
		}
		item, err := uc.Create(ctx, accountID, in)
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			resp.Skipped = append(resp.Skipped, fmt.Sprintf("registro %d: SKU %q duplicado", n, in.SKU))
			continue
		case errors.Is(err, domain.ErrInvalidInput):
			resp.Skipped = append(resp.Skipped, fmt.Sprintf("registro %d: datos inválidos", n))
			continue
		case err != nil:
			return nil, err
		}
		names[key] = true
		resp.Created = append(resp.Created, *item)
	}
	uc.log.Info().Str("account_id", accountID).Int("created", len(resp.Created)).Int("skipped", len(resp.Skipped)).Msg("importación de artículos")
	return resp, nil
}

func nameKey(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
