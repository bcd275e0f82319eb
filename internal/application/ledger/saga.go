package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

type compensation struct {
	step string
	undo func(ctx context.Context) error
}

// saga registra una acción compensatoria por cada paso aplicado en un almacén sin transacciones.
// Un *saga nil no registra nada (camino transaccional).
type saga struct {
	log   zerolog.Logger
	steps []compensation
}

func newSaga(log zerolog.Logger) *saga {
	return &saga{log: log}
}

func (s *saga) record(step string, undo func(ctx context.Context) error) {
	if s == nil {
		return
	}
	s.steps = append(s.steps, compensation{step: step, undo: undo})
}

// compensate ejecuta las compensaciones en orden inverso, aunque ctx esté cancelado.
func (s *saga) compensate(ctx context.Context) error {
	if s == nil {
		return nil
	}
	ctx = context.WithoutCancel(ctx)
	var errs []error
	for i := len(s.steps) - 1; i >= 0; i-- {
		c := s.steps[i]
		if err := c.undo(ctx); err != nil {
			s.log.Error().Err(err).Str("step", c.step).Msg("inconsistencia en el libro: compensación fallida")
			errs = append(errs, fmt.Errorf("compensar %s: %w", c.step, err))
			continue
		}
		s.log.Warn().Str("step", c.step).Msg("paso compensado")
	}
	s.steps = nil
	return errors.Join(errs...)
}
