package service

import (
	"context"
	"time"

	"github.com/milhasapp/pontos-bff-go/internal/domain"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

func (s *LoyaltyService) ListMovements(ctx context.Context, token string, page, pageSize int) ([]domain.Movimentacao, error) {
	ctx, span := loyaltyTracer.Start(ctx, "LoyaltyService.ListMovements")
	defer span.End()
	span.SetAttributes(attribute.Int("page", page), attribute.Int("page_size", pageSize))

	return s.store.ListMovements(ctx, token, page, pageSize)
}

func (s *LoyaltyService) GetMovement(ctx context.Context, token, movementID string) (*domain.Movimentacao, error) {
	ctx, span := loyaltyTracer.Start(ctx, "LoyaltyService.GetMovement")
	defer span.End()

	return s.store.GetMovement(ctx, token, movementID)
}

func (s *LoyaltyService) CreateMovement(ctx context.Context, token string, req *domain.MovimentacaoRequest) (*domain.Movimentacao, error) {
	ctx, span := loyaltyTracer.Start(ctx, "LoyaltyService.CreateMovement")
	defer span.End()

	if err := validateMovement(req); err != nil {
		return nil, err
	}
	return s.store.CreateMovement(ctx, token, req)
}

func (s *LoyaltyService) UpdateMovement(ctx context.Context, token, movementID string, req *domain.MovimentacaoRequest) (*domain.Movimentacao, error) {
	ctx, span := loyaltyTracer.Start(ctx, "LoyaltyService.UpdateMovement")
	defer span.End()

	if err := validateMovement(req); err != nil {
		return nil, err
	}
	return s.store.UpdateMovement(ctx, token, movementID, req)
}

func (s *LoyaltyService) DeleteMovement(ctx context.Context, token, movementID string) error {
	ctx, span := loyaltyTracer.Start(ctx, "LoyaltyService.DeleteMovement")
	defer span.End()

	return s.store.DeleteMovement(ctx, token, movementID)
}

func validateMovement(req *domain.MovimentacaoRequest) error {
	if req.CartaoID == "" {
		return &domain.ErrValidation{Field: "cartaoId", Message: "obrigatório"}
	}
	if req.ProgramaID == "" {
		return &domain.ErrValidation{Field: "programaId", Message: "obrigatório"}
	}
	if !req.Valor.IsPositive() {
		return &domain.ErrValidation{Field: "valor", Message: "deve ser maior que zero"}
	}
	if req.DataOcorrencia.IsZero() {
		return &domain.ErrValidation{Field: "dataOcorrencia", Message: "obrigatório"}
	}
	return nil
}

// PreviewPoints estimates how many points a purchase of the given value would
// earn in a program, applying the best active promotion multiplier when one
// exists. Without an active promotion the base rate is 1 ponto per real.
func PreviewPoints(valor decimal.Decimal, promocoes []domain.Promocao, programaID string, now time.Time) decimal.Decimal {
	rate := decimal.NewFromInt(1)
	for _, p := range promocoes {
		if p.ProgramaID != programaID || !p.Ativa(now) {
			continue
		}
		if p.PontosPorReal.GreaterThan(rate) {
			rate = p.PontosPorReal
		}
	}
	return valor.Mul(rate).RoundDown(0)
}
