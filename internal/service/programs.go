package service

import (
	"context"

	"github.com/milhasapp/pontos-bff-go/internal/domain"
)

// MergeBalancesByProgram aggregates card balances into one line per loyalty
// program. Balances are summed by program key, names keep the value of the
// last entry seen, and result order follows first appearance in the input.
func MergeBalancesByProgram(saldos []domain.Saldo) []domain.ProgramBalance {
	merged := make([]domain.ProgramBalance, 0, len(saldos))
	index := make(map[string]int, len(saldos))

	for _, s := range saldos {
		key := s.ProgramKey()
		if i, ok := index[key]; ok {
			merged[i].Pontos += s.Pontos.Float64()
			merged[i].Nome = s.ProgramName()
			continue
		}
		index[key] = len(merged)
		merged = append(merged, domain.ProgramBalance{
			ProgramaID: key,
			Nome:       s.ProgramName(),
			Pontos:     s.Pontos.Float64(),
		})
	}
	return merged
}

func (s *LoyaltyService) ListPrograms(ctx context.Context, token string) ([]domain.Programa, error) {
	ctx, span := loyaltyTracer.Start(ctx, "LoyaltyService.ListPrograms")
	defer span.End()

	return s.store.ListPrograms(ctx, token)
}

func (s *LoyaltyService) GetProgram(ctx context.Context, token, programID string) (*domain.Programa, error) {
	ctx, span := loyaltyTracer.Start(ctx, "LoyaltyService.GetProgram")
	defer span.End()

	return s.store.GetProgram(ctx, token, programID)
}

// ProgramBalances returns the per-program aggregation of the user's balances.
func (s *LoyaltyService) ProgramBalances(ctx context.Context, token string) ([]domain.ProgramBalance, error) {
	ctx, span := loyaltyTracer.Start(ctx, "LoyaltyService.ProgramBalances")
	defer span.End()

	saldos, err := s.store.ListBalances(ctx, token)
	if err != nil {
		return nil, err
	}
	return MergeBalancesByProgram(saldos), nil
}
