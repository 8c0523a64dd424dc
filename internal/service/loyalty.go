package service

import (
	"context"

	"github.com/milhasapp/pontos-bff-go/internal/domain"
	"github.com/milhasapp/pontos-bff-go/internal/infra/observability"
	"github.com/milhasapp/pontos-bff-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var loyaltyTracer = otel.Tracer("service/loyalty")

// LoyaltyService handles the resource operations behind the card, program,
// movement, notification and report endpoints. It is a thin typed layer over
// the backend store: validation happens here, aggregation happens here, and
// everything else passes through.
type LoyaltyService struct {
	store   port.BackendStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewLoyaltyService creates a new loyalty service.
func NewLoyaltyService(store port.BackendStore, metrics *observability.Metrics, logger *zap.Logger) *LoyaltyService {
	return &LoyaltyService{store: store, metrics: metrics, logger: logger}
}

// ============================================================
// Cartões
// ============================================================

func (s *LoyaltyService) ListCards(ctx context.Context, token string) ([]domain.Cartao, error) {
	ctx, span := loyaltyTracer.Start(ctx, "LoyaltyService.ListCards")
	defer span.End()

	return s.store.ListCards(ctx, token)
}

func (s *LoyaltyService) GetCard(ctx context.Context, token, cardID string) (*domain.Cartao, error) {
	ctx, span := loyaltyTracer.Start(ctx, "LoyaltyService.GetCard")
	defer span.End()
	span.SetAttributes(attribute.String("cartao.id", cardID))

	return s.store.GetCard(ctx, token, cardID)
}

func (s *LoyaltyService) CreateCard(ctx context.Context, token string, req *domain.CartaoRequest) (*domain.Cartao, error) {
	ctx, span := loyaltyTracer.Start(ctx, "LoyaltyService.CreateCard")
	defer span.End()

	if err := validateCard(req); err != nil {
		return nil, err
	}
	return s.store.CreateCard(ctx, token, req)
}

func (s *LoyaltyService) UpdateCard(ctx context.Context, token, cardID string, req *domain.CartaoRequest) (*domain.Cartao, error) {
	ctx, span := loyaltyTracer.Start(ctx, "LoyaltyService.UpdateCard")
	defer span.End()
	span.SetAttributes(attribute.String("cartao.id", cardID))

	if err := validateCard(req); err != nil {
		return nil, err
	}
	return s.store.UpdateCard(ctx, token, cardID, req)
}

func (s *LoyaltyService) DeleteCard(ctx context.Context, token, cardID string) error {
	ctx, span := loyaltyTracer.Start(ctx, "LoyaltyService.DeleteCard")
	defer span.End()
	span.SetAttributes(attribute.String("cartao.id", cardID))

	return s.store.DeleteCard(ctx, token, cardID)
}

// validateCard checks a card payload before anything reaches the backend.
func validateCard(req *domain.CartaoRequest) error {
	if req.Nome == "" {
		return &domain.ErrValidation{Field: "nome", Message: "obrigatório"}
	}
	if req.Bandeira == "" {
		return &domain.ErrValidation{Field: "bandeira", Message: "obrigatório"}
	}
	switch req.Tipo {
	case "credito", "debito", "multiplo":
	case "":
		return &domain.ErrValidation{Field: "tipo", Message: "obrigatório"}
	default:
		return &domain.ErrValidation{Field: "tipo", Message: "deve ser credito, debito ou multiplo"}
	}
	return nil
}

// ============================================================
// Saldos
// ============================================================

func (s *LoyaltyService) ListBalances(ctx context.Context, token string) ([]domain.Saldo, error) {
	ctx, span := loyaltyTracer.Start(ctx, "LoyaltyService.ListBalances")
	defer span.End()

	return s.store.ListBalances(ctx, token)
}
