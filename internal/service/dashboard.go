// Package service provides the business logic layer (use cases).
// DashboardService orchestrates the concurrent dashboard load and the pure
// view-model derivation; LoyaltyService handles all resource pass-throughs.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/milhasapp/pontos-bff-go/internal/domain"
	"github.com/milhasapp/pontos-bff-go/internal/infra/observability"
	"github.com/milhasapp/pontos-bff-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("service/dashboard")

// DashboardService loads the three dashboard inputs and derives the
// view-model.
type DashboardService struct {
	store   port.BackendStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewDashboardService creates the dashboard service with all dependencies injected.
func NewDashboardService(store port.BackendStore, metrics *observability.Metrics, logger *zap.Logger) *DashboardService {
	return &DashboardService{store: store, metrics: metrics, logger: logger}
}

// Load fetches cards, balances and the report snapshot concurrently. The
// first failure aborts the whole load — the dashboard never renders partial
// data. Cancellation of ctx propagates into every in-flight request.
func (s *DashboardService) Load(ctx context.Context, token string) (*domain.DashboardData, error) {
	// Bail out early if the caller already cancelled.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "DashboardService.Load")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("dashboard_load", time.Since(start))
	}()

	data := &domain.DashboardData{}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		cards, err := s.store.ListCards(gCtx, token)
		if err != nil {
			s.logger.Error("failed to fetch cards", zap.Error(err))
			s.metrics.IncrBackendError("cartao")
			return fmt.Errorf("cards fetch: %w", err)
		}
		data.Cards = cards
		return nil
	})

	g.Go(func() error {
		saldos, err := s.store.ListBalances(gCtx, token)
		if err != nil {
			s.logger.Error("failed to fetch balances", zap.Error(err))
			s.metrics.IncrBackendError("saldo")
			return fmt.Errorf("balances fetch: %w", err)
		}
		data.Saldos = saldos
		return nil
	})

	g.Go(func() error {
		relatorio, err := s.store.GetReport(gCtx, token)
		if err != nil {
			s.logger.Error("failed to fetch report", zap.Error(err))
			s.metrics.IncrBackendError("relatorios")
			return fmt.Errorf("report fetch: %w", err)
		}
		data.Relatorio = relatorio
		return nil
	})

	if err := g.Wait(); err != nil {
		s.metrics.IncrRequest("error")
		return nil, err
	}

	if data.Cards == nil {
		data.Cards = []domain.Cartao{}
	}
	if data.Saldos == nil {
		data.Saldos = []domain.Saldo{}
	}

	s.metrics.IncrRequest("success")
	return data, nil
}

// Assemble loads the raw collections and derives the complete view-model in
// one call. This is what the dashboard endpoint serves.
func (s *DashboardService) Assemble(ctx context.Context, token string) (*domain.Dashboard, []domain.Cartao, error) {
	data, err := s.Load(ctx, token)
	if err != nil {
		return nil, nil, err
	}

	dashboard := BuildDashboard(data.Relatorio, data.Saldos)
	return &dashboard, data.Cards, nil
}
