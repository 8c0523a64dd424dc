package service

import (
	"context"
	"sync"
	"time"

	"github.com/milhasapp/pontos-bff-go/internal/domain"
	"github.com/milhasapp/pontos-bff-go/internal/infra/observability"
	"github.com/milhasapp/pontos-bff-go/internal/port"

	"go.uber.org/zap"
)

const promotionsCacheKey = "promocoes"

// PromotionService serves the active-promotion list from a TTL cache that the
// poller keeps warm. A cache miss falls through to the backend with the
// caller's own token.
type PromotionService struct {
	store   port.BackendStore
	cache   port.Cache[[]domain.Promocao]
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewPromotionService creates a new promotion service.
func NewPromotionService(store port.BackendStore, cache port.Cache[[]domain.Promocao], metrics *observability.Metrics, logger *zap.Logger) *PromotionService {
	return &PromotionService{store: store, cache: cache, metrics: metrics, logger: logger}
}

// ListActive returns the currently running promotions.
func (s *PromotionService) ListActive(ctx context.Context, token string) ([]domain.Promocao, error) {
	if promos, ok := s.cache.Get(promotionsCacheKey); ok {
		s.metrics.IncrCacheHit(promotionsCacheKey)
		return promos, nil
	}
	s.metrics.IncrCacheMiss(promotionsCacheKey)

	promos, err := s.store.ListActivePromotions(ctx, token)
	if err != nil {
		return nil, err
	}
	if promos == nil {
		promos = []domain.Promocao{}
	}
	s.cache.Set(promotionsCacheKey, promos)
	return promos, nil
}

// PreviewMovement estimates the points a purchase would earn, applying the
// best active promotion for the program from the cached promotion list.
func (s *PromotionService) PreviewMovement(ctx context.Context, token string, req *domain.MovimentacaoPreviewRequest) (*domain.MovimentacaoPreview, error) {
	if req.ProgramaID == "" {
		return nil, &domain.ErrValidation{Field: "programaId", Message: "obrigatório"}
	}
	if !req.Valor.IsPositive() {
		return nil, &domain.ErrValidation{Field: "valor", Message: "deve ser maior que zero"}
	}

	promos, err := s.ListActive(ctx, token)
	if err != nil {
		return nil, err
	}

	return &domain.MovimentacaoPreview{
		ProgramaID: req.ProgramaID,
		Valor:      req.Valor,
		Pontos:     PreviewPoints(req.Valor, promos, req.ProgramaID, time.Now()),
	}, nil
}

// Refresh fetches promotions from the backend with the service token and
// replaces the cached list.
func (s *PromotionService) Refresh(ctx context.Context, serviceToken string) error {
	promos, err := s.store.ListActivePromotions(ctx, serviceToken)
	if err != nil {
		return err
	}
	if promos == nil {
		promos = []domain.Promocao{}
	}
	s.cache.Set(promotionsCacheKey, promos)
	return nil
}

// PromotionPoller periodically refreshes the promotion cache in the
// background so user requests rarely pay the backend round-trip.
type PromotionPoller struct {
	service      *PromotionService
	serviceToken string
	interval     time.Duration
	timeout      time.Duration
	logger       *zap.Logger

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewPromotionPoller creates a poller. It does not start polling until Start
// is called.
func NewPromotionPoller(service *PromotionService, serviceToken string, interval time.Duration, logger *zap.Logger) *PromotionPoller {
	return &PromotionPoller{
		service:      service,
		serviceToken: serviceToken,
		interval:     interval,
		timeout:      interval,
		logger:       logger,
		stopCh:       make(chan struct{}),
	}
}

// Start launches the polling goroutine. An immediate first refresh warms the
// cache before the first tick.
func (p *PromotionPoller) Start() {
	p.wg.Add(1)
	go p.run()
}

// Stop signals the poller to stop and waits for the goroutine to exit.
func (p *PromotionPoller) Stop() {
	close(p.stopCh)
	p.wg.Wait()
}

func (p *PromotionPoller) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.refresh()

	for {
		select {
		case <-p.stopCh:
			p.logger.Info("promotion poller stopped")
			return
		case <-ticker.C:
			p.refresh()
		}
	}
}

func (p *PromotionPoller) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if err := p.service.Refresh(ctx, p.serviceToken); err != nil {
		p.logger.Warn("promotion refresh failed", zap.Error(err))
	}
}
