package service

import (
	"context"
	"fmt"
	"time"

	"github.com/milhasapp/pontos-bff-go/internal/domain"
	"github.com/milhasapp/pontos-bff-go/internal/infra/observability"
	"github.com/milhasapp/pontos-bff-go/internal/infra/resilience"
	"github.com/milhasapp/pontos-bff-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var reportTracer = otel.Tracer("service/report")

// ReportService exposes the backend report and its file exports. Exports can
// be large, so concurrent export requests are capped with a bulkhead.
type ReportService struct {
	store    port.BackendStore
	bulkhead *resilience.Bulkhead
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewReportService creates a new report service.
func NewReportService(store port.BackendStore, bulkhead *resilience.Bulkhead, metrics *observability.Metrics, logger *zap.Logger) *ReportService {
	return &ReportService{store: store, bulkhead: bulkhead, metrics: metrics, logger: logger}
}

// Get returns the backend-computed report snapshot.
func (s *ReportService) Get(ctx context.Context, token string) (*domain.Relatorio, error) {
	ctx, span := reportTracer.Start(ctx, "ReportService.Get")
	defer span.End()

	return s.store.GetReport(ctx, token)
}

// Export downloads the report in the requested format (csv or pdf) and
// returns the bytes, the content type, and a date-stamped filename.
func (s *ReportService) Export(ctx context.Context, token, format string) ([]byte, string, string, error) {
	ctx, span := reportTracer.Start(ctx, "ReportService.Export")
	defer span.End()
	span.SetAttributes(attribute.String("format", format))

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("report_export", time.Since(start))
	}()

	if err := s.bulkhead.Acquire(ctx); err != nil {
		return nil, "", "", &domain.ErrTimeout{Operation: "report export"}
	}
	defer s.bulkhead.Release()

	data, contentType, err := s.store.ExportReport(ctx, token, format)
	if err != nil {
		s.metrics.IncrBackendError("relatorios")
		s.logger.Error("report export failed", zap.String("format", format), zap.Error(err))
		return nil, "", "", err
	}

	filename := fmt.Sprintf("relatorio-pontos-%s.%s", time.Now().Format("2006-01-02"), format)
	return data, contentType, filename, nil
}
