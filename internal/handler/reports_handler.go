package handler

import (
	"fmt"
	"net/http"

	"github.com/milhasapp/pontos-bff-go/internal/domain"
	"github.com/milhasapp/pontos-bff-go/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Relatórios Handlers
// ============================================================

// reportResponse carries the raw report plus the geometry for the small
// report-page charts, so the frontend never recomputes series on its own.
type reportResponse struct {
	Relatorio    *domain.Relatorio    `json:"relatorio"`
	MonthlyChart domain.ChartGeometry `json:"monthlyChart"`
	HistoryChart domain.ChartGeometry `json:"historyChart"`
}

func getReportHandler(svc *service.ReportService, authSvc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /relatorios")
		defer span.End()

		report, err := svc.Get(ctx, BackendTokenFromContext(r.Context()))
		if err != nil {
			handleServiceError(w, r, err, authSvc, logger)
			return
		}
		if report == nil {
			report = &domain.Relatorio{
				PontosPorCartao: []domain.PontosCartao{},
				EvolucaoMensal:  []domain.EvolucaoMensal{},
				Historico:       []domain.HistoricoItem{},
			}
		}
		monthly, history := service.ReportCharts(report)
		writeJSON(w, http.StatusOK, reportResponse{
			Relatorio:    report,
			MonthlyChart: monthly,
			HistoryChart: history,
		})
	}
}

func exportReportHandler(svc *service.ReportService, authSvc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /relatorios/export")
		defer span.End()

		format := r.URL.Query().Get("formato")
		if format == "" {
			format = "csv"
		}
		span.SetAttributes(attribute.String("format", format))

		data, contentType, filename, err := svc.Export(ctx, BackendTokenFromContext(r.Context()), format)
		if err != nil {
			handleServiceError(w, r, err, authSvc, logger)
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}
