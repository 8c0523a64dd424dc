package handler

import (
	"net/http"

	"github.com/milhasapp/pontos-bff-go/internal/domain"
	"github.com/milhasapp/pontos-bff-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Dashboard Handler
// ============================================================

// dashboardResponse bundles the derived view-model with the raw card list so
// the dashboard page renders from a single response.
type dashboardResponse struct {
	Dashboard *domain.Dashboard `json:"dashboard"`
	Cartoes   []domain.Cartao   `json:"cartoes"`
}

func getDashboardHandler(svc *service.DashboardService, authSvc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /dashboard")
		defer span.End()

		token := BackendTokenFromContext(r.Context())
		dashboard, cards, err := svc.Assemble(ctx, token)
		if err != nil {
			handleServiceError(w, r, err, authSvc, logger)
			return
		}
		writeJSON(w, http.StatusOK, dashboardResponse{Dashboard: dashboard, Cartoes: cards})
	}
}
