package handler

import (
	"net/http"
	"time"

	"github.com/milhasapp/pontos-bff-go/internal/infra/observability"
	"github.com/milhasapp/pontos-bff-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Services bundles everything the router wires handlers to.
type Services struct {
	Dashboard   *service.DashboardService
	Loyalty     *service.LoyaltyService
	Promotions  *service.PromotionService
	Reports     *service.ReportService
	Auth        *service.AuthService
	Preferences *service.PreferenceService
}

// NewRouter creates the HTTP router with all routes and middleware.
// Everything under /v1 except /v1/auth/login and /v1/auth/register requires
// a valid session token.
func NewRouter(svcs Services, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler())
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// Auth (public)
		// =============================================
		r.Post("/auth/login", loginHandler(svcs.Auth, logger))
		r.Post("/auth/register", registerHandler(svcs.Auth, logger))

		// Everything below carries a session.
		r.Group(func(r chi.Router) {
			r.Use(JWTAuthMiddleware(svcs.Auth, logger))

			r.Post("/auth/logout", logoutHandler(svcs.Auth, logger))

			// =============================================
			// Dashboard
			// =============================================
			r.Get("/dashboard", getDashboardHandler(svcs.Dashboard, svcs.Auth, logger))

			// =============================================
			// Cartões e Saldos
			// =============================================
			r.Get("/cartoes", listCardsHandler(svcs.Loyalty, svcs.Auth, logger))
			r.Post("/cartoes", createCardHandler(svcs.Loyalty, svcs.Auth, logger))
			r.Get("/cartoes/{cardId}", getCardHandler(svcs.Loyalty, svcs.Auth, logger))
			r.Put("/cartoes/{cardId}", updateCardHandler(svcs.Loyalty, svcs.Auth, logger))
			r.Delete("/cartoes/{cardId}", deleteCardHandler(svcs.Loyalty, svcs.Auth, logger))
			r.Get("/saldos", listBalancesHandler(svcs.Loyalty, svcs.Auth, logger))

			// =============================================
			// Programas e Promoções
			// =============================================
			r.Get("/programas", listProgramsHandler(svcs.Loyalty, svcs.Auth, logger))
			r.Get("/programas/saldos", programBalancesHandler(svcs.Loyalty, svcs.Auth, logger))
			r.Get("/programas/{programId}", getProgramHandler(svcs.Loyalty, svcs.Auth, logger))
			r.Get("/promocoes", listPromotionsHandler(svcs.Promotions, svcs.Auth, logger))

			// =============================================
			// Relatórios
			// =============================================
			r.Get("/relatorios", getReportHandler(svcs.Reports, svcs.Auth, logger))
			r.Get("/relatorios/export", exportReportHandler(svcs.Reports, svcs.Auth, logger))

			// =============================================
			// Movimentações
			// =============================================
			r.Get("/movimentacoes", listMovementsHandler(svcs.Loyalty, svcs.Auth, logger))
			r.Post("/movimentacoes", createMovementHandler(svcs.Loyalty, svcs.Auth, logger))
			r.Post("/movimentacoes/preview", previewMovementHandler(svcs.Promotions, svcs.Auth, logger))
			r.Get("/movimentacoes/{movementId}", getMovementHandler(svcs.Loyalty, svcs.Auth, logger))
			r.Put("/movimentacoes/{movementId}", updateMovementHandler(svcs.Loyalty, svcs.Auth, logger))
			r.Delete("/movimentacoes/{movementId}", deleteMovementHandler(svcs.Loyalty, svcs.Auth, logger))

			// =============================================
			// Notificações
			// =============================================
			r.Get("/notificacoes", listNotificationsHandler(svcs.Loyalty, svcs.Auth, logger))
			r.Post("/notificacoes/{notifId}/lida", markNotificationReadHandler(svcs.Loyalty, svcs.Auth, logger))

			// =============================================
			// Preferências
			// =============================================
			r.Get("/preferencias", getPreferencesHandler(svcs.Preferences, logger))
			r.Put("/preferencias", updatePreferencesHandler(svcs.Preferences, logger))
			r.Delete("/preferencias", resetPreferencesHandler(svcs.Preferences, logger))

			// =============================================
			// Métricas
			// =============================================
			r.Get("/metrics/summary", metricsSummaryHandler(metrics, logger))
		})
	})

	return r
}

func healthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func metricsSummaryHandler(metrics *observability.Metrics, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GET /metrics/summary")
		defer span.End()

		writeJSON(w, http.StatusOK, metrics.Snapshot())
	}
}
