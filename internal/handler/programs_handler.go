package handler

import (
	"net/http"

	"github.com/milhasapp/pontos-bff-go/internal/domain"
	"github.com/milhasapp/pontos-bff-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Programas Handlers
// ============================================================

func listProgramsHandler(svc *service.LoyaltyService, authSvc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /programas")
		defer span.End()

		programs, err := svc.ListPrograms(ctx, BackendTokenFromContext(r.Context()))
		if err != nil {
			handleServiceError(w, r, err, authSvc, logger)
			return
		}
		if programs == nil {
			programs = []domain.Programa{}
		}
		writeJSON(w, http.StatusOK, programs)
	}
}

func getProgramHandler(svc *service.LoyaltyService, authSvc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /programas/{programId}")
		defer span.End()

		programID := chi.URLParam(r, "programId")
		program, err := svc.GetProgram(ctx, BackendTokenFromContext(r.Context()), programID)
		if err != nil {
			handleServiceError(w, r, err, authSvc, logger)
			return
		}
		if program == nil {
			handleServiceError(w, r, &domain.ErrNotFound{Resource: "programa", ID: programID}, authSvc, logger)
			return
		}
		writeJSON(w, http.StatusOK, program)
	}
}

func programBalancesHandler(svc *service.LoyaltyService, authSvc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /programas/saldos")
		defer span.End()

		balances, err := svc.ProgramBalances(ctx, BackendTokenFromContext(r.Context()))
		if err != nil {
			handleServiceError(w, r, err, authSvc, logger)
			return
		}
		writeJSON(w, http.StatusOK, balances)
	}
}

func listPromotionsHandler(svc *service.PromotionService, authSvc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /promocoes")
		defer span.End()

		promos, err := svc.ListActive(ctx, BackendTokenFromContext(r.Context()))
		if err != nil {
			handleServiceError(w, r, err, authSvc, logger)
			return
		}
		writeJSON(w, http.StatusOK, promos)
	}
}
