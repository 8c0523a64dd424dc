package handler

import (
	"net/http"

	"github.com/milhasapp/pontos-bff-go/internal/domain"
	"github.com/milhasapp/pontos-bff-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Movimentações Handlers
// ============================================================

func listMovementsHandler(svc *service.LoyaltyService, authSvc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /movimentacoes")
		defer span.End()

		page, pageSize := parsePagination(r)
		movements, err := svc.ListMovements(ctx, BackendTokenFromContext(r.Context()), page, pageSize)
		if err != nil {
			handleServiceError(w, r, err, authSvc, logger)
			return
		}
		if movements == nil {
			movements = []domain.Movimentacao{}
		}
		writeJSON(w, http.StatusOK, movements)
	}
}

func getMovementHandler(svc *service.LoyaltyService, authSvc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /movimentacoes/{movementId}")
		defer span.End()

		movementID := chi.URLParam(r, "movementId")
		movement, err := svc.GetMovement(ctx, BackendTokenFromContext(r.Context()), movementID)
		if err != nil {
			handleServiceError(w, r, err, authSvc, logger)
			return
		}
		if movement == nil {
			handleServiceError(w, r, &domain.ErrNotFound{Resource: "movimentacao", ID: movementID}, authSvc, logger)
			return
		}
		writeJSON(w, http.StatusOK, movement)
	}
}

func createMovementHandler(svc *service.LoyaltyService, authSvc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /movimentacoes")
		defer span.End()

		var req domain.MovimentacaoRequest
		if err := decodeJSON(r, &req); err != nil {
			handleServiceError(w, r, err, authSvc, logger)
			return
		}

		movement, err := svc.CreateMovement(ctx, BackendTokenFromContext(r.Context()), &req)
		if err != nil {
			handleServiceError(w, r, err, authSvc, logger)
			return
		}
		writeJSON(w, http.StatusCreated, movement)
	}
}

func previewMovementHandler(svc *service.PromotionService, authSvc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /movimentacoes/preview")
		defer span.End()

		var req domain.MovimentacaoPreviewRequest
		if err := decodeJSON(r, &req); err != nil {
			handleServiceError(w, r, err, authSvc, logger)
			return
		}

		preview, err := svc.PreviewMovement(ctx, BackendTokenFromContext(r.Context()), &req)
		if err != nil {
			handleServiceError(w, r, err, authSvc, logger)
			return
		}
		writeJSON(w, http.StatusOK, preview)
	}
}

func updateMovementHandler(svc *service.LoyaltyService, authSvc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /movimentacoes/{movementId}")
		defer span.End()

		var req domain.MovimentacaoRequest
		if err := decodeJSON(r, &req); err != nil {
			handleServiceError(w, r, err, authSvc, logger)
			return
		}

		movement, err := svc.UpdateMovement(ctx, BackendTokenFromContext(r.Context()), chi.URLParam(r, "movementId"), &req)
		if err != nil {
			handleServiceError(w, r, err, authSvc, logger)
			return
		}
		writeJSON(w, http.StatusOK, movement)
	}
}

func deleteMovementHandler(svc *service.LoyaltyService, authSvc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /movimentacoes/{movementId}")
		defer span.End()

		if err := svc.DeleteMovement(ctx, BackendTokenFromContext(r.Context()), chi.URLParam(r, "movementId")); err != nil {
			handleServiceError(w, r, err, authSvc, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
