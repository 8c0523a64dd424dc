package handler

import (
	"net/http"

	"github.com/milhasapp/pontos-bff-go/internal/domain"
	"github.com/milhasapp/pontos-bff-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Cartões Handlers
// ============================================================

func listCardsHandler(svc *service.LoyaltyService, authSvc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /cartoes")
		defer span.End()

		cards, err := svc.ListCards(ctx, BackendTokenFromContext(r.Context()))
		if err != nil {
			handleServiceError(w, r, err, authSvc, logger)
			return
		}
		if cards == nil {
			cards = []domain.Cartao{}
		}
		writeJSON(w, http.StatusOK, cards)
	}
}

func getCardHandler(svc *service.LoyaltyService, authSvc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /cartoes/{cardId}")
		defer span.End()

		cardID := chi.URLParam(r, "cardId")
		card, err := svc.GetCard(ctx, BackendTokenFromContext(r.Context()), cardID)
		if err != nil {
			handleServiceError(w, r, err, authSvc, logger)
			return
		}
		if card == nil {
			handleServiceError(w, r, &domain.ErrNotFound{Resource: "cartao", ID: cardID}, authSvc, logger)
			return
		}
		writeJSON(w, http.StatusOK, card)
	}
}

func createCardHandler(svc *service.LoyaltyService, authSvc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /cartoes")
		defer span.End()

		var req domain.CartaoRequest
		if err := decodeJSON(r, &req); err != nil {
			handleServiceError(w, r, err, authSvc, logger)
			return
		}

		card, err := svc.CreateCard(ctx, BackendTokenFromContext(r.Context()), &req)
		if err != nil {
			handleServiceError(w, r, err, authSvc, logger)
			return
		}
		writeJSON(w, http.StatusCreated, card)
	}
}

func updateCardHandler(svc *service.LoyaltyService, authSvc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /cartoes/{cardId}")
		defer span.End()

		var req domain.CartaoRequest
		if err := decodeJSON(r, &req); err != nil {
			handleServiceError(w, r, err, authSvc, logger)
			return
		}

		card, err := svc.UpdateCard(ctx, BackendTokenFromContext(r.Context()), chi.URLParam(r, "cardId"), &req)
		if err != nil {
			handleServiceError(w, r, err, authSvc, logger)
			return
		}
		writeJSON(w, http.StatusOK, card)
	}
}

func deleteCardHandler(svc *service.LoyaltyService, authSvc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /cartoes/{cardId}")
		defer span.End()

		if err := svc.DeleteCard(ctx, BackendTokenFromContext(r.Context()), chi.URLParam(r, "cardId")); err != nil {
			handleServiceError(w, r, err, authSvc, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listBalancesHandler(svc *service.LoyaltyService, authSvc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /saldos")
		defer span.End()

		saldos, err := svc.ListBalances(ctx, BackendTokenFromContext(r.Context()))
		if err != nil {
			handleServiceError(w, r, err, authSvc, logger)
			return
		}
		if saldos == nil {
			saldos = []domain.Saldo{}
		}
		writeJSON(w, http.StatusOK, saldos)
	}
}
