package service

import (
	"context"

	"github.com/milhasapp/pontos-bff-go/internal/domain"
)

func (s *LoyaltyService) ListNotifications(ctx context.Context, token string, unreadOnly bool) ([]domain.Notificacao, error) {
	ctx, span := loyaltyTracer.Start(ctx, "LoyaltyService.ListNotifications")
	defer span.End()

	notifs, err := s.store.ListNotifications(ctx, token, unreadOnly)
	if err != nil {
		return nil, err
	}
	if notifs == nil {
		notifs = []domain.Notificacao{}
	}
	return notifs, nil
}

func (s *LoyaltyService) MarkNotificationRead(ctx context.Context, token, notifID string) error {
	ctx, span := loyaltyTracer.Start(ctx, "LoyaltyService.MarkNotificationRead")
	defer span.End()

	if notifID == "" {
		return &domain.ErrValidation{Field: "id", Message: "obrigatório"}
	}
	return s.store.MarkNotificationRead(ctx, token, notifID)
}
