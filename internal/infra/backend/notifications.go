package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/milhasapp/pontos-bff-go/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// Notificações — /notificacao
// ============================================================

func (c *Client) ListNotifications(ctx context.Context, token string, unreadOnly bool) ([]domain.Notificacao, error) {
	ctx, span := tracer.Start(ctx, "Backend.ListNotifications")
	defer span.End()

	path := "/notificacao"
	if unreadOnly {
		path += "?lida=false"
	}
	body, err := c.doRequest(ctx, token, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return []domain.Notificacao{}, nil
	}

	var notifs []domain.Notificacao
	if err := json.Unmarshal(body, &notifs); err != nil {
		return nil, fmt.Errorf("decode notificacoes: %w", err)
	}
	return notifs, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, token, notifID string) error {
	ctx, span := tracer.Start(ctx, "Backend.MarkNotificationRead")
	defer span.End()
	span.SetAttributes(attribute.String("notificacao.id", notifID))

	_, err := c.doRequest(ctx, token, http.MethodPatch, "/notificacao/"+notifID+"/lida", nil)
	return err
}
