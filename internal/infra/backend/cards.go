package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/milhasapp/pontos-bff-go/internal/domain"
	"github.com/milhasapp/pontos-bff-go/internal/infra/resilience"

	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// Cartões — GET/POST/PUT/DELETE /cartao
// ============================================================

// ListCards fetches the user's registered cards. This is one of the three
// dashboard inputs, so it runs under the circuit breaker with retries.
func (c *Client) ListCards(ctx context.Context, token string) ([]domain.Cartao, error) {
	ctx, span := tracer.Start(ctx, "Backend.ListCards")
	defer span.End()

	var cards []domain.Cartao

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := c.doRequest(ctx, token, http.MethodGet, "/cartao", nil)
			if err != nil {
				return err
			}
			if body == nil {
				cards = []domain.Cartao{}
				return nil
			}
			if err := json.Unmarshal(body, &cards); err != nil {
				// Malformed payload must never crash the dashboard.
				c.logger.Warn("backend: card list payload is not an array, coercing to empty")
				cards = []domain.Cartao{}
			}
			return nil
		})
	})
	if err != nil {
		return nil, wrapBackendErr("cartao", err)
	}
	if cards == nil {
		cards = []domain.Cartao{}
	}
	return cards, nil
}

func (c *Client) GetCard(ctx context.Context, token, cardID string) (*domain.Cartao, error) {
	ctx, span := tracer.Start(ctx, "Backend.GetCard")
	defer span.End()
	span.SetAttributes(attribute.String("cartao.id", cardID))

	body, err := c.doRequest(ctx, token, http.MethodGet, "/cartao/"+cardID, nil)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, &domain.ErrNotFound{Resource: "cartao", ID: cardID}
	}

	var card domain.Cartao
	if err := json.Unmarshal(body, &card); err != nil {
		return nil, fmt.Errorf("decode cartao: %w", err)
	}
	return &card, nil
}

func (c *Client) CreateCard(ctx context.Context, token string, req *domain.CartaoRequest) (*domain.Cartao, error) {
	ctx, span := tracer.Start(ctx, "Backend.CreateCard")
	defer span.End()

	body, err := c.doRequest(ctx, token, http.MethodPost, "/cartao", req)
	if err != nil {
		return nil, err
	}

	var card domain.Cartao
	if err := json.Unmarshal(body, &card); err != nil {
		return nil, fmt.Errorf("decode cartao: %w", err)
	}
	return &card, nil
}

func (c *Client) UpdateCard(ctx context.Context, token, cardID string, req *domain.CartaoRequest) (*domain.Cartao, error) {
	ctx, span := tracer.Start(ctx, "Backend.UpdateCard")
	defer span.End()
	span.SetAttributes(attribute.String("cartao.id", cardID))

	body, err := c.doRequest(ctx, token, http.MethodPut, "/cartao/"+cardID, req)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, &domain.ErrNotFound{Resource: "cartao", ID: cardID}
	}

	var card domain.Cartao
	if err := json.Unmarshal(body, &card); err != nil {
		return nil, fmt.Errorf("decode cartao: %w", err)
	}
	return &card, nil
}

func (c *Client) DeleteCard(ctx context.Context, token, cardID string) error {
	ctx, span := tracer.Start(ctx, "Backend.DeleteCard")
	defer span.End()
	span.SetAttributes(attribute.String("cartao.id", cardID))

	_, err := c.doRequest(ctx, token, http.MethodDelete, "/cartao/"+cardID, nil)
	return err
}

// wrapBackendErr keeps session-expiry visible through the resilience wrappers
// while tagging everything else as an external-service failure.
func wrapBackendErr(service string, err error) error {
	var expired *domain.ErrSessionExpired
	if errors.As(err, &expired) {
		return expired
	}
	return &domain.ErrExternalService{Service: "backend/" + service, Err: err}
}
