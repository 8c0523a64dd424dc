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
// Movimentações — /movimentacao CRUD
// ============================================================

func (c *Client) ListMovements(ctx context.Context, token string, page, pageSize int) ([]domain.Movimentacao, error) {
	ctx, span := tracer.Start(ctx, "Backend.ListMovements")
	defer span.End()

	path := fmt.Sprintf("/movimentacao?page=%d&size=%d", page, pageSize)
	body, err := c.doRequest(ctx, token, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return []domain.Movimentacao{}, nil
	}

	var movements []domain.Movimentacao
	if err := json.Unmarshal(body, &movements); err != nil {
		return nil, fmt.Errorf("decode movimentacoes: %w", err)
	}
	return movements, nil
}

func (c *Client) GetMovement(ctx context.Context, token, movementID string) (*domain.Movimentacao, error) {
	ctx, span := tracer.Start(ctx, "Backend.GetMovement")
	defer span.End()
	span.SetAttributes(attribute.String("movimentacao.id", movementID))

	body, err := c.doRequest(ctx, token, http.MethodGet, "/movimentacao/"+movementID, nil)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, &domain.ErrNotFound{Resource: "movimentacao", ID: movementID}
	}

	var movement domain.Movimentacao
	if err := json.Unmarshal(body, &movement); err != nil {
		return nil, fmt.Errorf("decode movimentacao: %w", err)
	}
	return &movement, nil
}

func (c *Client) CreateMovement(ctx context.Context, token string, req *domain.MovimentacaoRequest) (*domain.Movimentacao, error) {
	ctx, span := tracer.Start(ctx, "Backend.CreateMovement")
	defer span.End()

	body, err := c.doRequest(ctx, token, http.MethodPost, "/movimentacao", req)
	if err != nil {
		return nil, err
	}

	var movement domain.Movimentacao
	if err := json.Unmarshal(body, &movement); err != nil {
		return nil, fmt.Errorf("decode movimentacao: %w", err)
	}
	return &movement, nil
}

func (c *Client) UpdateMovement(ctx context.Context, token, movementID string, req *domain.MovimentacaoRequest) (*domain.Movimentacao, error) {
	ctx, span := tracer.Start(ctx, "Backend.UpdateMovement")
	defer span.End()
	span.SetAttributes(attribute.String("movimentacao.id", movementID))

	body, err := c.doRequest(ctx, token, http.MethodPut, "/movimentacao/"+movementID, req)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, &domain.ErrNotFound{Resource: "movimentacao", ID: movementID}
	}

	var movement domain.Movimentacao
	if err := json.Unmarshal(body, &movement); err != nil {
		return nil, fmt.Errorf("decode movimentacao: %w", err)
	}
	return &movement, nil
}

func (c *Client) DeleteMovement(ctx context.Context, token, movementID string) error {
	ctx, span := tracer.Start(ctx, "Backend.DeleteMovement")
	defer span.End()
	span.SetAttributes(attribute.String("movimentacao.id", movementID))

	_, err := c.doRequest(ctx, token, http.MethodDelete, "/movimentacao/"+movementID, nil)
	return err
}
