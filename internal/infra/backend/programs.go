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
// Programas e Promoções — GET /programa, GET /promocao
// ============================================================

func (c *Client) ListPrograms(ctx context.Context, token string) ([]domain.Programa, error) {
	ctx, span := tracer.Start(ctx, "Backend.ListPrograms")
	defer span.End()

	body, err := c.doRequest(ctx, token, http.MethodGet, "/programa", nil)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return []domain.Programa{}, nil
	}

	var programs []domain.Programa
	if err := json.Unmarshal(body, &programs); err != nil {
		return nil, fmt.Errorf("decode programas: %w", err)
	}
	return programs, nil
}

func (c *Client) GetProgram(ctx context.Context, token, programID string) (*domain.Programa, error) {
	ctx, span := tracer.Start(ctx, "Backend.GetProgram")
	defer span.End()
	span.SetAttributes(attribute.String("programa.id", programID))

	body, err := c.doRequest(ctx, token, http.MethodGet, "/programa/"+programID, nil)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, &domain.ErrNotFound{Resource: "programa", ID: programID}
	}

	var program domain.Programa
	if err := json.Unmarshal(body, &program); err != nil {
		return nil, fmt.Errorf("decode programa: %w", err)
	}
	return &program, nil
}

// ListActivePromotions fetches the currently running promotions across all
// programs. Polled periodically by the promotion poller.
func (c *Client) ListActivePromotions(ctx context.Context, token string) ([]domain.Promocao, error) {
	ctx, span := tracer.Start(ctx, "Backend.ListActivePromotions")
	defer span.End()

	body, err := c.doRequest(ctx, token, http.MethodGet, "/promocao?status=ativa", nil)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return []domain.Promocao{}, nil
	}

	var promos []domain.Promocao
	if err := json.Unmarshal(body, &promos); err != nil {
		return nil, fmt.Errorf("decode promocoes: %w", err)
	}
	return promos, nil
}
