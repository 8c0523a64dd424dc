package backend

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/milhasapp/pontos-bff-go/internal/domain"
	"github.com/milhasapp/pontos-bff-go/internal/infra/resilience"
)

// ============================================================
// Saldos — GET /saldo
// ============================================================

// ListBalances fetches the per-program balance rows. Dashboard input: runs
// under the circuit breaker with retries, malformed payloads coerce to empty.
func (c *Client) ListBalances(ctx context.Context, token string) ([]domain.Saldo, error) {
	ctx, span := tracer.Start(ctx, "Backend.ListBalances")
	defer span.End()

	var saldos []domain.Saldo

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := c.doRequest(ctx, token, http.MethodGet, "/saldo", nil)
			if err != nil {
				return err
			}
			if body == nil {
				saldos = []domain.Saldo{}
				return nil
			}
			if err := json.Unmarshal(body, &saldos); err != nil {
				c.logger.Warn("backend: balance payload is not an array, coercing to empty")
				saldos = []domain.Saldo{}
			}
			return nil
		})
	})
	if err != nil {
		return nil, wrapBackendErr("saldo", err)
	}
	if saldos == nil {
		saldos = []domain.Saldo{}
	}
	return saldos, nil
}
