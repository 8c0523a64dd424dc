package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/milhasapp/pontos-bff-go/internal/domain"

	"go.uber.org/zap"
)

// ============================================================
// Auth — POST /auth/login, POST /auth/register
//
// Auth endpoints never carry a bearer token and a 401 here means bad
// credentials, not an expired session, so they bypass doRequest.
// ============================================================

func (c *Client) Login(ctx context.Context, req *domain.LoginRequest) (*domain.BackendToken, error) {
	ctx, span := tracer.Start(ctx, "Backend.Login")
	defer span.End()

	return c.doAuth(ctx, "/auth/login", req)
}

func (c *Client) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.BackendToken, error) {
	ctx, span := tracer.Start(ctx, "Backend.Register")
	defer span.End()

	return c.doAuth(ctx, "/auth/register", req)
}

func (c *Client) doAuth(ctx context.Context, path string, payload any) (*domain.BackendToken, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode auth request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend: auth request failed",
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &domain.ErrUnauthorized{Message: errorMessage(body, resp.StatusCode)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("backend: auth non-2xx response",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("backend: %s", errorMessage(body, resp.StatusCode))
	}

	var token domain.BackendToken
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}
	if token.Token == "" {
		return nil, &domain.ErrUnauthorized{Message: "backend nao retornou token"}
	}
	return &token, nil
}
