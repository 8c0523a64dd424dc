package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/milhasapp/pontos-bff-go/internal/domain"
	"github.com/milhasapp/pontos-bff-go/internal/infra/resilience"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Relatório — GET /relatorios, GET /relatorios/{csv,pdf}
// ============================================================

// GetReport fetches the pre-aggregated report snapshot. A missing or
// malformed report yields nil so the dashboard degrades instead of failing.
func (c *Client) GetReport(ctx context.Context, token string) (*domain.Relatorio, error) {
	ctx, span := tracer.Start(ctx, "Backend.GetReport")
	defer span.End()

	var report *domain.Relatorio

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			body, err := c.doRequest(ctx, token, http.MethodGet, "/relatorios", nil)
			if err != nil {
				return err
			}
			if body == nil {
				report = nil
				return nil
			}
			var r domain.Relatorio
			if err := json.Unmarshal(body, &r); err != nil {
				c.logger.Warn("backend: report payload malformed, treating as absent", zap.Error(err))
				report = nil
				return nil
			}
			report = &r
			return nil
		})
	})
	if err != nil {
		return nil, wrapBackendErr("relatorios", err)
	}
	return report, nil
}

// ExportReport downloads the CSV or PDF export as raw bytes. The bytes are
// never parsed, only streamed back with the backend's content type.
func (c *Client) ExportReport(ctx context.Context, token, format string) ([]byte, string, error) {
	ctx, span := tracer.Start(ctx, "Backend.ExportReport")
	defer span.End()
	span.SetAttributes(attribute.String("relatorio.format", format))

	if format != "csv" && format != "pdf" {
		return nil, "", &domain.ErrValidation{Field: "format", Message: "deve ser csv ou pdf"}
	}

	url := c.baseURL + "/relatorios/" + format
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend: export request failed",
			zap.String("format", format),
			zap.Error(err),
		)
		return nil, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, "", &domain.ErrSessionExpired{Reason: errorMessage(body, resp.StatusCode)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("backend: %s", errorMessage(body, resp.StatusCode))
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		if format == "pdf" {
			contentType = "application/pdf"
		} else {
			contentType = "text/csv"
		}
	}
	// Some proxies append charset parameters for binary types; keep them.
	return body, strings.TrimSpace(contentType), nil
}
