// Package indicator получает текущие экономические индикаторы из mindicador.cl.
package indicator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/business-admin/internal/domain"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

// DefaultURL - публичная точка доступа API индикаторов
const DefaultURL = "https://mindicador.cl/api"

// record - запись индикатора в ответе API
type record struct {
	Code  *string         `json:"codigo"`
	Name  string          `json:"nombre"`
	Unit  string          `json:"unidad_medida"`
	Date  string          `json:"fecha"`
	Value decimal.Decimal `json:"valor"`
}

// Client - клиент API индикаторов. Один GET без повторов.
type Client struct {
	httpClient *resty.Client
	url        string
	logger     *slog.Logger
}

// NewClient создаёт клиент для указанного адреса
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	if url == "" {
		url = DefaultURL
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		url:        url,
		logger:     logger,
	}
}

// Fetch возвращает индикаторы по ключу ответа. Карта никогда не nil:
// при сетевой ошибке или неуспешном статусе она пуста, а ошибка описывает причину.
func (c *Client) Fetch(ctx context.Context) (map[string]domain.Indicator, error) {
	indicators := make(map[string]domain.Indicator)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(c.url)
	if err != nil {
		c.logger.Error("indicator API call failed", slog.Any("error", err))
		return indicators, fmt.Errorf("failed to call indicator API: %w", err)
	}

	if !resp.IsSuccess() {
		c.logger.Error("indicator API returned error", slog.Int("status_code", resp.StatusCode()))
		return indicators, fmt.Errorf("indicator API returned status %d", resp.StatusCode())
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		c.logger.Error("failed to unmarshal indicator API response", slog.Any("error", err))
		return indicators, fmt.Errorf("failed to unmarshal indicators: %w", err)
	}

	for key, raw := range payload {
		// Служебные поля ответа (version, autor, fecha) не являются объектами
		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil {
			continue
		}
		if rec.Code == nil {
			continue
		}

		indicators[key] = domain.Indicator{
			Code:  *rec.Code,
			Name:  rec.Name,
			Unit:  rec.Unit,
			Date:  rec.Date,
			Value: rec.Value,
		}
	}

	c.logger.Info("retrieved indicators", slog.Int("count", len(indicators)))
	return indicators, nil
}
