package sync

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"catalog-sync/core/cache"
	"catalog-sync/core/transport"
	"catalog-sync/core/utils"

	"go.uber.org/zap"
)

// Rates converts item prices into the store's base currency using a fetched
// exchange rate table. Conversion fails open: when the table is missing or a
// currency is unknown, prices pass through unchanged.
type Rates struct {
	url       string
	ttl       time.Duration
	cache     *cache.HybridCache
	transport *transport.Transport
	logger    *zap.Logger
}

// NewRates creates a rate converter. An empty rates URL disables fetching
// and makes every conversion a pass-through.
func NewRates(cfg Config, hc *cache.HybridCache, tr *transport.Transport, logger *zap.Logger) *Rates {
	ttl := time.Duration(cfg.RatesTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Rates{
		url:       cfg.RatesURL,
		ttl:       ttl,
		cache:     hc,
		transport: tr,
		logger:    logger,
	}
}

func (r *Rates) table(ctx context.Context) map[string]float64 {
	if r.url == "" || r.transport == nil {
		return nil
	}
	rates, err := cache.Cached(r.cache, "exchange_rates", r.ttl, []any{r.url}, func() (map[string]float64, error) {
		resp, err := r.transport.Do(ctx, &transport.Request{Method: http.MethodGet, URL: r.url})
		if err != nil {
			return nil, err
		}
		var body struct {
			Rates map[string]float64 `json:"rates"`
		}
		if err := json.Unmarshal(resp.Body, &body); err != nil {
			return nil, err
		}
		return body.Rates, nil
	})
	if err != nil {
		r.logger.Warn("failed to fetch exchange rates", zap.Error(err))
		return nil
	}
	return rates
}

// ConvertPrice converts amount from one currency to another, rounded to two
// decimals. Same-currency conversions and conversions the table cannot
// answer return the amount unchanged.
func (r *Rates) ConvertPrice(ctx context.Context, amount float64, from, to string) float64 {
	if from == "" || to == "" || strings.EqualFold(from, to) {
		return amount
	}
	table := r.table(ctx)
	if len(table) == 0 {
		return amount
	}
	fromRate, okFrom := table[strings.ToUpper(from)]
	toRate, okTo := table[strings.ToUpper(to)]
	if !okFrom || !okTo || fromRate == 0 {
		return amount
	}
	return utils.RoundPrice(amount * (toRate / fromRate))
}
