package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/comprasmart/pricewatch/internal/models"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// ReportCache is a best-effort cache for generated reports. A nil cache or
// any Redis failure degrades to a miss; cached reports are never a source
// of truth.
type ReportCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewReportCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *ReportCache {
	return &ReportCache{client: client, ttl: ttl, log: log}
}

func (c *ReportCache) Get(ctx context.Context, productID string) (*models.PriceReport, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, reportKey(productID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("product_id", productID).Msg("report cache read failed")
		}
		return nil, false
	}

	var report models.PriceReport
	if err := json.Unmarshal(raw, &report); err != nil {
		c.log.Warn().Err(err).Str("product_id", productID).Msg("discarding malformed cached report")
		return nil, false
	}
	return &report, true
}

func (c *ReportCache) Set(ctx context.Context, report *models.PriceReport) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, reportKey(report.ProductID), raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("product_id", report.ProductID).Msg("report cache write failed")
	}
}

func reportKey(productID string) string {
	return "pricewatch:report:" + productID
}
