package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/comprasmart/pricewatch/internal/metrics"
	"github.com/comprasmart/pricewatch/internal/models"
	"github.com/comprasmart/pricewatch/internal/repository"

	"github.com/rs/zerolog"
)

// CompetitorSource supplies competitor prices for a product. The bundled
// implementation is simulated; a real retailer integration plugs in here
// without touching report generation.
type CompetitorSource interface {
	Quotes(series *models.ProductSeries) []models.CompetitorQuote
}

// SimulatedCompetitorSource derives competitor quotes from the product's
// average price with fixed per-store multipliers.
type SimulatedCompetitorSource struct{}

func (SimulatedCompetitorSource) Quotes(series *models.ProductSeries) []models.CompetitorQuote {
	avg := series.Stats.AveragePrice
	quotes := []models.CompetitorQuote{
		{Store: "Amazon", Price: avg * 0.95},
		{Store: "PcComponentes", Price: avg * 1.02},
		{Store: "MediaMarkt", Price: avg * 0.98},
	}
	sort.Slice(quotes, func(i, j int) bool { return quotes[i].Price < quotes[j].Price })
	return quotes
}

// ReportService composes store, analytics and competitor outputs into a
// single user-facing report.
type ReportService struct {
	store       *repository.SeriesStore
	analytics   *AnalyticsService
	competitors CompetitorSource
	cache       *repository.ReportCache
	log         zerolog.Logger
}

func NewReportService(store *repository.SeriesStore, analytics *AnalyticsService, competitors CompetitorSource, cache *repository.ReportCache, log zerolog.Logger) *ReportService {
	return &ReportService{
		store:       store,
		analytics:   analytics,
		competitors: competitors,
		cache:       cache,
		log:         log,
	}
}

func (s *ReportService) Report(ctx context.Context, productID string) (*models.PriceReport, error) {
	if cached, ok := s.cache.Get(ctx, productID); ok {
		return cached, nil
	}

	series, err := s.store.Series(productID)
	if err != nil {
		return nil, err
	}

	analytics, err := s.analytics.Analytics(productID)
	if err != nil {
		return nil, err
	}

	seasonality, err := s.analytics.Seasonality(productID)
	if err != nil && !errors.Is(err, models.ErrEmptyHistory) {
		return nil, err
	}

	competitors := s.competitors.Quotes(series)

	report := &models.PriceReport{
		Timestamp:       time.Now().UnixMilli(),
		ProductID:       productID,
		CurrentPrice:    series.Current(),
		Analytics:       *analytics,
		Seasonality:     seasonality,
		Competitors:     competitors,
		Recommendations: Recommendations(series, seasonality, competitors),
	}

	metrics.ReportsGeneratedTotal.Inc()
	s.cache.Set(ctx, report)

	return report, nil
}

// Recommendations turns the assembled signals into display messages: a
// warning when the current price sits well above the historical low, an
// alert when a competitor undercuts it, and the seasonal best time to buy.
func Recommendations(series *models.ProductSeries, seasonality *models.Seasonality, competitors []models.CompetitorQuote) []models.Recommendation {
	var recommendations []models.Recommendation
	current := series.Current()
	lowest := series.Stats.LowestPrice

	if current > lowest*1.1 {
		recommendations = append(recommendations, models.Recommendation{
			Type: models.RecommendationWarning,
			Message: fmt.Sprintf("Current price is %.1f%% above the historical low of %.2f",
				models.PercentChange(lowest, current), lowest),
		})
	}

	if len(competitors) > 0 && current > competitors[0].Price {
		cheapest := competitors[0]
		recommendations = append(recommendations, models.Recommendation{
			Type: models.RecommendationAlert,
			Message: fmt.Sprintf("%s offers a better price: %.2f (%.1f%% cheaper)",
				cheapest.Store, cheapest.Price, (current-cheapest.Price)/current*100),
		})
	}

	if seasonality != nil {
		recommendations = append(recommendations, models.Recommendation{
			Type: models.RecommendationInfo,
			Message: fmt.Sprintf("Prices tend to be lowest on %ss in %s",
				seasonality.BestDay.Name, seasonality.BestMonth.Name),
		})
	}

	return recommendations
}
