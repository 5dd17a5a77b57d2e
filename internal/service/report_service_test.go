package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/comprasmart/pricewatch/internal/models"
	"github.com/comprasmart/pricewatch/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportFixture(t *testing.T) (*repository.SeriesStore, *ReportService) {
	t.Helper()
	store := repository.NewSeriesStore(0)
	analytics := NewAnalyticsService(store)
	cache := repository.NewReportCache(nil, time.Minute, zerolog.Nop())
	reports := NewReportService(store, analytics, SimulatedCompetitorSource{}, cache, zerolog.Nop())
	return store, reports
}

func TestReport_UnknownProduct(t *testing.T) {
	_, reports := newReportFixture(t)

	_, err := reports.Report(context.Background(), "nope")

	assert.ErrorIs(t, err, models.ErrUnknownProduct)
}

func TestReport_Composition(t *testing.T) {
	store, reports := newReportFixture(t)

	store.InitMonitoring("P1", models.ProductInfo{CurrentPrice: 100, Store: "X", Title: "T", Category: "c"})
	_, err := store.UpdatePrice("P1", 80, 0)
	require.NoError(t, err)
	_, err = store.UpdatePrice("P1", 100, 0)
	require.NoError(t, err)

	report, err := reports.Report(context.Background(), "P1")
	require.NoError(t, err)

	assert.Equal(t, "P1", report.ProductID)
	assert.Equal(t, 100.0, report.CurrentPrice)
	assert.Equal(t, 100.0, report.Analytics.Current)
	require.NotNil(t, report.Seasonality)
	require.Len(t, report.Competitors, 3)
	assert.True(t, sort.SliceIsSorted(report.Competitors, func(i, j int) bool {
		return report.Competitors[i].Price < report.Competitors[j].Price
	}))

	// Current 100 sits 25% above the 80 low, so the warning applies; the
	// cheapest simulated competitor also undercuts; and seasonality always
	// yields the informational message.
	types := make(map[models.RecommendationType]bool)
	for _, recommendation := range report.Recommendations {
		types[recommendation.Type] = true
	}
	assert.True(t, types[models.RecommendationWarning])
	assert.True(t, types[models.RecommendationAlert])
	assert.True(t, types[models.RecommendationInfo])
}

func TestSimulatedCompetitorSource_SortedQuotes(t *testing.T) {
	series := &models.ProductSeries{
		Stats: models.SeriesStats{AveragePrice: 100},
	}

	quotes := SimulatedCompetitorSource{}.Quotes(series)

	require.Len(t, quotes, 3)
	assert.Equal(t, "Amazon", quotes[0].Store)
	assert.InDelta(t, 95.0, quotes[0].Price, 1e-9)
	assert.InDelta(t, 102.0, quotes[2].Price, 1e-9)
}

func TestRecommendations_NearHistoricalLow(t *testing.T) {
	series := &models.ProductSeries{
		History: []models.PriceRecord{{Price: 100}},
		Stats:   models.SeriesStats{LowestPrice: 95, AveragePrice: 120},
	}

	// Current price within 10% of the low and cheaper than every
	// competitor: no warning, no competitor alert.
	competitors := []models.CompetitorQuote{{Store: "Amazon", Price: 110}}
	recommendations := Recommendations(series, nil, competitors)

	assert.Empty(t, recommendations)
}

func TestRecommendations_CompetitorUndercut(t *testing.T) {
	series := &models.ProductSeries{
		History: []models.PriceRecord{{Price: 100}},
		Stats:   models.SeriesStats{LowestPrice: 100},
	}
	competitors := []models.CompetitorQuote{{Store: "MediaMarkt", Price: 90}}

	recommendations := Recommendations(series, nil, competitors)

	require.Len(t, recommendations, 1)
	assert.Equal(t, models.RecommendationAlert, recommendations[0].Type)
	assert.Contains(t, recommendations[0].Message, "MediaMarkt")
}
