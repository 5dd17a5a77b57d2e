package service

import (
	"time"

	"github.com/comprasmart/pricewatch/internal/models"
	"github.com/comprasmart/pricewatch/internal/repository"
)

const (
	day   = 24 * time.Hour
	week  = 7 * day
	month = 30 * day

	// predictionConfidence is a fixed heuristic constant. The projection is
	// a trend extrapolation, not a statistical model.
	predictionConfidence = 0.7
	bestTimeConfidence   = 0.6
)

// AnalyticsService derives descriptive and naive predictive signals from a
// price series.
type AnalyticsService struct {
	store *repository.SeriesStore
}

func NewAnalyticsService(store *repository.SeriesStore) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// Trend returns the percent change between the earliest and latest record
// at or after since, or 0 when fewer than two records qualify.
func Trend(history []models.PriceRecord, since int64) float64 {
	var prices []float64
	for _, record := range history {
		if record.Timestamp >= since {
			prices = append(prices, record.Price)
		}
	}
	if len(prices) < 2 {
		return 0
	}
	return models.PercentChange(prices[0], prices[len(prices)-1])
}

// Analytics returns the current price, stats, day/week/month trends and the
// price projection for a product.
func (s *AnalyticsService) Analytics(productID string) (*models.PriceAnalytics, error) {
	series, err := s.store.Series(productID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &models.PriceAnalytics{
		Current: series.Current(),
		Stats:   series.Stats,
		Trends: models.PriceTrends{
			Day:   Trend(series.History, now.Add(-day).UnixMilli()),
			Week:  Trend(series.History, now.Add(-week).UnixMilli()),
			Month: Trend(series.History, now.Add(-month).UnixMilli()),
		},
		Prediction: Predict(series.History),
	}, nil
}

// Predict extrapolates the average price along the 30-day trend.
func Predict(history []models.PriceRecord) models.PricePrediction {
	if len(history) == 0 {
		return models.PricePrediction{}
	}

	var sum float64
	for _, record := range history {
		sum += record.Price
	}
	avg := sum / float64(len(history))
	trend := Trend(history, time.Now().Add(-month).UnixMilli())

	return models.PricePrediction{
		Estimated:  avg * (1 + trend/100),
		Confidence: predictionConfidence,
		BestTime:   bestWeekday(history),
	}
}

func bestWeekday(history []models.PriceRecord) models.BestTime {
	var sums [7]float64
	var counts [7]int
	for _, record := range history {
		weekday := time.UnixMilli(record.Timestamp).Weekday()
		sums[weekday] += record.Price
		counts[weekday]++
	}

	best := 0
	bestAvg := 0.0
	found := false
	for weekday := 0; weekday < 7; weekday++ {
		if counts[weekday] == 0 {
			continue
		}
		avg := sums[weekday] / float64(counts[weekday])
		if !found || avg < bestAvg {
			best, bestAvg, found = weekday, avg, true
		}
	}

	return models.BestTime{Day: best, Confidence: bestTimeConfidence}
}

// Seasonality buckets the history by calendar month and weekday and reports
// the cheapest of each as the best time to buy. Buckets with no
// observations are excluded; an all-empty history fails with
// ErrEmptyHistory rather than producing a degenerate minimum.
func (s *AnalyticsService) Seasonality(productID string) (*models.Seasonality, error) {
	series, err := s.store.Series(productID)
	if err != nil {
		return nil, err
	}
	return computeSeasonality(series.History)
}

func computeSeasonality(history []models.PriceRecord) (*models.Seasonality, error) {
	var monthSums [12]float64
	var monthCounts [12]int
	var daySums [7]float64
	var dayCounts [7]int

	for _, record := range history {
		when := time.UnixMilli(record.Timestamp)
		monthIdx := int(when.Month()) - 1
		dayIdx := int(when.Weekday())
		monthSums[monthIdx] += record.Price
		monthCounts[monthIdx]++
		daySums[dayIdx] += record.Price
		dayCounts[dayIdx]++
	}

	var byMonth []models.BucketAverage
	for i := 0; i < 12; i++ {
		if monthCounts[i] == 0 {
			continue
		}
		byMonth = append(byMonth, models.BucketAverage{
			Index:   i,
			Name:    time.Month(i + 1).String(),
			Average: monthSums[i] / float64(monthCounts[i]),
		})
	}

	var byDay []models.BucketAverage
	for i := 0; i < 7; i++ {
		if dayCounts[i] == 0 {
			continue
		}
		byDay = append(byDay, models.BucketAverage{
			Index:   i,
			Name:    time.Weekday(i).String(),
			Average: daySums[i] / float64(dayCounts[i]),
		})
	}

	if len(byMonth) == 0 || len(byDay) == 0 {
		return nil, models.ErrEmptyHistory
	}

	return &models.Seasonality{
		ByMonth:     byMonth,
		ByDayOfWeek: byDay,
		BestMonth:   minBucket(byMonth),
		BestDay:     minBucket(byDay),
	}, nil
}

func minBucket(buckets []models.BucketAverage) models.BucketAverage {
	best := buckets[0]
	for _, bucket := range buckets[1:] {
		if bucket.Average < best.Average {
			best = bucket
		}
	}
	return best
}
