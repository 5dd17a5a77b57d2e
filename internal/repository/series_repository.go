package repository

import (
	"sync"
	"time"

	"github.com/comprasmart/pricewatch/internal/models"
)

// DefaultRetentionDays is the rolling window kept per product series.
const DefaultRetentionDays = 90

// SeriesStore owns the per-product price histories and their summary
// statistics. It is the source of truth for price data and is purely
// in-memory: a restart loses all series state by design.
//
// All access goes through the store's lock. Histories stay small (one
// record per check, trimmed to the retention window), so the full-scan
// stat recomputation on every append is cheap.
type SeriesStore struct {
	mu            sync.RWMutex
	series        map[string]*models.ProductSeries
	retentionDays int
}

func NewSeriesStore(retentionDays int) *SeriesStore {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return &SeriesStore{
		series:        make(map[string]*models.ProductSeries),
		retentionDays: retentionDays,
	}
}

// InitMonitoring registers a product and seeds its series with a single
// record. Calling it again for the same product replaces the prior series
// wholesale; there is no merge.
func (s *SeriesStore) InitMonitoring(productID string, info models.ProductInfo) *models.ProductSeries {
	ts := info.LastUpdated
	if ts == 0 {
		ts = time.Now().UnixMilli()
	}

	series := &models.ProductSeries{
		ID:       productID,
		Title:    info.Title,
		Store:    info.Store,
		Category: info.Category,
		History: []models.PriceRecord{{
			Price:     info.CurrentPrice,
			Timestamp: ts,
		}},
		Stats: models.SeriesStats{
			HighestPrice: info.CurrentPrice,
			LowestPrice:  info.CurrentPrice,
			AveragePrice: info.CurrentPrice,
			PriceDrops:   0,
			LastChecked:  ts,
		},
	}

	s.mu.Lock()
	s.series[productID] = series
	s.mu.Unlock()

	return snapshot(series)
}

// UpdatePrice appends an observation, drops records older than the
// retention window and recomputes the stats over what remains. It fails
// with ErrUnknownProduct when the product was never initialized; no state
// is created in that case.
func (s *SeriesStore) UpdatePrice(productID string, newPrice float64, timestamp int64) (*models.PriceChange, error) {
	if timestamp == 0 {
		timestamp = time.Now().UnixMilli()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	series, ok := s.series[productID]
	if !ok {
		return nil, models.ErrUnknownProduct
	}

	previous := series.History[len(series.History)-1].Price
	change := models.PercentChange(previous, newPrice)

	series.History = append(series.History, models.PriceRecord{
		Price:     newPrice,
		Timestamp: timestamp,
		Change:    &change,
	})

	// The newest record is always retained so the series never empties.
	cutoff := time.Now().Add(-time.Duration(s.retentionDays) * 24 * time.Hour).UnixMilli()
	retained := series.History[:0]
	for i, record := range series.History {
		if record.Timestamp > cutoff || i == len(series.History)-1 {
			retained = append(retained, record)
		}
	}
	series.History = retained

	series.Stats = computeStats(series.History)

	return &models.PriceChange{
		ProductID:   productID,
		OldPrice:    previous,
		NewPrice:    newPrice,
		PriceChange: change,
	}, nil
}

func computeStats(history []models.PriceRecord) models.SeriesStats {
	stats := models.SeriesStats{LastChecked: time.Now().UnixMilli()}
	if len(history) == 0 {
		return stats
	}

	stats.HighestPrice = history[0].Price
	stats.LowestPrice = history[0].Price

	var sum float64
	for _, record := range history {
		if record.Price > stats.HighestPrice {
			stats.HighestPrice = record.Price
		}
		if record.Price < stats.LowestPrice {
			stats.LowestPrice = record.Price
		}
		sum += record.Price
		if record.Change != nil && *record.Change < 0 {
			stats.PriceDrops++
		}
	}
	stats.AveragePrice = sum / float64(len(history))

	return stats
}

// Series returns a copy of the product's series, or ErrUnknownProduct.
func (s *SeriesStore) Series(productID string) (*models.ProductSeries, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	series, ok := s.series[productID]
	if !ok {
		return nil, models.ErrUnknownProduct
	}
	return snapshot(series), nil
}

// History returns a copy of the retained records for a product.
func (s *SeriesStore) History(productID string) ([]models.PriceRecord, error) {
	series, err := s.Series(productID)
	if err != nil {
		return nil, err
	}
	return series.History, nil
}

// LowestPrice returns the retained-window low for a product.
func (s *SeriesStore) LowestPrice(productID string) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	series, ok := s.series[productID]
	if !ok {
		return 0, models.ErrUnknownProduct
	}
	return series.Stats.LowestPrice, nil
}

// Monitored reports whether the product has a series.
func (s *SeriesStore) Monitored(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.series[productID]
	return ok
}

// ProductIDs lists every monitored product.
func (s *SeriesStore) ProductIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.series))
	for id := range s.series {
		ids = append(ids, id)
	}
	return ids
}

// Count returns the number of monitored products.
func (s *SeriesStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.series)
}

func snapshot(series *models.ProductSeries) *models.ProductSeries {
	clone := *series
	clone.History = make([]models.PriceRecord, len(series.History))
	copy(clone.History, series.History)
	return &clone
}
