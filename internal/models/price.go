package models

// PriceRecord is a single observation in a product's history. Timestamps
// are epoch milliseconds. Change is the percent difference against the
// previous record and is nil on the seed record.
type PriceRecord struct {
	Price     float64  `json:"price"`
	Timestamp int64    `json:"timestamp"`
	Change    *float64 `json:"change,omitempty"`
}

// SeriesStats is the derived summary for a series, recomputed from scratch
// on every append over the retained window only.
type SeriesStats struct {
	HighestPrice float64 `json:"highest_price"`
	LowestPrice  float64 `json:"lowest_price"`
	AveragePrice float64 `json:"average_price"`
	PriceDrops   int     `json:"price_drops"`
	LastChecked  int64   `json:"last_checked"`
}

// ProductInfo is the caller-supplied metadata for a monitored product.
type ProductInfo struct {
	Title        string  `json:"title"`
	Store        string  `json:"store"`
	Category     string  `json:"category"`
	CurrentPrice float64 `json:"current_price"`
	LastUpdated  int64   `json:"last_updated,omitempty"`
}

// ProductSeries is the full state held for one product: metadata, the
// retained history and its stats. History is ordered by timestamp and
// append-only; records that fall out of the retention window are dropped.
type ProductSeries struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Store    string        `json:"store"`
	Category string        `json:"category"`
	History  []PriceRecord `json:"history"`
	Stats    SeriesStats   `json:"stats"`
}

// Current returns the latest observed price.
func (s *ProductSeries) Current() float64 {
	return s.History[len(s.History)-1].Price
}

// PriceChange summarizes one accepted observation.
type PriceChange struct {
	ProductID   string  `json:"product_id"`
	OldPrice    float64 `json:"old_price"`
	NewPrice    float64 `json:"new_price"`
	PriceChange float64 `json:"price_change"`
}

// PercentChange is the relative change from old to new, in percent.
func PercentChange(oldPrice, newPrice float64) float64 {
	return (newPrice - oldPrice) / oldPrice * 100
}
