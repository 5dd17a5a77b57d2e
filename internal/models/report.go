package models

// PriceTrends are percent changes over the trailing day, week and month.
type PriceTrends struct {
	Day   float64 `json:"day"`
	Week  float64 `json:"week"`
	Month float64 `json:"month"`
}

// BestTime is the cheapest weekday seen in the history.
type BestTime struct {
	Day        int     `json:"day"`
	Confidence float64 `json:"confidence"`
}

// PricePrediction is a heuristic projection from the 30-day trend. The
// confidence is a fixed constant, not a model output.
type PricePrediction struct {
	Estimated  float64  `json:"estimated"`
	Confidence float64  `json:"confidence"`
	BestTime   BestTime `json:"best_time"`
}

// PriceAnalytics is the on-demand analytical view of one series.
type PriceAnalytics struct {
	Current    float64         `json:"current"`
	Stats      SeriesStats     `json:"stats"`
	Trends     PriceTrends     `json:"trends"`
	Prediction PricePrediction `json:"prediction"`
}

// BucketAverage is the mean price of a calendar bucket (month or weekday)
// that had at least one observation.
type BucketAverage struct {
	Index   int     `json:"index"`
	Name    string  `json:"name"`
	Average float64 `json:"average"`
}

// Seasonality reports per-month and per-weekday averages plus the cheapest
// of each, read as the best time to buy.
type Seasonality struct {
	ByMonth     []BucketAverage `json:"by_month"`
	ByDayOfWeek []BucketAverage `json:"by_day_of_week"`
	BestMonth   BucketAverage   `json:"best_month"`
	BestDay     BucketAverage   `json:"best_day"`
}

// CompetitorQuote is a competitor's price for the same product.
type CompetitorQuote struct {
	Store string  `json:"store"`
	Price float64 `json:"price"`
}

type RecommendationType string

const (
	RecommendationWarning RecommendationType = "warning"
	RecommendationAlert   RecommendationType = "alert"
	RecommendationInfo    RecommendationType = "info"
)

type Recommendation struct {
	Type    RecommendationType `json:"type"`
	Message string             `json:"message"`
}

// PriceReport is the composite view assembled for display.
type PriceReport struct {
	Timestamp       int64             `json:"timestamp"`
	ProductID       string            `json:"product_id"`
	CurrentPrice    float64           `json:"current_price"`
	Analytics       PriceAnalytics    `json:"analytics"`
	Seasonality     *Seasonality      `json:"seasonality,omitempty"`
	Competitors     []CompetitorQuote `json:"competitors"`
	Recommendations []Recommendation  `json:"recommendations"`
}
