package scheduler

import (
	"math"
	"math/rand"
	"sync"

	"github.com/comprasmart/pricewatch/internal/repository"
	"github.com/comprasmart/pricewatch/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// PriceSource fetches the current retail price for a product.
type PriceSource interface {
	FetchPrice(productID string, lastPrice float64) (float64, error)
}

// SimulatedSource stands in for real retailer integrations with a bounded
// random walk around the last observed price.
type SimulatedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSimulatedSource(seed int64) *SimulatedSource {
	return &SimulatedSource{rnd: rand.New(rand.NewSource(seed))}
}

func (s *SimulatedSource) FetchPrice(productID string, lastPrice float64) (float64, error) {
	s.mu.Lock()
	delta := s.rnd.Float64()*0.1 - 0.05 // +-5%
	s.mu.Unlock()

	price := math.Round(lastPrice*(1+delta)*100) / 100
	if price <= 0 {
		price = lastPrice
	}
	return price, nil
}

// Refresher polls the price source for every monitored product on a cron
// schedule and feeds the observations through the monitor service.
type Refresher struct {
	store   *repository.SeriesStore
	monitor *service.MonitorService
	source  PriceSource
	cron    *cron.Cron
	spec    string
	log     zerolog.Logger
}

func NewRefresher(store *repository.SeriesStore, monitor *service.MonitorService, source PriceSource, spec string, log zerolog.Logger) *Refresher {
	return &Refresher{
		store:   store,
		monitor: monitor,
		source:  source,
		cron:    cron.New(),
		spec:    spec,
		log:     log,
	}
}

func (r *Refresher) Start() error {
	if _, err := r.cron.AddFunc(r.spec, r.RefreshAll); err != nil {
		return err
	}
	r.cron.Start()
	r.log.Info().Str("spec", r.spec).Msg("price refresh scheduler started")
	return nil
}

func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
}

// RefreshAll runs one polling pass over every monitored product.
func (r *Refresher) RefreshAll() {
	for _, productID := range r.store.ProductIDs() {
		series, err := r.store.Series(productID)
		if err != nil {
			continue
		}

		price, err := r.source.FetchPrice(productID, series.Current())
		if err != nil {
			r.log.Warn().Err(err).Str("product_id", productID).Msg("price fetch failed")
			continue
		}

		if _, err := r.monitor.RecordPrice(productID, price, 0); err != nil {
			r.log.Warn().Err(err).Str("product_id", productID).Msg("price refresh failed")
		}
	}
}
