package service

import (
	"github.com/comprasmart/pricewatch/internal/metrics"
	"github.com/comprasmart/pricewatch/internal/models"
	"github.com/comprasmart/pricewatch/internal/repository"

	"github.com/rs/zerolog"
)

// Broadcaster pushes events to subscribed websocket clients.
type Broadcaster interface {
	Broadcast(event *models.Event)
}

// PriceUpdate is the result of one accepted observation: the change summary
// plus any alerts it fired.
type PriceUpdate struct {
	Change models.PriceChange      `json:"change"`
	Alerts []models.TriggeredAlert `json:"alerts"`
}

// MonitorService orchestrates the observation path: store append, metrics,
// push to subscribers and alert evaluation, all within the same call.
type MonitorService struct {
	store  *repository.SeriesStore
	alerts AlertService
	hub    Broadcaster
	log    zerolog.Logger
}

func NewMonitorService(store *repository.SeriesStore, alerts AlertService, hub Broadcaster, log zerolog.Logger) *MonitorService {
	return &MonitorService{store: store, alerts: alerts, hub: hub, log: log}
}

// StartMonitoring registers a product, replacing any prior series.
func (s *MonitorService) StartMonitoring(productID string, info models.ProductInfo) *models.ProductSeries {
	series := s.store.InitMonitoring(productID, info)
	metrics.MonitoredProducts.Set(float64(s.store.Count()))

	s.log.Info().
		Str("product_id", productID).
		Str("store", info.Store).
		Float64("price", info.CurrentPrice).
		Msg("monitoring started")

	return series
}

// Series returns a copy of the product's series.
func (s *MonitorService) Series(productID string) (*models.ProductSeries, error) {
	return s.store.Series(productID)
}

// RecordPrice accepts one observation for a monitored product. Alert
// evaluation happens inline: by the time this returns, every fired alert
// has its notification recorded.
func (s *MonitorService) RecordPrice(productID string, newPrice float64, timestamp int64) (*PriceUpdate, error) {
	change, err := s.store.UpdatePrice(productID, newPrice, timestamp)
	if err != nil {
		return nil, err
	}
	metrics.ObservationsTotal.Inc()

	if s.hub != nil {
		s.hub.Broadcast(&models.Event{
			Type:      models.EventPriceUpdate,
			ProductID: productID,
			Price:     change,
		})
	}

	triggered, err := s.alerts.CheckPriceAlerts(productID, newPrice, change.OldPrice)
	if err != nil {
		// The observation is already recorded; alert evaluation failing
		// must not undo it.
		s.log.Error().Err(err).Str("product_id", productID).Msg("alert evaluation failed")
		triggered = nil
	}

	if s.hub != nil {
		for i := range triggered {
			s.hub.Broadcast(&models.Event{
				Type:      models.EventAlertTriggered,
				ProductID: productID,
				Alert:     &triggered[i],
			})
		}
	}

	return &PriceUpdate{Change: *change, Alerts: triggered}, nil
}
