package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ObservationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pricewatch_observations_total",
		Help: "Price observations accepted into series.",
	})

	AlertsFiredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pricewatch_alerts_fired_total",
		Help: "Alerts fired, partitioned by the condition that triggered.",
	}, []string{"reason"})

	ReportsGeneratedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pricewatch_reports_generated_total",
		Help: "Price reports generated (cache misses included).",
	})

	MonitoredProducts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pricewatch_monitored_products",
		Help: "Products currently monitored.",
	})
)
