package scheduler

import (
	"testing"

	"github.com/comprasmart/pricewatch/internal/models"
	"github.com/comprasmart/pricewatch/internal/repository"
	"github.com/comprasmart/pricewatch/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulatedSource_BoundedWalk(t *testing.T) {
	source := NewSimulatedSource(1)

	last := 100.0
	for i := 0; i < 100; i++ {
		price, err := source.FetchPrice("P1", last)
		require.NoError(t, err)
		assert.Greater(t, price, 0.0)
		assert.InDelta(t, last, price, last*0.05+0.01, "each step stays within the walk bound")
		last = price
	}
}

func TestRefreshAll_RecordsObservations(t *testing.T) {
	log := zerolog.Nop()
	store := repository.NewSeriesStore(0)
	alerts := service.NewAlertService(repository.NewMemoryAlertRepository(), store, log)
	monitor := service.NewMonitorService(store, alerts, nil, log)

	store.InitMonitoring("P1", models.ProductInfo{CurrentPrice: 100})
	store.InitMonitoring("P2", models.ProductInfo{CurrentPrice: 200})

	refresher := NewRefresher(store, monitor, NewSimulatedSource(42), "@hourly", log)
	refresher.RefreshAll()

	for _, productID := range []string{"P1", "P2"} {
		series, err := store.Series(productID)
		require.NoError(t, err)
		assert.Len(t, series.History, 2, "one refresh pass appends one record")
	}
}
