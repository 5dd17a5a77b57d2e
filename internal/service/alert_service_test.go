package service

import (
	"math"
	"testing"

	"github.com/comprasmart/pricewatch/internal/models"
	"github.com/comprasmart/pricewatch/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func newAlertFixture(t *testing.T) (*repository.SeriesStore, repository.AlertRepository, AlertService) {
	t.Helper()
	store := repository.NewSeriesStore(0)
	repo := repository.NewMemoryAlertRepository()
	return store, repo, NewAlertService(repo, store, zerolog.Nop())
}

func TestEvaluateConditions(t *testing.T) {
	tests := []struct {
		name          string
		conditions    models.AlertConditions
		newPrice      float64
		oldPrice      float64
		change        float64
		historicalLow float64
		wantFired     bool
		wantReason    models.TriggerReason
	}{
		{
			name:          "target price reached",
			conditions:    models.AlertConditions{TargetPrice: floatPtr(1000)},
			newPrice:      900,
			oldPrice:      1000,
			change:        -10,
			historicalLow: math.Inf(-1),
			wantFired:     true,
			wantReason:    models.TriggerTargetPrice,
		},
		{
			name:          "target price not reached",
			conditions:    models.AlertConditions{TargetPrice: floatPtr(800)},
			newPrice:      900,
			oldPrice:      1000,
			change:        -10,
			historicalLow: math.Inf(-1),
			wantFired:     false,
		},
		{
			name:          "drop percentage satisfied",
			conditions:    models.AlertConditions{DropPercentage: floatPtr(5)},
			newPrice:      900,
			oldPrice:      1000,
			change:        -10,
			historicalLow: math.Inf(-1),
			wantFired:     true,
			wantReason:    models.TriggerDropPercentage,
		},
		{
			name:          "drop percentage below threshold",
			conditions:    models.AlertConditions{DropPercentage: floatPtr(15)},
			newPrice:      900,
			oldPrice:      1000,
			change:        -10,
			historicalLow: math.Inf(-1),
			wantFired:     false,
		},
		{
			name:          "any drop fires on decrease",
			conditions:    models.AlertConditions{AnyDrop: true},
			newPrice:      900,
			oldPrice:      1000,
			change:        -10,
			historicalLow: math.Inf(-1),
			wantFired:     true,
			wantReason:    models.TriggerAnyDrop,
		},
		{
			name:          "any drop ignores increase",
			conditions:    models.AlertConditions{AnyDrop: true},
			newPrice:      1100,
			oldPrice:      1000,
			change:        10,
			historicalLow: math.Inf(-1),
			wantFired:     false,
		},
		{
			name:          "historical low reached",
			conditions:    models.AlertConditions{HistoricalLow: true},
			newPrice:      850,
			oldPrice:      1000,
			change:        -15,
			historicalLow: 850,
			wantFired:     true,
			wantReason:    models.TriggerHistoricalLow,
		},
		{
			name:          "historical low not reached",
			conditions:    models.AlertConditions{HistoricalLow: true},
			newPrice:      900,
			oldPrice:      1000,
			change:        -10,
			historicalLow: 850,
			wantFired:     false,
		},
		{
			name:          "target wins over any drop",
			conditions:    models.AlertConditions{TargetPrice: floatPtr(1000), AnyDrop: true},
			newPrice:      900,
			oldPrice:      1000,
			change:        -10,
			historicalLow: math.Inf(-1),
			wantFired:     true,
			wantReason:    models.TriggerTargetPrice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, fired := EvaluateConditions(tt.conditions, tt.newPrice, tt.oldPrice, tt.change, tt.historicalLow)
			assert.Equal(t, tt.wantFired, fired)
			if tt.wantFired {
				assert.Equal(t, tt.wantReason, reason)
			}
		})
	}
}

func TestCreateAlert_RejectsEmptyConditions(t *testing.T) {
	store, _, alerts := newAlertFixture(t)
	store.InitMonitoring("P1", models.ProductInfo{CurrentPrice: 1000})

	_, err := alerts.CreateAlert("U1", "P1", models.AlertConditions{})

	assert.ErrorIs(t, err, models.ErrInvalidConditions)
}

func TestCreateAlert_RejectsNonPositiveValues(t *testing.T) {
	store, _, alerts := newAlertFixture(t)
	store.InitMonitoring("P1", models.ProductInfo{CurrentPrice: 1000})

	_, err := alerts.CreateAlert("U1", "P1", models.AlertConditions{TargetPrice: floatPtr(-5)})
	assert.ErrorIs(t, err, models.ErrInvalidConditions)

	_, err = alerts.CreateAlert("U1", "P1", models.AlertConditions{DropPercentage: floatPtr(0)})
	assert.ErrorIs(t, err, models.ErrInvalidConditions)
}

func TestCreateAlert_UnknownProduct(t *testing.T) {
	_, _, alerts := newAlertFixture(t)

	_, err := alerts.CreateAlert("U1", "P1", models.AlertConditions{AnyDrop: true})

	assert.ErrorIs(t, err, models.ErrUnknownProduct)
}

func TestCheckPriceAlerts_TargetPrice(t *testing.T) {
	store, _, alerts := newAlertFixture(t)
	store.InitMonitoring("P1", models.ProductInfo{CurrentPrice: 1000})

	alert, err := alerts.CreateAlert("U1", "P1", models.AlertConditions{TargetPrice: floatPtr(950)})
	require.NoError(t, err)

	_, err = store.UpdatePrice("P1", 900, 0)
	require.NoError(t, err)

	triggered, err := alerts.CheckPriceAlerts("P1", 900, 1000)
	require.NoError(t, err)
	require.Len(t, triggered, 1)
	assert.Equal(t, alert.ID, triggered[0].AlertID)
	assert.Equal(t, "U1", triggered[0].UserID)
	assert.Equal(t, "P1", triggered[0].ProductID)
	assert.Equal(t, 1000.0, triggered[0].OldPrice)
	assert.Equal(t, 900.0, triggered[0].NewPrice)
	assert.InDelta(t, -10.0, triggered[0].PriceChange, 1e-9)
}

func TestCheckPriceAlerts_OneShotDeactivates(t *testing.T) {
	store, repo, alerts := newAlertFixture(t)
	store.InitMonitoring("P1", models.ProductInfo{CurrentPrice: 1000})

	alert, err := alerts.CreateAlert("U1", "P1", models.AlertConditions{TargetPrice: floatPtr(950)})
	require.NoError(t, err)

	triggered, err := alerts.CheckPriceAlerts("P1", 900, 1000)
	require.NoError(t, err)
	require.Len(t, triggered, 1)

	stored, err := repo.GetByID(alert.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusTriggered, stored.Status)
	assert.NotNil(t, stored.TriggeredAt)
	require.Len(t, stored.Notifications, 1)
	assert.Equal(t, 900.0, stored.Notifications[0].Price)

	triggered, err = alerts.CheckPriceAlerts("P1", 880, 900)
	require.NoError(t, err)
	assert.Empty(t, triggered, "one-shot alert must not fire again")
}

func TestCheckPriceAlerts_AnyDropRepeats(t *testing.T) {
	store, repo, alerts := newAlertFixture(t)
	store.InitMonitoring("P1", models.ProductInfo{CurrentPrice: 1000})

	alert, err := alerts.CreateAlert("U1", "P1", models.AlertConditions{AnyDrop: true})
	require.NoError(t, err)

	for _, transition := range [][2]float64{{1000, 950}, {950, 920}} {
		triggered, err := alerts.CheckPriceAlerts("P1", transition[1], transition[0])
		require.NoError(t, err)
		require.Len(t, triggered, 1)
		assert.Equal(t, models.TriggerAnyDrop, triggered[0].Reason)
	}

	stored, err := repo.GetByID(alert.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusActive, stored.Status)
	assert.Len(t, stored.Notifications, 2)
}

func TestCheckPriceAlerts_SkipsOtherProductsAndUsers(t *testing.T) {
	store, _, alerts := newAlertFixture(t)
	store.InitMonitoring("P1", models.ProductInfo{CurrentPrice: 1000})
	store.InitMonitoring("P2", models.ProductInfo{CurrentPrice: 500})

	_, err := alerts.CreateAlert("U1", "P1", models.AlertConditions{AnyDrop: true})
	require.NoError(t, err)
	_, err = alerts.CreateAlert("U2", "P2", models.AlertConditions{AnyDrop: true})
	require.NoError(t, err)

	triggered, err := alerts.CheckPriceAlerts("P1", 900, 1000)
	require.NoError(t, err)
	require.Len(t, triggered, 1)
	assert.Equal(t, "U1", triggered[0].UserID)
}

func TestCancelAlert(t *testing.T) {
	store, repo, alerts := newAlertFixture(t)
	store.InitMonitoring("P1", models.ProductInfo{CurrentPrice: 1000})

	alert, err := alerts.CreateAlert("U1", "P1", models.AlertConditions{AnyDrop: true})
	require.NoError(t, err)

	require.NoError(t, alerts.CancelAlert(alert.ID))

	stored, err := repo.GetByID(alert.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusCancelled, stored.Status)

	triggered, err := alerts.CheckPriceAlerts("P1", 900, 1000)
	require.NoError(t, err)
	assert.Empty(t, triggered)

	assert.ErrorIs(t, alerts.CancelAlert("missing"), models.ErrAlertNotFound)
}
