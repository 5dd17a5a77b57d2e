package service

import (
	"fmt"
	"math"
	"time"

	"github.com/comprasmart/pricewatch/internal/metrics"
	"github.com/comprasmart/pricewatch/internal/models"
	"github.com/comprasmart/pricewatch/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type AlertService interface {
	CreateAlert(userID, productID string, conditions models.AlertConditions) (*models.PriceAlert, error)
	GetAlert(id string) (*models.PriceAlert, error)
	UserAlerts(userID string) ([]*models.PriceAlert, error)
	ActiveAlerts(productID string) ([]*models.PriceAlert, error)
	CancelAlert(id string) error
	CheckPriceAlerts(productID string, newPrice, oldPrice float64) ([]models.TriggeredAlert, error)
}

type alertService struct {
	repo  repository.AlertRepository
	store *repository.SeriesStore
	log   zerolog.Logger
}

func NewAlertService(repo repository.AlertRepository, store *repository.SeriesStore, log zerolog.Logger) AlertService {
	return &alertService{repo: repo, store: store, log: log}
}

// CreateAlert validates the conditions up front: an alert with no trigger
// field would never fire, so it is rejected instead of being accepted as a
// silent no-op.
func (s *alertService) CreateAlert(userID, productID string, conditions models.AlertConditions) (*models.PriceAlert, error) {
	if conditions.Empty() {
		return nil, models.ErrInvalidConditions
	}
	if conditions.TargetPrice != nil && *conditions.TargetPrice <= 0 {
		return nil, fmt.Errorf("%w: target price must be positive", models.ErrInvalidConditions)
	}
	if conditions.DropPercentage != nil && *conditions.DropPercentage <= 0 {
		return nil, fmt.Errorf("%w: drop percentage must be positive", models.ErrInvalidConditions)
	}
	if !s.store.Monitored(productID) {
		return nil, models.ErrUnknownProduct
	}

	alert := &models.PriceAlert{
		ID:            uuid.New().String(),
		UserID:        userID,
		ProductID:     productID,
		Conditions:    conditions,
		Status:        models.AlertStatusActive,
		CreatedAt:     time.Now(),
		Notifications: []models.AlertNotification{},
	}

	if err := s.repo.Save(alert); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("alert_id", alert.ID).
		Str("user_id", userID).
		Str("product_id", productID).
		Msg("alert created")

	return alert, nil
}

func (s *alertService) GetAlert(id string) (*models.PriceAlert, error) {
	return s.repo.GetByID(id)
}

func (s *alertService) UserAlerts(userID string) ([]*models.PriceAlert, error) {
	return s.repo.GetByUserID(userID)
}

func (s *alertService) ActiveAlerts(productID string) ([]*models.PriceAlert, error) {
	return s.repo.ActiveByProduct(productID)
}

func (s *alertService) CancelAlert(id string) error {
	alert, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if alert.Status == models.AlertStatusCancelled {
		return nil
	}
	return s.repo.UpdateStatus(id, models.AlertStatusCancelled, nil)
}

// EvaluateConditions decides whether a price transition fires a set of
// conditions. Conditions are independent ORs evaluated in a fixed order;
// the first satisfied one wins and names the trigger reason.
func EvaluateConditions(conditions models.AlertConditions, newPrice, oldPrice, percentChange, historicalLow float64) (models.TriggerReason, bool) {
	if conditions.TargetPrice != nil && newPrice <= *conditions.TargetPrice {
		return models.TriggerTargetPrice, true
	}
	if conditions.DropPercentage != nil && math.Abs(percentChange) >= *conditions.DropPercentage {
		return models.TriggerDropPercentage, true
	}
	if conditions.AnyDrop && percentChange < 0 {
		return models.TriggerAnyDrop, true
	}
	if conditions.HistoricalLow && newPrice <= historicalLow {
		return models.TriggerHistoricalLow, true
	}
	return "", false
}

// CheckPriceAlerts evaluates every active alert on the product against the
// price transition. Fired alerts get a notification appended; one-shot
// conditions (target price, historical low) also transition the alert to
// triggered, while drop-based alerts stay active and can fire again.
func (s *alertService) CheckPriceAlerts(productID string, newPrice, oldPrice float64) ([]models.TriggeredAlert, error) {
	percentChange := models.PercentChange(oldPrice, newPrice)

	historicalLow, err := s.store.LowestPrice(productID)
	if err != nil {
		// No series means no historical low to compare against.
		historicalLow = math.Inf(-1)
	}

	alerts, err := s.repo.ActiveByProduct(productID)
	if err != nil {
		return nil, err
	}

	var triggered []models.TriggeredAlert
	now := time.Now()

	for _, alert := range alerts {
		reason, fired := EvaluateConditions(alert.Conditions, newPrice, oldPrice, percentChange, historicalLow)
		if !fired {
			continue
		}

		notification := models.AlertNotification{
			Timestamp: now.UnixMilli(),
			Price:     newPrice,
			Change:    percentChange,
			Reason:    reason,
		}
		if err := s.repo.AppendNotification(alert.ID, notification); err != nil {
			s.log.Error().Err(err).Str("alert_id", alert.ID).Msg("failed to record alert notification")
			continue
		}

		if reason.OneShot() {
			if err := s.repo.UpdateStatus(alert.ID, models.AlertStatusTriggered, &now); err != nil {
				s.log.Error().Err(err).Str("alert_id", alert.ID).Msg("failed to deactivate one-shot alert")
			}
		}

		metrics.AlertsFiredTotal.WithLabelValues(string(reason)).Inc()
		s.log.Info().
			Str("alert_id", alert.ID).
			Str("user_id", alert.UserID).
			Str("product_id", productID).
			Str("reason", string(reason)).
			Float64("price", newPrice).
			Msg("alert fired")

		triggered = append(triggered, models.TriggeredAlert{
			AlertID:     alert.ID,
			UserID:      alert.UserID,
			ProductID:   productID,
			OldPrice:    oldPrice,
			NewPrice:    newPrice,
			PriceChange: percentChange,
			Reason:      reason,
		})
	}

	return triggered, nil
}
