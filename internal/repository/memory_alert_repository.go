package repository

import (
	"sync"
	"time"

	"github.com/comprasmart/pricewatch/internal/models"
)

// MemoryAlertRepository is the in-process fallback used when no Mongo URI
// is configured, and by tests.
type MemoryAlertRepository struct {
	mu     sync.RWMutex
	alerts map[string]*models.PriceAlert
}

func NewMemoryAlertRepository() AlertRepository {
	return &MemoryAlertRepository{
		alerts: make(map[string]*models.PriceAlert),
	}
}

func (r *MemoryAlertRepository) Save(alert *models.PriceAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := cloneAlert(alert)
	r.alerts[alert.ID] = clone
	return nil
}

func (r *MemoryAlertRepository) GetByID(id string) (*models.PriceAlert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	alert, ok := r.alerts[id]
	if !ok {
		return nil, models.ErrAlertNotFound
	}
	return cloneAlert(alert), nil
}

func (r *MemoryAlertRepository) GetByUserID(userID string) ([]*models.PriceAlert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var alerts []*models.PriceAlert
	for _, alert := range r.alerts {
		if alert.UserID == userID {
			alerts = append(alerts, cloneAlert(alert))
		}
	}
	return alerts, nil
}

func (r *MemoryAlertRepository) ActiveByProduct(productID string) ([]*models.PriceAlert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var alerts []*models.PriceAlert
	for _, alert := range r.alerts {
		if alert.ProductID == productID && alert.Status == models.AlertStatusActive {
			alerts = append(alerts, cloneAlert(alert))
		}
	}
	return alerts, nil
}

func (r *MemoryAlertRepository) AppendNotification(id string, notification models.AlertNotification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	alert, ok := r.alerts[id]
	if !ok {
		return models.ErrAlertNotFound
	}
	alert.Notifications = append(alert.Notifications, notification)
	return nil
}

func (r *MemoryAlertRepository) UpdateStatus(id string, status models.AlertStatus, triggeredAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	alert, ok := r.alerts[id]
	if !ok {
		return models.ErrAlertNotFound
	}
	alert.Status = status
	if triggeredAt != nil {
		alert.TriggeredAt = triggeredAt
	}
	return nil
}

func cloneAlert(alert *models.PriceAlert) *models.PriceAlert {
	clone := *alert
	clone.Notifications = make([]models.AlertNotification, len(alert.Notifications))
	copy(clone.Notifications, alert.Notifications)
	return &clone
}
