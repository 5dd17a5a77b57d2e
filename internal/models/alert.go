package models

import "time"

type AlertStatus string

const (
	AlertStatusActive    AlertStatus = "active"
	AlertStatusTriggered AlertStatus = "triggered"
	AlertStatusCancelled AlertStatus = "cancelled"
)

// TriggerReason names which condition fired an alert.
type TriggerReason string

const (
	TriggerTargetPrice    TriggerReason = "target_price"
	TriggerDropPercentage TriggerReason = "drop_percentage"
	TriggerAnyDrop        TriggerReason = "any_drop"
	TriggerHistoricalLow  TriggerReason = "historical_low"
)

// OneShot reports whether an alert fired for this reason should stop
// firing. Target-price and historical-low alerts are satisfied once;
// percentage and any-drop alerts keep watching.
func (r TriggerReason) OneShot() bool {
	return r == TriggerTargetPrice || r == TriggerHistoricalLow
}

// AlertConditions are evaluated as independent ORs, in declaration order.
// At least one trigger field must be set.
type AlertConditions struct {
	TargetPrice    *float64 `json:"target_price,omitempty" bson:"target_price,omitempty"`
	DropPercentage *float64 `json:"drop_percentage,omitempty" bson:"drop_percentage,omitempty"`
	AnyDrop        bool     `json:"any_drop,omitempty" bson:"any_drop,omitempty"`
	HistoricalLow  bool     `json:"historical_low,omitempty" bson:"historical_low,omitempty"`
}

// Empty reports whether no trigger field is set.
func (c AlertConditions) Empty() bool {
	return c.TargetPrice == nil && c.DropPercentage == nil && !c.AnyDrop && !c.HistoricalLow
}

// AlertNotification records one firing of an alert. Notifications only
// accumulate; alerts are never deleted, only status-transitioned.
type AlertNotification struct {
	Timestamp int64         `json:"timestamp" bson:"timestamp"`
	Price     float64       `json:"price" bson:"price"`
	Change    float64       `json:"change" bson:"change"`
	Reason    TriggerReason `json:"reason" bson:"reason"`
}

type PriceAlert struct {
	ID            string              `json:"id" bson:"_id"`
	UserID        string              `json:"user_id" bson:"user_id"`
	ProductID     string              `json:"product_id" bson:"product_id"`
	Conditions    AlertConditions     `json:"conditions" bson:"conditions"`
	Status        AlertStatus         `json:"status" bson:"status"`
	CreatedAt     time.Time           `json:"created_at" bson:"created_at"`
	TriggeredAt   *time.Time          `json:"triggered_at,omitempty" bson:"triggered_at,omitempty"`
	Notifications []AlertNotification `json:"notifications" bson:"notifications"`
}

// TriggeredAlert is the summary returned to callers when an alert fires.
type TriggeredAlert struct {
	AlertID     string        `json:"alert_id"`
	UserID      string        `json:"user_id"`
	ProductID   string        `json:"product_id"`
	OldPrice    float64       `json:"old_price"`
	NewPrice    float64       `json:"new_price"`
	PriceChange float64       `json:"price_change"`
	Reason      TriggerReason `json:"reason"`
}
