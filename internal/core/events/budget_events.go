package events

import (
	"time"

	"github.com/google/uuid"
)

// Event types mirror the names the backend hub broadcasts.
const (
	EventTypeAllocationUpdated    = "allocationUpdated"
	EventTypeUtilizationUpdated   = "utilizationUpdated"
	EventTypeRequestsUpdated      = "requestsUpdated"
	EventTypeNotificationReceived = "notificationReceived"
	EventTypeThresholdAlert       = "thresholdAlert"
)

type AllocationUpdatedEvent struct {
	BaseEvent
	DepartmentID int64   `json:"department_id"`
	CategoryID   int64   `json:"category_id"`
	Amount       float64 `json:"amount"`
	Spent        float64 `json:"spent"`
}

func NewAllocationUpdatedEvent(departmentID, categoryID int64, amount, spent float64) *AllocationUpdatedEvent {
	return &AllocationUpdatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAllocationUpdated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"department_id": departmentID,
				"category_id":   categoryID,
				"amount":        amount,
				"spent":         spent,
			},
		},
		DepartmentID: departmentID,
		CategoryID:   categoryID,
		Amount:       amount,
		Spent:        spent,
	}
}

type ThresholdAlertEvent struct {
	BaseEvent
	DepartmentID       int64   `json:"department_id"`
	CategoryName       string  `json:"category_name"`
	UtilizationPercent float64 `json:"utilization_percent"`
}

func NewThresholdAlertEvent(departmentID int64, categoryName string, utilizationPercent float64) *ThresholdAlertEvent {
	return &ThresholdAlertEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeThresholdAlert,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"department_id":       departmentID,
				"category_name":       categoryName,
				"utilization_percent": utilizationPercent,
			},
		},
		DepartmentID:       departmentID,
		CategoryName:       categoryName,
		UtilizationPercent: utilizationPercent,
	}
}

// NewHubEvent wraps a raw frame from the realtime hub. Payload keys are kept
// as the backend sent them.
func NewHubEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}
