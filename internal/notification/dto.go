package notification

import (
	"time"

	notificationDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/notification"
)

type notificationWire struct {
	ID        int64  `json:"Id"`
	Title     string `json:"Title"`
	Message   string `json:"Message"`
	IsRead    bool   `json:"IsRead"`
	CreatedAt string `json:"CreatedAt"`
}

func (w notificationWire) toDomain() notificationDatamodel.Notification {
	n := notificationDatamodel.Notification{
		ID:      w.ID,
		Title:   w.Title,
		Message: w.Message,
		IsRead:  w.IsRead,
	}
	if w.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, w.CreatedAt); err == nil {
			n.CreatedAt = t
		}
	}
	return n
}

type unreadCountWire struct {
	Count int `json:"Count"`
}
