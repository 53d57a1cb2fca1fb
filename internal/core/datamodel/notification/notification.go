package notification

import "time"

// Notification is created by backend-side events (approval, rejection,
// threshold breach); the client only ever flips IsRead.
type Notification struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}
