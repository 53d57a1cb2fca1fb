package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/budget-allocation/internal/api"
	notificationDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/notification"
)

type Gateway interface {
	Get(ctx context.Context, path string) (*api.Envelope, error)
	Post(ctx context.Context, path string, body any) (*api.Envelope, error)
}

type Service struct {
	gw     Gateway
	logger *slog.Logger
}

func NewService(gw Gateway, logger *slog.Logger) *Service {
	return &Service{gw: gw, logger: logger}
}

func (s *Service) GetAll(ctx context.Context) ([]notificationDatamodel.Notification, error) {
	env, err := s.gw.Get(ctx, "/notifications")
	if err != nil {
		s.logger.Error("failed to fetch notifications", "error", err)
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var wires []notificationWire
	if err := env.DecodeData(&wires); err != nil {
		return nil, err
	}

	notifications := make([]notificationDatamodel.Notification, 0, len(wires))
	for _, w := range wires {
		notifications = append(notifications, w.toDomain())
	}
	return notifications, nil
}

func (s *Service) MarkRead(ctx context.Context, id int64) error {
	env, err := s.gw.Post(ctx, fmt.Sprintf("/notifications/%d/read", id), nil)
	if err != nil {
		return err
	}
	return env.Err()
}

func (s *Service) MarkAllRead(ctx context.Context) error {
	env, err := s.gw.Post(ctx, "/notifications/mark-all-read", nil)
	if err != nil {
		return err
	}
	if err := env.Err(); err != nil {
		return err
	}
	s.logger.Info("all notifications marked read")
	return nil
}

// UnreadCount falls back to counting the full listing when the dedicated
// endpoint is unavailable on older backends.
func (s *Service) UnreadCount(ctx context.Context) (int, error) {
	env, err := s.gw.Get(ctx, "/notifications/unread-count")
	if err == nil && env.Err() == nil {
		var w unreadCountWire
		if decodeErr := env.DecodeData(&w); decodeErr == nil {
			return w.Count, nil
		}
	}

	all, err := s.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range all {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}
