package cmd

import (
	"fmt"
	"log/slog"

	"github.com/frahmantamala/budget-allocation/internal"
	"github.com/frahmantamala/budget-allocation/internal/allocation"
	"github.com/frahmantamala/budget-allocation/internal/api"
	"github.com/frahmantamala/budget-allocation/internal/auth"
	"github.com/frahmantamala/budget-allocation/internal/category"
	"github.com/frahmantamala/budget-allocation/internal/core/events"
	"github.com/frahmantamala/budget-allocation/internal/dashboard"
	"github.com/frahmantamala/budget-allocation/internal/notification"
	"github.com/frahmantamala/budget-allocation/internal/permissions"
	"github.com/frahmantamala/budget-allocation/internal/realtime"
	"github.com/frahmantamala/budget-allocation/internal/request"
	"github.com/frahmantamala/budget-allocation/internal/session"
	"github.com/frahmantamala/budget-allocation/internal/user"
	"github.com/frahmantamala/budget-allocation/pkg/logger"

	userDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/user"
)

type Dependencies struct {
	Config   *internal.Config
	Logger   *slog.Logger
	Sessions *session.Store
	API      *api.Client
	Perms    *permissions.Checker

	Auth          *auth.Service
	Categories    *category.Service
	Allocations   *allocation.Service
	Requests      *request.Service
	Users         *user.Service
	Notifications *notification.Service
	Dashboards    *dashboard.Service
	Loader        *dashboard.Loader

	Bus     *events.EventBus
	Channel *realtime.Channel
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.InitWith(config.Observability.Logging.Format, config.Observability.Logging.Level)
	log := logger.LoggerWrapper()

	sessionPath, err := config.Session.ResolvePath()
	if err != nil {
		return nil, err
	}
	sessions := session.NewStore(sessionPath, log)
	if err := sessions.Load(); err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	client := api.NewClient(api.Config{
		BaseURL:        config.API.BaseURL,
		RequestTimeout: config.API.RequestTimeout,
	}, sessions, log)
	// Any 401 invalidates the whole session, not just the failing call.
	client.SetUnauthorizedHook(func() {
		if err := sessions.Clear(); err != nil {
			log.Error("failed to clear session after 401", "error", err)
		}
	})

	dashboards := dashboard.NewService(client, log)
	categories := category.NewService(client, log)
	allocations := allocation.NewService(client, log)
	requests := request.NewService(client, log)
	bus := events.NewEventBus(log)

	deps := &Dependencies{
		Config:        config,
		Logger:        log,
		Sessions:      sessions,
		API:           client,
		Perms:         permissions.NewChecker(),
		Auth:          auth.NewService(client, sessions, log),
		Categories:    categories,
		Allocations:   allocations,
		Requests:      requests,
		Users:         user.NewService(client, log),
		Notifications: notification.NewService(client, log),
		Dashboards:    dashboards,
		Loader:        dashboard.NewLoader(dashboards, categories, allocations, requests, log),
		Bus:           bus,
		Channel: realtime.NewChannel(realtime.Config{
			HubURL:           config.Realtime.HubURL,
			HandshakeTimeout: config.Realtime.HandshakeTimeout,
			ReconnectDelays:  config.Realtime.ReconnectDelays,
		}, sessions, bus, log),
	}
	return deps, nil
}

// requireUser fails fast when no authenticated session is loaded.
func (d *Dependencies) requireUser() (userDatamodel.User, error) {
	u := d.Sessions.CurrentUser()
	if u == nil || !d.Sessions.IsAuthenticated() {
		return userDatamodel.User{}, internal.ErrNotAuthenticated
	}
	return *u, nil
}
