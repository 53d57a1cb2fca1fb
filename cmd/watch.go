package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	requestDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/request"
	userDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/user"
	"github.com/frahmantamala/budget-allocation/internal/core/events"
	"github.com/frahmantamala/budget-allocation/internal/dashboard"
	"github.com/frahmantamala/budget-allocation/pkg/logger"
)

var watchedEvents = []string{
	events.EventTypeAllocationUpdated,
	events.EventTypeUtilizationUpdated,
	events.EventTypeRequestsUpdated,
	events.EventTypeNotificationReceived,
	events.EventTypeThresholdAlert,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Tail live events from the budget hub",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initializeDependencies()
		if err != nil {
			return err
		}
		u, err := deps.requireUser()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var disposers []func()
		for _, eventType := range watchedEvents {
			disposers = append(disposers, deps.Channel.Subscribe(eventType, printEvent))
		}

		// Keep a live view of the request list; a requestsUpdated event only
		// signals that something changed, the rows come from a re-fetch. The
		// merge keeps already-reviewed requests from flipping back to pending
		// when the hub delivers stale rows.
		feed := &dashboard.RequestFeed{}
		if initial, err := fetchWatchedRequests(ctx, deps, u); err == nil {
			feed.Refresh(initial)
		}
		disposers = append(disposers, deps.Channel.Subscribe(events.EventTypeRequestsUpdated,
			func(ctx context.Context, _ events.Event) error {
				incoming, err := fetchWatchedRequests(ctx, deps, u)
				if err != nil {
					logger.From(ctx).Warn("request refresh failed", "error", err)
					return err
				}
				merged := feed.Refresh(incoming)
				fmt.Printf("requests refreshed: %d tracked, %d pending\n", len(merged), feed.Pending())
				return nil
			}))
		defer func() {
			for _, dispose := range disposers {
				dispose()
			}
		}()

		deps.Channel.Start(ctx, u)
		defer deps.Channel.Close()

		fmt.Printf("Watching events for %s (ctrl-c to stop)\n", u.Name)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		fmt.Println("\nStopped")
		return nil
	},
}

// fetchWatchedRequests pulls the request list the current role is entitled
// to: reviewers see the pending queue, department heads their own
// department's requests.
func fetchWatchedRequests(ctx context.Context, deps *Dependencies, u userDatamodel.User) ([]requestDatamodel.Request, error) {
	if deps.Perms.CanReviewRequests(u.Role) {
		return deps.Requests.GetPending(ctx)
	}
	if u.DepartmentID != nil {
		return deps.Requests.GetByDepartment(ctx, *u.DepartmentID)
	}
	return nil, nil
}

func printEvent(_ context.Context, event events.Event) error {
	payload, _ := json.Marshal(event.Payload())
	fmt.Printf("[%s] %s %s\n",
		event.OccurredAt().Format(time.TimeOnly), event.EventType(), payload)
	return nil
}
