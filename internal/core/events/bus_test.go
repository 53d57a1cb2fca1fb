package events_test

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/budget-allocation/internal/core/events"
)

func TestEventBus(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Event Bus Suite")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

var _ = Describe("EventBus", func() {
	var bus *events.EventBus

	BeforeEach(func() {
		bus = events.NewEventBus(testLogger())
	})

	It("delivers events to subscribed handlers", func() {
		var count atomic.Int32
		bus.Subscribe(events.EventTypeAllocationUpdated, func(ctx context.Context, e events.Event) error {
			count.Add(1)
			return nil
		})

		event := events.NewAllocationUpdatedEvent(1, 10, 5000, 4200)
		Expect(bus.Publish(context.Background(), event)).To(Succeed())
		Eventually(func() int32 { return count.Load() }).Should(Equal(int32(1)))
	})

	It("stops delivering after the disposer runs", func() {
		var count atomic.Int32
		dispose := bus.Subscribe(events.EventTypeThresholdAlert, func(ctx context.Context, e events.Event) error {
			count.Add(1)
			return nil
		})

		event := events.NewThresholdAlertEvent(2, "Ads", 95)
		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())
		Expect(count.Load()).To(Equal(int32(1)))

		dispose()
		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())
		Consistently(func() int32 { return count.Load() }, 100*time.Millisecond).Should(Equal(int32(1)))
	})

	It("removes only the disposed handler", func() {
		var first, second atomic.Int32
		dispose := bus.Subscribe(events.EventTypeRequestsUpdated, func(ctx context.Context, e events.Event) error {
			first.Add(1)
			return nil
		})
		bus.Subscribe(events.EventTypeRequestsUpdated, func(ctx context.Context, e events.Event) error {
			second.Add(1)
			return nil
		})

		dispose()
		event := events.NewHubEvent(events.EventTypeRequestsUpdated, nil)
		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())
		Expect(first.Load()).To(Equal(int32(0)))
		Expect(second.Load()).To(Equal(int32(1)))
	})

	It("tolerates publishing with no subscribers", func() {
		event := events.NewHubEvent(events.EventTypeNotificationReceived, map[string]interface{}{"Id": 1})
		Expect(bus.Publish(context.Background(), event)).To(Succeed())
		Expect(bus.PublishSync(context.Background(), event)).To(Succeed())
	})
})
