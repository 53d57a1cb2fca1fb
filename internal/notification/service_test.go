package notification_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/budget-allocation/internal"
	"github.com/frahmantamala/budget-allocation/internal/api"
	"github.com/frahmantamala/budget-allocation/internal/notification"
)

func TestNotificationService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Notification Service Suite")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type mockGateway struct {
	envelopes map[string]*api.Envelope
	errors    map[string]error
	calls     []string
}

func newMockGateway() *mockGateway {
	return &mockGateway{
		envelopes: make(map[string]*api.Envelope),
		errors:    make(map[string]error),
	}
}

func (m *mockGateway) respond(path string) (*api.Envelope, error) {
	m.calls = append(m.calls, path)
	if err := m.errors[path]; err != nil {
		return nil, err
	}
	if env := m.envelopes[path]; env != nil {
		return env, nil
	}
	return &api.Envelope{Success: true}, nil
}

func (m *mockGateway) Get(ctx context.Context, path string) (*api.Envelope, error) {
	return m.respond(path)
}

func (m *mockGateway) Post(ctx context.Context, path string, body any) (*api.Envelope, error) {
	return m.respond(path)
}

func successEnvelope(data string) *api.Envelope {
	return &api.Envelope{Success: true, Data: json.RawMessage(data)}
}

var _ = Describe("NotificationService", func() {
	var (
		gw      *mockGateway
		service *notification.Service
	)

	BeforeEach(func() {
		gw = newMockGateway()
		service = notification.NewService(gw, testLogger())
	})

	It("lists notifications", func() {
		gw.envelopes["/notifications"] = successEnvelope(
			`[{"Id":1,"Title":"Threshold","Message":"Cloud at 85%","IsRead":false}]`)

		notifications, err := service.GetAll(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(notifications).To(HaveLen(1))
		Expect(notifications[0].Title).To(Equal("Threshold"))
		Expect(notifications[0].IsRead).To(BeFalse())
	})

	It("marks single and all notifications read", func() {
		Expect(service.MarkRead(context.Background(), 7)).To(Succeed())
		Expect(service.MarkAllRead(context.Background())).To(Succeed())
		Expect(gw.calls).To(Equal([]string{"/notifications/7/read", "/notifications/mark-all-read"}))
	})

	Describe("UnreadCount", func() {
		It("uses the dedicated endpoint when present", func() {
			gw.envelopes["/notifications/unread-count"] = successEnvelope(`{"Count":4}`)

			count, err := service.UnreadCount(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(4))
			Expect(gw.calls).To(Equal([]string{"/notifications/unread-count"}))
		})

		It("counts the listing when the endpoint is missing", func() {
			gw.errors["/notifications/unread-count"] = internal.NewNotFoundError("no such route", internal.ErrCodeResourceNotFound)
			gw.envelopes["/notifications"] = successEnvelope(
				`[{"Id":1,"IsRead":false},{"Id":2,"IsRead":true},{"Id":3,"IsRead":false}]`)

			count, err := service.UnreadCount(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(2))
		})
	})
})
