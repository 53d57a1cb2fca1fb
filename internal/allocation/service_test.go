package allocation_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/budget-allocation/internal"
	"github.com/frahmantamala/budget-allocation/internal/allocation"
	"github.com/frahmantamala/budget-allocation/internal/api"
)

func TestAllocationService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Allocation Service Suite")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// mockGateway routes by path so one test can serve both the listing endpoint
// and the summary fallback.
type mockGateway struct {
	envelopes map[string]*api.Envelope
	errors    map[string]error
	calls     []string
	lastBody  any
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
	m.lastBody = body
	return m.respond(path)
}

func (m *mockGateway) Put(ctx context.Context, path string, body any) (*api.Envelope, error) {
	m.lastBody = body
	return m.respond(path)
}

func (m *mockGateway) Patch(ctx context.Context, path string, body any) (*api.Envelope, error) {
	m.lastBody = body
	return m.respond(path)
}

func (m *mockGateway) Delete(ctx context.Context, path string) (*api.Envelope, error) {
	return m.respond(path)
}

func successEnvelope(data string) *api.Envelope {
	return &api.Envelope{Success: true, Data: json.RawMessage(data)}
}

const summaryPayload = `{
	"Departments": [
		{
			"DepartmentId": 1,
			"DepartmentName": "Engineering",
			"Categories": [
				{"CategoryId": 10, "CategoryName": "Cloud", "Allocation": 5000, "Spent": 4200},
				{"CategoryId": 11, "CategoryName": "Training", "Allocation": 1000, "Spent": 100}
			]
		},
		{
			"DepartmentId": 2,
			"DepartmentName": "Marketing",
			"Categories": [
				{"CategoryId": 12, "CategoryName": "Ads", "Allocation": 3000, "Spent": 3600}
			]
		}
	]
}`

var _ = Describe("AllocationService", func() {
	var (
		gw      *mockGateway
		service *allocation.Service
	)

	BeforeEach(func() {
		gw = newMockGateway()
		service = allocation.NewService(gw, testLogger())
	})

	Describe("GetAll", func() {
		It("uses the dedicated listing when available", func() {
			gw.envelopes["/allocations"] = successEnvelope(
				`[{"Id":1,"DepartmentId":1,"CategoryId":10,"Amount":5000,"Spent":100,"Timeframe":"Quarterly"}]`)

			allocations, err := service.GetAll(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(allocations).To(HaveLen(1))
			Expect(allocations[0].ID).To(Equal(int64(1)))
			Expect(allocations[0].Timeframe).To(Equal("Quarterly"))
			Expect(gw.calls).To(Equal([]string{"/allocations"}))
		})

		It("flattens the management summary when the listing is missing", func() {
			gw.errors["/allocations"] = internal.NewNotFoundError("no such route", internal.ErrCodeResourceNotFound)
			gw.envelopes["/dashboard/management"] = successEnvelope(summaryPayload)

			allocations, err := service.GetAll(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(allocations).To(HaveLen(3))

			Expect(allocations[0].DepartmentID).To(Equal(int64(1)))
			Expect(allocations[0].DepartmentName).To(Equal("Engineering"))
			Expect(allocations[0].CategoryName).To(Equal("Cloud"))
			Expect(allocations[0].Amount).To(Equal(5000.0))
			Expect(allocations[0].Spent).To(Equal(4200.0))
			// Derived rows carry no backend ID and default to Monthly.
			Expect(allocations[0].ID).To(BeZero())
			Expect(allocations[0].Timeframe).To(Equal("Monthly"))

			Expect(allocations[2].DepartmentName).To(Equal("Marketing"))
			Expect(allocations[2].Spent).To(BeNumerically(">", allocations[2].Amount))
		})

		It("falls back when the listing exists but is empty", func() {
			gw.envelopes["/allocations"] = successEnvelope(`[]`)
			gw.envelopes["/dashboard/management"] = successEnvelope(summaryPayload)

			allocations, err := service.GetAll(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(allocations).To(HaveLen(3))
		})

		It("propagates non-404 failures without falling back", func() {
			gw.errors["/allocations"] = internal.NewServerError("boom", 500)

			_, err := service.GetAll(context.Background())
			Expect(err).To(HaveOccurred())
			Expect(gw.calls).To(Equal([]string{"/allocations"}))
		})
	})

	Describe("UpdateSpent", func() {
		It("rejects negative spending client-side", func() {
			_, err := service.UpdateSpent(context.Background(), 1, -50)
			Expect(err).To(HaveOccurred())
			Expect(gw.calls).To(BeEmpty())
		})

		It("accepts spending past the allocated amount", func() {
			gw.envelopes["/allocations/1/spent?newSpent=1200"] = successEnvelope(
				`{"Id":1,"DepartmentId":1,"CategoryId":10,"Amount":1000,"Spent":1200}`)

			updated, err := service.UpdateSpent(context.Background(), 1, 1200)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Spent).To(Equal(1200.0))
			Expect(updated.IsOverBudget()).To(BeTrue())
			Expect(updated.Utilization()).To(Equal(120))
		})
	})

	Describe("Create", func() {
		It("validates before calling the backend", func() {
			_, err := service.Create(context.Background(), allocation.AllocationDTO{
				DepartmentID: 0,
				CategoryID:   10,
				Amount:       100,
			})
			Expect(err).To(HaveOccurred())
			Expect(gw.calls).To(BeEmpty())
		})

		It("sends the backend field casing", func() {
			gw.envelopes["/allocations"] = successEnvelope(
				`{"Id":7,"DepartmentId":1,"CategoryId":10,"Amount":100,"Spent":0}`)

			created, err := service.Create(context.Background(), allocation.AllocationDTO{
				DepartmentID: 1,
				CategoryID:   10,
				Amount:       100,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(Equal(int64(7)))

			raw, err := json.Marshal(gw.lastBody)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(raw)).To(ContainSubstring(`"DepartmentId":1`))
			Expect(string(raw)).To(ContainSubstring(`"Timeframe":"Monthly"`))
		})
	})
})
