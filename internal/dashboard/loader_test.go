package dashboard_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/budget-allocation/internal"
	"github.com/frahmantamala/budget-allocation/internal/api"
	allocationDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/allocation"
	categoryDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/category"
	requestDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/request"
	"github.com/frahmantamala/budget-allocation/internal/dashboard"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type mockGateway struct {
	envelopes map[string]*api.Envelope
	errors    map[string]error
}

func (m *mockGateway) Get(ctx context.Context, path string) (*api.Envelope, error) {
	if err := m.errors[path]; err != nil {
		return nil, err
	}
	if env := m.envelopes[path]; env != nil {
		return env, nil
	}
	return nil, internal.NewNotFoundError("no such route", internal.ErrCodeResourceNotFound)
}

type mockCategories struct {
	categories []categoryDatamodel.Category
	err        error
}

func (m *mockCategories) GetAll(ctx context.Context) ([]categoryDatamodel.Category, error) {
	return m.categories, m.err
}

type mockAllocations struct {
	allocations []allocationDatamodel.Allocation
	err         error
}

func (m *mockAllocations) GetAll(ctx context.Context) ([]allocationDatamodel.Allocation, error) {
	return m.allocations, m.err
}

type mockRequests struct {
	pending      []requestDatamodel.Request
	byDepartment []requestDatamodel.Request
	err          error
}

func (m *mockRequests) GetPending(ctx context.Context) ([]requestDatamodel.Request, error) {
	return m.pending, m.err
}

func (m *mockRequests) GetByDepartment(ctx context.Context, departmentID int64) ([]requestDatamodel.Request, error) {
	return m.byDepartment, m.err
}

const summaryData = `{
	"GrandTotalAllocation": 9000,
	"GrandTotalSpent": 7900,
	"Departments": [
		{"DepartmentId": 1, "DepartmentName": "Engineering",
		 "TotalAllocation": 6000, "TotalSpent": 4300, "Categories": []}
	]
}`

var _ = Describe("Loader", func() {
	var (
		gw          *mockGateway
		categories  *mockCategories
		allocations *mockAllocations
		requests    *mockRequests
		loader      *dashboard.Loader
	)

	BeforeEach(func() {
		gw = &mockGateway{
			envelopes: map[string]*api.Envelope{
				"/dashboard/management": {Success: true, Data: json.RawMessage(summaryData)},
			},
			errors: map[string]error{},
		}
		categories = &mockCategories{categories: []categoryDatamodel.Category{{ID: 1, Limit: 500}}}
		allocations = &mockAllocations{allocations: []allocationDatamodel.Allocation{{ID: 1}}}
		requests = &mockRequests{pending: []requestDatamodel.Request{{ID: 1, Status: requestDatamodel.StatusPending}}}

		service := dashboard.NewService(gw, testLogger())
		loader = dashboard.NewLoader(service, categories, allocations, requests, testLogger())
	})

	Describe("LoadAdminView", func() {
		It("assembles all panels when every fetch succeeds", func() {
			view := loader.LoadAdminView(context.Background())
			Expect(view.Failures).To(BeEmpty())
			Expect(view.TotalCategories).To(Equal(1))
			Expect(view.ActiveAllocations).To(Equal(1))
			Expect(view.PendingRequests).To(Equal(1))
			Expect(view.Summary).NotTo(BeNil())
		})

		It("isolates a failing panel without blanking the rest", func() {
			categories.err = internal.NewServerError("categories exploded", 500)

			view := loader.LoadAdminView(context.Background())
			Expect(view.Failures).To(HaveKey("categories"))
			Expect(view.TotalCategories).To(BeZero())
			// The other panels still rendered.
			Expect(view.ActiveAllocations).To(Equal(1))
			Expect(view.PendingRequests).To(Equal(1))
			Expect(view.Summary).NotTo(BeNil())
		})
	})

	Describe("LoadDepartmentView", func() {
		It("keeps the requests panel when the summary fails", func() {
			gw.errors["/dashboard/management"] = internal.NewServerError("summary exploded", 500)
			requests.byDepartment = []requestDatamodel.Request{{ID: 4, Status: requestDatamodel.StatusPending}}

			view := loader.LoadDepartmentView(context.Background(), 1)
			Expect(view.Failures).To(HaveKey("summary"))
			Expect(view.HasData).To(BeFalse())
			Expect(view.Requests).To(HaveLen(1))
		})
	})

	Describe("LoadManagementView", func() {
		It("records a failure per missing panel", func() {
			// Neither /management/dashboard nor /management/performance is
			// mapped, so both panels fail while the view still renders.
			view := loader.LoadManagementView(context.Background())
			Expect(view.Failures).To(HaveKey("dashboard"))
			Expect(view.Failures).To(HaveKey("performance"))
			Expect(view.Departments).To(BeEmpty())
		})
	})
})
