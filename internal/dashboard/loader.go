package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	allocationDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/allocation"
	categoryDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/category"
	dashboardDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/dashboard"
	requestDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/request"
)

type CategoryLister interface {
	GetAll(ctx context.Context) ([]categoryDatamodel.Category, error)
}

type AllocationLister interface {
	GetAll(ctx context.Context) ([]allocationDatamodel.Allocation, error)
}

type RequestLister interface {
	GetPending(ctx context.Context) ([]requestDatamodel.Request, error)
	GetByDepartment(ctx context.Context, departmentID int64) ([]requestDatamodel.Request, error)
}

// Loader assembles dashboard views from independent fetches. Fetches for one
// view run in parallel and a failing fetch only blanks its own panel: the
// failure lands in the view's Failures map keyed by panel name while the
// remaining panels render from whatever loaded.
type Loader struct {
	dashboards  *Service
	categories  CategoryLister
	allocations AllocationLister
	requests    RequestLister
	logger      *slog.Logger
}

func NewLoader(dashboards *Service, categories CategoryLister, allocations AllocationLister, requests RequestLister, logger *slog.Logger) *Loader {
	return &Loader{
		dashboards:  dashboards,
		categories:  categories,
		allocations: allocations,
		requests:    requests,
		logger:      logger,
	}
}

type failureSink struct {
	mu       sync.Mutex
	failures map[string]string
}

func newFailureSink() *failureSink {
	return &failureSink{failures: map[string]string{}}
}

func (f *failureSink) record(panel string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[panel] = err.Error()
}

func (l *Loader) LoadAdminView(ctx context.Context) AdminView {
	var (
		categories  []categoryDatamodel.Category
		allocations []allocationDatamodel.Allocation
		pending     []requestDatamodel.Request
		summary     *dashboardDatamodel.OrgSummary
	)
	sink := newFailureSink()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if categories, err = l.categories.GetAll(gctx); err != nil {
			sink.record("categories", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if allocations, err = l.allocations.GetAll(gctx); err != nil {
			sink.record("allocations", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if pending, err = l.requests.GetPending(gctx); err != nil {
			sink.record("requests", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if summary, err = l.dashboards.AdminSummary(gctx); err != nil {
			sink.record("summary", err)
		}
		return nil
	})
	_ = g.Wait()

	view := BuildAdminView(categories, allocations, pending, summary)
	view.Failures = sink.failures
	if len(view.Failures) > 0 {
		l.logger.Warn("admin dashboard loaded with failures", "failed_panels", len(view.Failures))
	}
	return view
}

func (l *Loader) LoadDepartmentView(ctx context.Context, departmentID int64) DepartmentView {
	var (
		summary  *dashboardDatamodel.OrgSummary
		requests []requestDatamodel.Request
	)
	sink := newFailureSink()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if summary, err = l.dashboards.AdminSummary(gctx); err != nil {
			sink.record("summary", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if requests, err = l.requests.GetByDepartment(gctx, departmentID); err != nil {
			sink.record("requests", err)
		}
		return nil
	})
	_ = g.Wait()

	view := BuildDepartmentView(summary, departmentID, requests)
	view.Failures = sink.failures
	return view
}

func (l *Loader) LoadManagementView(ctx context.Context) ManagementView {
	var (
		md          *dashboardDatamodel.ManagementDashboard
		performance []dashboardDatamodel.DepartmentPerformance
	)
	sink := newFailureSink()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if md, err = l.dashboards.Management(gctx); err != nil {
			sink.record("dashboard", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if performance, err = l.dashboards.Performance(gctx); err != nil {
			sink.record("performance", err)
		}
		return nil
	})
	_ = g.Wait()

	view := BuildManagementView(md, performance)
	view.Failures = sink.failures
	return view
}
