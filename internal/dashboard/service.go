package dashboard

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/budget-allocation/internal/api"
	dashboardDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/dashboard"
)

type Gateway interface {
	Get(ctx context.Context, path string) (*api.Envelope, error)
}

type Service struct {
	gw     Gateway
	logger *slog.Logger
}

func NewService(gw Gateway, logger *slog.Logger) *Service {
	return &Service{gw: gw, logger: logger}
}

// AdminSummary fetches the organization rollup used by the admin and
// department views.
func (s *Service) AdminSummary(ctx context.Context) (*dashboardDatamodel.OrgSummary, error) {
	env, err := s.gw.Get(ctx, "/dashboard/management")
	if err != nil {
		s.logger.Error("failed to fetch dashboard summary", "error", err)
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var w orgSummaryWire
	if err := env.DecodeData(&w); err != nil {
		return nil, err
	}
	summary := w.toDomain()
	return &summary, nil
}

// Management fetches the full management dashboard including utilization
// trends.
func (s *Service) Management(ctx context.Context) (*dashboardDatamodel.ManagementDashboard, error) {
	env, err := s.gw.Get(ctx, "/management/dashboard")
	if err != nil {
		s.logger.Error("failed to fetch management dashboard", "error", err)
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var w managementDashboardWire
	if err := env.DecodeData(&w); err != nil {
		return nil, err
	}
	md := w.toDomain()
	return &md, nil
}

func (s *Service) Performance(ctx context.Context) ([]dashboardDatamodel.DepartmentPerformance, error) {
	env, err := s.gw.Get(ctx, "/management/performance")
	if err != nil {
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var wires []performanceWire
	if err := env.DecodeData(&wires); err != nil {
		return nil, err
	}

	rows := make([]dashboardDatamodel.DepartmentPerformance, 0, len(wires))
	for _, w := range wires {
		rows = append(rows, w.toDomain())
	}
	return rows, nil
}
