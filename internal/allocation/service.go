package allocation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/budget-allocation/internal"
	"github.com/frahmantamala/budget-allocation/internal/api"
	allocationDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/allocation"
)

type Gateway interface {
	Get(ctx context.Context, path string) (*api.Envelope, error)
	Post(ctx context.Context, path string, body any) (*api.Envelope, error)
	Put(ctx context.Context, path string, body any) (*api.Envelope, error)
	Patch(ctx context.Context, path string, body any) (*api.Envelope, error)
	Delete(ctx context.Context, path string) (*api.Envelope, error)
}

type Service struct {
	gw     Gateway
	logger *slog.Logger
}

func NewService(gw Gateway, logger *slog.Logger) *Service {
	return &Service{gw: gw, logger: logger}
}

// GetAll lists every allocation in the organization. The backend has no
// dedicated org-wide listing, so a missing or empty /allocations response
// falls back to the management summary, flattened into the same row shape a
// dedicated endpoint would produce. Downstream consumers stay
// endpoint-agnostic.
func (s *Service) GetAll(ctx context.Context) ([]allocationDatamodel.Allocation, error) {
	env, err := s.gw.Get(ctx, "/allocations")
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeNotFound {
			s.logger.Debug("no dedicated allocation listing, falling back to summary")
			return s.getAllFromSummary(ctx)
		}
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var wires []allocationWire
	if err := env.DecodeData(&wires); err != nil {
		return nil, err
	}
	if len(wires) == 0 {
		return s.getAllFromSummary(ctx)
	}

	allocations := make([]allocationDatamodel.Allocation, 0, len(wires))
	for _, w := range wires {
		allocations = append(allocations, w.toDomain())
	}
	return allocations, nil
}

// getAllFromSummary derives allocation rows from the nested
// Departments[].Categories[] rollup. Derived rows have no backend ID and
// default to the Monthly timeframe.
func (s *Service) getAllFromSummary(ctx context.Context) ([]allocationDatamodel.Allocation, error) {
	env, err := s.gw.Get(ctx, "/dashboard/management")
	if err != nil {
		s.logger.Error("summary fallback failed", "error", err)
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var summary summaryWire
	if err := env.DecodeData(&summary); err != nil {
		return nil, err
	}

	var allocations []allocationDatamodel.Allocation
	for _, dept := range summary.Departments {
		for _, cat := range dept.Categories {
			allocations = append(allocations, allocationDatamodel.Allocation{
				DepartmentID:   dept.DepartmentID,
				CategoryID:     cat.CategoryID,
				DepartmentName: dept.DepartmentName,
				CategoryName:   cat.CategoryName,
				Amount:         cat.Allocation,
				Spent:          cat.Spent,
				Timeframe:      "Monthly",
			})
		}
	}
	s.logger.Debug("flattened allocations from summary", "count", len(allocations))
	return allocations, nil
}

func (s *Service) GetByDepartment(ctx context.Context, departmentID int64) ([]allocationDatamodel.Allocation, error) {
	env, err := s.gw.Get(ctx, fmt.Sprintf("/allocations/department/%d", departmentID))
	if err != nil {
		s.logger.Error("failed to fetch department allocations", "department_id", departmentID, "error", err)
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var wires []allocationWire
	if err := env.DecodeData(&wires); err != nil {
		return nil, err
	}

	allocations := make([]allocationDatamodel.Allocation, 0, len(wires))
	for _, w := range wires {
		allocations = append(allocations, w.toDomain())
	}
	return allocations, nil
}

func (s *Service) Create(ctx context.Context, dto AllocationDTO) (*allocationDatamodel.Allocation, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	env, err := s.gw.Post(ctx, "/allocations", dto.toWire())
	if err != nil {
		s.logger.Error("failed to create allocation", "department_id", dto.DepartmentID, "error", err)
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var w allocationWire
	if err := env.DecodeData(&w); err != nil {
		return nil, err
	}
	a := w.toDomain()
	s.logger.Info("allocation created", "id", a.ID, "department_id", a.DepartmentID, "category_id", a.CategoryID)
	return &a, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto AllocationDTO) (*allocationDatamodel.Allocation, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	env, err := s.gw.Put(ctx, fmt.Sprintf("/allocations/%d", id), dto.toWire())
	if err != nil {
		s.logger.Error("failed to update allocation", "id", id, "error", err)
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var w allocationWire
	if err := env.DecodeData(&w); err != nil {
		return nil, err
	}
	a := w.toDomain()
	return &a, nil
}

// UpdateSpent records consumption against an allocation. Spending past the
// allocated amount is accepted; over-budget is a flagged state, not an error.
func (s *Service) UpdateSpent(ctx context.Context, id int64, newSpent float64) (*allocationDatamodel.Allocation, error) {
	if newSpent < 0 {
		return nil, internal.NewValidationFieldError("newSpent", "spent must be non-negative", internal.ErrCodeInvalidAmount)
	}

	env, err := s.gw.Patch(ctx, fmt.Sprintf("/allocations/%d/spent?newSpent=%g", id, newSpent), nil)
	if err != nil {
		s.logger.Error("failed to update spent", "id", id, "error", err)
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var w allocationWire
	if err := env.DecodeData(&w); err != nil {
		return nil, err
	}
	a := w.toDomain()
	if a.IsOverBudget() {
		s.logger.Warn("allocation over budget", "id", a.ID, "utilization", a.Utilization())
	}
	return &a, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	env, err := s.gw.Delete(ctx, fmt.Sprintf("/allocations/%d", id))
	if err != nil {
		s.logger.Error("failed to delete allocation", "id", id, "error", err)
		return err
	}
	if err := env.Err(); err != nil {
		return err
	}
	s.logger.Info("allocation deleted", "id", id)
	return nil
}
