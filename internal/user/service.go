package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/budget-allocation/internal"
	"github.com/frahmantamala/budget-allocation/internal/api"
	userDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/user"
)

type Gateway interface {
	Get(ctx context.Context, path string) (*api.Envelope, error)
	Post(ctx context.Context, path string, body any) (*api.Envelope, error)
	Put(ctx context.Context, path string, body any) (*api.Envelope, error)
	Delete(ctx context.Context, path string) (*api.Envelope, error)
}

type Service struct {
	gw     Gateway
	logger *slog.Logger
}

func NewService(gw Gateway, logger *slog.Logger) *Service {
	return &Service{gw: gw, logger: logger}
}

func (s *Service) GetAll(ctx context.Context) ([]userDatamodel.User, error) {
	env, err := s.gw.Get(ctx, "/users")
	if err != nil {
		s.logger.Error("failed to fetch users", "error", err)
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var wires []userWire
	if err := env.DecodeData(&wires); err != nil {
		return nil, err
	}

	users := make([]userDatamodel.User, 0, len(wires))
	for _, w := range wires {
		users = append(users, w.toDomain())
	}
	return users, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*userDatamodel.User, error) {
	env, err := s.gw.Get(ctx, fmt.Sprintf("/users/%d", id))
	if err != nil {
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var w userWire
	if err := env.DecodeData(&w); err != nil {
		return nil, err
	}
	u := w.toDomain()
	return &u, nil
}

func (s *Service) Create(ctx context.Context, dto UserDTO) (*userDatamodel.User, error) {
	if err := dto.Validate(true); err != nil {
		return nil, err
	}
	if dto.Role == userDatamodel.RoleDepartmentHead && dto.DepartmentID == nil {
		s.logger.Warn("creating department head without department", "email", dto.Email)
	}

	env, err := s.gw.Post(ctx, "/users", dto.toWire())
	if err != nil {
		s.logger.Error("failed to create user", "email", dto.Email, "error", err)
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var w userWire
	if err := env.DecodeData(&w); err != nil {
		return nil, err
	}
	u := w.toDomain()
	s.logger.Info("user created", "id", u.ID, "role", u.Role.String())
	return &u, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto UserDTO) (*userDatamodel.User, error) {
	if err := dto.Validate(false); err != nil {
		return nil, err
	}

	env, err := s.gw.Put(ctx, fmt.Sprintf("/users/%d", id), dto.toWire())
	if err != nil {
		s.logger.Error("failed to update user", "id", id, "error", err)
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var w userWire
	if err := env.DecodeData(&w); err != nil {
		return nil, err
	}
	u := w.toDomain()
	return &u, nil
}

// Delete removes a user. Deleting the currently authenticated account is
// rejected client-side; cascade behavior for the deleted user's requests and
// allocations is the backend's responsibility.
func (s *Service) Delete(ctx context.Context, id, currentUserID int64) error {
	if id == currentUserID {
		return internal.ErrCannotDeleteSelf
	}

	env, err := s.gw.Delete(ctx, fmt.Sprintf("/users/%d", id))
	if err != nil {
		s.logger.Error("failed to delete user", "id", id, "error", err)
		return err
	}
	if err := env.Err(); err != nil {
		return err
	}
	s.logger.Info("user deleted", "id", id)
	return nil
}

func (s *Service) ToggleStatus(ctx context.Context, id int64) (*userDatamodel.User, error) {
	env, err := s.gw.Post(ctx, fmt.Sprintf("/users/%d/toggle-status", id), nil)
	if err != nil {
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var w userWire
	if err := env.DecodeData(&w); err != nil {
		return nil, err
	}
	u := w.toDomain()
	return &u, nil
}

func (s *Service) ChangePassword(ctx context.Context, id int64, oldPassword, newPassword string) error {
	if newPassword == "" {
		return internal.NewValidationFieldError("newPassword", "new password is required", internal.ErrCodeMissingField)
	}

	env, err := s.gw.Post(ctx, fmt.Sprintf("/users/%d/change-password", id), changePasswordPayload{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	})
	if err != nil {
		return err
	}
	return env.Err()
}

// Departments returns the department directory. The dedicated endpoint is
// preferred; when it yields nothing the directory is derived from the
// management summary rollup so dropdowns still populate.
func (s *Service) Departments(ctx context.Context) ([]userDatamodel.Department, error) {
	env, err := s.gw.Get(ctx, "/departments")
	if err == nil && env.Err() == nil {
		var wires []departmentWire
		if decodeErr := env.DecodeData(&wires); decodeErr == nil && len(wires) > 0 {
			departments := make([]userDatamodel.Department, 0, len(wires))
			for _, w := range wires {
				departments = append(departments, userDatamodel.Department{ID: w.ID, Name: w.Name})
			}
			return departments, nil
		}
	}

	s.logger.Debug("department endpoint empty, deriving from summary")
	return s.departmentsFromSummary(ctx)
}

func (s *Service) departmentsFromSummary(ctx context.Context) ([]userDatamodel.Department, error) {
	env, err := s.gw.Get(ctx, "/dashboard/management")
	if err != nil {
		s.logger.Error("department fallback failed", "error", err)
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var summary summaryDepartmentWire
	if err := env.DecodeData(&summary); err != nil {
		return nil, err
	}

	departments := make([]userDatamodel.Department, 0, len(summary.Departments))
	for _, dept := range summary.Departments {
		departments = append(departments, userDatamodel.Department{
			ID:              dept.DepartmentID,
			Name:            dept.DepartmentName,
			TotalAllocation: dept.TotalAllocation,
			TotalSpent:      dept.TotalSpent,
			CategoriesCount: len(dept.Categories),
		})
	}
	return departments, nil
}
