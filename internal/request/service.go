package request

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/frahmantamala/budget-allocation/internal/api"
	requestDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/request"
)

type Gateway interface {
	Get(ctx context.Context, path string) (*api.Envelope, error)
	Post(ctx context.Context, path string, body any) (*api.Envelope, error)
}

type Service struct {
	gw     Gateway
	logger *slog.Logger
}

func NewService(gw Gateway, logger *slog.Logger) *Service {
	return &Service{gw: gw, logger: logger}
}

func (s *Service) GetPending(ctx context.Context) ([]requestDatamodel.Request, error) {
	return s.list(ctx, "/requests/pending")
}

func (s *Service) GetByDepartment(ctx context.Context, departmentID int64) ([]requestDatamodel.Request, error) {
	return s.list(ctx, fmt.Sprintf("/requests/department/%d", departmentID))
}

func (s *Service) list(ctx context.Context, path string) ([]requestDatamodel.Request, error) {
	env, err := s.gw.Get(ctx, path)
	if err != nil {
		s.logger.Error("failed to fetch requests", "path", path, "error", err)
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var wires []requestWire
	if err := env.DecodeData(&wires); err != nil {
		return nil, err
	}

	requests := make([]requestDatamodel.Request, 0, len(wires))
	for _, w := range wires {
		requests = append(requests, w.toDomain())
	}
	return requests, nil
}

func (s *Service) Create(ctx context.Context, dto CreateRequestDTO) (*requestDatamodel.Request, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	env, err := s.gw.Post(ctx, "/requests", createRequestPayload{
		DepartmentID: dto.DepartmentID,
		CategoryID:   dto.CategoryID,
		Amount:       dto.Amount,
		Reason:       strings.TrimSpace(dto.Reason),
	})
	if err != nil {
		s.logger.Error("failed to create request", "department_id", dto.DepartmentID, "error", err)
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var w requestWire
	if err := env.DecodeData(&w); err != nil {
		return nil, err
	}
	r := w.toDomain()
	s.logger.Info("request created", "id", r.ID, "department_id", r.DepartmentID, "amount", r.Amount)
	return &r, nil
}

// Review approves or rejects a pending request. The backend owns the state
// machine; on failure (for example a request already in a terminal state) the
// error is surfaced and no local status is flipped.
func (s *Service) Review(ctx context.Context, dto ReviewDTO) (*requestDatamodel.Request, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	env, err := s.gw.Post(ctx, "/requests/review", reviewPayload{
		RequestID:    dto.RequestID,
		Approve:      dto.Approve,
		ReviewerNote: strings.TrimSpace(dto.ReviewerNote),
	})
	if err != nil {
		s.logger.Error("review failed", "request_id", dto.RequestID, "error", err)
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var w requestWire
	if err := env.DecodeData(&w); err != nil {
		return nil, err
	}
	r := w.toDomain()
	s.logger.Info("request reviewed", "id", r.ID, "status", r.Status.String())
	return &r, nil
}

func (s *Service) GetStatistics(ctx context.Context, departmentID *int64) (*Statistics, error) {
	path := "/requests/statistics"
	if departmentID != nil {
		path = fmt.Sprintf("/requests/statistics?departmentId=%d", *departmentID)
	}

	env, err := s.gw.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var w statisticsWire
	if err := env.DecodeData(&w); err != nil {
		return nil, err
	}
	return &Statistics{
		Total:    w.Total,
		Pending:  w.Pending,
		Approved: w.Approved,
		Rejected: w.Rejected,
	}, nil
}
