package category

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/budget-allocation/internal/api"
	categoryDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/category"
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

func (s *Service) GetAll(ctx context.Context) ([]categoryDatamodel.Category, error) {
	env, err := s.gw.Get(ctx, "/categories")
	if err != nil {
		s.logger.Error("failed to fetch categories", "error", err)
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var wires []categoryWire
	if err := env.DecodeData(&wires); err != nil {
		return nil, err
	}

	categories := make([]categoryDatamodel.Category, 0, len(wires))
	for _, w := range wires {
		categories = append(categories, w.toDomain())
	}
	s.logger.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*categoryDatamodel.Category, error) {
	env, err := s.gw.Get(ctx, fmt.Sprintf("/categories/%d", id))
	if err != nil {
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var w categoryWire
	if err := env.DecodeData(&w); err != nil {
		return nil, err
	}
	c := w.toDomain()
	return &c, nil
}

func (s *Service) Create(ctx context.Context, dto CategoryDTO) (*categoryDatamodel.Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	env, err := s.gw.Post(ctx, "/categories", dto.toWire(0))
	if err != nil {
		s.logger.Error("failed to create category", "name", dto.Name, "error", err)
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var w categoryWire
	if err := env.DecodeData(&w); err != nil {
		return nil, err
	}
	c := w.toDomain()
	s.logger.Info("category created", "id", c.ID, "name", c.Name)
	return &c, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto CategoryDTO) (*categoryDatamodel.Category, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	env, err := s.gw.Put(ctx, fmt.Sprintf("/categories/%d", id), dto.toWire(id))
	if err != nil {
		s.logger.Error("failed to update category", "id", id, "error", err)
		return nil, err
	}
	if err := env.Err(); err != nil {
		return nil, err
	}

	var w categoryWire
	if err := env.DecodeData(&w); err != nil {
		return nil, err
	}
	c := w.toDomain()
	s.logger.Info("category updated", "id", c.ID)
	return &c, nil
}

// Delete removes a category. Associated allocations are cascade-invalidated
// server-side; the returned message carries the backend's warning so the
// caller can surface it.
func (s *Service) Delete(ctx context.Context, id int64) (string, error) {
	env, err := s.gw.Delete(ctx, fmt.Sprintf("/categories/%d", id))
	if err != nil {
		s.logger.Error("failed to delete category", "id", id, "error", err)
		return "", err
	}
	if err := env.Err(); err != nil {
		return "", err
	}

	message := env.Message
	if message == "" {
		message = "Category deleted successfully"
	}
	s.logger.Info("category deleted", "id", id)
	return message, nil
}
