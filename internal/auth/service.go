package auth

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/budget-allocation/internal"
	"github.com/frahmantamala/budget-allocation/internal/api"
	userDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/user"
)

type Gateway interface {
	Post(ctx context.Context, path string, body any) (*api.Envelope, error)
}

// SessionWriter is the slice of the session store the auth service needs.
type SessionWriter interface {
	Save(token string, u userDatamodel.User) error
	Clear() error
}

type Service struct {
	gw       Gateway
	sessions SessionWriter
	logger   *slog.Logger
}

func NewService(gw Gateway, sessions SessionWriter, logger *slog.Logger) *Service {
	return &Service{
		gw:       gw,
		sessions: sessions,
		logger:   logger,
	}
}

// Login authenticates against the backend and persists the session on
// success. On any failure nothing is persisted and the store stays cleared.
func (s *Service) Login(ctx context.Context, dto LoginDTO) (*userDatamodel.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	env, err := s.gw.Post(ctx, "/auth/login", loginPayload{
		Email:    dto.Email,
		Password: dto.Password,
	})
	if err != nil {
		if internal.IsAuthenticationError(err) {
			s.logger.Warn("login rejected", "email", dto.Email)
			return nil, internal.ErrInvalidCredentials
		}
		s.logger.Error("login request failed", "email", dto.Email, "error", err)
		return nil, err
	}

	if !env.Success {
		s.logger.Warn("login unsuccessful", "email", dto.Email, "message", env.Message)
		if env.Message != "" {
			return nil, internal.NewAuthenticationError(env.Message, internal.ErrCodeInvalidCredentials)
		}
		return nil, internal.ErrInvalidCredentials
	}

	var result loginResult
	if err := env.DecodeData(&result); err != nil {
		return nil, err
	}
	if result.Token == "" {
		s.logger.Error("login response missing token", "email", dto.Email)
		return nil, internal.NewServerError("invalid response from server", 0)
	}

	u := userDatamodel.User{
		Name:         result.Name,
		Email:        dto.Email,
		Role:         userDatamodel.Role(result.Role),
		DepartmentID: result.DepartmentID,
		IsActive:     true,
	}

	if err := s.sessions.Save(result.Token, u); err != nil {
		s.logger.Error("failed to persist session", "error", err)
		return nil, internal.NewInternalError("failed to persist session", err)
	}

	s.logger.Info("login successful", "email", dto.Email, "role", u.Role.String())
	return &u, nil
}

// Logout clears persisted identity synchronously.
func (s *Service) Logout() error {
	return s.sessions.Clear()
}
