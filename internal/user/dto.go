package user

import (
	"regexp"
	"strings"

	"github.com/frahmantamala/budget-allocation/internal"
	userDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/user"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type userWire struct {
	ID           int64  `json:"Id"`
	Name         string `json:"Name"`
	Email        string `json:"Email"`
	Role         int    `json:"Role"`
	DepartmentID *int64 `json:"DepartmentId"`
	IsActive     bool   `json:"IsActive"`
}

func (w userWire) toDomain() userDatamodel.User {
	return userDatamodel.User{
		ID:           w.ID,
		Name:         w.Name,
		Email:        w.Email,
		Role:         userDatamodel.Role(w.Role),
		DepartmentID: w.DepartmentID,
		IsActive:     w.IsActive,
	}
}

type departmentWire struct {
	ID   int64  `json:"Id"`
	Name string `json:"Name"`
}

// summaryDepartmentWire mirrors the management summary rollup used as a
// department directory fallback.
type summaryDepartmentWire struct {
	Departments []struct {
		DepartmentID    int64   `json:"DepartmentId"`
		DepartmentName  string  `json:"DepartmentName"`
		TotalAllocation float64 `json:"TotalAllocation"`
		TotalSpent      float64 `json:"TotalSpent"`
		Categories      []struct {
			CategoryID int64 `json:"CategoryId"`
		} `json:"Categories"`
	} `json:"Departments"`
}

type UserDTO struct {
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	Password     string             `json:"password,omitempty"`
	Role         userDatamodel.Role `json:"role"`
	DepartmentID *int64             `json:"departmentId,omitempty"`
	IsActive     bool               `json:"isActive"`
}

func (d UserDTO) Validate(requirePassword bool) error {
	if strings.TrimSpace(d.Name) == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeMissingField)
	}
	if !emailPattern.MatchString(d.Email) {
		return internal.NewValidationFieldError("email", "email is not valid", internal.ErrCodeInvalidEmail)
	}
	if requirePassword && d.Password == "" {
		return internal.NewValidationFieldError("password", "password is required", internal.ErrCodeMissingField)
	}
	if !d.Role.IsValid() {
		return internal.NewValidationFieldError("role", "role must be FinanceAdmin, DepartmentHead or Management", internal.ErrCodeValidationFailed)
	}
	return nil
}

type userPayload struct {
	Name         string `json:"Name"`
	Email        string `json:"Email"`
	Password     string `json:"Password,omitempty"`
	Role         int    `json:"Role"`
	DepartmentID *int64 `json:"DepartmentId,omitempty"`
	IsActive     bool   `json:"IsActive"`
}

func (d UserDTO) toWire() userPayload {
	return userPayload{
		Name:         d.Name,
		Email:        d.Email,
		Password:     d.Password,
		Role:         int(d.Role),
		DepartmentID: d.DepartmentID,
		IsActive:     d.IsActive,
	}
}

type changePasswordPayload struct {
	OldPassword string `json:"OldPassword"`
	NewPassword string `json:"NewPassword"`
}
