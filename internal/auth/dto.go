package auth

import (
	"regexp"
	"strings"

	"github.com/frahmantamala/budget-allocation/internal"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() error {
	if strings.TrimSpace(d.Email) == "" {
		return internal.NewValidationFieldError("email", "email is required", internal.ErrCodeMissingField)
	}
	if !emailPattern.MatchString(d.Email) {
		return internal.NewValidationFieldError("email", "email is not valid", internal.ErrCodeInvalidEmail)
	}
	if d.Password == "" {
		return internal.NewValidationFieldError("password", "password is required", internal.ErrCodeMissingField)
	}
	return nil
}

// loginPayload is the wire shape the backend DTO expects.
type loginPayload struct {
	Email    string `json:"Email"`
	Password string `json:"Password"`
}

// loginResult decodes the login Data payload. PascalCase tags also match
// camelCase keys via encoding/json's case-insensitive fallback.
type loginResult struct {
	Token        string `json:"Token"`
	Role         int    `json:"Role"`
	DepartmentID *int64 `json:"DepartmentId"`
	Name         string `json:"Name"`
}
