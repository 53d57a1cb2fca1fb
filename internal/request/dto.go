package request

import (
	"strings"
	"time"

	"github.com/frahmantamala/budget-allocation/internal"
	requestDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/request"
)

type requestWire struct {
	ID             int64   `json:"Id"`
	DepartmentID   int64   `json:"DepartmentId"`
	CategoryID     int64   `json:"CategoryId"`
	DepartmentName string  `json:"DepartmentName"`
	CategoryName   string  `json:"CategoryName"`
	Amount         float64 `json:"Amount"`
	Reason         string  `json:"Reason"`
	Status         int     `json:"Status"`
	CreatedAt      string  `json:"CreatedAt"`
	ReviewedAt     *string `json:"ReviewedAt"`
	ReviewerNote   string  `json:"ReviewerNote"`
}

func (w requestWire) toDomain() requestDatamodel.Request {
	createdAt, _ := time.Parse(time.RFC3339, w.CreatedAt)
	var reviewedAt *time.Time
	if w.ReviewedAt != nil {
		if t, err := time.Parse(time.RFC3339, *w.ReviewedAt); err == nil {
			reviewedAt = &t
		}
	}
	return requestDatamodel.Request{
		ID:             w.ID,
		DepartmentID:   w.DepartmentID,
		CategoryID:     w.CategoryID,
		DepartmentName: w.DepartmentName,
		CategoryName:   w.CategoryName,
		Amount:         w.Amount,
		Reason:         w.Reason,
		Status:         requestDatamodel.Status(w.Status),
		CreatedAt:      createdAt,
		ReviewedAt:     reviewedAt,
		ReviewerNote:   w.ReviewerNote,
	}
}

type CreateRequestDTO struct {
	DepartmentID int64   `json:"departmentId"`
	CategoryID   int64   `json:"categoryId"`
	Amount       float64 `json:"amount"`
	Reason       string  `json:"reason"`
}

func (d CreateRequestDTO) Validate() error {
	if d.DepartmentID <= 0 {
		return internal.NewValidationFieldError("departmentId", "department is required", internal.ErrCodeMissingField)
	}
	if d.CategoryID <= 0 {
		return internal.NewValidationFieldError("categoryId", "category is required", internal.ErrCodeMissingField)
	}
	if d.Amount <= 0 {
		return internal.NewValidationFieldError("amount", "amount must be positive", internal.ErrCodeInvalidAmount)
	}
	if strings.TrimSpace(d.Reason) == "" {
		return internal.NewValidationFieldError("reason", "reason is required", internal.ErrCodeMissingField)
	}
	return nil
}

type createRequestPayload struct {
	DepartmentID int64   `json:"DepartmentId"`
	CategoryID   int64   `json:"CategoryId"`
	Amount       float64 `json:"Amount"`
	Reason       string  `json:"Reason"`
}

type ReviewDTO struct {
	RequestID    int64  `json:"requestId"`
	Approve      bool   `json:"approve"`
	ReviewerNote string `json:"reviewerNote"`
}

func (d ReviewDTO) Validate() error {
	if d.RequestID <= 0 {
		return internal.NewValidationFieldError("requestId", "request id is required", internal.ErrCodeMissingField)
	}
	return nil
}

type reviewPayload struct {
	RequestID    int64  `json:"RequestId"`
	Approve      bool   `json:"Approve"`
	ReviewerNote string `json:"ReviewerNote"`
}

// Statistics summarizes request volumes, optionally scoped to a department.
type Statistics struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

type statisticsWire struct {
	Total    int `json:"Total"`
	Pending  int `json:"Pending"`
	Approved int `json:"Approved"`
	Rejected int `json:"Rejected"`
}
