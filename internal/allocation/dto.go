package allocation

import (
	"time"

	"github.com/frahmantamala/budget-allocation/internal"
	allocationDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/allocation"
)

type allocationWire struct {
	ID             int64   `json:"Id"`
	DepartmentID   int64   `json:"DepartmentId"`
	CategoryID     int64   `json:"CategoryId"`
	DepartmentName string  `json:"DepartmentName"`
	CategoryName   string  `json:"CategoryName"`
	Amount         float64 `json:"Amount"`
	Spent          float64 `json:"Spent"`
	Timeframe      string  `json:"Timeframe"`
	CreatedAt      string  `json:"CreatedAt"`
}

func (w allocationWire) toDomain() allocationDatamodel.Allocation {
	timeframe := w.Timeframe
	if timeframe == "" {
		timeframe = "Monthly"
	}
	createdAt, _ := time.Parse(time.RFC3339, w.CreatedAt)
	return allocationDatamodel.Allocation{
		ID:             w.ID,
		DepartmentID:   w.DepartmentID,
		CategoryID:     w.CategoryID,
		DepartmentName: w.DepartmentName,
		CategoryName:   w.CategoryName,
		Amount:         w.Amount,
		Spent:          w.Spent,
		Timeframe:      timeframe,
		CreatedAt:      createdAt,
	}
}

// summaryWire is the slice of the management summary payload this service
// flattens when no dedicated listing endpoint is available.
type summaryWire struct {
	Departments []struct {
		DepartmentID   int64  `json:"DepartmentId"`
		DepartmentName string `json:"DepartmentName"`
		Categories     []struct {
			CategoryID   int64   `json:"CategoryId"`
			CategoryName string  `json:"CategoryName"`
			Allocation   float64 `json:"Allocation"`
			Spent        float64 `json:"Spent"`
		} `json:"Categories"`
	} `json:"Departments"`
}

type AllocationDTO struct {
	DepartmentID int64   `json:"departmentId"`
	CategoryID   int64   `json:"categoryId"`
	Amount       float64 `json:"amount"`
	Timeframe    string  `json:"timeframe"`
}

func (d AllocationDTO) Validate() error {
	if d.DepartmentID <= 0 {
		return internal.NewValidationFieldError("departmentId", "department is required", internal.ErrCodeMissingField)
	}
	if d.CategoryID <= 0 {
		return internal.NewValidationFieldError("categoryId", "category is required", internal.ErrCodeMissingField)
	}
	if d.Amount < 0 {
		return internal.NewValidationFieldError("amount", "amount must be non-negative", internal.ErrCodeInvalidAmount)
	}
	return nil
}

type allocationPayload struct {
	DepartmentID int64   `json:"DepartmentId"`
	CategoryID   int64   `json:"CategoryId"`
	Amount       float64 `json:"Amount"`
	Timeframe    string  `json:"Timeframe"`
}

func (d AllocationDTO) toWire() allocationPayload {
	timeframe := d.Timeframe
	if timeframe == "" {
		timeframe = "Monthly"
	}
	return allocationPayload{
		DepartmentID: d.DepartmentID,
		CategoryID:   d.CategoryID,
		Amount:       d.Amount,
		Timeframe:    timeframe,
	}
}
