package request

import "time"

// Status of a budget adjustment request. Pending transitions exactly once to
// Approved or Rejected; both are terminal.
type Status int

const (
	StatusPending  Status = 0
	StatusApproved Status = 1
	StatusRejected Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransitionTo mirrors the backend's state machine for display purposes;
// the backend remains the authority.
func (s Status) CanTransitionTo(next Status) bool {
	if s != StatusPending {
		return false
	}
	return next == StatusApproved || next == StatusRejected
}

// Request is a department's ask to increase its allocation in a category. The
// department is fixed at creation.
type Request struct {
	ID             int64      `json:"id"`
	DepartmentID   int64      `json:"departmentId"`
	CategoryID     int64      `json:"categoryId"`
	DepartmentName string     `json:"departmentName,omitempty"`
	CategoryName   string     `json:"categoryName,omitempty"`
	Amount         float64    `json:"amount"`
	Reason         string     `json:"reason"`
	Status         Status     `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
	ReviewedAt     *time.Time `json:"reviewedAt,omitempty"`
	ReviewerNote   string     `json:"reviewerNote,omitempty"`
}
