package leave

import "time"

type SubmitLeaveRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	StartDate  string `json:"start_date" binding:"required"`
	EndDate    string `json:"end_date" binding:"required"`
	LeaveType  string `json:"leave_type" binding:"required"`
	Reason     string `json:"reason"`
}

type RejectLeaveRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type LeaveResponse struct {
	ID              string    `json:"id"`
	EmployeeID      string    `json:"employee_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	LeaveType       string    `json:"leave_type"`
	Reason          string    `json:"reason,omitempty"`
	LeaveDays       int       `json:"leave_days"`
	Status          string    `json:"status"`
	ProcessedBy     string    `json:"processed_by,omitempty"`
	RejectionReason string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type BalanceResponse struct {
	EmployeeID   string  `json:"employee_id"`
	MonthsWorked int     `json:"months_worked"`
	AccruedDays  float64 `json:"accrued_days"`
	ConsumedDays int     `json:"consumed_days"`
	LeaveBalance float64 `json:"leave_balance"`
}
