package leave

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request lifecycle. pending is the only state that allows a transition;
// approved, rejected and cancelled are terminal.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

const (
	TypePaid   = "paid"
	TypeUnpaid = "unpaid"
	TypeOther  = "other"
)

type LeaveRequest struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	EmployeeID primitive.ObjectID `bson:"employee_id"`

	StartDate time.Time `bson:"start_date"`
	EndDate   time.Time `bson:"end_date"`
	LeaveType string    `bson:"leave_type"`
	Reason    string    `bson:"reason,omitempty"`

	// LeaveDays is the inclusive span of the range, derived at submit
	// time and consumed by the balance aggregation.
	LeaveDays int `bson:"leave_days"`

	Status          string              `bson:"status"`
	ProcessedBy     *primitive.ObjectID `bson:"processed_by,omitempty"`
	RejectionReason *string             `bson:"rejection_reason,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func isValidLeaveType(t string) bool {
	switch t {
	case TypePaid, TypeUnpaid, TypeOther:
		return true
	}
	return false
}
