package notification

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types recorded in the audit trail.
const (
	TypeLeaveRequest  = "leave_request"
	TypeLeaveDecision = "leave_decision"
	TypeLicenseExpiry = "license_expiry"
	TypeVehicleExpiry = "vehicle_expiry"
	TypeTodoReminder  = "todo_reminder"
	TypeInvoice       = "invoice_reminder"
)

// Notification is an audit record of an alert the system raised. It is
// not a delivery queue: whether the matching email actually went out is
// a dispatcher concern.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type      string             `bson:"type" json:"type"`
	EntityID  string             `bson:"entity_id,omitempty" json:"entity_id,omitempty"`
	Message   string             `bson:"message" json:"message"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
