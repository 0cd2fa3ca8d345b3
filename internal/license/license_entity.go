package license

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusActive        = "active"
	StatusAboutToExpire = "about_to_expire"
	StatusExpired       = "expired"
)

// License carries its classification denormalized (status and
// days_until_expiry) so list queries and counts don't recompute it.
// The stored values drift as time passes; reads refresh them.
type License struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Key          string             `bson:"key"`
	PurchaseDate *time.Time         `bson:"purchase_date,omitempty"`
	ExpiryDate   time.Time          `bson:"expiry_date"`

	Status          string    `bson:"status"`
	DaysUntilExpiry int       `bson:"days_until_expiry"`
	LastUpdated     time.Time `bson:"last_updated"`

	CreatedAt time.Time `bson:"created_at"`
}
