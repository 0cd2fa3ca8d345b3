package invoice

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

type Invoice struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Number      string             `bson:"number" json:"number"`
	ClientEmail string             `bson:"client_email" json:"client_email"`
	Telephone   string             `bson:"telephone,omitempty" json:"telephone,omitempty"`
	TotalAmount float64            `bson:"total_amount" json:"total_amount"`
	InvoiceDate time.Time          `bson:"invoice_date" json:"invoice_date"`
	Status      string             `bson:"status" json:"status"`
	PaymentDate *time.Time         `bson:"payment_date,omitempty" json:"payment_date,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
