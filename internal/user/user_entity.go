package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const RoleAdmin = "admin"

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Email    string             `bson:"email"`
	Password string             `bson:"password"`
	Roles    []string           `bson:"roles"`

	// HireDate drives leave accrual; CreatedAt stands in for legacy
	// records that predate the field.
	HireDate       time.Time  `bson:"hire_date,omitempty"`
	ContractType   string     `bson:"contract_type,omitempty"`
	ContractExpiry *time.Time `bson:"contract_expiry,omitempty"`

	IsActive  bool      `bson:"is_active"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// IsAdmin reports whether the admin role is present.
func (u User) IsAdmin() bool {
	for _, r := range u.Roles {
		if r == RoleAdmin {
			return true
		}
	}
	return false
}

// EffectiveHireDate returns the accrual anchor: the hire date when set,
// otherwise the record's creation time.
func (u User) EffectiveHireDate() time.Time {
	if !u.HireDate.IsZero() {
		return u.HireDate
	}
	return u.CreatedAt
}
