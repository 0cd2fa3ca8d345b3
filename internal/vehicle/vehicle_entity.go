package vehicle

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document slots tracked per vehicle. The keys of the Documents map are
// limited to these.
const (
	DocInsurance      = "insurance"
	DocVignette       = "vignette"
	DocRoadworthiness = "roadworthiness"
)

var documentTypes = []string{DocInsurance, DocVignette, DocRoadworthiness}

func isValidDocumentType(t string) bool {
	for _, d := range documentTypes {
		if d == t {
			return true
		}
	}
	return false
}

// DocumentInfo holds the clerk-entered expiry text and a reference to
// the uploaded scan. Expiry stays a string on purpose: the data arrives
// in several formats and is parsed only when a scan needs it.
type DocumentInfo struct {
	Expiry string `bson:"expiry,omitempty" json:"expiry,omitempty"`
	FileID string `bson:"file_id,omitempty" json:"file_id,omitempty"`
}

type Visits struct {
	Count int        `bson:"count" json:"count"`
	Last  *time.Time `bson:"last,omitempty" json:"last,omitempty"`
}

type Vehicle struct {
	ID        primitive.ObjectID      `bson:"_id,omitempty" json:"id"`
	Plate     string                  `bson:"plate" json:"plate"`
	Owner     string                  `bson:"owner,omitempty" json:"owner,omitempty"`
	Type      string                  `bson:"type,omitempty" json:"type,omitempty"`
	Documents map[string]DocumentInfo `bson:"documents,omitempty" json:"documents,omitempty"`
	Visits    Visits                  `bson:"visits" json:"visits"`
	Notes     string                  `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time               `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time               `bson:"updated_at" json:"updated_at"`
}
