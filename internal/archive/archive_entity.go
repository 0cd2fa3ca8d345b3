package archive

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	StatusArchived = "archived"
	StatusActive   = "active"
)

// Document is the archive record for a stored file. FileID is an opaque
// reference into the blob store, which lives outside this system; only
// the metadata is kept here.
type Document struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title            string             `bson:"title" json:"title"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	FileID           string             `bson:"file_id" json:"file_id"`
	OriginalFilename string             `bson:"original_filename,omitempty" json:"original_filename,omitempty"`
	ContentType      string             `bson:"content_type,omitempty" json:"content_type,omitempty"`
	Status           string             `bson:"status" json:"status"`
	RetentionUntil   *time.Time         `bson:"retention_until,omitempty" json:"retention_until,omitempty"`
	ArchivedAt       time.Time          `bson:"archived_at" json:"archived_at"`
	ArchivedBy       string             `bson:"archived_by,omitempty" json:"archived_by,omitempty"`
	Tags             []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Department       string             `bson:"department,omitempty" json:"department,omitempty"`
}
