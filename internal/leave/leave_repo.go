package leave

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StatusUpdate carries the fields written alongside a status transition.
type StatusUpdate struct {
	ProcessedBy     *primitive.ObjectID
	RejectionReason *string
	At              time.Time
}

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	Insert(ctx context.Context, lr *LeaveRequest) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*LeaveRequest, error)
	FindByEmployee(ctx context.Context, employeeID primitive.ObjectID) ([]LeaveRequest, error)
	FindAll(ctx context.Context) ([]LeaveRequest, error)
	HasOverlap(ctx context.Context, employeeID primitive.ObjectID, start, end time.Time) (bool, error)
	TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to string, upd StatusUpdate) (bool, error)
	ApprovedDays(ctx context.Context, employeeID primitive.ObjectID, leaveType string) (int, error)
}

type repository struct {
	col *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &repository{col: db.Collection("leave_requests")}
}

func (r *repository) Insert(ctx context.Context, lr *LeaveRequest) error {
	res, err := r.col.InsertOne(ctx, lr)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		lr.ID = oid
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id primitive.ObjectID) (*LeaveRequest, error) {
	var lr LeaveRequest
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&lr)
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID primitive.ObjectID) ([]LeaveRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"employee_id": employeeID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []LeaveRequest
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []LeaveRequest
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// HasOverlap reports whether any pending or approved request for the
// employee intersects [start, end]. Two ranges intersect when each one
// starts on or before the other ends.
func (r *repository) HasOverlap(ctx context.Context, employeeID primitive.ObjectID, start, end time.Time) (bool, error) {
	filter := bson.M{
		"employee_id": employeeID,
		"status":      bson.M{"$in": []string{StatusPending, StatusApproved}},
		"start_date":  bson.M{"$lte": end},
		"end_date":    bson.M{"$gte": start},
	}
	n, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// TransitionStatus flips the status only when the document is still in
// the expected state. A false return with a nil error means another
// writer got there first (or the id does not exist).
func (r *repository) TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to string, upd StatusUpdate) (bool, error) {
	set := bson.M{
		"status":     to,
		"updated_at": upd.At,
	}
	if upd.ProcessedBy != nil {
		set["processed_by"] = *upd.ProcessedBy
	}
	if upd.RejectionReason != nil {
		set["rejection_reason"] = *upd.RejectionReason
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id, "status": from}, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *repository) ApprovedDays(ctx context.Context, employeeID primitive.ObjectID, leaveType string) (int, error) {
	match := bson.M{
		"employee_id": employeeID,
		"status":      StatusApproved,
	}
	if leaveType != "" {
		match["leave_type"] = leaveType
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$leave_days"},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Total int `bson:"total"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
