package vehicle

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

//go:generate mockgen -source=vehicle_repo.go -destination=mock/vehicle_repo_mock.go -package=mock
type Repository interface {
	Upsert(ctx context.Context, v *Vehicle) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Vehicle, error)
	FindPage(ctx context.Context, search string, page, limit int) ([]Vehicle, int64, error)
	FindAll(ctx context.Context) ([]Vehicle, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	IncrementVisit(ctx context.Context, id primitive.ObjectID, at time.Time) (bool, error)
}

type repository struct {
	col *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &repository{col: db.Collection("vehicles")}
}

func (r *repository) Upsert(ctx context.Context, v *Vehicle) error {
	opts := options.Update().SetUpsert(true)
	set := bson.M{
		"plate":      v.Plate,
		"owner":      v.Owner,
		"type":       v.Type,
		"notes":      v.Notes,
		"updated_at": v.UpdatedAt,
	}
	if v.Documents != nil {
		set["documents"] = v.Documents
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"plate": v.Plate},
		bson.M{
			"$set":         set,
			"$setOnInsert": bson.M{"created_at": v.CreatedAt, "visits": Visits{}},
		},
		opts,
	)
	if err != nil {
		return err
	}
	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		v.ID = oid
		return nil
	}

	// existing plate: fetch the id for the caller
	var existing Vehicle
	if err := r.col.FindOne(ctx, bson.M{"plate": v.Plate}).Decode(&existing); err != nil {
		return err
	}
	v.ID = existing.ID
	return nil
}

func (r *repository) FindByID(ctx context.Context, id primitive.ObjectID) (*Vehicle, error) {
	var v Vehicle
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

// FindPage lists vehicles with the document file references projected
// out; list views never need them and they bloat the payload.
func (r *repository) FindPage(ctx context.Context, search string, page, limit int) ([]Vehicle, int64, error) {
	filter := bson.M{}
	if search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter["$or"] = []bson.M{
			{"plate": re},
			{"owner": re},
		}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	projection := bson.M{}
	for _, d := range documentTypes {
		projection["documents."+d+".file_id"] = 0
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetProjection(projection)

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var out []Vehicle
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Vehicle, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Vehicle
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (bool, error) {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *repository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *repository) IncrementVisit(ctx context.Context, id primitive.ObjectID, at time.Time) (bool, error) {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"visits.count": 1},
		"$set": bson.M{"visits.last": at, "updated_at": at},
	})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
