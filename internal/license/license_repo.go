package license

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

//go:generate mockgen -source=license_repo.go -destination=mock/license_repo_mock.go -package=mock
type Repository interface {
	Insert(ctx context.Context, lic *License) error
	FindAll(ctx context.Context) ([]License, error)
	FindByStatuses(ctx context.Context, statuses []string) ([]License, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string, daysLeft int, at time.Time) error
	CountByStatus(ctx context.Context, status string) (int64, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type repository struct {
	col *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &repository{col: db.Collection("licenses")}
}

func (r *repository) Insert(ctx context.Context, lic *License) error {
	res, err := r.col.InsertOne(ctx, lic)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		lic.ID = oid
	}
	return nil
}

func (r *repository) FindAll(ctx context.Context) ([]License, error) {
	opts := options.Find().SetSort(bson.D{{Key: "expiry_date", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []License
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) FindByStatuses(ctx context.Context, statuses []string) ([]License, error) {
	opts := options.Find().SetSort(bson.D{{Key: "expiry_date", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"status": bson.M{"$in": statuses}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []License
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string, daysLeft int, at time.Time) error {
	_, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":            status,
		"days_until_expiry": daysLeft,
		"last_updated":      at,
	}})
	return err
}

func (r *repository) CountByStatus(ctx context.Context, status string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"status": status})
}

func (r *repository) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
