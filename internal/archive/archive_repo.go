package archive

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

//go:generate mockgen -source=archive_repo.go -destination=mock/archive_repo_mock.go -package=mock
type Repository interface {
	Insert(ctx context.Context, d *Document) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Document, error)
	FindByStatus(ctx context.Context, status string) ([]Document, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type repository struct {
	col *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &repository{col: db.Collection("archived_documents")}
}

func (r *repository) Insert(ctx context.Context, d *Document) error {
	res, err := r.col.InsertOne(ctx, d)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		d.ID = oid
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id primitive.ObjectID) (*Document, error) {
	var d Document
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repository) FindByStatus(ctx context.Context, status string) ([]Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "archived_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"status": status}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Document
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) SetStatus(ctx context.Context, id primitive.ObjectID, status string) (bool, error) {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
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
