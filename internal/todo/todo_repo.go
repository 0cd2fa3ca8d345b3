package todo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

//go:generate mockgen -source=todo_repo.go -destination=mock/todo_repo_mock.go -package=mock
type Repository interface {
	Insert(ctx context.Context, t *Todo) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Todo, error)
	FindAll(ctx context.Context) ([]Todo, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	FindDueBetween(ctx context.Context, from, to time.Time) ([]Todo, error)
	FindOverdue(ctx context.Context, now time.Time) ([]Todo, error)
}

type repository struct {
	col *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &repository{col: db.Collection("todos")}
}

func (r *repository) Insert(ctx context.Context, t *Todo) error {
	res, err := r.col.InsertOne(ctx, t)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		t.ID = oid
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id primitive.ObjectID) (*Todo, error) {
	var t Todo
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Todo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "due", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Todo
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

func (r *repository) FindDueBetween(ctx context.Context, from, to time.Time) ([]Todo, error) {
	cur, err := r.col.Find(ctx, bson.M{
		"status": StatusPending,
		"due":    bson.M{"$gte": from, "$lte": to},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Todo
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) FindOverdue(ctx context.Context, now time.Time) ([]Todo, error) {
	cur, err := r.col.Find(ctx, bson.M{
		"status": StatusPending,
		"due":    bson.M{"$lt": now},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Todo
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
