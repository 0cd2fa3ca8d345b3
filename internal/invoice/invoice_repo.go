package invoice

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

//go:generate mockgen -source=invoice_repo.go -destination=mock/invoice_repo_mock.go -package=mock
type Repository interface {
	Insert(ctx context.Context, inv *Invoice) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Invoice, error)
	Search(ctx context.Context, search, status string) ([]Invoice, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string, paymentDate *time.Time, at time.Time) (bool, error)
}

type repository struct {
	col *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &repository{col: db.Collection("invoices")}
}

func (r *repository) Insert(ctx context.Context, inv *Invoice) error {
	res, err := r.col.InsertOne(ctx, inv)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		inv.ID = oid
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, id primitive.ObjectID) (*Invoice, error) {
	var inv Invoice
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *repository) Search(ctx context.Context, search, status string) ([]Invoice, error) {
	filter := bson.M{}
	if search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter["$or"] = []bson.M{
			{"number": re},
			{"client_email": re},
		}
	}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "invoice_date", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Invoice
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) SetStatus(ctx context.Context, id primitive.ObjectID, status string, paymentDate *time.Time, at time.Time) (bool, error) {
	set := bson.M{"status": status, "updated_at": at}
	update := bson.M{"$set": set}
	if paymentDate != nil {
		set["payment_date"] = *paymentDate
	} else {
		update["$unset"] = bson.M{"payment_date": ""}
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
