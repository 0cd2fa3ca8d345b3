package user

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	Insert(ctx context.Context, u *User) error
	FindAll(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	UpdateContract(ctx context.Context, id primitive.ObjectID, contractType string, expiry *time.Time) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
	AdminEmails(ctx context.Context) ([]string, error)
}

type repository struct {
	col *mongo.Collection
}

func NewRepository(db *mongo.Database) Repository {
	return &repository{col: db.Collection("users")}
}

func (r *repository) Insert(ctx context.Context, u *User) error {
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

func (r *repository) FindAll(ctx context.Context) ([]User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repository) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	var u User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) UpdateContract(ctx context.Context, id primitive.ObjectID, contractType string, expiry *time.Time) (bool, error) {
	set := bson.M{
		"contract_type": contractType,
		"updated_at":    time.Now().UTC(),
	}
	if expiry != nil {
		set["contract_expiry"] = *expiry
	}

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

func (r *repository) AdminEmails(ctx context.Context) ([]string, error) {
	cur, err := r.col.Find(ctx, bson.M{"roles": RoleAdmin})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var admins []User
	if err := cur.All(ctx, &admins); err != nil {
		return nil, err
	}

	emails := make([]string, 0, len(admins))
	for _, a := range admins {
		if a.Email != "" {
			emails = append(emails, a.Email)
		}
	}
	return emails, nil
}
