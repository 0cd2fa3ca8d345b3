package user

import (
	"context"
	"errors"
	"testing"
	"time"

	usererrors "github.com/louatizine/erp/internal/user/errors"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	insert         func(ctx context.Context, u *User) error
	findAll        func(ctx context.Context) ([]User, error)
	findByID       func(ctx context.Context, id primitive.ObjectID) (*User, error)
	findByEmail    func(ctx context.Context, email string) (*User, error)
	updateContract func(ctx context.Context, id primitive.ObjectID, contractType string, expiry *time.Time) (bool, error)
	delete         func(ctx context.Context, id primitive.ObjectID) (bool, error)
	adminEmails    func(ctx context.Context) ([]string, error)
}

func (f *fakeUserRepo) Insert(ctx context.Context, u *User) error {
	if f.insert != nil {
		return f.insert(ctx, u)
	}
	u.ID = primitive.NewObjectID()
	return nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]User, error) {
	if f.findAll != nil {
		return f.findAll(ctx)
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	if f.findByID != nil {
		return f.findByID(ctx, id)
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	if f.findByEmail != nil {
		return f.findByEmail(ctx, email)
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) UpdateContract(ctx context.Context, id primitive.ObjectID, contractType string, expiry *time.Time) (bool, error) {
	if f.updateContract != nil {
		return f.updateContract(ctx, id, contractType, expiry)
	}
	return true, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if f.delete != nil {
		return f.delete(ctx, id)
	}
	return true, nil
}

func (f *fakeUserRepo) AdminEmails(ctx context.Context) ([]string, error) {
	if f.adminEmails != nil {
		return f.adminEmails(ctx)
	}
	return nil, nil
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("success hashes the password and defaults the role", func(t *testing.T) {
		var inserted *User
		repo := &fakeUserRepo{
			insert: func(_ context.Context, u *User) error {
				u.ID = primitive.NewObjectID()
				inserted = u
				return nil
			},
		}
		svc := NewService(repo)

		resp, err := svc.Create(ctx, CreateUserRequest{
			Name:     "Sami Trabelsi",
			Email:    "sami@example.com",
			Password: "s3cret-pass",
			HireDate: "2024-01-15",
		})

		assert.NoError(t, err)
		assert.Equal(t, "sami@example.com", resp.Email)
		assert.Equal(t, []string{"employee"}, resp.Roles)
		assert.Equal(t, "2024-01-15", resp.HireDate)
		assert.True(t, resp.IsActive)
		assert.NotEqual(t, "s3cret-pass", inserted.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(inserted.Password), []byte("s3cret-pass")))
	})

	t.Run("negative duplicate email is rejected", func(t *testing.T) {
		repo := &fakeUserRepo{
			findByEmail: func(_ context.Context, _ string) (*User, error) {
				return &User{Email: "sami@example.com"}, nil
			},
		}
		svc := NewService(repo)

		_, err := svc.Create(ctx, CreateUserRequest{
			Name:     "Sami Trabelsi",
			Email:    "sami@example.com",
			Password: "s3cret-pass",
		})
		assert.ErrorIs(t, err, usererrors.ErrEmailTaken)
	})

	t.Run("negative malformed hire date is rejected", func(t *testing.T) {
		svc := NewService(&fakeUserRepo{})

		_, err := svc.Create(ctx, CreateUserRequest{
			Name:     "Sami Trabelsi",
			Email:    "sami@example.com",
			Password: "s3cret-pass",
			HireDate: "15/01/2024",
		})
		assert.ErrorIs(t, err, usererrors.ErrInvalidHireDate)
	})

	t.Run("negative email lookup failure is surfaced", func(t *testing.T) {
		boom := errors.New("connection reset")
		repo := &fakeUserRepo{
			findByEmail: func(_ context.Context, _ string) (*User, error) {
				return nil, boom
			},
		}
		svc := NewService(repo)

		_, err := svc.Create(ctx, CreateUserRequest{
			Name:     "Sami Trabelsi",
			Email:    "sami@example.com",
			Password: "s3cret-pass",
		})
		assert.ErrorIs(t, err, boom)
	})
}

func TestGetUserByID(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()

	t.Run("success maps entity fields", func(t *testing.T) {
		expiry := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
		repo := &fakeUserRepo{
			findByID: func(_ context.Context, got primitive.ObjectID) (*User, error) {
				assert.Equal(t, id, got)
				return &User{
					ID:             id,
					Name:           "Sami Trabelsi",
					Email:          "sami@example.com",
					Roles:          []string{"admin"},
					HireDate:       time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
					ContractType:   "CDD",
					ContractExpiry: &expiry,
					IsActive:       true,
					CreatedAt:      time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
				}, nil
			},
		}
		svc := NewService(repo)

		resp, err := svc.GetByID(ctx, id.Hex())
		assert.NoError(t, err)
		assert.Equal(t, id.Hex(), resp.ID)
		assert.Equal(t, "2024-01-15", resp.HireDate)
		assert.NotNil(t, resp.ContractExpiry)
		assert.Equal(t, "2026-06-30", *resp.ContractExpiry)
	})

	t.Run("negative malformed id", func(t *testing.T) {
		svc := NewService(&fakeUserRepo{})

		_, err := svc.GetByID(ctx, "not-a-hex-id")
		assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)
	})

	t.Run("negative unknown id", func(t *testing.T) {
		svc := NewService(&fakeUserRepo{})

		_, err := svc.GetByID(ctx, id.Hex())
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestUpdateContract(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()

	t.Run("success parses the expiry date", func(t *testing.T) {
		repo := &fakeUserRepo{
			updateContract: func(_ context.Context, _ primitive.ObjectID, contractType string, expiry *time.Time) (bool, error) {
				assert.Equal(t, "CDI", contractType)
				assert.NotNil(t, expiry)
				assert.Equal(t, time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC), *expiry)
				return true, nil
			},
		}
		svc := NewService(repo)

		err := svc.UpdateContract(ctx, id.Hex(), UpdateContractRequest{
			ContractType:   "CDI",
			ContractExpiry: "2027-03-01",
		})
		assert.NoError(t, err)
	})

	t.Run("negative malformed expiry date", func(t *testing.T) {
		svc := NewService(&fakeUserRepo{})

		err := svc.UpdateContract(ctx, id.Hex(), UpdateContractRequest{
			ContractType:   "CDI",
			ContractExpiry: "01/03/2027",
		})
		assert.ErrorIs(t, err, usererrors.ErrInvalidContractExpiry)
	})

	t.Run("negative unknown user", func(t *testing.T) {
		repo := &fakeUserRepo{
			updateContract: func(_ context.Context, _ primitive.ObjectID, _ string, _ *time.Time) (bool, error) {
				return false, nil
			},
		}
		svc := NewService(repo)

		err := svc.UpdateContract(ctx, id.Hex(), UpdateContractRequest{ContractType: "CDI"})
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc := NewService(&fakeUserRepo{})
		assert.NoError(t, svc.Delete(ctx, primitive.NewObjectID().Hex()))
	})

	t.Run("negative unknown id", func(t *testing.T) {
		repo := &fakeUserRepo{
			delete: func(_ context.Context, _ primitive.ObjectID) (bool, error) {
				return false, nil
			},
		}
		svc := NewService(repo)

		err := svc.Delete(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestEffectiveHireDate(t *testing.T) {
	created := time.Date(2023, 5, 2, 10, 0, 0, 0, time.UTC)
	hired := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	u := User{CreatedAt: created}
	assert.Equal(t, created, u.EffectiveHireDate())

	u.HireDate = hired
	assert.Equal(t, hired, u.EffectiveHireDate())
}
