package user

import (
	"context"
	"errors"
	"time"

	"github.com/louatizine/erp/internal/shared/contextutil"
	usererrors "github.com/louatizine/erp/internal/user/errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	UpdateContract(ctx context.Context, id string, req UpdateContractRequest) error
	Delete(ctx context.Context, id string) error
	AdminEmails(ctx context.Context) ([]string, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l, now: func() time.Time { return time.Now().UTC() }}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)
	l.Info("creating user", zap.String("email", req.Email))

	if existing, err := s.repo.FindByEmail(ctx, req.Email); err == nil && existing != nil {
		return UserResponse{}, usererrors.ErrEmailTaken
	} else if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		l.Error("hash password failed", zap.Error(err))
		return UserResponse{}, err
	}

	now := s.now()
	u := &User{
		Name:         req.Name,
		Email:        req.Email,
		Password:     string(hashed),
		Roles:        req.Roles,
		ContractType: req.ContractType,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if len(u.Roles) == 0 {
		u.Roles = []string{"employee"}
	}
	if req.HireDate != "" {
		hire, err := time.Parse("2006-01-02", req.HireDate)
		if err != nil {
			return UserResponse{}, usererrors.ErrInvalidHireDate
		}
		u.HireDate = hire
	}

	if err := s.repo.Insert(ctx, u); err != nil {
		l.Error("create user persist failed", zap.Error(err))
		return UserResponse{}, err
	}

	l.Info("user created", zap.String("user_id", u.ID.Hex()))
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func (s *service) UpdateContract(ctx context.Context, id string, req UpdateContractRequest) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}

	var expiry *time.Time
	if req.ContractExpiry != "" {
		t, err := time.Parse("2006-01-02", req.ContractExpiry)
		if err != nil {
			return usererrors.ErrInvalidContractExpiry
		}
		expiry = &t
	}

	matched, err := s.repo.UpdateContract(ctx, oid, req.ContractType, expiry)
	if err != nil {
		return err
	}
	if !matched {
		return usererrors.ErrUserNotFound
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}

	deleted, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return err
	}
	if !deleted {
		return usererrors.ErrUserNotFound
	}
	return nil
}

func (s *service) AdminEmails(ctx context.Context) ([]string, error) {
	return s.repo.AdminEmails(ctx)
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:           u.ID.Hex(),
		Name:         u.Name,
		Email:        u.Email,
		Roles:        u.Roles,
		ContractType: u.ContractType,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt.Format(time.RFC3339),
	}
	if !u.HireDate.IsZero() {
		resp.HireDate = u.HireDate.Format("2006-01-02")
	}
	if u.ContractExpiry != nil {
		v := u.ContractExpiry.Format("2006-01-02")
		resp.ContractExpiry = &v
	}
	return resp
}
