package todo

import (
	"context"
	"time"

	"github.com/louatizine/erp/internal/shared/contextutil"
	todoerrors "github.com/louatizine/erp/internal/todo/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// due dates arrive with or without a time component
var dueLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

//go:generate mockgen -source=todo_service.go -destination=mock/todo_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateTodoRequest) (Todo, error)
	List(ctx context.Context) ([]Todo, error)
	Update(ctx context.Context, id string, req UpdateTodoRequest) (Todo, error)
	Delete(ctx context.Context, id string) error
	DueSoon(ctx context.Context) ([]Todo, error)
	Overdue(ctx context.Context) ([]Todo, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("todo.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("todo.service")
	}
	return &service{
		repo:   repo,
		logger: l,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, req CreateTodoRequest) (Todo, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	due, ok := parseDue(req.Due)
	if !ok {
		return Todo{}, todoerrors.ErrInvalidDueDate
	}

	now := s.now()
	t := &Todo{
		Title:       req.Title,
		Description: req.Description,
		Due:         due,
		Status:      StatusPending,
		Owner:       req.Owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, t); err != nil {
		l.Error("persist todo failed", zap.Error(err))
		return Todo{}, err
	}
	return *t, nil
}

func (s *service) List(ctx context.Context) ([]Todo, error) {
	return s.repo.FindAll(ctx)
}

func (s *service) Update(ctx context.Context, id string, req UpdateTodoRequest) (Todo, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Todo{}, todoerrors.ErrInvalidTodoID
	}

	set := bson.M{"updated_at": s.now()}
	if req.Title != "" {
		set["title"] = req.Title
	}
	if req.Description != "" {
		set["description"] = req.Description
	}
	if req.Owner != "" {
		set["owner"] = req.Owner
	}
	if req.Due != "" {
		due, ok := parseDue(req.Due)
		if !ok {
			return Todo{}, todoerrors.ErrInvalidDueDate
		}
		set["due"] = due
	}
	if req.Status != "" {
		if req.Status != StatusPending && req.Status != StatusDone {
			return Todo{}, todoerrors.ErrInvalidStatus
		}
		set["status"] = req.Status
	}

	matched, err := s.repo.Update(ctx, oid, set)
	if err != nil {
		return Todo{}, err
	}
	if !matched {
		return Todo{}, todoerrors.ErrTodoNotFound
	}

	t, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return Todo{}, err
	}
	return *t, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return todoerrors.ErrInvalidTodoID
	}

	deleted, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return err
	}
	if !deleted {
		return todoerrors.ErrTodoNotFound
	}
	return nil
}

// DueSoon returns the pending todos due roughly a day from now. The
// window is [now+23h, now+25h] so a daily scan catches everything due
// tomorrow regardless of when exactly the scan fires.
func (s *service) DueSoon(ctx context.Context) ([]Todo, error) {
	now := s.now()
	return s.repo.FindDueBetween(ctx, now.Add(23*time.Hour), now.Add(25*time.Hour))
}

func (s *service) Overdue(ctx context.Context) ([]Todo, error) {
	return s.repo.FindOverdue(ctx, s.now())
}

func parseDue(raw string) (time.Time, bool) {
	for _, layout := range dueLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
