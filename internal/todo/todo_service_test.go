package todo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeTodoRepo struct {
	todos []Todo
}

func (f *fakeTodoRepo) Insert(ctx context.Context, t *Todo) error {
	t.ID = primitive.NewObjectID()
	f.todos = append(f.todos, *t)
	return nil
}

func (f *fakeTodoRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*Todo, error) {
	for _, t := range f.todos {
		if t.ID == id {
			out := t
			return &out, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeTodoRepo) FindAll(ctx context.Context) ([]Todo, error) {
	return f.todos, nil
}

func (f *fakeTodoRepo) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (bool, error) {
	for i := range f.todos {
		if f.todos[i].ID == id {
			if status, ok := set["status"].(string); ok {
				f.todos[i].Status = status
			}
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTodoRepo) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	for i := range f.todos {
		if f.todos[i].ID == id {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTodoRepo) FindDueBetween(ctx context.Context, from, to time.Time) ([]Todo, error) {
	var out []Todo
	for _, t := range f.todos {
		if t.Status != StatusPending {
			continue
		}
		if !t.Due.Before(from) && !t.Due.After(to) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTodoRepo) FindOverdue(ctx context.Context, now time.Time) ([]Todo, error) {
	var out []Todo
	for _, t := range f.todos {
		if t.Status == StatusPending && t.Due.Before(now) {
			out = append(out, t)
		}
	}
	return out, nil
}

func todoServiceAt(repo Repository, now time.Time) Service {
	svc := NewService(repo)
	svc.(*service).now = func() time.Time { return now }
	return svc
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("accepts date-only due", func(t *testing.T) {
		svc := todoServiceAt(&fakeTodoRepo{}, now)

		out, err := svc.Create(ctx, CreateTodoRequest{Title: "renew badge", Due: "2025-05-10"})
		assert.NoError(t, err)
		assert.Equal(t, StatusPending, out.Status)
		assert.Equal(t, time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC), out.Due)
	})

	t.Run("accepts minute precision due", func(t *testing.T) {
		svc := todoServiceAt(&fakeTodoRepo{}, now)

		out, err := svc.Create(ctx, CreateTodoRequest{Title: "call vendor", Due: "2025-05-10T14:30"})
		assert.NoError(t, err)
		assert.Equal(t, time.Date(2025, 5, 10, 14, 30, 0, 0, time.UTC), out.Due)
	})

	t.Run("negative garbage due", func(t *testing.T) {
		svc := todoServiceAt(&fakeTodoRepo{}, now)

		_, err := svc.Create(ctx, CreateTodoRequest{Title: "x", Due: "soonish"})
		assert.ErrorContains(t, err, "due date")
	})
}

// A daily scan must catch anything due in about a day: the window is
// two hours wide around now+24h.
func TestDueSoonWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	repo := &fakeTodoRepo{todos: []Todo{
		{ID: primitive.NewObjectID(), Title: "in 24h", Status: StatusPending, Due: now.Add(24 * time.Hour)},
		{ID: primitive.NewObjectID(), Title: "in 26h", Status: StatusPending, Due: now.Add(26 * time.Hour)},
		{ID: primitive.NewObjectID(), Title: "in 22h", Status: StatusPending, Due: now.Add(22 * time.Hour)},
		{ID: primitive.NewObjectID(), Title: "done in 24h", Status: StatusDone, Due: now.Add(24 * time.Hour)},
	}}
	svc := todoServiceAt(repo, now)

	out, err := svc.DueSoon(ctx)
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "in 24h", out[0].Title)
}

func TestOverdue(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	repo := &fakeTodoRepo{todos: []Todo{
		{ID: primitive.NewObjectID(), Title: "late", Status: StatusPending, Due: now.Add(-time.Hour)},
		{ID: primitive.NewObjectID(), Title: "future", Status: StatusPending, Due: now.Add(time.Hour)},
		{ID: primitive.NewObjectID(), Title: "late but done", Status: StatusDone, Due: now.Add(-time.Hour)},
	}}
	svc := todoServiceAt(repo, now)

	out, err := svc.Overdue(ctx)
	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "late", out[0].Title)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	id := primitive.NewObjectID()

	repo := &fakeTodoRepo{todos: []Todo{{ID: id, Title: "x", Status: StatusPending, Due: now}}}
	svc := todoServiceAt(repo, now)

	t.Run("marks done", func(t *testing.T) {
		out, err := svc.Update(ctx, id.Hex(), UpdateTodoRequest{Status: StatusDone})
		assert.NoError(t, err)
		assert.Equal(t, StatusDone, out.Status)
	})

	t.Run("negative bogus status", func(t *testing.T) {
		_, err := svc.Update(ctx, id.Hex(), UpdateTodoRequest{Status: "later"})
		assert.ErrorContains(t, err, "status")
	})

	t.Run("negative unknown id", func(t *testing.T) {
		_, err := svc.Update(ctx, primitive.NewObjectID().Hex(), UpdateTodoRequest{Status: StatusDone})
		assert.ErrorContains(t, err, "not found")
	})
}
