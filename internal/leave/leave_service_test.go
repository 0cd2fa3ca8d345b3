package leave

import (
	"context"
	"testing"
	"time"

	"github.com/louatizine/erp/internal/notification"
	"github.com/louatizine/erp/internal/user"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeLeaveRepo struct {
	insertFn       func(ctx context.Context, lr *LeaveRequest) error
	findByIDFn     func(ctx context.Context, id primitive.ObjectID) (*LeaveRequest, error)
	hasOverlapFn   func(ctx context.Context, employeeID primitive.ObjectID, start, end time.Time) (bool, error)
	transitionFn   func(ctx context.Context, id primitive.ObjectID, from, to string, upd StatusUpdate) (bool, error)
	approvedDaysFn func(ctx context.Context, employeeID primitive.ObjectID, leaveType string) (int, error)
}

func (f *fakeLeaveRepo) Insert(ctx context.Context, lr *LeaveRequest) error {
	if f.insertFn != nil {
		return f.insertFn(ctx, lr)
	}
	lr.ID = primitive.NewObjectID()
	return nil
}

func (f *fakeLeaveRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*LeaveRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeLeaveRepo) FindByEmployee(ctx context.Context, employeeID primitive.ObjectID) ([]LeaveRequest, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) FindAll(ctx context.Context) ([]LeaveRequest, error) {
	return nil, nil
}

func (f *fakeLeaveRepo) HasOverlap(ctx context.Context, employeeID primitive.ObjectID, start, end time.Time) (bool, error) {
	if f.hasOverlapFn != nil {
		return f.hasOverlapFn(ctx, employeeID, start, end)
	}
	return false, nil
}

func (f *fakeLeaveRepo) TransitionStatus(ctx context.Context, id primitive.ObjectID, from, to string, upd StatusUpdate) (bool, error) {
	if f.transitionFn != nil {
		return f.transitionFn(ctx, id, from, to, upd)
	}
	return true, nil
}

func (f *fakeLeaveRepo) ApprovedDays(ctx context.Context, employeeID primitive.ObjectID, leaveType string) (int, error) {
	if f.approvedDaysFn != nil {
		return f.approvedDaysFn(ctx, employeeID, leaveType)
	}
	return 0, nil
}

type fakeDirectory struct {
	findByIDFn    func(ctx context.Context, id primitive.ObjectID) (*user.User, error)
	adminEmailsFn func(ctx context.Context) ([]string, error)
}

func (f *fakeDirectory) FindByID(ctx context.Context, id primitive.ObjectID) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return &user.User{ID: id, Name: "Alice", Email: "alice@example.com"}, nil
}

func (f *fakeDirectory) AdminEmails(ctx context.Context) ([]string, error) {
	if f.adminEmailsFn != nil {
		return f.adminEmailsFn(ctx)
	}
	return []string{"admin@example.com"}, nil
}

type fakeNotifier struct {
	sendOK   bool
	sent     [][]string
	enqueued [][]string
}

func (f *fakeNotifier) Send(recipients []string, subject, body string) bool {
	f.sent = append(f.sent, recipients)
	return f.sendOK
}

func (f *fakeNotifier) Enqueue(recipients []string, subject, body string) <-chan notification.Result {
	f.enqueued = append(f.enqueued, recipients)
	done := make(chan notification.Result, 1)
	done <- notification.Result{Delivered: true}
	return done
}

type fakeAudit struct {
	records []string
}

func (f *fakeAudit) Record(ctx context.Context, typ, entityID, message string) {
	f.records = append(f.records, typ)
}

func defaultSettings() Settings {
	return Settings{
		AccrualRatePerMonth:        decimal.NewFromFloat(1.5),
		ConsumptionLeaveTypeFilter: "paid",
	}
}

func newTestService(repo Repository, dir EmployeeDirectory, n Notifier, a AuditTrail, settings Settings, now time.Time) Service {
	svc := NewService(repo, dir, n, a, settings)
	svc.(*service).now = func() time.Time { return now }
	return svc
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	employeeID := primitive.NewObjectID()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("success counts days inclusively and alerts admins", func(t *testing.T) {
		notifier := &fakeNotifier{sendOK: true}
		audit := &fakeAudit{}
		svc := newTestService(&fakeLeaveRepo{}, &fakeDirectory{}, notifier, audit, defaultSettings(), now)

		resp, err := svc.Submit(ctx, SubmitLeaveRequest{
			EmployeeID: employeeID.Hex(),
			StartDate:  "2025-06-10",
			EndDate:    "2025-06-12",
			LeaveType:  TypePaid,
		})

		assert.NoError(t, err)
		assert.Equal(t, StatusPending, resp.Status)
		assert.Equal(t, 3, resp.LeaveDays)
		assert.Len(t, notifier.enqueued, 1)
		assert.Equal(t, []string{"admin@example.com"}, notifier.enqueued[0])
		assert.Equal(t, []string{notification.TypeLeaveRequest}, audit.records)
	})

	t.Run("single day request counts one day", func(t *testing.T) {
		svc := newTestService(&fakeLeaveRepo{}, &fakeDirectory{}, &fakeNotifier{}, &fakeAudit{}, defaultSettings(), now)

		resp, err := svc.Submit(ctx, SubmitLeaveRequest{
			EmployeeID: employeeID.Hex(),
			StartDate:  "2025-06-10",
			EndDate:    "2025-06-10",
			LeaveType:  TypeUnpaid,
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.LeaveDays)
	})

	t.Run("negative overlap with pending or approved request", func(t *testing.T) {
		repo := &fakeLeaveRepo{
			hasOverlapFn: func(ctx context.Context, employeeID primitive.ObjectID, start, end time.Time) (bool, error) {
				return true, nil
			},
		}
		svc := newTestService(repo, &fakeDirectory{}, &fakeNotifier{}, &fakeAudit{}, defaultSettings(), now)

		_, err := svc.Submit(ctx, SubmitLeaveRequest{
			EmployeeID: employeeID.Hex(),
			StartDate:  "2025-06-10",
			EndDate:    "2025-06-12",
			LeaveType:  TypePaid,
		})
		assert.ErrorContains(t, err, "overlaps")
	})

	t.Run("negative end before start", func(t *testing.T) {
		svc := newTestService(&fakeLeaveRepo{}, &fakeDirectory{}, &fakeNotifier{}, &fakeAudit{}, defaultSettings(), now)

		_, err := svc.Submit(ctx, SubmitLeaveRequest{
			EmployeeID: employeeID.Hex(),
			StartDate:  "2025-06-12",
			EndDate:    "2025-06-10",
			LeaveType:  TypePaid,
		})
		assert.ErrorContains(t, err, "end date")
	})

	t.Run("negative malformed date", func(t *testing.T) {
		svc := newTestService(&fakeLeaveRepo{}, &fakeDirectory{}, &fakeNotifier{}, &fakeAudit{}, defaultSettings(), now)

		_, err := svc.Submit(ctx, SubmitLeaveRequest{
			EmployeeID: employeeID.Hex(),
			StartDate:  "10/06/2025",
			EndDate:    "2025-06-12",
			LeaveType:  TypePaid,
		})
		assert.ErrorContains(t, err, "YYYY-MM-DD")
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		dir := &fakeDirectory{
			findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*user.User, error) {
				return nil, mongo.ErrNoDocuments
			},
		}
		svc := newTestService(&fakeLeaveRepo{}, dir, &fakeNotifier{}, &fakeAudit{}, defaultSettings(), now)

		_, err := svc.Submit(ctx, SubmitLeaveRequest{
			EmployeeID: employeeID.Hex(),
			StartDate:  "2025-06-10",
			EndDate:    "2025-06-12",
			LeaveType:  TypePaid,
		})
		assert.ErrorContains(t, err, "employee not found")
	})
}

func pendingRequest(id, employeeID primitive.ObjectID) *LeaveRequest {
	return &LeaveRequest{
		ID:         id,
		EmployeeID: employeeID,
		StartDate:  time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		LeaveType:  TypePaid,
		LeaveDays:  3,
		Status:     StatusPending,
	}
}

func TestApprove(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()
	employeeID := primitive.NewObjectID()
	now := time.Date(2025, 6, 13, 9, 0, 0, 0, time.UTC)

	repoFor := func(transitioned bool) *fakeLeaveRepo {
		status := StatusPending
		return &fakeLeaveRepo{
			findByIDFn: func(ctx context.Context, got primitive.ObjectID) (*LeaveRequest, error) {
				lr := pendingRequest(id, employeeID)
				lr.Status = status
				return lr, nil
			},
			transitionFn: func(ctx context.Context, got primitive.ObjectID, from, to string, upd StatusUpdate) (bool, error) {
				if transitioned {
					status = to
				}
				return transitioned, nil
			},
		}
	}

	t.Run("success notifies the employee", func(t *testing.T) {
		notifier := &fakeNotifier{sendOK: true}
		svc := newTestService(repoFor(true), &fakeDirectory{}, notifier, &fakeAudit{}, defaultSettings(), now)

		resp, notified, err := svc.Approve(ctx, id.Hex(), "")
		assert.NoError(t, err)
		assert.True(t, notified)
		assert.Equal(t, StatusApproved, resp.Status)
		assert.Equal(t, [][]string{{"alice@example.com"}}, notifier.sent)
	})

	t.Run("email failure still approves", func(t *testing.T) {
		notifier := &fakeNotifier{sendOK: false}
		svc := newTestService(repoFor(true), &fakeDirectory{}, notifier, &fakeAudit{}, defaultSettings(), now)

		resp, notified, err := svc.Approve(ctx, id.Hex(), "")
		assert.NoError(t, err)
		assert.False(t, notified)
		assert.Equal(t, StatusApproved, resp.Status)
	})

	t.Run("negative concurrent decision loses with conflict", func(t *testing.T) {
		svc := newTestService(repoFor(false), &fakeDirectory{}, &fakeNotifier{sendOK: true}, &fakeAudit{}, defaultSettings(), now)

		_, _, err := svc.Approve(ctx, id.Hex(), "")
		assert.ErrorContains(t, err, "no changes made")
	})

	t.Run("negative unknown id", func(t *testing.T) {
		svc := newTestService(&fakeLeaveRepo{}, &fakeDirectory{}, &fakeNotifier{}, &fakeAudit{}, defaultSettings(), now)

		_, _, err := svc.Approve(ctx, primitive.NewObjectID().Hex(), "")
		assert.ErrorContains(t, err, "not found")
	})
}

func TestReject(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()
	employeeID := primitive.NewObjectID()
	now := time.Date(2025, 6, 13, 9, 0, 0, 0, time.UTC)

	t.Run("records the reason on the transition", func(t *testing.T) {
		var gotUpd StatusUpdate
		status := StatusPending
		repo := &fakeLeaveRepo{
			findByIDFn: func(ctx context.Context, got primitive.ObjectID) (*LeaveRequest, error) {
				lr := pendingRequest(id, employeeID)
				lr.Status = status
				if status == StatusRejected {
					lr.RejectionReason = gotUpd.RejectionReason
				}
				return lr, nil
			},
			transitionFn: func(ctx context.Context, got primitive.ObjectID, from, to string, upd StatusUpdate) (bool, error) {
				gotUpd = upd
				status = to
				return true, nil
			},
		}
		svc := newTestService(repo, &fakeDirectory{}, &fakeNotifier{sendOK: true}, &fakeAudit{}, defaultSettings(), now)

		resp, notified, err := svc.Reject(ctx, id.Hex(), "", "short staffed")
		assert.NoError(t, err)
		assert.True(t, notified)
		assert.Equal(t, StatusRejected, resp.Status)
		assert.Equal(t, "short staffed", resp.RejectionReason)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()
	employeeID := primitive.NewObjectID()
	now := time.Date(2025, 6, 13, 9, 0, 0, 0, time.UTC)

	t.Run("negative already approved", func(t *testing.T) {
		repo := &fakeLeaveRepo{
			findByIDFn: func(ctx context.Context, got primitive.ObjectID) (*LeaveRequest, error) {
				lr := pendingRequest(id, employeeID)
				lr.Status = StatusApproved
				return lr, nil
			},
			transitionFn: func(ctx context.Context, got primitive.ObjectID, from, to string, upd StatusUpdate) (bool, error) {
				return false, nil
			},
		}
		svc := newTestService(repo, &fakeDirectory{}, &fakeNotifier{}, &fakeAudit{}, defaultSettings(), now)

		_, err := svc.Cancel(ctx, id.Hex())
		assert.ErrorContains(t, err, "no changes made")
	})
}

func TestBalance(t *testing.T) {
	ctx := context.Background()
	employeeID := primitive.NewObjectID()

	dirWithHire := func(hire time.Time) *fakeDirectory {
		return &fakeDirectory{
			findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*user.User, error) {
				return &user.User{ID: id, Name: "Alice", Email: "alice@example.com", HireDate: hire}, nil
			},
		}
	}

	t.Run("accrues per month worked and subtracts approved days", func(t *testing.T) {
		hire := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
		now := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
		repo := &fakeLeaveRepo{
			approvedDaysFn: func(ctx context.Context, employeeID primitive.ObjectID, leaveType string) (int, error) {
				assert.Equal(t, TypePaid, leaveType)
				return 4, nil
			},
		}
		svc := newTestService(repo, dirWithHire(hire), &fakeNotifier{}, &fakeAudit{}, defaultSettings(), now)

		resp, err := svc.Balance(ctx, employeeID.Hex())
		assert.NoError(t, err)
		assert.Equal(t, 12, resp.MonthsWorked)
		assert.Equal(t, 18.0, resp.AccruedDays)
		assert.Equal(t, 4, resp.ConsumedDays)
		assert.Equal(t, 14.0, resp.LeaveBalance)
	})

	t.Run("partial month rounds up", func(t *testing.T) {
		hire := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
		now := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
		svc := newTestService(&fakeLeaveRepo{}, dirWithHire(hire), &fakeNotifier{}, &fakeAudit{}, defaultSettings(), now)

		resp, err := svc.Balance(ctx, employeeID.Hex())
		assert.NoError(t, err)
		assert.Equal(t, 3, resp.MonthsWorked)
		assert.Equal(t, 4.5, resp.LeaveBalance)
	})

	t.Run("balance never goes negative", func(t *testing.T) {
		hire := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
		now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
		repo := &fakeLeaveRepo{
			approvedDaysFn: func(ctx context.Context, employeeID primitive.ObjectID, leaveType string) (int, error) {
				return 30, nil
			},
		}
		svc := newTestService(repo, dirWithHire(hire), &fakeNotifier{}, &fakeAudit{}, defaultSettings(), now)

		resp, err := svc.Balance(ctx, employeeID.Hex())
		assert.NoError(t, err)
		assert.Equal(t, 0.0, resp.LeaveBalance)
	})

	t.Run("filter all counts every approved type", func(t *testing.T) {
		settings := defaultSettings()
		settings.ConsumptionLeaveTypeFilter = "all"
		hire := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
		repo := &fakeLeaveRepo{
			approvedDaysFn: func(ctx context.Context, employeeID primitive.ObjectID, leaveType string) (int, error) {
				assert.Empty(t, leaveType)
				return 2, nil
			},
		}
		svc := newTestService(repo, dirWithHire(hire), &fakeNotifier{}, &fakeAudit{}, settings, now)

		resp, err := svc.Balance(ctx, employeeID.Hex())
		assert.NoError(t, err)
		assert.Equal(t, 7.0, resp.LeaveBalance)
	})

	t.Run("negative unknown employee", func(t *testing.T) {
		dir := &fakeDirectory{
			findByIDFn: func(ctx context.Context, id primitive.ObjectID) (*user.User, error) {
				return nil, mongo.ErrNoDocuments
			},
		}
		svc := newTestService(&fakeLeaveRepo{}, dir, &fakeNotifier{}, &fakeAudit{}, defaultSettings(), time.Now())

		_, err := svc.Balance(ctx, employeeID.Hex())
		assert.ErrorContains(t, err, "employee not found")
	})
}
