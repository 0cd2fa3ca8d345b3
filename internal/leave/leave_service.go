package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/louatizine/erp/internal/config"
	leaveerrors "github.com/louatizine/erp/internal/leave/errors"
	"github.com/louatizine/erp/internal/notification"
	"github.com/louatizine/erp/internal/shared/contextutil"
	"github.com/louatizine/erp/internal/shared/datemath"
	"github.com/louatizine/erp/internal/user"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EmployeeDirectory is the slice of the user module the leave workflow
// needs: existence checks, hire dates and who to alert.
type EmployeeDirectory interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*user.User, error)
	AdminEmails(ctx context.Context) ([]string, error)
}

// Notifier is the dispatcher surface used here. Approvals and rejections
// send synchronously so the caller can be told when the email did not go
// out; submissions fire and forget.
type Notifier interface {
	Send(recipients []string, subject, body string) bool
	Enqueue(recipients []string, subject, body string) <-chan notification.Result
}

// AuditTrail records in-app notifications alongside the emails.
type AuditTrail interface {
	Record(ctx context.Context, typ, entityID, message string)
}

// Settings are the business constants the balance and workflow depend on.
type Settings struct {
	AccrualRatePerMonth        decimal.Decimal
	ConsumptionLeaveTypeFilter string
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveResponse, error)
	Approve(ctx context.Context, id, actorID string) (LeaveResponse, bool, error)
	Reject(ctx context.Context, id, actorID, reason string) (LeaveResponse, bool, error)
	Cancel(ctx context.Context, id string) (LeaveResponse, error)
	Balance(ctx context.Context, employeeID string) (BalanceResponse, error)
	GetByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
}

type service struct {
	repo      Repository
	directory EmployeeDirectory
	notifier  Notifier
	audit     AuditTrail
	settings  Settings
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(repo Repository, directory EmployeeDirectory, notifier Notifier, audit AuditTrail, settings Settings, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		repo:      repo,
		directory: directory,
		notifier:  notifier,
		audit:     audit,
		settings:  settings,
		logger:    l,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	employeeID, err := primitive.ObjectIDFromHex(req.EmployeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	if !isValidLeaveType(req.LeaveType) {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveType
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	if end.Before(start) {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	emp, err := s.directory.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
		}
		return LeaveResponse{}, err
	}

	overlaps, err := s.repo.HasOverlap(ctx, employeeID, start, end)
	if err != nil {
		return LeaveResponse{}, err
	}
	if overlaps {
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	now := s.now()
	lr := &LeaveRequest{
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    end,
		LeaveType:  req.LeaveType,
		Reason:     req.Reason,
		LeaveDays:  datemath.SpanDays(start, end),
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Insert(ctx, lr); err != nil {
		l.Error("persist leave request failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	msg := fmt.Sprintf("%s requested %d day(s) of %s leave (%s to %s)",
		emp.Name, lr.LeaveDays, lr.LeaveType, req.StartDate, req.EndDate)
	s.audit.Record(ctx, notification.TypeLeaveRequest, lr.ID.Hex(), msg)

	if admins, err := s.directory.AdminEmails(ctx); err != nil {
		l.Warn("admin lookup failed, skipping email", zap.Error(err))
	} else if len(admins) > 0 {
		s.notifier.Enqueue(admins, "New Leave Request", msg)
	}

	l.Info("leave request submitted",
		zap.String("leave_id", lr.ID.Hex()),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("leave_days", lr.LeaveDays),
	)
	return mapLeaveToResponse(*lr), nil
}

// Approve moves a pending request to approved. The second return value
// reports whether the employee was emailed; a false there is a warning
// for the caller, not a failure.
func (s *service) Approve(ctx context.Context, id, actorID string) (LeaveResponse, bool, error) {
	return s.decide(ctx, id, actorID, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, id, actorID, reason string) (LeaveResponse, bool, error) {
	return s.decide(ctx, id, actorID, StatusRejected, &reason)
}

func (s *service) decide(ctx context.Context, id, actorID, to string, reason *string) (LeaveResponse, bool, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return LeaveResponse{}, false, leaveerrors.ErrInvalidLeaveID
	}

	var processedBy *primitive.ObjectID
	if actorID != "" {
		actor, err := primitive.ObjectIDFromHex(actorID)
		if err != nil {
			return LeaveResponse{}, false, leaveerrors.ErrInvalidEmployeeID
		}
		processedBy = &actor
	}

	if _, err := s.repo.FindByID(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return LeaveResponse{}, false, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, false, err
	}

	upd := StatusUpdate{
		ProcessedBy:     processedBy,
		RejectionReason: reason,
		At:              s.now(),
	}
	ok, err := s.repo.TransitionStatus(ctx, oid, StatusPending, to, upd)
	if err != nil {
		return LeaveResponse{}, false, err
	}
	if !ok {
		// the request left the pending state between the read and the
		// conditional write, or a concurrent decision won
		return LeaveResponse{}, false, leaveerrors.ErrNoChangesMade
	}

	lr, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return LeaveResponse{}, false, err
	}

	msg := fmt.Sprintf("your leave request from %s to %s was %s",
		lr.StartDate.Format("2006-01-02"), lr.EndDate.Format("2006-01-02"), to)
	if to == StatusRejected && reason != nil && *reason != "" {
		msg = fmt.Sprintf("%s: %s", msg, *reason)
	}
	s.audit.Record(ctx, notification.TypeLeaveDecision, lr.ID.Hex(), msg)

	notified := false
	if emp, err := s.directory.FindByID(ctx, lr.EmployeeID); err != nil {
		l.Warn("employee lookup failed, decision email skipped",
			zap.String("leave_id", id), zap.Error(err))
	} else if emp.Email != "" {
		subject := "Leave Request Approved"
		if to == StatusRejected {
			subject = "Leave Request Rejected"
		}
		notified = s.notifier.Send([]string{emp.Email}, subject, msg)
	}

	l.Info("leave request decided",
		zap.String("leave_id", id),
		zap.String("status", to),
		zap.Bool("notified", notified),
	)
	return mapLeaveToResponse(*lr), notified, nil
}

func (s *service) Cancel(ctx context.Context, id string) (LeaveResponse, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	if _, err := s.repo.FindByID(ctx, oid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	ok, err := s.repo.TransitionStatus(ctx, oid, StatusPending, StatusCancelled, StatusUpdate{At: s.now()})
	if err != nil {
		return LeaveResponse{}, err
	}
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrNoChangesMade
	}

	lr, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return LeaveResponse{}, err
	}
	return mapLeaveToResponse(*lr), nil
}

// Balance is accrued minus consumed: months worked times the accrual
// rate, less the sum of approved leave days, rounded to two decimals and
// floored at zero.
func (s *service) Balance(ctx context.Context, employeeID string) (BalanceResponse, error) {
	oid, err := primitive.ObjectIDFromHex(employeeID)
	if err != nil {
		return BalanceResponse{}, leaveerrors.ErrInvalidEmployeeID
	}

	emp, err := s.directory.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return BalanceResponse{}, leaveerrors.ErrEmployeeNotFound
		}
		return BalanceResponse{}, err
	}

	months := datemath.MonthsElapsed(emp.EffectiveHireDate(), s.now())
	accrued := s.settings.AccrualRatePerMonth.Mul(decimal.NewFromInt(int64(months)))

	typeFilter := ""
	if s.settings.ConsumptionLeaveTypeFilter == config.ConsumptionPaidOnly {
		typeFilter = TypePaid
	}
	consumed, err := s.repo.ApprovedDays(ctx, oid, typeFilter)
	if err != nil {
		return BalanceResponse{}, err
	}

	balance := accrued.Sub(decimal.NewFromInt(int64(consumed))).Round(2)
	if balance.IsNegative() {
		balance = decimal.Zero
	}

	return BalanceResponse{
		EmployeeID:   employeeID,
		MonthsWorked: months,
		AccruedDays:  accrued.Round(2).InexactFloat64(),
		ConsumedDays: consumed,
		LeaveBalance: balance.InexactFloat64(),
	}, nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) ([]LeaveResponse, error) {
	oid, err := primitive.ObjectIDFromHex(employeeID)
	if err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}

	requests, err := s.repo.FindByEmployee(ctx, oid)
	if err != nil {
		return nil, err
	}
	return mapLeaveList(requests), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	requests, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapLeaveList(requests), nil
}

func mapLeaveList(requests []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(requests))
	for i, lr := range requests {
		resp[i] = mapLeaveToResponse(lr)
	}
	return resp
}

func mapLeaveToResponse(lr LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:         lr.ID.Hex(),
		EmployeeID: lr.EmployeeID.Hex(),
		StartDate:  lr.StartDate,
		EndDate:    lr.EndDate,
		LeaveType:  lr.LeaveType,
		Reason:     lr.Reason,
		LeaveDays:  lr.LeaveDays,
		Status:     lr.Status,
		CreatedAt:  lr.CreatedAt,
		UpdatedAt:  lr.UpdatedAt,
	}
	if lr.ProcessedBy != nil {
		resp.ProcessedBy = lr.ProcessedBy.Hex()
	}
	if lr.RejectionReason != nil {
		resp.RejectionReason = *lr.RejectionReason
	}
	return resp
}
