package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	invoiceerrors "github.com/louatizine/erp/internal/invoice/errors"
	"github.com/louatizine/erp/internal/notification"
	"github.com/louatizine/erp/internal/shared/contextutil"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Notifier is the dispatcher surface used for payment reminders.
type Notifier interface {
	Send(recipients []string, subject, body string) bool
}

// AuditTrail records the reminder in the in-app feed.
type AuditTrail interface {
	Record(ctx context.Context, typ, entityID, message string)
}

//go:generate mockgen -source=invoice_service.go -destination=mock/invoice_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error)
	List(ctx context.Context, q ListInvoicesQuery) ([]Invoice, error)
	UpdateStatus(ctx context.Context, id string, req UpdateInvoiceStatusRequest) (Invoice, error)
	SendReminder(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	notifier Notifier
	audit    AuditTrail
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(repo Repository, notifier Notifier, audit AuditTrail, logger ...*zap.Logger) Service {
	l := zap.L().Named("invoice.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("invoice.service")
	}
	return &service{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		logger:   l,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	date, err := time.Parse("2006-01-02", req.InvoiceDate)
	if err != nil {
		return Invoice{}, invoiceerrors.ErrInvalidInvoiceDate
	}

	now := s.now()
	inv := &Invoice{
		Number:      req.Number,
		ClientEmail: req.ClientEmail,
		Telephone:   req.Telephone,
		TotalAmount: req.TotalAmount,
		InvoiceDate: date,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, inv); err != nil {
		l.Error("persist invoice failed", zap.Error(err))
		return Invoice{}, err
	}

	l.Info("invoice created",
		zap.String("invoice_id", inv.ID.Hex()),
		zap.String("number", inv.Number),
	)
	return *inv, nil
}

func (s *service) List(ctx context.Context, q ListInvoicesQuery) ([]Invoice, error) {
	if q.Status != "" && q.Status != StatusPending && q.Status != StatusPaid {
		return nil, invoiceerrors.ErrInvalidInvoiceStatus
	}
	return s.repo.Search(ctx, q.Search, q.Status)
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateInvoiceStatusRequest) (Invoice, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Invoice{}, invoiceerrors.ErrInvalidInvoiceID
	}
	if req.Status != StatusPending && req.Status != StatusPaid {
		return Invoice{}, invoiceerrors.ErrInvalidInvoiceStatus
	}

	now := s.now()
	var paymentDate *time.Time
	if req.Status == StatusPaid {
		paymentDate = &now
	}

	matched, err := s.repo.SetStatus(ctx, oid, req.Status, paymentDate, now)
	if err != nil {
		return Invoice{}, err
	}
	if !matched {
		return Invoice{}, invoiceerrors.ErrInvoiceNotFound
	}

	inv, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return Invoice{}, err
	}
	return *inv, nil
}

func (s *service) SendReminder(ctx context.Context, id string) error {
	l := contextutil.GetLogger(ctx, s.logger)

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return invoiceerrors.ErrInvalidInvoiceID
	}

	inv, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return invoiceerrors.ErrInvoiceNotFound
		}
		return err
	}

	subject := fmt.Sprintf("Payment Reminder: Invoice %s", inv.Number)
	body := fmt.Sprintf("Invoice %s for %.2f issued on %s is still unpaid. Please settle at your earliest convenience.",
		inv.Number, inv.TotalAmount, inv.InvoiceDate.Format("2006-01-02"))

	if !s.notifier.Send([]string{inv.ClientEmail}, subject, body) {
		return invoiceerrors.ErrReminderNotSent
	}

	s.audit.Record(ctx, notification.TypeInvoice, inv.ID.Hex(),
		fmt.Sprintf("payment reminder sent for invoice %s", inv.Number))
	l.Info("invoice reminder sent",
		zap.String("invoice_id", inv.ID.Hex()),
		zap.String("client_email", inv.ClientEmail),
	)
	return nil
}
