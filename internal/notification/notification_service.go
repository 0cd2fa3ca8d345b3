package notification

import (
	"context"
	"net/http"

	"github.com/louatizine/erp/internal/shared/apperror"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var errNotificationNotFound = apperror.New(
	apperror.CodeNotFound,
	"notification not found",
	http.StatusNotFound,
)

var errInvalidNotificationID = apperror.New(
	apperror.CodeInvalidInput,
	"invalid notification id",
	http.StatusBadRequest,
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	Record(ctx context.Context, typ, entityID, message string)
	List(ctx context.Context) ([]Notification, error)
	MarkRead(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, logger: l}
}

// Record appends to the audit trail. It deliberately swallows storage
// errors: an alert must never fail the operation that raised it.
func (s *service) Record(ctx context.Context, typ, entityID, message string) {
	n := &Notification{
		Type:     typ,
		EntityID: entityID,
		Message:  message,
	}
	if err := s.repo.Insert(ctx, n); err != nil {
		s.logger.Error("record notification failed",
			zap.String("type", typ),
			zap.String("entity_id", entityID),
			zap.Error(err),
		)
	}
}

func (s *service) List(ctx context.Context) ([]Notification, error) {
	return s.repo.FindRecent(ctx, 100)
}

func (s *service) MarkRead(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errInvalidNotificationID
	}
	matched, err := s.repo.MarkRead(ctx, oid)
	if err != nil {
		return err
	}
	if !matched {
		return errNotificationNotFound
	}
	return nil
}
