package archive

import (
	"context"
	"errors"
	"time"

	archiveerrors "github.com/louatizine/erp/internal/archive/errors"
	"github.com/louatizine/erp/internal/shared/contextutil"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

//go:generate mockgen -source=archive_service.go -destination=mock/archive_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterDocumentRequest) (Document, error)
	ListArchived(ctx context.Context) ([]Document, error)
	Unarchive(ctx context.Context, id string) error
	Rearchive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string, force bool) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("archive.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("archive.service")
	}
	return &service{
		repo:   repo,
		logger: l,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Register(ctx context.Context, req RegisterDocumentRequest) (Document, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	var retention *time.Time
	if req.RetentionUntil != "" {
		t, err := time.Parse("2006-01-02", req.RetentionUntil)
		if err != nil {
			return Document{}, archiveerrors.ErrInvalidRetention
		}
		retention = &t
	}

	d := &Document{
		Title:            req.Title,
		Description:      req.Description,
		FileID:           req.FileID,
		OriginalFilename: req.OriginalFilename,
		ContentType:      req.ContentType,
		Status:           StatusArchived,
		RetentionUntil:   retention,
		ArchivedAt:       s.now(),
		ArchivedBy:       contextutil.GetUserID(ctx),
		Tags:             req.Tags,
		Department:       req.Department,
	}
	if err := s.repo.Insert(ctx, d); err != nil {
		l.Error("persist archived document failed", zap.Error(err))
		return Document{}, err
	}

	l.Info("document archived",
		zap.String("document_id", d.ID.Hex()),
		zap.String("file_id", d.FileID),
	)
	return *d, nil
}

func (s *service) ListArchived(ctx context.Context) ([]Document, error) {
	return s.repo.FindByStatus(ctx, StatusArchived)
}

func (s *service) Unarchive(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, StatusActive)
}

func (s *service) Rearchive(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, StatusArchived)
}

func (s *service) setStatus(ctx context.Context, id, status string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return archiveerrors.ErrInvalidDocumentID
	}

	matched, err := s.repo.SetStatus(ctx, oid, status)
	if err != nil {
		return err
	}
	if !matched {
		return archiveerrors.ErrDocumentNotFound
	}
	return nil
}

// Delete removes the archive record. A document still inside its
// retention period is refused unless force is set.
func (s *service) Delete(ctx context.Context, id string, force bool) error {
	l := contextutil.GetLogger(ctx, s.logger)

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return archiveerrors.ErrInvalidDocumentID
	}

	d, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return archiveerrors.ErrDocumentNotFound
		}
		return err
	}

	if !force && d.RetentionUntil != nil && d.RetentionUntil.After(s.now()) {
		return archiveerrors.ErrRetentionActive
	}

	deleted, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return err
	}
	if !deleted {
		return archiveerrors.ErrDocumentNotFound
	}

	l.Info("archived document deleted",
		zap.String("document_id", id),
		zap.Bool("forced", force),
	)
	return nil
}
