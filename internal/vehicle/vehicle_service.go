package vehicle

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/louatizine/erp/internal/shared/contextutil"
	"github.com/louatizine/erp/internal/shared/datemath"
	vehicleerrors "github.com/louatizine/erp/internal/vehicle/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

//go:generate mockgen -source=vehicle_service.go -destination=mock/vehicle_service_mock.go -package=mock
type Service interface {
	Upsert(ctx context.Context, req UpsertVehicleRequest) (Vehicle, error)
	Get(ctx context.Context, id string) (Vehicle, error)
	List(ctx context.Context, q ListVehiclesQuery) ([]Vehicle, int64, error)
	Update(ctx context.Context, id string, req UpdateVehicleRequest) (Vehicle, error)
	Delete(ctx context.Context, id string) error
	RecordVisit(ctx context.Context, id string) error
	UpcomingExpirations(ctx context.Context, windowDays int) ([]UpcomingExpiration, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("vehicle.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("vehicle.service")
	}
	return &service{
		repo:   repo,
		logger: l,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Upsert(ctx context.Context, req UpsertVehicleRequest) (Vehicle, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if err := validateDocuments(req.Documents); err != nil {
		return Vehicle{}, err
	}

	now := s.now()
	v := &Vehicle{
		Plate:     strings.ToUpper(strings.TrimSpace(req.Plate)),
		Owner:     req.Owner,
		Type:      req.Type,
		Documents: req.Documents,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Upsert(ctx, v); err != nil {
		l.Error("upsert vehicle failed", zap.String("plate", v.Plate), zap.Error(err))
		return Vehicle{}, err
	}

	l.Info("vehicle upserted", zap.String("vehicle_id", v.ID.Hex()), zap.String("plate", v.Plate))
	return *v, nil
}

func (s *service) Get(ctx context.Context, id string) (Vehicle, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Vehicle{}, vehicleerrors.ErrInvalidVehicleID
	}

	v, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Vehicle{}, vehicleerrors.ErrVehicleNotFound
		}
		return Vehicle{}, err
	}
	return *v, nil
}

func (s *service) List(ctx context.Context, q ListVehiclesQuery) ([]Vehicle, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}
	return s.repo.FindPage(ctx, q.Search, q.Page, q.Limit)
}

func (s *service) Update(ctx context.Context, id string, req UpdateVehicleRequest) (Vehicle, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Vehicle{}, vehicleerrors.ErrInvalidVehicleID
	}
	if err := validateDocuments(req.Documents); err != nil {
		return Vehicle{}, err
	}

	set := bson.M{"updated_at": s.now()}
	if req.Owner != "" {
		set["owner"] = req.Owner
	}
	if req.Type != "" {
		set["type"] = req.Type
	}
	if req.Notes != "" {
		set["notes"] = req.Notes
	}
	for docType, info := range req.Documents {
		set["documents."+docType] = info
	}

	matched, err := s.repo.Update(ctx, oid, set)
	if err != nil {
		return Vehicle{}, err
	}
	if !matched {
		return Vehicle{}, vehicleerrors.ErrVehicleNotFound
	}

	v, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return Vehicle{}, err
	}
	return *v, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return vehicleerrors.ErrInvalidVehicleID
	}

	deleted, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return err
	}
	if !deleted {
		return vehicleerrors.ErrVehicleNotFound
	}
	return nil
}

func (s *service) RecordVisit(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return vehicleerrors.ErrInvalidVehicleID
	}

	matched, err := s.repo.IncrementVisit(ctx, oid, s.now())
	if err != nil {
		return err
	}
	if !matched {
		return vehicleerrors.ErrVehicleNotFound
	}
	return nil
}

// UpcomingExpirations walks every document on every vehicle, parses the
// free-form expiry text and keeps the ones falling inside
// [now, now+windowDays], soonest first. Unparseable or empty expiries
// are skipped, not errors; the data is clerk-entered.
func (s *service) UpcomingExpirations(ctx context.Context, windowDays int) ([]UpcomingExpiration, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	vehicles, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	cutoff := now.AddDate(0, 0, windowDays)

	var out []UpcomingExpiration
	for _, v := range vehicles {
		for docType, info := range v.Documents {
			if info.Expiry == "" {
				continue
			}
			expiry, ok := datemath.ParseFlexibleDate(info.Expiry)
			if !ok {
				l.Warn("unparseable document expiry",
					zap.String("vehicle_id", v.ID.Hex()),
					zap.String("document_type", docType),
					zap.String("expiry", info.Expiry),
				)
				continue
			}
			if expiry.Before(now) || expiry.After(cutoff) {
				continue
			}
			out = append(out, UpcomingExpiration{
				VehicleID:    v.ID.Hex(),
				Plate:        v.Plate,
				Owner:        v.Owner,
				DocumentType: docType,
				ExpiryDate:   expiry,
				DaysLeft:     datemath.DaysUntil(now, expiry),
			})
		}
	}

	// documents iterate in map order; the reminder table must not
	// reshuffle between runs
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ExpiryDate.Equal(out[j].ExpiryDate) {
			return out[i].ExpiryDate.Before(out[j].ExpiryDate)
		}
		if out[i].Plate != out[j].Plate {
			return out[i].Plate < out[j].Plate
		}
		return out[i].DocumentType < out[j].DocumentType
	})
	return out, nil
}

func validateDocuments(docs map[string]DocumentInfo) error {
	for docType := range docs {
		if !isValidDocumentType(docType) {
			return vehicleerrors.ErrInvalidDocumentType
		}
	}
	return nil
}
