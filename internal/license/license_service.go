package license

import (
	"context"
	"sort"
	"time"

	licenseerrors "github.com/louatizine/erp/internal/license/errors"
	"github.com/louatizine/erp/internal/shared/contextutil"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source=license_service.go -destination=mock/license_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateLicenseRequest) (LicenseResponse, error)
	List(ctx context.Context) ([]LicenseResponse, error)
	Alerts(ctx context.Context) ([]LicenseResponse, error)
	StatusCounts(ctx context.Context) (StatusCountsResponse, error)
	Delete(ctx context.Context, id string) error
	ExpiringWithin(ctx context.Context, windowDays int) ([]License, error)
}

type service struct {
	repo          Repository
	thresholdDays int
	logger        *zap.Logger
	now           func() time.Time

	// collapses concurrent status writebacks for the same license; the
	// refresh is idempotent so losing the race costs nothing
	refresh singleflight.Group
}

func NewService(repo Repository, thresholdDays int, logger ...*zap.Logger) Service {
	l := zap.L().Named("license.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("license.service")
	}
	return &service{
		repo:          repo,
		thresholdDays: thresholdDays,
		logger:        l,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Create(ctx context.Context, req CreateLicenseRequest) (LicenseResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		return LicenseResponse{}, licenseerrors.ErrInvalidExpiryDate
	}

	var purchase *time.Time
	if req.PurchaseDate != "" {
		p, err := time.Parse("2006-01-02", req.PurchaseDate)
		if err != nil {
			return LicenseResponse{}, licenseerrors.ErrInvalidPurchaseDate
		}
		purchase = &p
	}

	now := s.now()
	status, daysLeft := Classify(expiry, now, s.thresholdDays)

	lic := &License{
		Name:            req.Name,
		Key:             req.Key,
		PurchaseDate:    purchase,
		ExpiryDate:      expiry.UTC(),
		Status:          status,
		DaysUntilExpiry: daysLeft,
		LastUpdated:     now,
		CreatedAt:       now,
	}
	if err := s.repo.Insert(ctx, lic); err != nil {
		l.Error("persist license failed", zap.Error(err))
		return LicenseResponse{}, err
	}

	l.Info("license created",
		zap.String("license_id", lic.ID.Hex()),
		zap.String("status", status),
		zap.Int("days_until_expiry", daysLeft),
	)
	return mapLicenseToResponse(*lic), nil
}

// List returns every license with a freshly computed classification,
// writing the new status back only for the licenses whose stored value
// drifted. A second immediate call therefore performs no writes.
func (s *service) List(ctx context.Context) ([]LicenseResponse, error) {
	licenses, err := s.refreshAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapLicenseList(licenses), nil
}

// Alerts returns the licenses needing attention, soonest expiry first.
func (s *service) Alerts(ctx context.Context) ([]LicenseResponse, error) {
	licenses, err := s.refreshAll(ctx)
	if err != nil {
		return nil, err
	}

	alerts := licenses[:0:0]
	for _, lic := range licenses {
		if lic.Status != StatusActive {
			alerts = append(alerts, lic)
		}
	}
	sort.Slice(alerts, func(i, j int) bool {
		return alerts[i].ExpiryDate.Before(alerts[j].ExpiryDate)
	})
	return mapLicenseList(alerts), nil
}

// StatusCounts reads the persisted statuses without refreshing them; it
// feeds a dashboard widget where cheap beats exact.
func (s *service) StatusCounts(ctx context.Context) (StatusCountsResponse, error) {
	var counts StatusCountsResponse
	var err error

	if counts.Active, err = s.repo.CountByStatus(ctx, StatusActive); err != nil {
		return StatusCountsResponse{}, err
	}
	if counts.AboutToExpire, err = s.repo.CountByStatus(ctx, StatusAboutToExpire); err != nil {
		return StatusCountsResponse{}, err
	}
	if counts.Expired, err = s.repo.CountByStatus(ctx, StatusExpired); err != nil {
		return StatusCountsResponse{}, err
	}
	return counts, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return licenseerrors.ErrInvalidLicenseID
	}

	deleted, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return err
	}
	if !deleted {
		return licenseerrors.ErrLicenseNotFound
	}
	return nil
}

// ExpiringWithin returns the refreshed licenses expiring in 0..windowDays
// days. The daily scan emails these. Licenses already marked expired can
// never re-enter the window, so they are skipped at the query.
func (s *service) ExpiringWithin(ctx context.Context, windowDays int) ([]License, error) {
	licenses, err := s.repo.FindByStatuses(ctx, []string{StatusActive, StatusAboutToExpire})
	if err != nil {
		return nil, err
	}
	s.refreshList(ctx, licenses)

	var out []License
	for _, lic := range licenses {
		if lic.DaysUntilExpiry >= 0 && lic.DaysUntilExpiry <= windowDays {
			out = append(out, lic)
		}
	}
	return out, nil
}

func (s *service) refreshAll(ctx context.Context) ([]License, error) {
	licenses, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	s.refreshList(ctx, licenses)
	return licenses, nil
}

func (s *service) refreshList(ctx context.Context, licenses []License) {
	l := contextutil.GetLogger(ctx, s.logger)

	now := s.now()
	for i := range licenses {
		lic := &licenses[i]
		status, daysLeft := Classify(lic.ExpiryDate, now, s.thresholdDays)
		if status == lic.Status && daysLeft == lic.DaysUntilExpiry {
			continue
		}

		lic.Status = status
		lic.DaysUntilExpiry = daysLeft
		lic.LastUpdated = now

		id := lic.ID
		_, err, _ := s.refresh.Do(id.Hex(), func() (any, error) {
			return nil, s.repo.UpdateStatus(ctx, id, status, daysLeft, now)
		})
		if err != nil {
			// the caller still gets the fresh classification; the next
			// read retries the writeback
			l.Warn("license status writeback failed",
				zap.String("license_id", id.Hex()),
				zap.Error(err),
			)
		}
	}
}

func mapLicenseList(licenses []License) []LicenseResponse {
	resp := make([]LicenseResponse, len(licenses))
	for i, lic := range licenses {
		resp[i] = mapLicenseToResponse(lic)
	}
	return resp
}

func mapLicenseToResponse(lic License) LicenseResponse {
	resp := LicenseResponse{
		ID:              lic.ID.Hex(),
		Name:            lic.Name,
		Key:             lic.Key,
		ExpiryDate:      lic.ExpiryDate.Format("2006-01-02"),
		Status:          lic.Status,
		DaysUntilExpiry: lic.DaysUntilExpiry,
	}
	if lic.PurchaseDate != nil {
		resp.PurchaseDate = lic.PurchaseDate.Format("2006-01-02")
	}
	return resp
}
