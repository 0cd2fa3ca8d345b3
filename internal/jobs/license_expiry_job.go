package jobs

import (
	"context"
	"fmt"

	"github.com/louatizine/erp/internal/license"
	"github.com/louatizine/erp/internal/notification"

	"go.uber.org/zap"
)

// AdminDirectory supplies the admin recipient list.
type AdminDirectory interface {
	AdminEmails(ctx context.Context) ([]string, error)
}

// LicenseScanner is the slice of the license service this job needs.
type LicenseScanner interface {
	ExpiringWithin(ctx context.Context, windowDays int) ([]license.License, error)
}

// LicenseExpiryJob mails every admin about each license expiring inside
// the scan window. One email per license per admin, matching the alert
// granularity operators asked for.
type LicenseExpiryJob struct {
	licenses   LicenseScanner
	directory  AdminDirectory
	sender     Sender
	audit      AuditTrail
	windowDays int
	logger     *zap.Logger
}

func NewLicenseExpiryJob(licenses LicenseScanner, directory AdminDirectory, sender Sender, audit AuditTrail, windowDays int, logger ...*zap.Logger) *LicenseExpiryJob {
	l := zap.L().Named("jobs.license_expiry")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("jobs.license_expiry")
	}
	return &LicenseExpiryJob{
		licenses:   licenses,
		directory:  directory,
		sender:     sender,
		audit:      audit,
		windowDays: windowDays,
		logger:     l,
	}
}

// Run implements cron.Job.
func (j *LicenseExpiryJob) Run() {
	if err := j.Scan(context.Background()); err != nil {
		j.logger.Error("license expiry scan failed", zap.Error(err))
	}
}

func (j *LicenseExpiryJob) Scan(ctx context.Context) error {
	expiring, err := j.licenses.ExpiringWithin(ctx, j.windowDays)
	if err != nil {
		return err
	}
	if len(expiring) == 0 {
		j.logger.Info("no licenses expiring soon")
		return nil
	}

	admins, err := j.directory.AdminEmails(ctx)
	if err != nil {
		return err
	}
	if len(admins) == 0 {
		j.logger.Warn("licenses expiring but no admin recipients",
			zap.Int("licenses", len(expiring)))
		return nil
	}

	for _, lic := range expiring {
		subject := fmt.Sprintf("License Expiring: %s", lic.Name)
		body := fmt.Sprintf("License %q (key %s) expires on %s, %d day(s) from now.",
			lic.Name, lic.Key, lic.ExpiryDate.Format("2006-01-02"), lic.DaysUntilExpiry)

		for _, admin := range admins {
			if !j.sender.Send([]string{admin}, subject, body) {
				j.logger.Warn("license expiry email not delivered",
					zap.String("recipient", admin),
					zap.String("license_id", lic.ID.Hex()),
				)
			}
		}

		j.audit.Record(ctx, notification.TypeLicenseExpiry, lic.ID.Hex(),
			fmt.Sprintf("license %s expires in %d day(s)", lic.Name, lic.DaysUntilExpiry))
	}

	j.logger.Info("license expiry scan complete",
		zap.Int("licenses", len(expiring)),
		zap.Int("admins", len(admins)),
	)
	return nil
}
