package jobs

import (
	"context"
	"fmt"
	"strings"

	"github.com/louatizine/erp/internal/notification"
	"github.com/louatizine/erp/internal/vehicle"

	"go.uber.org/zap"
)

// Sender is the synchronous dispatcher surface jobs use. Per-recipient
// failures are logged and the batch continues.
type Sender interface {
	Send(recipients []string, subject, body string) bool
}

// AuditTrail mirrors notification.Service.Record.
type AuditTrail interface {
	Record(ctx context.Context, typ, entityID, message string)
}

// VehicleScanner is the slice of the vehicle service this job needs.
type VehicleScanner interface {
	UpcomingExpirations(ctx context.Context, windowDays int) ([]vehicle.UpcomingExpiration, error)
}

// VehicleExpiryJob scans vehicle documents expiring inside the window
// and mails the operations inbox one batched table, soonest first.
type VehicleExpiryJob struct {
	vehicles   VehicleScanner
	sender     Sender
	audit      AuditTrail
	recipient  string
	windowDays int
	logger     *zap.Logger
}

func NewVehicleExpiryJob(vehicles VehicleScanner, sender Sender, audit AuditTrail, recipient string, windowDays int, logger ...*zap.Logger) *VehicleExpiryJob {
	l := zap.L().Named("jobs.vehicle_expiry")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("jobs.vehicle_expiry")
	}
	return &VehicleExpiryJob{
		vehicles:   vehicles,
		sender:     sender,
		audit:      audit,
		recipient:  recipient,
		windowDays: windowDays,
		logger:     l,
	}
}

// Run implements cron.Job.
func (j *VehicleExpiryJob) Run() {
	if _, err := j.Notify(context.Background()); err != nil {
		j.logger.Error("vehicle expiry scan failed", zap.Error(err))
	}
}

// Notify performs one scan and returns how many expirations were
// reported. Also wired to the on-demand notify endpoint.
func (j *VehicleExpiryJob) Notify(ctx context.Context) (int, error) {
	upcoming, err := j.vehicles.UpcomingExpirations(ctx, j.windowDays)
	if err != nil {
		return 0, err
	}
	if len(upcoming) == 0 {
		j.logger.Info("no upcoming vehicle expirations")
		return 0, nil
	}

	subject := fmt.Sprintf("Vehicle Document Expirations: %d upcoming", len(upcoming))
	body := buildExpirationTable(upcoming)

	if !j.sender.Send([]string{j.recipient}, subject, body) {
		j.logger.Warn("vehicle expiry email not delivered",
			zap.String("recipient", j.recipient),
			zap.Int("expirations", len(upcoming)),
		)
	}

	for _, e := range upcoming {
		j.audit.Record(ctx, notification.TypeVehicleExpiry, e.VehicleID,
			fmt.Sprintf("%s %s expires in %d day(s)", e.Plate, e.DocumentType, e.DaysLeft))
	}

	j.logger.Info("vehicle expiry scan complete", zap.Int("expirations", len(upcoming)))
	return len(upcoming), nil
}

func buildExpirationTable(upcoming []vehicle.UpcomingExpiration) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString("<p>The following vehicle documents expire soon:</p>")
	b.WriteString("<table border=\"1\" cellpadding=\"4\">")
	b.WriteString("<tr><th>Plate</th><th>Owner</th><th>Document</th><th>Expires</th><th>Days left</th></tr>")
	for _, e := range upcoming {
		style := ""
		if e.DaysLeft <= 3 {
			style = " style=\"color:red;font-weight:bold\""
		}
		fmt.Fprintf(&b, "<tr%s><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%d</td></tr>",
			style, e.Plate, e.Owner, e.DocumentType, e.ExpiryDate.Format("2006-01-02"), e.DaysLeft)
	}
	b.WriteString("</table></body></html>")
	return b.String()
}
