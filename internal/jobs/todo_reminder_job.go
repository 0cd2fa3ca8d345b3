package jobs

import (
	"context"
	"fmt"
	"strings"

	"github.com/louatizine/erp/internal/notification"
	"github.com/louatizine/erp/internal/todo"

	"go.uber.org/zap"
)

// TodoScanner is the slice of the todo service this job needs.
type TodoScanner interface {
	DueSoon(ctx context.Context) ([]todo.Todo, error)
	Overdue(ctx context.Context) ([]todo.Todo, error)
}

// TodoReminderJob mails reminders for tasks due in about a day and
// nags about overdue ones. A task goes to its owner when the owner
// field holds an address, otherwise to the admins.
type TodoReminderJob struct {
	todos     TodoScanner
	directory AdminDirectory
	sender    Sender
	audit     AuditTrail
	logger    *zap.Logger
}

func NewTodoReminderJob(todos TodoScanner, directory AdminDirectory, sender Sender, audit AuditTrail, logger ...*zap.Logger) *TodoReminderJob {
	l := zap.L().Named("jobs.todo_reminder")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("jobs.todo_reminder")
	}
	return &TodoReminderJob{
		todos:     todos,
		directory: directory,
		sender:    sender,
		audit:     audit,
		logger:    l,
	}
}

// Run implements cron.Job.
func (j *TodoReminderJob) Run() {
	if err := j.Scan(context.Background()); err != nil {
		j.logger.Error("todo reminder scan failed", zap.Error(err))
	}
}

func (j *TodoReminderJob) Scan(ctx context.Context) error {
	dueSoon, err := j.todos.DueSoon(ctx)
	if err != nil {
		return err
	}
	overdue, err := j.todos.Overdue(ctx)
	if err != nil {
		return err
	}
	if len(dueSoon) == 0 && len(overdue) == 0 {
		j.logger.Info("no todo reminders to send")
		return nil
	}

	admins, err := j.directory.AdminEmails(ctx)
	if err != nil {
		j.logger.Warn("admin lookup failed, ownerless tasks skipped", zap.Error(err))
	}

	for _, t := range overdue {
		subject := fmt.Sprintf("Overdue Task: %s", t.Title)
		body := fmt.Sprintf("Task %q was due on %s and is still pending.",
			t.Title, t.Due.Format("2006-01-02 15:04"))
		j.remind(ctx, t, admins, subject, body)
	}
	for _, t := range dueSoon {
		subject := fmt.Sprintf("Task Due Tomorrow: %s", t.Title)
		body := fmt.Sprintf("Task %q is due on %s.",
			t.Title, t.Due.Format("2006-01-02 15:04"))
		j.remind(ctx, t, admins, subject, body)
	}

	j.logger.Info("todo reminder scan complete",
		zap.Int("due_soon", len(dueSoon)),
		zap.Int("overdue", len(overdue)),
	)
	return nil
}

func (j *TodoReminderJob) remind(ctx context.Context, t todo.Todo, admins []string, subject, body string) {
	recipients := admins
	if strings.Contains(t.Owner, "@") {
		recipients = []string{t.Owner}
	}
	if len(recipients) == 0 {
		j.logger.Warn("todo reminder has no recipient", zap.String("todo_id", t.ID.Hex()))
		return
	}

	if !j.sender.Send(recipients, subject, body) {
		j.logger.Warn("todo reminder not delivered",
			zap.String("todo_id", t.ID.Hex()),
			zap.Strings("recipients", recipients),
		)
	}
	j.audit.Record(ctx, notification.TypeTodoReminder, t.ID.Hex(), subject)
}
