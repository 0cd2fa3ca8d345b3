package notification

import (
	"errors"
	"sync"

	"github.com/louatizine/erp/internal/mailer"

	"go.uber.org/zap"
)

// ErrQueueFull is reported on the result channel when the async queue
// cannot take another message. The message is dropped; the contract is
// best-effort delivery with a log line, never backpressure on a request.
var ErrQueueFull = errors.New("notification queue full")

// ErrDispatcherClosed is reported when a message arrives after Close.
var ErrDispatcherClosed = errors.New("notification dispatcher closed")

// Result is the delivery outcome of a single dispatch.
type Result struct {
	Delivered bool
	Err       error
}

type envelope struct {
	recipients []string
	subject    string
	body       string
	done       chan Result
}

// Dispatcher hands email to a bounded worker pool. Send is synchronous
// and used by scheduled jobs that iterate recipients; Enqueue is
// fire-and-forget for request-scoped sends, exposing the outcome on a
// channel for the callers (tests, mostly) that want it. No transport
// error ever escapes the dispatcher boundary.
type Dispatcher struct {
	mailer mailer.Mailer
	logger *zap.Logger

	queue chan envelope
	wg    sync.WaitGroup

	// mu orders Enqueue against Close so nothing sends on a closed queue
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

func NewDispatcher(m mailer.Mailer, workers, queueSize int, logger ...*zap.Logger) *Dispatcher {
	l := zap.L().Named("notification.dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.dispatcher")
	}
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	d := &Dispatcher{
		mailer: m,
		logger: l,
		queue:  make(chan envelope, queueSize),
	}

	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.worker()
	}

	return d
}

// Send delivers synchronously and reports whether the transport accepted
// the message. Failures are logged, never raised.
func (d *Dispatcher) Send(recipients []string, subject, body string) bool {
	res := d.deliver(recipients, subject, body)
	return res.Delivered
}

// Enqueue hands the message to the worker pool and returns immediately.
// The returned channel receives exactly one Result; it is buffered, so
// callers are free to ignore it.
func (d *Dispatcher) Enqueue(recipients []string, subject, body string) <-chan Result {
	done := make(chan Result, 1)

	env := envelope{
		recipients: recipients,
		subject:    subject,
		body:       body,
		done:       done,
	}

	d.mu.RLock()
	if d.closed {
		d.mu.RUnlock()
		d.logger.Warn("notification dropped, dispatcher closed",
			zap.Strings("recipients", recipients),
			zap.String("subject", subject),
		)
		done <- Result{Delivered: false, Err: ErrDispatcherClosed}
		return done
	}
	select {
	case d.queue <- env:
	default:
		d.logger.Warn("notification dropped, queue full",
			zap.Strings("recipients", recipients),
			zap.String("subject", subject),
		)
		done <- Result{Delivered: false, Err: ErrQueueFull}
	}
	d.mu.RUnlock()

	return done
}

// Close stops accepting work and waits for in-flight sends to finish.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
	})
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for env := range d.queue {
		env.done <- d.deliver(env.recipients, env.subject, env.body)
	}
}

func (d *Dispatcher) deliver(recipients []string, subject, body string) (res Result) {
	// the transport is third-party code; a panic there must not take
	// down a worker or a request
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("mail transport panicked", zap.Any("panic", r))
			res = Result{Delivered: false, Err: errors.New("mail transport panicked")}
		}
	}()

	if len(recipients) == 0 {
		return Result{Delivered: false, Err: errors.New("no recipients")}
	}

	if err := d.mailer.Send(recipients, subject, body); err != nil {
		d.logger.Error("send email failed",
			zap.Strings("recipients", recipients),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return Result{Delivered: false, Err: err}
	}

	d.logger.Info("email sent",
		zap.Strings("recipients", recipients),
		zap.String("subject", subject),
	)
	return Result{Delivered: true}
}
