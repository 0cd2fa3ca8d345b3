package notification_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/louatizine/erp/internal/notification"

	"github.com/stretchr/testify/assert"
)

type fakeMailer struct {
	mu    sync.Mutex
	sent  [][]string
	errFn func(recipients []string) error
}

func (f *fakeMailer) Send(recipients []string, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errFn != nil {
		if err := f.errFn(recipients); err != nil {
			return err
		}
	}
	f.sent = append(f.sent, recipients)
	return nil
}

func (f *fakeMailer) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func TestDispatcher_Send(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		m := &fakeMailer{}
		d := notification.NewDispatcher(m, 1, 4)
		defer d.Close()

		delivered := d.Send([]string{"hr@example.com"}, "subject", "body")

		assert.True(t, delivered)
		assert.Equal(t, 1, m.sentCount())
	})

	t.Run("negative transport failure reported as not delivered", func(t *testing.T) {
		m := &fakeMailer{errFn: func([]string) error {
			return errors.New("smtp: connection refused")
		}}
		d := notification.NewDispatcher(m, 1, 4)
		defer d.Close()

		delivered := d.Send([]string{"hr@example.com"}, "subject", "body")

		assert.False(t, delivered)
		assert.Equal(t, 0, m.sentCount())
	})

	t.Run("negative no recipients", func(t *testing.T) {
		m := &fakeMailer{}
		d := notification.NewDispatcher(m, 1, 4)
		defer d.Close()

		assert.False(t, d.Send(nil, "subject", "body"))
	})
}

func TestDispatcher_Enqueue(t *testing.T) {
	t.Run("result observable without sleeping", func(t *testing.T) {
		m := &fakeMailer{}
		d := notification.NewDispatcher(m, 2, 4)
		defer d.Close()

		done := d.Enqueue([]string{"admin@example.com"}, "leave request", "body")

		select {
		case res := <-done:
			assert.True(t, res.Delivered)
			assert.NoError(t, res.Err)
		case <-time.After(2 * time.Second):
			t.Fatal("dispatch result never arrived")
		}
		assert.Equal(t, 1, m.sentCount())
	})

	t.Run("failure surfaces on the result channel only", func(t *testing.T) {
		m := &fakeMailer{errFn: func([]string) error {
			return errors.New("smtp: auth failed")
		}}
		d := notification.NewDispatcher(m, 1, 4)
		defer d.Close()

		res := <-d.Enqueue([]string{"admin@example.com"}, "subject", "body")

		assert.False(t, res.Delivered)
		assert.Error(t, res.Err)
	})

	t.Run("queue full drops with explicit error", func(t *testing.T) {
		started := make(chan struct{})
		block := make(chan struct{})
		var once sync.Once
		m := &fakeMailer{errFn: func([]string) error {
			once.Do(func() { close(started) })
			<-block
			return nil
		}}
		// one worker, queue of one: first send occupies the worker,
		// second fills the queue, third must be dropped
		d := notification.NewDispatcher(m, 1, 1)

		first := d.Enqueue([]string{"a@example.com"}, "s", "b")
		<-started
		second := d.Enqueue([]string{"b@example.com"}, "s", "b")
		res := <-d.Enqueue([]string{"c@example.com"}, "s", "b")

		assert.False(t, res.Delivered)
		assert.ErrorIs(t, res.Err, notification.ErrQueueFull)

		close(block)
		<-first
		<-second
		d.Close()
	})

	t.Run("enqueue after close reports closed instead of panicking", func(t *testing.T) {
		m := &fakeMailer{}
		d := notification.NewDispatcher(m, 1, 4)
		d.Close()

		res := <-d.Enqueue([]string{"admin@example.com"}, "subject", "body")

		assert.False(t, res.Delivered)
		assert.ErrorIs(t, res.Err, notification.ErrDispatcherClosed)
		assert.Equal(t, 0, m.sentCount())
	})
}
