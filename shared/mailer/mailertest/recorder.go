// Package mailertest provides a recording mailer.Sender for tests.
package mailertest

import (
	"context"
	"sync"

	"github.com/vasapolrittideah/cashflower/shared/mailer"
)

var _ mailer.Sender = (*Recorder)(nil)

// Recorder captures sent emails instead of delivering them.
type Recorder struct {
	mu   sync.Mutex
	sent []mailer.Email
	// Err, when set, is returned from Send and nothing is recorded.
	Err error
}

func (r *Recorder) Send(_ context.Context, email mailer.Email) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	r.sent = append(r.sent, email)
	return nil
}

// Sent returns a copy of the recorded emails.
func (r *Recorder) Sent() []mailer.Email {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]mailer.Email(nil), r.sent...)
}
