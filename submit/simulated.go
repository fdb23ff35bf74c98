package submit

import (
	"context"
	"time"

	"github.com/dalemusser/contactform/form"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultDelay is how long the simulated transport takes to answer.
const DefaultDelay = 2000 * time.Millisecond

// Submitter hands collected form values to a transport. Submit must return
// promptly; the outcome arrives through the Future.
type Submitter interface {
	Submit(ctx context.Context, values form.Values) *Future
}

// SubmitterFunc adapts a function to Submitter.
type SubmitterFunc func(ctx context.Context, values form.Values) *Future

func (fn SubmitterFunc) Submit(ctx context.Context, values form.Values) *Future {
	return fn(ctx, values)
}

// Simulated stands in for a real transport: it waits Delay, logs the
// values, and always succeeds. The wait cannot be cancelled.
type Simulated struct {
	Delay  time.Duration
	Logger *zap.Logger
}

// NewSimulated returns a Simulated submitter with DefaultDelay.
func NewSimulated(logger *zap.Logger) *Simulated {
	return &Simulated{Delay: DefaultDelay, Logger: logger}
}

func (s *Simulated) Submit(_ context.Context, values form.Values) *Future {
	f := NewFuture()
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	time.AfterFunc(s.Delay, func() {
		logger.Info("form data", zap.Object("values", loggedValues(values)))
		f.Resolve(Result{Success: true})
	})
	return f
}

// loggedValues writes form values in declared field order.
type loggedValues form.Values

func (v loggedValues) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	for _, f := range form.Fields() {
		if s, ok := v[f.ID()]; ok {
			enc.AddString(f.ID(), s)
		}
	}
	return nil
}
