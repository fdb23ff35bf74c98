package submit

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFuture_SettlesOnce(t *testing.T) {
	f := NewFuture()
	if !f.Resolve(Result{Success: true}) {
		t.Fatal("first Resolve should settle")
	}
	if f.Reject(errors.New("late")) {
		t.Error("Reject after Resolve should not settle")
	}
	res, err := f.Await(context.Background())
	if err != nil || !res.Success {
		t.Errorf("Await = %+v, %v", res, err)
	}
}

func TestFuture_Rejected(t *testing.T) {
	boom := errors.New("boom")
	_, err := Rejected(boom).Await(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
	if _, err := Rejected(nil).Await(context.Background()); err == nil {
		t.Error("Reject(nil) should still carry an error")
	}
}

func TestFuture_AwaitContext(t *testing.T) {
	f := NewFuture()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := f.Await(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
	select {
	case <-f.Done():
		t.Error("future should still be pending")
	default:
	}
}
