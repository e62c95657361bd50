package rop

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestResultTracks(t *testing.T) {
	t.Parallel()

	s := Success(1)
	if !s.IsSuccess() || s.IsFailure() || s.IsEmpty() {
		t.Fatalf("unexpected success flags: %+v", s)
	}

	f := Fail[int](errors.New("x"))
	if f.IsSuccess() || !f.IsFailure() || f.IsCancel() {
		t.Fatalf("unexpected failure flags: %+v", f)
	}

	c := Cancel[int](context.Canceled)
	if !c.IsFailure() || !c.IsCancel() {
		t.Fatalf("unexpected cancel flags: %+v", c)
	}

	var empty Result[int]
	if !empty.IsEmpty() || empty.IsFailure() {
		t.Fatalf("zero result must be empty")
	}
}

func TestForwardKeepsIdentity(t *testing.T) {
	t.Parallel()

	c := Cancel[int](context.DeadlineExceeded)
	out := Forward[int, string](c)
	if out.Id() != c.Id() || !out.IsCancel() || !errors.Is(out.Err(), context.DeadlineExceeded) {
		t.Fatalf("forward lost identity or track: %+v", out)
	}
	if !out.CreatedAt().Equal(c.CreatedAt()) {
		t.Fatalf("forward changed creation time")
	}
}

func TestFirstFailure(t *testing.T) {
	t.Parallel()

	first := errors.New("first")
	results := []Result[int]{Success(1), {}, Fail[int](first), Fail[int](errors.New("second"))}
	if err := FirstFailure(results); !errors.Is(err, first) {
		t.Fatalf("expected first failure, got %v", err)
	}
	if err := FirstFailure([]Result[int]{Success(1)}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestIsNilAndCancellation(t *testing.T) {
	t.Parallel()

	var p *int
	var m map[string]int
	if !IsNil(nil) || !IsNil(p) || !IsNil(m) || IsNil(3) {
		t.Fatalf("IsNil misclassified a value")
	}

	if !IsCancellationError(fmt.Errorf("wrapped: %w", context.Canceled)) || IsCancellationError(errors.New("x")) {
		t.Fatalf("IsCancellationError misclassified an error")
	}
}
