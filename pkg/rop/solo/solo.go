package solo

import (
	"context"

	"github.com/ib-77/blocksaver/pkg/rop"
)

func Succeed[T any](input T) rop.Result[T] {
	return rop.Success(input)
}

func Switch[In any, Out any](ctx context.Context,
	input rop.Result[In],
	onSuccess func(ctx context.Context, r In) rop.Result[Out]) rop.Result[Out] {

	if input.IsSuccess() {
		return onSuccess(ctx, input.Result())
	}
	return rop.Forward[In, Out](input)
}

func Map[In any, Out any](ctx context.Context,
	input rop.Result[In],
	onSuccess func(ctx context.Context, r In) Out) rop.Result[Out] {

	if input.IsSuccess() {
		return rop.Success(onSuccess(ctx, input.Result()))
	}
	return rop.Forward[In, Out](input)
}

// Try runs onTryExecute on a successful input. A returned error moves the
// result to the failure track, or to the cancel track when it is a context
// cancellation or deadline.
func Try[In any, Out any](ctx context.Context, input rop.Result[In],
	onTryExecute func(ctx context.Context, r In) (Out, error)) rop.Result[Out] {

	if !input.IsSuccess() {
		return rop.Forward[In, Out](input)
	}

	out, err := onTryExecute(ctx, input.Result())
	if err != nil {
		if rop.IsCancellationError(err) {
			return rop.Cancel[Out](err)
		}
		return rop.Fail[Out](err)
	}
	return rop.Success(out)
}

// Unpack collapses a result into the usual (value, error) pair.
func Unpack[T any](input rop.Result[T]) (T, error) {
	if input.IsSuccess() {
		return input.Result(), nil
	}
	var zero T
	return zero, input.Err()
}
