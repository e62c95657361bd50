package core

import (
	"context"

	"github.com/ib-77/blocksaver/pkg/rop"
	"github.com/ib-77/blocksaver/pkg/rop/solo"
)

// Engine processes one input taken off the success track.
type Engine[In, Out any] func(ctx context.Context, index int, input rop.Result[In]) rop.Result[Out]

// Locomotive pulls indexed inputs until the channel closes, runs engine on
// each and stores the outcome in slots at the input's index. Every index is
// delivered to exactly one locomotive, so slots needs no locking.
//
// With fail-fast enabled the first failed result stops this locomotive and
// its error is returned; the caller is expected to cancel ctx for the rest.
func Locomotive[In, Out any](ctx context.Context, inputCh <-chan Indexed[In], slots []rop.Result[Out],
	engine Engine[In, Out], onResult func(ctx context.Context, index int, out rop.Result[Out])) error {

	failFast := IsFailFastEnabled(ctx, true)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in, ok := <-inputCh:
			if !ok {
				return nil
			}

			if err := ctx.Err(); err != nil {
				slots[in.Index] = rop.Cancel[Out](err)
				return err
			}

			out := engine(ctx, in.Index, solo.Succeed(in.Value))
			slots[in.Index] = out

			if onResult != nil {
				onResult(ctx, in.Index, out)
			}

			if failFast && out.IsFailure() {
				return out.Err()
			}
		}
	}
}
