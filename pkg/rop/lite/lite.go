package lite

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ib-77/blocksaver/pkg/rop"
	"github.com/ib-77/blocksaver/pkg/rop/core"
)

// Gather runs engine over every input on up to lines concurrent locomotives
// and joins the outcomes positionally: result i always belongs to input i,
// whatever the completion order. lines <= 0 means one line per input, and
// core.WithWorkerOptions on ctx overrides lines.
//
// Gather waits for every locomotive before returning. The returned error is
// the first failure observed (fail-fast cancels the remaining work), or the
// first failed slot in input order when fail-fast is disabled.
func Gather[In, Out any](ctx context.Context, inputs []In, engine core.Engine[In, Out],
	lines int) ([]rop.Result[Out], error) {
	return GatherWithHandler(ctx, inputs, engine, nil, lines)
}

// GatherWithHandler is Gather with a callback invoked after each input is
// processed, from the locomotive that processed it.
func GatherWithHandler[In, Out any](ctx context.Context, inputs []In, engine core.Engine[In, Out],
	onResult func(ctx context.Context, index int, out rop.Result[Out]), lines int) ([]rop.Result[Out], error) {

	slots := make([]rop.Result[Out], len(inputs))
	if len(inputs) == 0 {
		return slots, ctx.Err()
	}

	lines = core.GetWorkerMaxCount(ctx, lines)
	if lines <= 0 || lines > len(inputs) {
		lines = len(inputs)
	}

	g, gCtx := errgroup.WithContext(ctx)
	inputCh := core.ToChanIndexed(gCtx, inputs)

	for i := 0; i < lines; i++ {
		g.Go(func() error {
			return core.Locomotive(gCtx, inputCh, slots, engine, onResult)
		})
	}

	err := g.Wait()
	// the feed may still hold a value nobody will take once a line failed
	core.Drain(inputCh)

	failed := rop.FirstFailure(slots)
	complete := filled(slots)
	switch {
	case complete && failed == nil:
		// a cancellation that arrived after the last input was processed
		return slots, nil
	case err == nil && failed != nil:
		err = failed
	case err == nil:
		err = ctx.Err()
	}
	return slots, err
}

func filled[T any](slots []rop.Result[T]) bool {
	for _, s := range slots {
		if s.IsEmpty() {
			return false
		}
	}
	return true
}
