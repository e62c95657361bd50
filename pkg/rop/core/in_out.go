package core

import (
	"context"
)

// Indexed pairs a value with its position in the original input so results
// can be joined positionally regardless of completion order.
type Indexed[T any] struct {
	Index int
	Value T
}

// ToChanIndexed feeds values in order, each tagged with its index. The
// channel is closed once every value was sent or ctx is done.
func ToChanIndexed[T any](ctx context.Context, values []T) <-chan Indexed[T] {
	in := make(chan Indexed[T])

	go func() {
		defer close(in)

		if ctx.Err() != nil {
			return
		}

		for i, v := range values {
			select {
			case in <- Indexed[T]{Index: i, Value: v}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return in
}

// Drain reads every remaining value from ch, discarding them.
func Drain[T any](ch <-chan T) {
	for range ch {
	}
}
