package core

import "context"

type OptionKey string

const (
	ProcessOptionKey OptionKey = "process_options"
	WorkerOptionKey  OptionKey = "worker_options"
)

type MaxLimitOption struct {
	Value int
}

type WorkerOptions struct {
	MaxCount MaxLimitOption
}

type ProcessOptions struct {
	FailFast bool
}

// WithProcessOptions controls whether the first failed input stops the
// remaining workers.
func WithProcessOptions(ctx context.Context, failFast bool) context.Context {
	return context.WithValue(ctx, ProcessOptionKey, ProcessOptions{FailFast: failFast})
}

// WithWorkerOptions bounds the number of concurrent workers. Zero or less
// means one worker per input.
func WithWorkerOptions(ctx context.Context, maxWorkers int) context.Context {
	return context.WithValue(ctx, WorkerOptionKey, WorkerOptions{MaxLimitOption{Value: maxWorkers}})
}

func GetWorkerMaxCount(ctx context.Context, defaultMaxWorkers int) int {
	options, ok := ctx.Value(WorkerOptionKey).(WorkerOptions)
	if ok {
		return options.MaxCount.Value
	}
	return defaultMaxWorkers
}

func IsFailFastEnabled(ctx context.Context, defaultFailFast bool) bool {
	options, ok := ctx.Value(ProcessOptionKey).(ProcessOptions)
	if ok {
		return options.FailFast
	}
	return defaultFailFast
}
