// Package sanitize provides reference sanitizers for the save pipeline. They
// only rewrite block data; tool, validity and tunes pass through unchanged.
package sanitize

import (
	"context"
	"strings"

	"github.com/ib-77/blocksaver/pkg/block"
)

// Stage is anything that sanitizes a batch.
type Stage interface {
	SanitizeBlocks(ctx context.Context, records []block.ValidatedRecord) ([]block.SanitizedRecord, error)
}

// Passthrough returns the batch unchanged.
type Passthrough struct{}

func (Passthrough) SanitizeBlocks(_ context.Context, records []block.ValidatedRecord) ([]block.SanitizedRecord, error) {
	out := make([]block.SanitizedRecord, len(records))
	for i, r := range records {
		out[i] = r.Sanitized()
	}
	return out, nil
}

// Func sanitizes each valid record's data with a per-record function.
// Invalid records are passed through untouched.
type Func func(ctx context.Context, tool string, data block.BlockData) (block.BlockData, error)

func (f Func) SanitizeBlocks(ctx context.Context, records []block.ValidatedRecord) ([]block.SanitizedRecord, error) {
	out := make([]block.SanitizedRecord, len(records))
	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if r.IsValid {
			data, err := f(ctx, r.Tool, r.Data)
			if err != nil {
				return nil, err
			}
			r.Data = data
		}
		out[i] = r.Sanitized()
	}
	return out, nil
}

// TrimSpace trims surrounding whitespace from every string in block data,
// including strings nested in lists and objects.
func TrimSpace() Func {
	return func(_ context.Context, _ string, data block.BlockData) (block.BlockData, error) {
		if data == nil {
			return nil, nil
		}
		return trimValue(data).(block.BlockData), nil
	}
}

func trimValue(v any) any {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = trimValue(x)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = trimValue(x)
		}
		return out
	default:
		return v
	}
}

// Chain runs stages in order, feeding each stage the previous output.
type Chain []Stage

func (c Chain) SanitizeBlocks(ctx context.Context, records []block.ValidatedRecord) ([]block.SanitizedRecord, error) {
	if len(c) == 0 {
		return Passthrough{}.SanitizeBlocks(ctx, records)
	}

	current := records
	var out []block.SanitizedRecord
	for _, stage := range c {
		var err error
		out, err = stage.SanitizeBlocks(ctx, current)
		if err != nil {
			return nil, err
		}
		current = make([]block.ValidatedRecord, len(out))
		for i, r := range out {
			current[i] = block.ValidatedRecord(r)
		}
	}
	return out, nil
}
