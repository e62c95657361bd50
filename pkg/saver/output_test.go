package saver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ib-77/blocksaver/pkg/block"
)

func sanitized(tool string, data block.BlockData, tunes block.Tunes, valid bool, elapsed float64) block.SanitizedRecord {
	return block.SanitizedRecord(block.Validated(block.ExtractedRecord{
		Tool: tool, Data: data, Tunes: tunes, ElapsedMs: elapsed}, valid))
}

func TestBuild_WrapsUnwrapsAndSkips(t *testing.T) {
	t.Parallel()

	b := NewOutputBuilder("stub", nil)
	b.now = func() time.Time { return time.UnixMilli(42) }

	doc, stats := b.BuildWithStats([]block.SanitizedRecord{
		sanitized("paragraph", block.BlockData{"text": "a"}, nil, true, 1.5),
		sanitized("image", block.BlockData{}, nil, false, 2),
		sanitized("stub", block.BlockData{"type": "legacy", "data": map[string]any{"x": 1}}, nil, true, 0.5),
		sanitized("header", block.BlockData{"text": "h"}, block.Tunes{"anchor": "top"}, true, 1),
	}, "v1")

	assert.Equal(t, int64(42), doc.Time)
	assert.Equal(t, "v1", doc.Version)
	assert.Equal(t, Stats{TotalElapsedMs: 5, Emitted: 3, Skipped: 1}, stats)

	assert.Equal(t, []block.OutputBlock{
		block.WrapBlock("paragraph", block.BlockData{"text": "a"}, nil),
		block.StubBlock(block.BlockData{"type": "legacy", "data": map[string]any{"x": 1}}),
		block.WrapBlock("header", block.BlockData{"text": "h"}, block.Tunes{"anchor": "top"}),
	}, doc.Blocks)
}

func TestBuild_EmptyTunesOmitted(t *testing.T) {
	t.Parallel()

	doc := NewOutputBuilder("stub", nil).Build([]block.SanitizedRecord{
		sanitized("paragraph", block.BlockData{}, block.Tunes{}, true, 0),
	}, "v")

	assert.Nil(t, doc.Blocks[0].Tunes)
}
