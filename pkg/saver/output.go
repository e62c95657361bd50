package saver

import (
	"time"

	"go.uber.org/zap"

	"github.com/ib-77/blocksaver/pkg/block"
)

// Stats are diagnostics of one build. They are not part of the document.
type Stats struct {
	TotalElapsedMs float64
	Emitted        int
	Skipped        int
}

// OutputBuilder folds sanitized records into the output document.
type OutputBuilder struct {
	stubTool string
	now      func() time.Time
	logger   *zap.Logger
}

func NewOutputBuilder(stubTool string, logger *zap.Logger) *OutputBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OutputBuilder{stubTool: stubTool, now: time.Now, logger: logger}
}

func (b *OutputBuilder) Build(records []block.SanitizedRecord, version string) block.OutputDocument {
	doc, _ := b.BuildWithStats(records, version)
	return doc
}

// BuildWithStats keeps valid records in order, unwraps stub records and
// stamps the document with the current time and version.
func (b *OutputBuilder) BuildWithStats(records []block.SanitizedRecord,
	version string) (block.OutputDocument, Stats) {

	var stats Stats
	blocks := make([]block.OutputBlock, 0, len(records))

	for i, rec := range records {
		stats.TotalElapsedMs += rec.ElapsedMs

		if !rec.IsValid {
			stats.Skipped++
			b.logger.Debug("build: block skipped because saved data is invalid",
				zap.Int("index", i), zap.String("tool", rec.Tool))
			continue
		}

		if rec.Tool == b.stubTool {
			blocks = append(blocks, block.StubBlock(rec.Data))
		} else {
			blocks = append(blocks, block.WrapBlock(rec.Tool, rec.Data, rec.Tunes))
		}
		stats.Emitted++
	}

	b.logger.Debug("build: total", zap.Float64("elapsed_ms", stats.TotalElapsedMs),
		zap.Int("emitted", stats.Emitted), zap.Int("skipped", stats.Skipped))

	return block.OutputDocument{
		Time:    b.now().UnixMilli(),
		Blocks:  blocks,
		Version: version,
	}, stats
}
