package saver

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ib-77/blocksaver/pkg/block"
	"github.com/ib-77/blocksaver/pkg/rop"
	"github.com/ib-77/blocksaver/pkg/rop/lite"
	"github.com/ib-77/blocksaver/pkg/sanitize"
	"github.com/ib-77/blocksaver/pkg/tools"
	"github.com/ib-77/blocksaver/pkg/tracker"
)

// Sanitizer cleans a batch of extracted records. The returned batch must have
// the same length and order, with Tool, IsValid and Tunes untouched.
type Sanitizer interface {
	SanitizeBlocks(ctx context.Context, records []block.ValidatedRecord) ([]block.SanitizedRecord, error)
}

// Config holds the per-editor settings of a Saver.
type Config struct {
	// Version is embedded verbatim in every document.
	Version string
	// StubTool is the tool whose data is emitted unwrapped.
	StubTool string
	// MaxWorkers bounds concurrent extractions; 0 runs all units at once.
	MaxWorkers int
}

type Option func(*Saver)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Saver) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces the clock used for the document time.
func WithClock(now func() time.Time) Option {
	return func(s *Saver) {
		if now != nil {
			s.now = now
		}
	}
}

// Saver turns the current blocks of an editor into an OutputDocument.
// Save cycles on the same tracker must not overlap.
type Saver struct {
	cfg       Config
	sanitizer Sanitizer
	tracker   tracker.ChangeTracker
	logger    *zap.Logger
	now       func() time.Time
	extractor *Extractor
	builder   *OutputBuilder
}

// New builds a Saver. A nil sanitizer passes data through unchanged; a nil
// tracker is never touched.
func New(cfg Config, sanitizer Sanitizer, changes tracker.ChangeTracker, opts ...Option) *Saver {
	if cfg.StubTool == "" {
		cfg.StubTool = tools.DefaultStubTool
	}
	if sanitizer == nil {
		sanitizer = sanitize.Passthrough{}
	}

	s := &Saver{
		cfg:       cfg,
		sanitizer: sanitizer,
		tracker:   changes,
		logger:    zap.NewNop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.extractor = NewExtractor(s.logger.Named("extractor"))
	s.builder = NewOutputBuilder(cfg.StubTool, s.logger.Named("builder"))
	s.builder.now = s.now
	return s
}

// Save runs one save cycle over units.
func (s *Saver) Save(ctx context.Context, units []block.Unit) (block.OutputDocument, error) {
	doc, _, err := s.SaveWithStats(ctx, units)
	return doc, err
}

// SaveWithStats is Save that also reports build diagnostics.
//
// The change tracker is disabled for the extraction phase and enabled again
// exactly once, on success right after the join and on failure before
// returning. A failed cycle returns no document.
func (s *Saver) SaveWithStats(ctx context.Context, units []block.Unit) (block.OutputDocument, Stats, error) {
	log := s.logger.With(zap.String("cycle", uuid.NewString()))
	start := time.Now()
	log.Debug("save: start", zap.Int("units", len(units)))

	guard := tracker.Hold(s.tracker)
	defer guard.Release()

	extracted, err := s.extractAll(ctx, units, log)
	if err != nil {
		if rop.IsCancellationError(err) {
			log.Info("save: cancelled", zap.Error(err))
		} else {
			log.Warn("save: extraction failed", zap.Error(err))
		}
		return block.OutputDocument{}, Stats{}, err
	}
	guard.Release()

	sanitized, err := s.sanitize(ctx, extracted)
	if err != nil {
		log.Warn("save: sanitization failed", zap.Error(err))
		return block.OutputDocument{}, Stats{}, err
	}

	doc, stats := s.builder.BuildWithStats(sanitized, s.cfg.Version)

	log.Info("save: finish",
		zap.Int("blocks", stats.Emitted),
		zap.Int("skipped", stats.Skipped),
		zap.Float64("elapsed_ms_total", stats.TotalElapsedMs),
		zap.Duration("duration", time.Since(start)),
	)
	return doc, stats, nil
}

func (s *Saver) extractAll(ctx context.Context, units []block.Unit,
	log *zap.Logger) ([]block.ValidatedRecord, error) {

	onResult := func(_ context.Context, index int, out rop.Result[block.ValidatedRecord]) {
		if out.IsSuccess() {
			log.Debug("save: unit extracted",
				zap.Int("index", index),
				zap.String("tool", out.Result().Tool),
				zap.Bool("valid", out.Result().IsValid))
		}
	}

	results, err := lite.GatherWithHandler(ctx, units, s.extractor.extract, onResult, s.cfg.MaxWorkers)
	if err != nil {
		var xerr *ExtractionError
		if !errors.As(err, &xerr) {
			err = &ExtractionError{Index: -1, Step: StepJoin, Err: err}
		}
		return nil, err
	}

	records := make([]block.ValidatedRecord, len(results))
	for i, r := range results {
		records[i] = r.Result()
	}
	return records, nil
}

func (s *Saver) sanitize(ctx context.Context, records []block.ValidatedRecord) ([]block.SanitizedRecord, error) {
	out, err := s.sanitizer.SanitizeBlocks(ctx, records)
	if err != nil {
		return nil, &SanitizationError{Reason: "sanitizer call", Err: err}
	}
	if len(out) != len(records) {
		return nil, &SanitizationError{
			Reason: fmt.Sprintf("returned %d records for %d inputs", len(out), len(records)),
		}
	}
	for i := range out {
		if out[i].Tool != records[i].Tool || out[i].IsValid != records[i].IsValid {
			return nil, &SanitizationError{
				Reason: fmt.Sprintf("record %d changed from %q/%v to %q/%v",
					i, records[i].Tool, records[i].IsValid, out[i].Tool, out[i].IsValid),
			}
		}
		if !sameTunes(out[i].Tunes, records[i].Tunes) {
			return nil, &SanitizationError{Reason: fmt.Sprintf("record %d tunes changed", i)}
		}
	}
	return out, nil
}

// sameTunes treats nil and empty tunes as equal; both are omitted on output.
func sameTunes(a, b block.Tunes) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}
