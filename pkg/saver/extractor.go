package saver

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ib-77/blocksaver/pkg/block"
	"github.com/ib-77/blocksaver/pkg/rop"
	"github.com/ib-77/blocksaver/pkg/rop/solo"
)

var errNilUnit = errors.New("nil unit")

// Extractor drives one unit through Save and Validate.
type Extractor struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger, now: time.Now}
}

// Extract saves and validates unit. A unit that saves nothing yields an
// invalid record without Validate being called. Failures of either call are
// returned as *ExtractionError.
func (e *Extractor) Extract(ctx context.Context, unit block.Unit) (block.ValidatedRecord, error) {
	return solo.Unpack(e.extract(ctx, -1, solo.Succeed(unit)))
}

type saving struct {
	unit   block.Unit
	record *block.ExtractedRecord
}

// extract is the per-unit engine run by the save cycle's locomotives.
func (e *Extractor) extract(ctx context.Context, index int,
	in rop.Result[block.Unit]) rop.Result[block.ValidatedRecord] {

	saved := solo.Try(ctx, in, func(ctx context.Context, u block.Unit) (saving, error) {
		return e.save(ctx, index, u)
	})

	return solo.Switch(ctx, saved, func(ctx context.Context, s saving) rop.Result[block.ValidatedRecord] {
		if s.record == nil {
			e.logger.Debug("extract: unit saved nothing", zap.String("unit", s.unit.ID()), zap.Int("index", index))
			return rop.Success(block.Absent())
		}

		valid := solo.Try(ctx, solo.Succeed(s.record.Data), func(ctx context.Context, data block.BlockData) (bool, error) {
			ok, err := s.unit.Validate(ctx, data)
			if err != nil {
				return false, &ExtractionError{UnitID: s.unit.ID(), Index: index, Step: StepValidate, Err: err}
			}
			return ok, nil
		})

		return solo.Map(ctx, valid, func(ctx context.Context, ok bool) block.ValidatedRecord {
			return block.Validated(*s.record, ok)
		})
	})
}

func (e *Extractor) save(ctx context.Context, index int, u block.Unit) (saving, error) {
	if rop.IsNil(u) {
		return saving{}, &ExtractionError{Index: index, Step: StepSave, Err: errNilUnit}
	}

	started := e.now()
	rec, err := u.Save(ctx)
	if err != nil {
		return saving{}, &ExtractionError{UnitID: u.ID(), Index: index, Step: StepSave, Err: err}
	}
	if rec == nil {
		return saving{unit: u}, nil
	}

	out := *rec
	if out.ElapsedMs < 0 {
		out.ElapsedMs = float64(e.now().Sub(started).Microseconds()) / 1000
	}
	return saving{unit: u, record: &out}, nil
}
