package block

import "context"

// BlockData is the tool-specific payload of a block.
type BlockData = map[string]any

// Tunes holds auxiliary per-block settings keyed by tune name.
type Tunes = map[string]any

// Unit is one editable block borrowed by the pipeline for a save cycle.
type Unit interface {
	// ID identifies the unit in errors and logs.
	ID() string
	// Save extracts the persisted representation. A nil record with a nil
	// error means the unit has nothing to save.
	Save(ctx context.Context) (*ExtractedRecord, error)
	// Validate reports whether data is acceptable for the unit's tool.
	Validate(ctx context.Context, data BlockData) (bool, error)
}

// ElapsedUnmeasured marks a record whose unit did not time its own save;
// the extractor fills in the measured duration instead.
const ElapsedUnmeasured = -1.0

// ExtractedRecord is what a unit's Save produces.
type ExtractedRecord struct {
	Tool      string
	Data      BlockData
	ElapsedMs float64
	Tunes     Tunes
}

// ValidatedRecord is an ExtractedRecord with its validation outcome.
type ValidatedRecord struct {
	ExtractedRecord
	IsValid bool
}

// SanitizedRecord has the shape of a ValidatedRecord after sanitization.
// Sanitizers may rewrite Data only.
type SanitizedRecord ValidatedRecord

// Validated builds the record for a successful save.
func Validated(rec ExtractedRecord, valid bool) ValidatedRecord {
	return ValidatedRecord{ExtractedRecord: rec, IsValid: valid}
}

// Absent is the record of a unit whose Save returned nothing.
func Absent() ValidatedRecord {
	return ValidatedRecord{}
}

// Sanitized converts a validated record as-is.
func (r ValidatedRecord) Sanitized() SanitizedRecord {
	return SanitizedRecord(r)
}
