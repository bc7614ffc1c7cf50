package domain

import (
	"errors"
	"fmt"

	apperrors "github.com/Xrenya/activity-tracker/internal/platform/errors"
)

// Table is the joined dataset. It is built once and never mutated; every
// accessor hands out copies.
type Table struct {
	records  []JoinedRecord
	trackIDs []TrackID
	kinds    map[TrackKind]bool
}

func NewTable(records []JoinedRecord) Table {
	owned := make([]JoinedRecord, len(records))
	copy(owned, records)
	seen := map[TrackID]bool{}
	kinds := map[TrackKind]bool{}
	ids := make([]TrackID, 0)
	for _, r := range owned {
		kinds[r.TrackID.Kind()] = true
		if seen[r.TrackID] {
			continue
		}
		seen[r.TrackID] = true
		ids = append(ids, r.TrackID)
	}
	return Table{records: owned, trackIDs: ids, kinds: kinds}
}

func (t Table) Len() int { return len(t.records) }

func (t Table) Records() []JoinedRecord {
	out := make([]JoinedRecord, len(t.records))
	copy(out, t.records)
	return out
}

// TrackIDs lists distinct track ids in order of first appearance.
func (t Table) TrackIDs() []TrackID {
	out := make([]TrackID, len(t.trackIDs))
	copy(out, t.trackIDs)
	return out
}

func (t Table) HasTrackKind(kind TrackKind) bool {
	return t.kinds[kind]
}

func (t Table) each(fn func(JoinedRecord) bool) {
	for _, r := range t.records {
		if !fn(r) {
			return
		}
	}
}

// DataLoadError reports an unreadable or malformed input table.
type DataLoadError struct {
	Source string
	Line   int
	Err    error
}

func (e *DataLoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s line %d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

func (e *DataLoadError) Is(target error) bool {
	return target == apperrors.ErrDataLoad
}

func IsDataLoadError(err error) bool {
	var loadErr *DataLoadError
	return errors.As(err, &loadErr)
}
