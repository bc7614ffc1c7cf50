package domain

import (
	"errors"
	"fmt"
	"strings"

	apperrors "github.com/Xrenya/activity-tracker/internal/platform/errors"
)

const (
	DefaultDateFrom = "2020-12-01"
	DefaultDateTo   = "2020-12-31"
	DefaultTimeFrom = "07:00:00"
	DefaultTimeTo   = "23:00:00"
)

var ErrTrackIDType = errors.New("track id type does not match the track_id column")

type CategoryColumn string

const (
	CategoryTop1 CategoryColumn = "top-1"
	CategoryTop2 CategoryColumn = "top-2"

	DefaultCategory = CategoryTop1
)

var CategoryColumns = []CategoryColumn{CategoryTop1, CategoryTop2}

func ParseCategoryColumn(raw string) (CategoryColumn, error) {
	switch c := CategoryColumn(strings.TrimSpace(raw)); c {
	case CategoryTop1, CategoryTop2:
		return c, nil
	default:
		return "", fmt.Errorf("%w: unknown category column %q", apperrors.ErrInvalidInput, raw)
	}
}

// Of returns the category label this column selects from a record.
func (c CategoryColumn) Of(r JoinedRecord) NullString {
	switch c {
	case CategoryTop1:
		return r.Top1
	case CategoryTop2:
		return r.Top2
	default:
		panic(fmt.Sprintf("unknown category column %q", string(c)))
	}
}

// FilterParams carries the user's filter inputs. A nil bound is absent and
// resolves to its default.
type FilterParams struct {
	TrackID  TrackID
	DateFrom *string
	DateTo   *string
	TimeFrom *string
	TimeTo   *string
}

type Bounds struct {
	DateFrom string
	DateTo   string
	TimeFrom string
	TimeTo   string
}

func (p FilterParams) Bounds() Bounds {
	return Bounds{
		DateFrom: valueOr(p.DateFrom, DefaultDateFrom),
		DateTo:   valueOr(p.DateTo, DefaultDateTo),
		TimeFrom: valueOr(p.TimeFrom, DefaultTimeFrom),
		TimeTo:   valueOr(p.TimeTo, DefaultTimeTo),
	}
}

func valueOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}

// Contains applies the four inclusive range predicates. Dates and times are
// compared as plain strings, so "2020-12-9" sorts after "2020-12-10".
func (b Bounds) Contains(r JoinedRecord) bool {
	if !r.Date.Valid {
		return false
	}
	return r.Date.String >= b.DateFrom &&
		r.Date.String <= b.DateTo &&
		r.Time >= b.TimeFrom &&
		r.Time <= b.TimeTo
}

// Filter returns the records within the bounds that belong to the track id,
// in table order.
func Filter(table Table, params FilterParams) (rows []JoinedRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			rows = nil
			err = fmt.Errorf("filter: %v", r)
		}
	}()
	if !table.HasTrackKind(params.TrackID.Kind()) {
		return nil, fmt.Errorf("%w: got %s id %q", ErrTrackIDType, params.TrackID.Kind(), params.TrackID.String())
	}
	bounds := params.Bounds()
	rows = make([]JoinedRecord, 0)
	table.each(func(r JoinedRecord) bool {
		if bounds.Contains(r) && r.TrackID == params.TrackID {
			rows = append(rows, r)
		}
		return true
	})
	return rows, nil
}

type FilterOutcome int

const (
	OutcomeFiltered FilterOutcome = iota
	OutcomeFallbackFull
)

func (o FilterOutcome) String() string {
	if o == OutcomeFallbackFull {
		return "fallback-full"
	}
	return "filtered"
}

// FilterResult is either the filtered rows or, when filtering failed for any
// reason, the whole table.
type FilterResult struct {
	Outcome FilterOutcome
	Records []JoinedRecord
	Cause   error
}

func (r FilterResult) Fallback() bool { return r.Outcome == OutcomeFallbackFull }

func FilterOrFallback(table Table, params FilterParams) FilterResult {
	rows, err := Filter(table, params)
	if err != nil {
		return FullTable(table, err)
	}
	return FilterResult{Outcome: OutcomeFiltered, Records: rows}
}

// FullTable substitutes the unfiltered table for a failed filter step.
func FullTable(table Table, cause error) FilterResult {
	return FilterResult{Outcome: OutcomeFallbackFull, Records: table.Records(), Cause: cause}
}
