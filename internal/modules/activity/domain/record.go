package domain

import (
	"strconv"
	"strings"
)

const (
	// Power marks that a detection occurred. It is constant for every row.
	Power = 1
	// Delta is the per-event time weight summed by the aggregator.
	Delta = 13
	// MinutesDivisor scales summed deltas into the reported minute totals.
	MinutesDivisor = 60.0

	ActivitySeparator = ";"
	NullLabel         = "(none)"
)

// NullString is text that may be missing, e.g. a date for an unknown day id.
type NullString struct {
	String string
	Valid  bool
}

func Text(s string) NullString {
	return NullString{String: s, Valid: true}
}

func (n NullString) Label() string {
	if !n.Valid {
		return NullLabel
	}
	return n.String
}

// Less orders valid values lexicographically and puts nulls last.
func (n NullString) Less(o NullString) bool {
	if n.Valid != o.Valid {
		return n.Valid
	}
	return n.String < o.String
}

type TrackKind int

const (
	TrackKindNone TrackKind = iota
	TrackKindInt
	TrackKindString
)

func (k TrackKind) String() string {
	switch k {
	case TrackKindInt:
		return "int"
	case TrackKindString:
		return "string"
	default:
		return "none"
	}
}

// TrackID identifies a tracked person. It is either an integer or a string and
// two ids are equal only when both kind and value match.
type TrackID struct {
	kind TrackKind
	num  int64
	text string
}

func IntTrackID(n int64) TrackID {
	return TrackID{kind: TrackKindInt, num: n}
}

func StringTrackID(s string) TrackID {
	return TrackID{kind: TrackKindString, text: s}
}

// ParseTrackID types a single value the way a track_id column would be typed
// if it held only this value.
func ParseTrackID(raw string) TrackID {
	if n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err == nil {
		return IntTrackID(n)
	}
	return StringTrackID(raw)
}

// TypeTrackColumn types a whole track_id column: integers only when every
// value parses as one, otherwise every value is kept as a string.
func TypeTrackColumn(raw []string) []TrackID {
	out := make([]TrackID, len(raw))
	nums := make([]int64, len(raw))
	for i, v := range raw {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			for j, s := range raw {
				out[j] = StringTrackID(s)
			}
			return out
		}
		nums[i] = n
	}
	for i, n := range nums {
		out[i] = IntTrackID(n)
	}
	return out
}

var DefaultTrackID = IntTrackID(1)

func (t TrackID) Kind() TrackKind { return t.kind }
func (t TrackID) IsZero() bool    { return t.kind == TrackKindNone }

func (t TrackID) Int() (int64, bool) {
	return t.num, t.kind == TrackKindInt
}

func (t TrackID) String() string {
	switch t.kind {
	case TrackKindInt:
		return strconv.FormatInt(t.num, 10)
	case TrackKindString:
		return t.text
	default:
		return ""
	}
}

func (t TrackID) Less(o TrackID) bool {
	if t.kind != o.kind {
		return t.kind < o.kind
	}
	if t.kind == TrackKindInt {
		return t.num < o.num
	}
	return t.text < o.text
}

type DateLookup struct {
	DayID int
	Date  string
}

type ActivityEvent struct {
	DayID    int
	Time     string
	Name     string
	TrackID  TrackID
	Activity string
}

type JoinedRecord struct {
	DayID    int
	Time     string
	Name     string
	TrackID  TrackID
	Activity string
	Date     NullString
	DateTime NullString
	Top1     NullString
	Top2     NullString
	Power    int
	Delta    int
}

// SplitActivity returns the first two ";"-separated labels of an activity.
// The second label is null when the activity holds no separator.
func SplitActivity(activity string) (NullString, NullString) {
	parts := strings.Split(activity, ActivitySeparator)
	top1 := Text(parts[0])
	if len(parts) < 2 {
		return top1, NullString{}
	}
	return top1, Text(parts[1])
}

// Join derives a JoinedRecord from an event and the date its day id maps to.
func Join(event ActivityEvent, date NullString) JoinedRecord {
	top1, top2 := SplitActivity(event.Activity)
	dateTime := NullString{}
	if date.Valid {
		dateTime = Text(event.Time + " " + date.String)
	}
	return JoinedRecord{
		DayID:    event.DayID,
		Time:     event.Time,
		Name:     event.Name,
		TrackID:  event.TrackID,
		Activity: event.Activity,
		Date:     date,
		DateTime: dateTime,
		Top1:     top1,
		Top2:     top2,
		Power:    Power,
		Delta:    Delta,
	}
}
