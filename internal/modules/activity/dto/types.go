package dto

// FilterInput carries the dashboard controls. TrackIDKind is "int", "string"
// or empty to type the id from its text. Nil bounds use the defaults.
type FilterInput struct {
	TrackID     string
	TrackIDKind string
	Category    string
	DateFrom    *string
	DateTo      *string
	TimeFrom    *string
	TimeTo      *string
}

type TrackIDOutput struct {
	Value string
	Kind  string
}

type TimelinePointOutput struct {
	DateTime string
	Date     string
	Time     string
	TrackID  string
	Category string
	Power    int
}

type TimelineOutput struct {
	Category string
	Fallback bool
	Points   []TimelinePointOutput
}

type CategoryTotalOutput struct {
	Category     string
	Null         bool
	TotalMinutes float64
}

type TotalsOutput struct {
	Category string
	Fallback bool
	Totals   []CategoryTotalOutput
}

type TrackCategoryTotalOutput struct {
	TrackID      string
	Category     string
	Null         bool
	TotalMinutes float64
}

type TrackTotalsOutput struct {
	Category string
	Totals   []TrackCategoryTotalOutput
}

type SummaryOutput struct {
	Records       int
	TrackIDs      int
	UnmatchedDays int
	TotalMinutes  float64
}

type ReindexInput struct {
	Category string
}

type ReindexOutput struct {
	Records  int
	Category string
	Totals   []CategoryTotalOutput
}
