package domain

import (
	"sort"
)

type CategoryTotal struct {
	Category     NullString
	TotalMinutes float64
}

type TrackCategoryTotal struct {
	TrackID      TrackID
	Category     NullString
	TotalMinutes float64
}

// Aggregate sums Delta per category label and scales the sums to minutes.
// Rows without a label form their own group, ordered last.
func Aggregate(rows []JoinedRecord, column CategoryColumn) ([]CategoryTotal, error) {
	if _, err := ParseCategoryColumn(string(column)); err != nil {
		return nil, err
	}
	sums := map[NullString]int{}
	for _, r := range rows {
		sums[column.Of(r)] += r.Delta
	}
	out := make([]CategoryTotal, 0, len(sums))
	for category, sum := range sums {
		out = append(out, CategoryTotal{Category: category, TotalMinutes: float64(sum) / MinutesDivisor})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Category.Less(out[j].Category)
	})
	return out, nil
}

type trackCategoryKey struct {
	track    TrackID
	category NullString
}

// AggregateByTrackAndCategory groups jointly by track id and category label.
func AggregateByTrackAndCategory(rows []JoinedRecord, column CategoryColumn) ([]TrackCategoryTotal, error) {
	if _, err := ParseCategoryColumn(string(column)); err != nil {
		return nil, err
	}
	sums := map[trackCategoryKey]int{}
	for _, r := range rows {
		sums[trackCategoryKey{track: r.TrackID, category: column.Of(r)}] += r.Delta
	}
	out := make([]TrackCategoryTotal, 0, len(sums))
	for key, sum := range sums {
		out = append(out, TrackCategoryTotal{
			TrackID:      key.track,
			Category:     key.category,
			TotalMinutes: float64(sum) / MinutesDivisor,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TrackID != out[j].TrackID {
			return out[i].TrackID.Less(out[j].TrackID)
		}
		return out[i].Category.Less(out[j].Category)
	})
	return out, nil
}

// TotalMinutes is the sum of Delta over rows scaled to minutes.
func TotalMinutes(rows []JoinedRecord) float64 {
	sum := 0
	for _, r := range rows {
		sum += r.Delta
	}
	return float64(sum) / MinutesDivisor
}
