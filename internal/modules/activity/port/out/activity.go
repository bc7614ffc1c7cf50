package out

import (
	"context"

	"github.com/Xrenya/activity-tracker/internal/modules/activity/domain"
)

// DatasetSource reads the two input tables. Implementations report malformed
// input as *domain.DataLoadError.
type DatasetSource interface {
	ReadDays(ctx context.Context) ([]domain.DateLookup, error)
	ReadEvents(ctx context.Context) ([]domain.ActivityEvent, error)
}

type RecordProjector interface {
	Reset(ctx context.Context) error
	InsertRecords(ctx context.Context, records []domain.JoinedRecord) error
	Count(ctx context.Context) (int, error)
	CategoryMinutes(ctx context.Context, column domain.CategoryColumn) (map[string]float64, error)
}
