package out

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Xrenya/activity-tracker/internal/modules/activity/domain"
	activityout "github.com/Xrenya/activity-tracker/internal/modules/activity/port/out"
)

const (
	csvDelimiter     = ';'
	dayColumns       = 2
	eventColumns     = 5
	eventSplitColumn = 6
)

// CSVSource reads headerless ";"-delimited day and activity files.
type CSVSource struct {
	daysPath       string
	activitiesPath string
}

func NewCSVSource(daysPath, activitiesPath string) activityout.DatasetSource {
	return &CSVSource{daysPath: daysPath, activitiesPath: activitiesPath}
}

func (s *CSVSource) ReadDays(ctx context.Context) ([]domain.DateLookup, error) {
	out := []domain.DateLookup{}
	err := readRows(ctx, s.daysPath, func(fields []string) error {
		if len(fields) != dayColumns {
			return fmt.Errorf("expected %d columns, got %d", dayColumns, len(fields))
		}
		dayID, err := parseDayID(fields[0])
		if err != nil {
			return err
		}
		out = append(out, domain.DateLookup{DayID: dayID, Date: fields[1]})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CSVSource) ReadEvents(ctx context.Context) ([]domain.ActivityEvent, error) {
	out := []domain.ActivityEvent{}
	rawTracks := []string{}
	err := readRows(ctx, s.activitiesPath, func(fields []string) error {
		switch len(fields) {
		case eventColumns:
		case eventSplitColumn:
			// an unquoted "top1;top2" activity spills into a sixth field
			fields = append(fields[:4], fields[4]+domain.ActivitySeparator+fields[5])
		default:
			return fmt.Errorf("expected %d columns, got %d", eventColumns, len(fields))
		}
		dayID, err := parseDayID(fields[0])
		if err != nil {
			return err
		}
		out = append(out, domain.ActivityEvent{
			DayID:    dayID,
			Time:     fields[1],
			Name:     fields[2],
			Activity: fields[4],
		})
		rawTracks = append(rawTracks, fields[3])
		return nil
	})
	if err != nil {
		return nil, err
	}
	for i, id := range domain.TypeTrackColumn(rawTracks) {
		out[i].TrackID = id
	}
	return out, nil
}

func parseDayID(raw string) (int, error) {
	dayID, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("day_id %q is not an integer", raw)
	}
	return dayID, nil
}

func readRows(ctx context.Context, path string, fn func(fields []string) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	file, err := os.Open(path)
	if err != nil {
		return &domain.DataLoadError{Source: path, Err: err}
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = csvDelimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			line := 0
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				line = parseErr.Line
			}
			return &domain.DataLoadError{Source: path, Line: line, Err: err}
		}
		line, _ := reader.FieldPos(0)
		if err := fn(fields); err != nil {
			return &domain.DataLoadError{Source: path, Line: line, Err: err}
		}
	}
}
