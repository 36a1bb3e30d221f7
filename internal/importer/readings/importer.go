package readings

import (
	"context"
	"fmt"
	"io"

	"github.com/hoangvn/nhatro/internal/meter"
)

// MeterService is the slice of the meter service the importer needs.
type MeterService interface {
	FindRoomMeter(ctx context.Context, roomCode string, kind meter.Kind) (*meter.Meter, error)
	RecordReading(ctx context.Context, params meter.ReadingParams) (*meter.Reading, error)
}

// Importer parses a meter sheet and records its readings for a period.
type Importer struct {
	parser *Parser
	meters MeterService
}

func NewImporter(meters MeterService) *Importer {
	return &Importer{
		parser: NewParser(),
		meters: meters,
	}
}

// RowResult reports the outcome for one sheet row. Rows are independent:
// an unknown room or a bad counter fails that row only.
type RowResult struct {
	RoomCode string
	Kind     meter.Kind
	Reading  *meter.Reading
	Err      error
}

// Result summarizes one sheet import.
type Result struct {
	Month    int
	Year     int
	Imported int
	Failed   int
	Rows     []RowResult
}

func (im *Importer) Import(ctx context.Context, r io.Reader, month, year int) (*Result, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d", meter.ErrInvalidPeriod, month)
	}

	rows, err := im.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	result := &Result{Month: month, Year: year}

	for _, row := range rows {
		rr := RowResult{RoomCode: row.RoomCode, Kind: row.Kind}

		m, err := im.meters.FindRoomMeter(ctx, row.RoomCode, row.Kind)
		if err != nil {
			rr.Err = fmt.Errorf("room %s: %w", row.RoomCode, err)
			result.Failed++
			result.Rows = append(result.Rows, rr)

			continue
		}

		rr.Reading, rr.Err = im.meters.RecordReading(ctx, meter.ReadingParams{
			MeterID: m.ID,
			Month:   month,
			Year:    year,
			Old:     row.Old,
			New:     row.New,
		})
		if rr.Err != nil {
			result.Failed++
		} else {
			result.Imported++
		}

		result.Rows = append(result.Rows, rr)
	}

	return result, nil
}
