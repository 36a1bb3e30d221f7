package readings_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangvn/nhatro/internal/importer/readings"
	"github.com/hoangvn/nhatro/internal/meter"
)

type fakeMeters struct {
	meters   map[string]*meter.Meter // "code/kind"
	recorded []meter.ReadingParams
}

func (f *fakeMeters) FindRoomMeter(ctx context.Context, roomCode string, kind meter.Kind) (*meter.Meter, error) {
	m, ok := f.meters[roomCode+"/"+string(kind)]
	if !ok {
		return nil, meter.ErrNotFound
	}

	return m, nil
}

func (f *fakeMeters) RecordReading(ctx context.Context, params meter.ReadingParams) (*meter.Reading, error) {
	old := params.New
	if params.Old != nil {
		old = *params.Old
	}

	if params.New.LessThan(old) {
		return nil, meter.ErrReadingOrder
	}

	f.recorded = append(f.recorded, params)

	return &meter.Reading{
		MeterID:     params.MeterID,
		Month:       params.Month,
		Year:        params.Year,
		Old:         old,
		New:         params.New,
		Consumption: params.New.Sub(old),
	}, nil
}

func TestImporter_Import(t *testing.T) {
	meters := &fakeMeters{meters: map[string]*meter.Meter{
		"A101/electric": {ID: uuid.New()},
		"A101/water":    {ID: uuid.New()},
		"A102/electric": {ID: uuid.New()},
	}}
	im := readings.NewImporter(meters)

	csv := `Phòng;Điện cũ;Điện mới;Nước cũ;Nước mới
A101;100;150;10;13
A102;200;190;;
A999;5;6;;
`

	result, err := im.Import(context.Background(), strings.NewReader(csv), 9, 2026)
	require.NoError(t, err)

	// A101 electric + water land; A102 electric rolls back; A999 has no
	// meter on file.
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Rows, 4)

	assert.NoError(t, result.Rows[0].Err)
	assert.NoError(t, result.Rows[1].Err)
	assert.ErrorIs(t, result.Rows[2].Err, meter.ErrReadingOrder)
	assert.ErrorIs(t, result.Rows[3].Err, meter.ErrNotFound)

	require.Len(t, meters.recorded, 2)
	assert.Equal(t, 9, meters.recorded[0].Month)
	assert.Equal(t, 2026, meters.recorded[0].Year)
}

func TestImporter_Import_BadMonth(t *testing.T) {
	im := readings.NewImporter(&fakeMeters{})

	_, err := im.Import(context.Background(), strings.NewReader(""), 13, 2026)
	assert.ErrorIs(t, err, meter.ErrInvalidPeriod)
}
