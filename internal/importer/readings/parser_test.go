package readings_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/hoangvn/nhatro/internal/importer/readings"
	"github.com/hoangvn/nhatro/internal/meter"
)

func TestParser_WideSheet(t *testing.T) {
	csv := `Bảng chốt số tháng 9/2026

Phòng;Điện cũ;Điện mới;Nước cũ;Nước mới;Ghi chú
A101;100;150;10;13;
A102;230,5;260;20;22;khách mới
A103;;;;;phòng trống
`

	p := readings.NewParser()
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "A101", rows[0].RoomCode)
	assert.Equal(t, meter.KindElectric, rows[0].Kind)
	require.NotNil(t, rows[0].Old)
	assert.True(t, rows[0].Old.Equal(decimal.NewFromInt(100)))
	assert.True(t, rows[0].New.Equal(decimal.NewFromInt(150)))

	assert.Equal(t, meter.KindWater, rows[1].Kind)
	assert.True(t, rows[1].New.Equal(decimal.NewFromInt(13)))

	assert.Equal(t, "A102", rows[2].RoomCode)
	require.NotNil(t, rows[2].Old)
	assert.True(t, rows[2].Old.Equal(decimal.RequireFromString("230.5")))
}

func TestParser_ElectricOnlySheet(t *testing.T) {
	csv := `Phòng;Điện cũ;Điện mới
B201;1.234,5;1.300
B202;;90
`

	p := readings.NewParser()
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, meter.KindElectric, rows[0].Kind)
	require.NotNil(t, rows[0].Old)
	assert.True(t, rows[0].Old.Equal(decimal.RequireFromString("1234.5")))
	assert.True(t, rows[0].New.Equal(decimal.NewFromInt(1300)))

	// Blank old column continues from recorded history.
	assert.Nil(t, rows[1].Old)
	assert.True(t, rows[1].New.Equal(decimal.NewFromInt(90)))
}

func TestParser_WaterOnlySheet(t *testing.T) {
	csv := `Phòng;Nước cũ;Nước mới
C301;40;44
`

	p := readings.NewParser()
	rows, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, meter.KindWater, rows[0].Kind)
}

func TestParser_UnknownLayout(t *testing.T) {
	csv := `Name;Value
something;42
`

	p := readings.NewParser()
	_, err := p.Parse(strings.NewReader(csv))
	assert.ErrorContains(t, err, "no matching sheet layout")
}

func TestParser_UTF16Sheet(t *testing.T) {
	// UTF-16 LE with BOM, as Excel saves "Unicode Text" files.
	text := "Phòng;Điện cũ;Điện mới\nA101;100;150\n"

	encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).
		NewEncoder().Bytes([]byte(text))
	require.NoError(t, err)

	p := readings.NewParser()
	rows, err := p.Parse(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A101", rows[0].RoomCode)
}
