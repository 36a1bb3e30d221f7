package readings

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	enc "github.com/hoangvn/nhatro/internal/encoding"
	"github.com/hoangvn/nhatro/internal/meter"
)

// Row is one meter entry parsed from a sheet: a room code and an
// old/new counter pair. Old is nil when the sheet leaves it blank and
// the recorded history should fill it in.
type Row struct {
	RoomCode string
	Kind     meter.Kind
	Old      *decimal.Decimal
	New      decimal.Decimal
}

// Parser reads meter sheets exported from Excel and produces reading
// rows. It auto-detects which sheet layout (tổng hợp, điện, nước) is
// being used by matching column headers against known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]Row, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no matching sheet layout found: expected columns for tổng hợp, điện, or nước")
	}

	return parseRows(profile, cols, rows[headerIdx+1:])
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// matchesProfile checks if all required columns of a profile are present.
func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts reading rows from data rows using the matched
// profile. Rows without a room code or without a new value are skipped:
// sheets carry title lines, blank separators, and vacant rooms.
func parseRows(p *Profile, cols colIndex, rows [][]string) ([]Row, error) {
	var out []Row

	for _, row := range rows {
		roomCode := cellValue(row, cols[p.RoomCol])
		if roomCode == "" {
			continue
		}

		switch p.Layout {
		case layoutWide:
			if r, ok := parsePair(row, cols, p.ElectricOldCol, p.ElectricNewCol); ok {
				r.RoomCode = roomCode
				r.Kind = meter.KindElectric
				out = append(out, r)
			}

			if r, ok := parsePair(row, cols, p.WaterOldCol, p.WaterNewCol); ok {
				r.RoomCode = roomCode
				r.Kind = meter.KindWater
				out = append(out, r)
			}

		case layoutSingle:
			if r, ok := parsePair(row, cols, p.OldCol, p.NewCol); ok {
				r.RoomCode = roomCode
				r.Kind = meter.Kind(p.Kind)
				out = append(out, r)
			}
		}
	}

	return out, nil
}

// parsePair reads one old/new column pair. A blank or unparseable new
// value drops the pair; a blank old value leaves Old nil.
func parsePair(row []string, cols colIndex, oldCol, newCol string) (Row, bool) {
	newStr := cellValue(row, cols[newCol])
	if newStr == "" {
		return Row{}, false
	}

	newVal, err := parseCounter(newStr)
	if err != nil {
		return Row{}, false
	}

	r := Row{New: newVal}

	if idx, ok := cols[oldCol]; ok {
		if oldStr := cellValue(row, idx); oldStr != "" {
			oldVal, err := parseCounter(oldStr)
			if err != nil {
				return Row{}, false
			}

			r.Old = &oldVal
		}
	}

	return r, true
}

// parseCounter parses a meter counter value. Sheets come in both
// "1234.5" and Vietnamese "1.234,5" shapes.
func parseCounter(s string) (decimal.Decimal, error) {
	clean := strings.ReplaceAll(s, " ", "")

	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	return decimal.NewFromString(clean)
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
