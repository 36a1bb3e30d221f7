package readings

// layout determines how meter columns are arranged in a sheet.
type layout int

const (
	// layoutWide means electric and water pairs side by side on one row
	// per room, the way the combined monthly sheet is kept.
	layoutWide layout = iota
	// layoutSingle means one old/new pair for a single meter kind.
	layoutSingle
)

// Profile describes the column layout of a meter reading sheet.
// Adding a new sheet format is just adding a new Profile to the
// profiles slice.
type Profile struct {
	Name    string
	RoomCol string
	Layout  layout

	// layoutWide columns
	ElectricOldCol string
	ElectricNewCol string
	WaterOldCol    string
	WaterNewCol    string

	// layoutSingle columns
	Kind   string
	OldCol string
	NewCol string
}

// requiredCols returns the column names that must be present for this
// profile to match.
func (p Profile) requiredCols() []string {
	cols := []string{p.RoomCol}

	switch p.Layout {
	case layoutWide:
		cols = append(cols, p.ElectricNewCol, p.WaterNewCol)
	case layoutSingle:
		cols = append(cols, p.NewCol)
	}

	return cols
}

// profiles is the ordered list of sheet formats to try during
// auto-detection. More specific profiles come first to avoid false
// matches.
var profiles = []Profile{
	{
		Name:           "tổng hợp",
		RoomCol:        "Phòng",
		Layout:         layoutWide,
		ElectricOldCol: "Điện cũ",
		ElectricNewCol: "Điện mới",
		WaterOldCol:    "Nước cũ",
		WaterNewCol:    "Nước mới",
	},
	{
		Name:    "điện",
		RoomCol: "Phòng",
		Layout:  layoutSingle,
		Kind:    "electric",
		OldCol:  "Điện cũ",
		NewCol:  "Điện mới",
	},
	{
		Name:    "nước",
		RoomCol: "Phòng",
		Layout:  layoutSingle,
		Kind:    "water",
		OldCol:  "Nước cũ",
		NewCol:  "Nước mới",
	},
}
