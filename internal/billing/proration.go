package billing

import "fmt"

// AbsenceDeduction computes the rent reduction for days the tenant was
// away. The deduction is capped at the base rent so a room fee can
// never go negative.
func AbsenceDeduction(rent, dailyRate int64, absentDays, periodDays int) (int64, error) {
	if absentDays < 0 {
		return 0, fmt.Errorf("%w: %d days", ErrInvalidAbsence, absentDays)
	}

	if absentDays > periodDays {
		return 0, fmt.Errorf("%w: %d days in a %d-day period", ErrInvalidAbsence, absentDays, periodDays)
	}

	return min(dailyRate*int64(absentDays), rent), nil
}
