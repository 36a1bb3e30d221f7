package view

import (
	"context"
	"strconv"
	"strings"
	"time"
)

const dbTimeout = 5 * time.Second

// FormatVND formats a whole-VND amount with dot thousand separators,
// the way amounts are written locally: 1500000 -> "1.500.000".
func FormatVND(amount int64) string {
	s := strconv.FormatInt(amount, 10)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder

	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}

		b.WriteRune(digit)
	}

	if neg {
		return "-" + b.String()
	}

	return b.String()
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
