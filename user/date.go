package user

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// parseDate parses a YYYY-MM-DD birthday into the date column type.
func parseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("user: invalid date %q: %w", s, err)
	}
	return datatypes.Date(t), nil
}
