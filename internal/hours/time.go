package hours

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/octobees/recycling-finder/internal/entity"
)

// TimeParseError indicates a token that does not look like a 12-hour clock
// time even after cleaning.
type TimeParseError struct {
	Token string
}

func (e *TimeParseError) Error() string {
	return fmt.Sprintf("unrecognized time token %q", e.Token)
}

// CleanTimeToken normalizes the meridiem noise found in scraped opening-hours
// text: duplicated AM/PM markers collapse to the first one, exactly one space
// precedes the marker, and repeated whitespace collapses.
func CleanTimeToken(token string) string {
	cleaned := strings.TrimSpace(token)
	cleaned = strings.ReplaceAll(cleaned, "AM AM", "AM")
	cleaned = strings.ReplaceAll(cleaned, "PM AM", "PM")
	cleaned = strings.ReplaceAll(cleaned, "AM PM", "AM")
	cleaned = strings.ReplaceAll(cleaned, "PM PM", "PM")

	cleaned = strings.ReplaceAll(cleaned, "AM", " AM")
	cleaned = strings.ReplaceAll(cleaned, "PM", " PM")

	return strings.Join(strings.Fields(cleaned), " ")
}

// ConvertTime parses a scraped 12-hour token such as "9:00 AM" or "9:00AM AM"
// into a 24-hour time of day. Tokens without a meridiem marker are inferred
// as AM when the hour is below 12 and PM otherwise; this mirrors how the
// upstream source usually abbreviates and is an approximation, not a
// guarantee.
func ConvertTime(token string) (entity.TimeOfDay, error) {
	cleaned := CleanTimeToken(token)
	if cleaned == "" {
		return entity.TimeOfDay{}, &TimeParseError{Token: token}
	}

	if !strings.Contains(cleaned, " AM") && !strings.Contains(cleaned, " PM") {
		hour, ok := leadingHour(cleaned)
		if !ok {
			return entity.TimeOfDay{}, &TimeParseError{Token: token}
		}
		if hour < 12 {
			cleaned += " AM"
		} else {
			cleaned += " PM"
		}
	}

	parsed, err := time.Parse("3:04 PM", cleaned)
	if err != nil {
		return entity.TimeOfDay{}, &TimeParseError{Token: token}
	}

	return entity.TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}

// leadingHour extracts the hour digits before the first colon.
func leadingHour(token string) (int, bool) {
	head, _, ok := strings.Cut(token, ":")
	if !ok {
		return 0, false
	}
	hour, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, false
	}
	return hour, true
}
