package hours

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/octobees/recycling-finder/internal/entity"
)

// UnknownDayError indicates an hours line whose day name is not one of the
// seven English day names. The lookup is case-sensitive on purpose: the
// places API emits canonical capitalization, so anything else is noise.
type UnknownDayError struct {
	Day string
}

func (e *UnknownDayError) Error() string {
	return fmt.Sprintf("unknown day name %q", e.Day)
}

var dayLookup = map[string]entity.Weekday{
	"Sunday":    entity.Sunday,
	"Monday":    entity.Monday,
	"Tuesday":   entity.Tuesday,
	"Wednesday": entity.Wednesday,
	"Thursday":  entity.Thursday,
	"Friday":    entity.Friday,
	"Saturday":  entity.Saturday,
}

// open24Close is the normalized close time for "Open 24 hours" lines.
var open24Close = entity.TimeOfDay{Hour: 23, Minute: 59, Second: 59}

// ParseWeek converts weekday hours lines of the form "<Day>: <range>" into
// normalized day schedules. Lines that cannot be parsed are dropped with a
// logged warning; a single bad line never aborts the rest of the week. When
// the same day appears more than once the last occurrence wins.
func ParseWeek(lines []string) []entity.DaySchedule {
	byDay := make(map[entity.Weekday]entity.DaySchedule, len(lines))

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		schedule, err := parseLine(line)
		if err != nil {
			log.Printf("hours: skipping line %q: %v", line, err)
			continue
		}
		byDay[schedule.Day] = schedule
	}

	schedules := make([]entity.DaySchedule, 0, len(byDay))
	for _, schedule := range byDay {
		schedules = append(schedules, schedule)
	}
	sort.Slice(schedules, func(i, j int) bool { return schedules[i].Day < schedules[j].Day })
	return schedules
}

func parseLine(line string) (entity.DaySchedule, error) {
	dayName, times, ok := strings.Cut(line, ": ")
	if !ok {
		return entity.DaySchedule{}, fmt.Errorf("missing day separator")
	}

	day, ok := dayLookup[dayName]
	if !ok {
		return entity.DaySchedule{}, &UnknownDayError{Day: dayName}
	}

	times = strings.TrimSpace(times)
	if strings.EqualFold(times, "Closed") {
		return entity.DaySchedule{Day: day, Closed: true}, nil
	}
	if strings.EqualFold(times, "Open 24 hours") {
		open := entity.TimeOfDay{}
		closeAt := open24Close
		return entity.DaySchedule{Day: day, Open: &open, Close: &closeAt}, nil
	}

	openToken, closeToken, err := splitRange(times)
	if err != nil {
		return entity.DaySchedule{}, err
	}

	openToken = CleanTimeToken(openToken)
	closeToken = CleanTimeToken(closeToken)
	openToken = inheritMeridiem(openToken, closeToken)

	open, err := ConvertTime(openToken)
	if err != nil {
		return entity.DaySchedule{}, err
	}
	closeAt, err := ConvertTime(closeToken)
	if err != nil {
		return entity.DaySchedule{}, err
	}

	return entity.DaySchedule{Day: day, Open: &open, Close: &closeAt}, nil
}

// splitRange separates a time range on the first matching separator, trying
// the en-dash, then " - ", then a bare hyphen, in that order.
func splitRange(times string) (string, string, error) {
	for _, sep := range []string{"–", " - ", "-"} {
		if strings.Contains(times, sep) {
			open, closeAt, _ := strings.Cut(times, sep)
			return open, closeAt, nil
		}
	}
	return "", "", fmt.Errorf("no time range separator in %q", times)
}

// inheritMeridiem resolves ranges such as "9:00 - 5:00 PM" where only the
// closing time carries a marker. An AM close forces an AM open. For a PM
// close the open is AM when its hour is numerically below the closing hour
// or the close is 12 o'clock, and PM otherwise. Preserved exactly as the
// downstream data was built with it.
func inheritMeridiem(openToken, closeToken string) string {
	if strings.Contains(openToken, " AM") || strings.Contains(openToken, " PM") {
		return openToken
	}

	switch {
	case strings.Contains(closeToken, " AM"):
		return openToken + " AM"
	case strings.Contains(closeToken, " PM"):
		openHour, okOpen := leadingHour(openToken)
		closeHour, okClose := leadingHour(closeToken)
		if !okOpen || !okClose {
			return openToken
		}
		if openHour < closeHour || closeHour == 12 {
			return openToken + " AM"
		}
		return openToken + " PM"
	}
	return openToken
}
