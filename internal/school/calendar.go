package school

import (
	"sort"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/locales/pt_BR"
	"github.com/stemsi/educonnect-backend/internal/model"
)

// DateLayout is the civil date format stored in CalendarEvent.Data.
const DateLayout = "2006-01-02"

var ptBR = pt_BR.New()

// DayKey returns the civil date of t in loc. A nil loc keeps t's own location.
func DayKey(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(DateLayout)
}

// ParseDay parses a YYYY-MM-DD civil date as midnight in loc.
func ParseDay(day string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout, day, loc)
}

// FilterByDate returns the events scheduled on day, in input order.
func FilterByDate(events []model.CalendarEvent, day string) []model.CalendarEvent {
	out := make([]model.CalendarEvent, 0)
	for _, e := range events {
		if e.Data == day {
			out = append(out, e)
		}
	}
	return out
}

// EventDays returns the sorted, distinct days of the given month that have
// at least one event. Events with a malformed date are skipped.
func EventDays(events []model.CalendarEvent, year int, month time.Month) []int {
	seen := make(map[int]struct{})
	for _, e := range events {
		d, err := time.Parse(DateLayout, e.Data)
		if err != nil {
			continue
		}
		if d.Year() == year && d.Month() == month {
			seen[d.Day()] = struct{}{}
		}
	}

	days := make([]int, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}

// MonthName returns the capitalized Portuguese name of m, e.g. "Março".
func MonthName(m time.Month) string {
	return capitalize(ptBR.MonthWide(m))
}

// LongDate formats t the way the messaging form displays a picked date,
// e.g. "10 de março de 2024".
func LongDate(t time.Time) string {
	return ptBR.FmtDateLong(t)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
