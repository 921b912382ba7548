package school

import (
	"strings"
	"time"
)

// Template placeholders.
const (
	PlaceholderStudentName = "[NOME_DO_ALUNO]"
	PlaceholderDate        = "[DATA]"
)

// DisplayDateLayout is the dd/MM/yyyy format used inside rendered messages.
const DisplayDateLayout = "02/01/2006"

// NeedsDate reports whether body requires a date to be fully rendered.
func NeedsDate(body string) bool {
	return strings.Contains(body, PlaceholderDate)
}

// Render replaces every student name placeholder with studentName and, when
// date is non-nil, every date placeholder with the date as dd/MM/yyyy.
// Without a date the date placeholder is left as is.
func Render(body, studentName string, date *time.Time) string {
	out := strings.ReplaceAll(body, PlaceholderStudentName, studentName)
	if date != nil && NeedsDate(body) {
		out = strings.ReplaceAll(out, PlaceholderDate, date.Format(DisplayDateLayout))
	}
	return out
}
