package school

import (
	"strings"

	"github.com/stemsi/educonnect-backend/internal/model"
)

// GroupByClass counts students per class label. Labels keep the order in
// which they first appear in students.
func GroupByClass(students []model.Student) []model.ClassInfo {
	index := make(map[string]int)
	classes := make([]model.ClassInfo, 0)
	for _, s := range students {
		if i, ok := index[s.Serie]; ok {
			classes[i].StudentCount++
			continue
		}
		index[s.Serie] = len(classes)
		classes = append(classes, model.ClassInfo{Serie: s.Serie, StudentCount: 1})
	}
	return classes
}

// AddClass appends an empty class for label unless one with the same label
// already exists. The label is trimmed first; an empty label is ignored.
// The input slice is never modified. The boolean reports whether a class was added.
func AddClass(classes []model.ClassInfo, label string) ([]model.ClassInfo, bool) {
	label = strings.TrimSpace(label)
	if label == "" || HasClass(classes, label) {
		return classes, false
	}

	out := make([]model.ClassInfo, len(classes), len(classes)+1)
	copy(out, classes)
	return append(out, model.ClassInfo{Serie: label}), true
}

// HasClass reports whether classes contains label.
func HasClass(classes []model.ClassInfo, label string) bool {
	for _, c := range classes {
		if c.Serie == label {
			return true
		}
	}
	return false
}

// StudentsInClass returns the students whose label equals label.
func StudentsInClass(students []model.Student, label string) []model.Student {
	out := make([]model.Student, 0)
	for _, s := range students {
		if s.Serie == label {
			out = append(out, s)
		}
	}
	return out
}

// SeriesLabels returns the distinct class labels in first-seen order.
func SeriesLabels(students []model.Student) []string {
	classes := GroupByClass(students)
	labels := make([]string, len(classes))
	for i, c := range classes {
		labels[i] = c.Serie
	}
	return labels
}
