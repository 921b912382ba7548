// Package school holds the side-effect-free rules shared by the calendar,
// class and messaging services: filtering events by day, grouping students by
// class label and rendering message templates.
//
// Class labels are compared by exact string match. No case or whitespace
// normalization is applied, so "6º A" and "6º  A" are different classes.
package school
