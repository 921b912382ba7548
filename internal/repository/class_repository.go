package repository

import (
	"sync"
)

// ClassRepository keeps the class labels added at runtime.
// Labels derived from the dataset are not stored here.
type ClassRepository struct {
	mu     sync.RWMutex
	labels []string
	known  map[string]struct{}
}

// NewClassRepository creates an empty ClassRepository.
func NewClassRepository() *ClassRepository {
	return &ClassRepository{known: make(map[string]struct{})}
}

// List returns the added labels in insertion order.
func (r *ClassRepository) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string{}, r.labels...)
}

// Add stores label unless it was already added. It reports whether the label is new.
func (r *ClassRepository) Add(label string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.known[label]; ok {
		return false
	}
	r.known[label] = struct{}{}
	r.labels = append(r.labels, label)
	return true
}
