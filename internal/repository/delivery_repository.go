package repository

import (
	"sync"

	"github.com/stemsi/educonnect-backend/internal/model"
)

// DefaultDeliveryHistory bounds how many deliveries are kept in memory.
const DefaultDeliveryHistory = 500

// DeliveryRepository keeps the most recent dispatch attempts in memory.
type DeliveryRepository struct {
	mu         sync.RWMutex
	deliveries []model.Delivery
	limit      int
}

// NewDeliveryRepository creates a DeliveryRepository keeping at most limit entries.
func NewDeliveryRepository(limit int) *DeliveryRepository {
	if limit <= 0 {
		limit = DefaultDeliveryHistory
	}
	return &DeliveryRepository{limit: limit}
}

// Append records a delivery, evicting the oldest entry when full.
func (r *DeliveryRepository) Append(d model.Delivery) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.deliveries = append(r.deliveries, d)
	if over := len(r.deliveries) - r.limit; over > 0 {
		r.deliveries = append([]model.Delivery(nil), r.deliveries[over:]...)
	}
}

// List returns deliveries from oldest to newest.
func (r *DeliveryRepository) List() []model.Delivery {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]model.Delivery{}, r.deliveries...)
}
