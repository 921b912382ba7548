package repository

import (
	"sync"

	"github.com/stemsi/educonnect-backend/internal/model"
)

// DefaultNotificationSettings are the contacts shown before any update.
var DefaultNotificationSettings = model.NotificationSettings{
	Email: "email@exemplo.com",
	Phone: "(00) 00000-0000",
}

// SettingRepository holds the notification contacts in memory.
type SettingRepository struct {
	mu       sync.RWMutex
	settings model.NotificationSettings
}

func NewSettingRepository() *SettingRepository {
	return &SettingRepository{settings: DefaultNotificationSettings}
}

func (r *SettingRepository) GetNotifications() model.NotificationSettings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.settings
}

func (r *SettingRepository) UpdateNotifications(s model.NotificationSettings) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settings = s
}
