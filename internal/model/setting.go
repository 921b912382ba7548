package model

// NotificationSettings holds the contacts that receive school notifications.
type NotificationSettings struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// UpdateNotificationsRequest is the payload for updating notification contacts.
type UpdateNotificationsRequest struct {
	Email string `json:"email" binding:"required,email,max=254"`
	Phone string `json:"phone" binding:"required,max=30"`
}

// ChangePasswordRequest is the password change form. Required-field and
// confirmation checks run in the setting service.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"max=128"`
	NewPassword     string `json:"new_password" binding:"max=128"`
	ConfirmPassword string `json:"confirm_password" binding:"max=128"`
}

// AboutSection is a titled block of the school's presentation text.
type AboutSection struct {
	Title string   `json:"title"`
	Body  string   `json:"body,omitempty"`
	Items []string `json:"items,omitempty"`
}
