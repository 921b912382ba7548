package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/educonnect-backend/internal/model"
	"github.com/stemsi/educonnect-backend/internal/response"
	"github.com/stemsi/educonnect-backend/internal/service"
	"github.com/stemsi/educonnect-backend/internal/validator"
)

type SettingHandler struct {
	settingService *service.SettingService
}

func NewSettingHandler(settingService *service.SettingService) *SettingHandler {
	return &SettingHandler{settingService: settingService}
}

// GetSettings godoc
// GET /api/v1/settings
// Returns the notification contacts and the school presentation text.
func (h *SettingHandler) GetSettings(c *gin.Context) {
	response.Success(c, http.StatusOK, h.settingService.Get())
}

// UpdateNotifications godoc
// PUT /api/v1/settings/notifications
func (h *SettingHandler) UpdateNotifications(c *gin.Context) {
	var req model.UpdateNotificationsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	settings := h.settingService.UpdateNotifications(req)
	response.Success(c, http.StatusOK, gin.H{"notifications": settings})
}

// ChangePassword godoc
// PUT /api/v1/settings/password
// Validates a password change. The password is not stored.
func (h *SettingHandler) ChangePassword(c *gin.Context) {
	var req model.ChangePasswordRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.settingService.ChangePassword(req); err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordFieldsRequired):
			response.Fail(c, http.StatusBadRequest, response.ErrPasswordFieldsRequired)
		case errors.Is(err, service.ErrPasswordMismatch):
			response.Fail(c, http.StatusBadRequest, response.ErrPasswordMismatch)
		case errors.Is(err, service.ErrPasswordTooShort):
			response.Fail(c, http.StatusBadRequest, response.ErrPasswordTooShort)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Senha alterada com sucesso!"})
}
