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

// AuthHandler handles the staff portal login.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login godoc
// POST /api/v1/auth/login
// Signs the staff member in. Any complete email/password pair is accepted.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.authService.Login(req)
	if err != nil {
		if errors.Is(err, service.ErrFieldsRequired) {
			response.Fail(c, http.StatusBadRequest, response.ErrFieldsRequired)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, result)
}
