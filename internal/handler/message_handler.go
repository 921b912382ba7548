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

// MessageHandler handles guardian messaging.
type MessageHandler struct {
	messagingService *service.MessagingService
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(messagingService *service.MessagingService) *MessageHandler {
	return &MessageHandler{messagingService: messagingService}
}

// ListSeries godoc
// GET /api/v1/messages/series
func (h *MessageHandler) ListSeries(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"series": h.messagingService.Series()})
}

// ListStudents godoc
// GET /api/v1/messages/students?series=6º A
// Lists the students that can be messaged for a series.
func (h *MessageHandler) ListStudents(c *gin.Context) {
	series := c.Query("series")
	if series == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrSeriesRequired)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"students": h.messagingService.StudentsInSeries(series)})
}

// Preview godoc
// POST /api/v1/messages/preview
// Renders a template for a student without sending it.
func (h *MessageHandler) Preview(c *gin.Context) {
	var req model.PreviewMessageRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	preview, err := h.messagingService.Preview(req)
	if err != nil {
		status, code := messageError(err)
		response.Fail(c, status, code)
		return
	}

	response.Success(c, http.StatusOK, preview)
}

// Send godoc
// POST /api/v1/messages/send
// Validates the form and dispatches the message to the student's guardian.
func (h *MessageHandler) Send(c *gin.Context) {
	var req model.SendMessageRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	delivery, err := h.messagingService.Send(c.Request.Context(), req)
	if err != nil {
		status, code := messageError(err)
		response.Fail(c, status, code)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"delivery": delivery})
}

// History godoc
// GET /api/v1/messages/history
// Lists recorded dispatch attempts, newest first.
func (h *MessageHandler) History(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"deliveries": h.messagingService.History()})
}

func messageError(err error) (int, response.ErrCode) {
	switch {
	case errors.Is(err, service.ErrSeriesRequired):
		return http.StatusBadRequest, response.ErrSeriesRequired
	case errors.Is(err, service.ErrStudentRequired):
		return http.StatusBadRequest, response.ErrStudentRequired
	case errors.Is(err, service.ErrTemplateRequired):
		return http.StatusBadRequest, response.ErrTemplateRequired
	case errors.Is(err, service.ErrDateRequired):
		return http.StatusBadRequest, response.ErrDateRequired
	case errors.Is(err, service.ErrInvalidDate):
		return http.StatusBadRequest, response.ErrInvalidDate
	case errors.Is(err, service.ErrStudentNotInSeries):
		return http.StatusBadRequest, response.ErrStudentNotInSeries
	case errors.Is(err, service.ErrStudentNotFound), errors.Is(err, service.ErrTemplateNotFound):
		return http.StatusNotFound, response.ErrRecordNotFound
	case errors.Is(err, service.ErrDispatchFailed):
		return http.StatusBadGateway, response.ErrDispatchFailed
	default:
		return http.StatusInternalServerError, response.ErrInternal
	}
}
