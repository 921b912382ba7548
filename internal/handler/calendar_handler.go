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

// CalendarHandler handles the school calendar.
type CalendarHandler struct {
	calendarService *service.CalendarService
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(calendarService *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService}
}

// ListEvents godoc
// GET /api/v1/calendar/events?date=YYYY-MM-DD
// Lists the events of a day. Without a date, today's events in the school's time zone are returned.
func (h *CalendarHandler) ListEvents(c *gin.Context) {
	day := c.Query("date")
	events, err := h.calendarService.EventsOn(day)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidDate)
		return
	}
	if day == "" {
		day = h.calendarService.Today()
	}

	response.Success(c, http.StatusOK, gin.H{"date": day, "events": events})
}

type monthQuery struct {
	Year  int `form:"year" json:"year" binding:"omitempty,min=1,max=9999"`
	Month int `form:"month" json:"month" binding:"omitempty,min=1,max=12"`
}

// GetMonth godoc
// GET /api/v1/calendar/month?year=2024&month=3
// Returns the days of a month that have events. Defaults to the current month.
func (h *CalendarHandler) GetMonth(c *gin.Context) {
	var q monthQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidMonth, fields)
		return
	}

	month, err := h.calendarService.Month(q.Year, q.Month)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidMonth)
		return
	}

	response.Success(c, http.StatusOK, month)
}

// CreateEvent godoc
// POST /api/v1/calendar/events
// Adds an event to the in-memory calendar.
func (h *CalendarHandler) CreateEvent(c *gin.Context) {
	var req model.CreateEventRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	event, err := h.calendarService.Create(req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidDate)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"event": event})
}
