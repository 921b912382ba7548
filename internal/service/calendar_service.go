package service

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/educonnect-backend/internal/model"
	"github.com/stemsi/educonnect-backend/internal/repository"
	"github.com/stemsi/educonnect-backend/internal/school"
)

var (
	ErrInvalidDate  = errors.New("date must be formatted YYYY-MM-DD")
	ErrInvalidMonth = errors.New("month must be between 1 and 12")
)

// CalendarService answers calendar queries in the school's time zone.
type CalendarService struct {
	eventRepo *repository.EventRepository
	loc       *time.Location
	now       func() time.Time
	log       zerolog.Logger
}

// NewCalendarService creates a new CalendarService.
func NewCalendarService(eventRepo *repository.EventRepository, loc *time.Location, log zerolog.Logger) *CalendarService {
	if loc == nil {
		loc = time.UTC
	}
	return &CalendarService{
		eventRepo: eventRepo,
		loc:       loc,
		now:       time.Now,
		log:       log.With().Str("component", "calendar_service").Logger(),
	}
}

// Today returns the current civil date at the school.
func (s *CalendarService) Today() string {
	return school.DayKey(s.now(), s.loc)
}

// EventsOn returns the events scheduled on day (YYYY-MM-DD). An empty day means today.
func (s *CalendarService) EventsOn(day string) ([]model.CalendarEvent, error) {
	if day == "" {
		day = s.Today()
	} else if _, err := school.ParseDay(day, s.loc); err != nil {
		return nil, ErrInvalidDate
	}
	return school.FilterByDate(s.eventRepo.List(), day), nil
}

// Month returns the days of the given month that carry events. Zero values
// default to the current year and month.
func (s *CalendarService) Month(year, month int) (*model.CalendarMonth, error) {
	now := s.now().In(s.loc)
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}

	m := time.Month(month)
	return &model.CalendarMonth{
		Year:      year,
		Month:     month,
		MonthName: school.MonthName(m),
		EventDays: school.EventDays(s.eventRepo.List(), year, m),
	}, nil
}

// Create adds an event to the in-memory calendar.
func (s *CalendarService) Create(req model.CreateEventRequest) (*model.CalendarEvent, error) {
	if _, err := school.ParseDay(req.Date, s.loc); err != nil {
		return nil, ErrInvalidDate
	}

	series := make([]string, 0, len(req.Classes))
	for _, c := range req.Classes {
		if c = strings.TrimSpace(c); c != "" {
			series = append(series, c)
		}
	}

	event := model.CalendarEvent{
		ID:        uuid.NewString(),
		Titulo:    strings.TrimSpace(req.Title),
		Data:      req.Date,
		Horario:   strings.TrimSpace(req.Time),
		Descricao: strings.TrimSpace(req.Description),
		Series:    series,
	}
	s.eventRepo.Create(event)

	s.log.Info().Str("event_id", event.ID).Str("date", event.Data).Msg("Calendar event created")
	return &event, nil
}
