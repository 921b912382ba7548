package model

// CalendarEvent is a school calendar entry. Data holds a civil date (YYYY-MM-DD).
type CalendarEvent struct {
	ID        string   `json:"id"`
	Titulo    string   `json:"titulo"`
	Data      string   `json:"data"`
	Horario   string   `json:"horario"`
	Descricao string   `json:"descricao"`
	Series    []string `json:"series"`
}

// CreateEventRequest is the payload for adding a calendar event.
type CreateEventRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Date        string   `json:"date" binding:"required,datetime=2006-01-02"`
	Time        string   `json:"time" binding:"required,max=20"`
	Description string   `json:"description" binding:"max=2000"`
	Classes     []string `json:"classes" binding:"omitempty,dive,required,max=50"`
}

// CalendarMonth lists the days of a month that carry at least one event.
type CalendarMonth struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	MonthName string `json:"month_name"`
	EventDays []int  `json:"event_days"`
}
