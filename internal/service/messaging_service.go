package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/educonnect-backend/internal/dataset"
	"github.com/stemsi/educonnect-backend/internal/dispatch"
	"github.com/stemsi/educonnect-backend/internal/model"
	"github.com/stemsi/educonnect-backend/internal/repository"
	"github.com/stemsi/educonnect-backend/internal/school"
)

var (
	ErrSeriesRequired     = errors.New("series is required")
	ErrStudentRequired    = errors.New("student is required")
	ErrTemplateRequired   = errors.New("template is required")
	ErrDateRequired       = errors.New("template requires a date")
	ErrStudentNotFound    = errors.New("student not found")
	ErrTemplateNotFound   = errors.New("template not found")
	ErrStudentNotInSeries = errors.New("student does not belong to the selected series")
	ErrDispatchFailed     = errors.New("message dispatch failed")
)

// Payload metadata sent with every message.
const (
	systemUser      = "Professor"
	messagePriority = "normal"
	messageCategory = "comunicacao_escolar"
)

var messageChannels = []string{"email", "whatsapp"}

// School identifies the sender in dispatch payloads.
type School struct {
	Name   string
	System string
}

// MessagingService renders templates for a student and hands them to a Dispatcher.
type MessagingService struct {
	ds           *dataset.Dataset
	dispatcher   dispatch.Dispatcher
	deliveryRepo *repository.DeliveryRepository
	school       School
	loc          *time.Location
	now          func() time.Time
	log          zerolog.Logger
}

// NewMessagingService creates a new MessagingService.
func NewMessagingService(
	ds *dataset.Dataset,
	dispatcher dispatch.Dispatcher,
	deliveryRepo *repository.DeliveryRepository,
	sch School,
	loc *time.Location,
	log zerolog.Logger,
) *MessagingService {
	if loc == nil {
		loc = time.UTC
	}
	return &MessagingService{
		ds:           ds,
		dispatcher:   dispatcher,
		deliveryRepo: deliveryRepo,
		school:       sch,
		loc:          loc,
		now:          time.Now,
		log:          log.With().Str("component", "messaging_service").Logger(),
	}
}

// Series returns the distinct class labels that have students.
func (s *MessagingService) Series() []string {
	return school.SeriesLabels(s.ds.Students())
}

// StudentsInSeries returns the students the message form offers for series.
func (s *MessagingService) StudentsInSeries(series string) []model.Student {
	return school.StudentsInClass(s.ds.Students(), series)
}

// Preview renders the message for a student without sending it.
func (s *MessagingService) Preview(req model.PreviewMessageRequest) (*model.MessagePreview, error) {
	student, ok := s.ds.StudentByID(req.StudentID)
	if !ok {
		return nil, ErrStudentNotFound
	}
	tmpl, ok := s.ds.TemplateByID(req.TemplateID)
	if !ok {
		return nil, ErrTemplateNotFound
	}
	date, err := s.parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	preview := &model.MessagePreview{
		Message:   school.Render(tmpl.Template, student.Name, date),
		NeedsDate: school.NeedsDate(tmpl.Template),
	}
	if date != nil {
		preview.DateDisplay = school.LongDate(*date)
	}
	return preview, nil
}

// Send validates the form, dispatches the rendered message and records the
// attempt. Validation failures never reach the dispatcher. A failed dispatch
// returns the recorded delivery together with an error wrapping ErrDispatchFailed.
func (s *MessagingService) Send(ctx context.Context, req model.SendMessageRequest) (*model.Delivery, error) {
	if strings.TrimSpace(req.Series) == "" {
		return nil, ErrSeriesRequired
	}
	if strings.TrimSpace(req.StudentID) == "" {
		return nil, ErrStudentRequired
	}
	if strings.TrimSpace(req.TemplateID) == "" {
		return nil, ErrTemplateRequired
	}

	tmpl, tmplFound := s.ds.TemplateByID(req.TemplateID)
	if tmplFound && school.NeedsDate(tmpl.Template) && req.Date == "" {
		return nil, ErrDateRequired
	}

	student, ok := s.ds.StudentByID(req.StudentID)
	if !ok {
		return nil, ErrStudentNotFound
	}
	if !tmplFound {
		return nil, ErrTemplateNotFound
	}
	if student.Serie != req.Series {
		return nil, ErrStudentNotInSeries
	}

	date, err := s.parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	now := s.now()
	payload := s.buildPayload(student, tmpl, date, now)
	delivery := model.Delivery{
		ID:               "msg_" + uuid.NewString(),
		Timestamp:        now.UTC(),
		StudentID:        student.ID,
		TemplateID:       tmpl.ID,
		ProcessedMessage: payload.Message.Content,
		Channel:          s.dispatcher.Channel(),
		Payload:          payload,
	}

	result, dispatchErr := s.dispatcher.Dispatch(ctx, payload)
	if dispatchErr != nil {
		delivery.Status = model.DeliveryFailed
		delivery.Error = dispatchErr.Error()
		var rejected *dispatch.RejectedError
		if errors.As(dispatchErr, &rejected) {
			delivery.StatusCode = rejected.StatusCode
		}
	} else {
		delivery.Status = model.DeliveryDelivered
		delivery.StatusCode = result.StatusCode
	}
	s.deliveryRepo.Append(delivery)

	if dispatchErr != nil {
		s.log.Error().Err(dispatchErr).
			Str("delivery_id", delivery.ID).
			Str("student_id", student.ID).
			Str("channel", delivery.Channel).
			Msg("Message dispatch failed")
		return &delivery, fmt.Errorf("%w: %w", ErrDispatchFailed, dispatchErr)
	}

	s.log.Info().
		Str("delivery_id", delivery.ID).
		Str("student_id", student.ID).
		Str("template_id", tmpl.ID).
		Str("channel", delivery.Channel).
		Msg("Message delivered")
	return &delivery, nil
}

// History returns recorded deliveries, newest first.
func (s *MessagingService) History() []model.Delivery {
	list := s.deliveryRepo.List()
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	return list
}

func (s *MessagingService) parseDate(day string) (*time.Time, error) {
	if day == "" {
		return nil, nil
	}
	t, err := school.ParseDay(day, s.loc)
	if err != nil {
		return nil, ErrInvalidDate
	}
	return &t, nil
}

func (s *MessagingService) buildPayload(student model.Student, tmpl model.MessageTemplate, date *time.Time, now time.Time) *model.DispatchPayload {
	var eventDate *string
	if date != nil {
		d := date.Format(school.DateLayout)
		eventDate = &d
	}

	return &model.DispatchPayload{
		Timestamp: now.UTC().Format(dispatch.TimestampLayout),
		School:    model.PayloadSchool{Name: s.school.Name, System: s.school.System},
		Student:   model.PayloadStudent{ID: student.ID, Name: student.Name, Serie: student.Serie},
		Guardian: model.PayloadGuardian{
			Name:  student.GuardianName,
			Email: student.GuardianEmail,
			Phone: student.GuardianPhone,
		},
		Message: model.PayloadMessage{
			Content:          school.Render(tmpl.Template, student.Name, date),
			OriginalTemplate: tmpl.Template,
			EventDate:        eventDate,
		},
		Metadata: model.PayloadMetadata{
			SystemUser: systemUser,
			Channels:   append([]string(nil), messageChannels...),
			Priority:   messagePriority,
			Category:   messageCategory,
		},
	}
}
