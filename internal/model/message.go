package model

import "time"

// SendMessageRequest is the messaging form submission. Fields are checked in
// order by the messaging service so the first missing one is reported.
type SendMessageRequest struct {
	Series     string `json:"series" binding:"max=50"`
	StudentID  string `json:"student_id" binding:"max=50"`
	TemplateID string `json:"template_id" binding:"max=50"`
	Date       string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// PreviewMessageRequest renders a message without sending it.
type PreviewMessageRequest struct {
	StudentID  string `json:"student_id" binding:"required,max=50"`
	TemplateID string `json:"template_id" binding:"required,max=50"`
	Date       string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// MessagePreview is the rendered message shown before sending.
type MessagePreview struct {
	Message     string `json:"message"`
	NeedsDate   bool   `json:"needs_date"`
	DateDisplay string `json:"date_display,omitempty"`
}

// DeliveryStatus is the outcome of a dispatch attempt.
type DeliveryStatus string

const (
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
)

// Delivery records one dispatch attempt.
type Delivery struct {
	ID               string           `json:"id"`
	Timestamp        time.Time        `json:"timestamp"`
	StudentID        string           `json:"student_id"`
	TemplateID       string           `json:"template_id"`
	ProcessedMessage string           `json:"processed_message"`
	Channel          string           `json:"channel"`
	Status           DeliveryStatus   `json:"status"`
	StatusCode       int              `json:"status_code,omitempty"`
	Error            string           `json:"error,omitempty"`
	Payload          *DispatchPayload `json:"payload"`
}

// DispatchPayload is the JSON document handed to the delivery channel.
type DispatchPayload struct {
	Timestamp string          `json:"timestamp"`
	School    PayloadSchool   `json:"escola"`
	Student   PayloadStudent  `json:"aluno"`
	Guardian  PayloadGuardian `json:"responsavel"`
	Message   PayloadMessage  `json:"mensagem"`
	Metadata  PayloadMetadata `json:"metadados"`
}

type PayloadSchool struct {
	Name   string `json:"nome"`
	System string `json:"sistema"`
}

type PayloadStudent struct {
	ID    string `json:"id"`
	Name  string `json:"nome"`
	Serie string `json:"serie"`
}

type PayloadGuardian struct {
	Name  string `json:"nome"`
	Email string `json:"email"`
	Phone string `json:"telefone"`
}

type PayloadMessage struct {
	Content          string  `json:"conteudo"`
	OriginalTemplate string  `json:"template_original"`
	EventDate        *string `json:"data_evento"`
}

type PayloadMetadata struct {
	SystemUser string   `json:"usuario_sistema"`
	Channels   []string `json:"canal_envio"`
	Priority   string   `json:"prioridade"`
	Category   string   `json:"categoria"`
}
