package model

// MessageTemplate is a predefined message body with placeholder tokens.
type MessageTemplate struct {
	ID       string `json:"id"`
	Titulo   string `json:"titulo"`
	Template string `json:"template"`
}
