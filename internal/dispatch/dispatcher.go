// Package dispatch delivers processed messages to guardians. Every
// dispatcher reports a typed outcome instead of assuming success.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stemsi/educonnect-backend/internal/config"
	"github.com/stemsi/educonnect-backend/internal/model"
)

// Channel names reported in delivery records.
const (
	ChannelWebhook  = "webhook"
	ChannelSendgrid = "sendgrid"
	ChannelLog      = "log"
)

// ErrRejected is returned when the remote side answered with a non-2xx status.
var ErrRejected = errors.New("delivery rejected by remote endpoint")

// Result describes an accepted delivery.
type Result struct {
	StatusCode int
	Detail     string
}

// Dispatcher sends one payload and reports whether the channel accepted it.
type Dispatcher interface {
	Channel() string
	Dispatch(ctx context.Context, payload *model.DispatchPayload) (*Result, error)
}

// RejectedError carries the status returned by a rejecting endpoint.
type RejectedError struct {
	StatusCode int
	Body       string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s: status %d", ErrRejected, e.StatusCode)
}

func (e *RejectedError) Unwrap() error {
	return ErrRejected
}

// New builds the dispatcher selected by cfg.DispatchDriver.
func New(cfg *config.Config, log zerolog.Logger) (Dispatcher, error) {
	switch cfg.DispatchDriver {
	case "", ChannelWebhook:
		return NewWebhookDispatcher(cfg.WebhookURL, cfg.SchoolSystem, cfg.WebhookTimeout), nil
	case ChannelSendgrid:
		if cfg.SendgridAPIKey == "" {
			return nil, errors.New("SENDGRID_API_KEY is required for the sendgrid driver")
		}
		return NewSendgridDispatcher(cfg.SendgridAPIKey, cfg.SendgridFromName, cfg.SendgridFromEmail, cfg.SchoolName, cfg.WebhookTimeout), nil
	case ChannelLog:
		return NewLogDispatcher(log), nil
	default:
		return nil, fmt.Errorf("unknown dispatch driver %q", cfg.DispatchDriver)
	}
}
