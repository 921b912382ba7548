package dispatch

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/stemsi/educonnect-backend/internal/model"
)

// LogDispatcher only logs the payload. Used for local runs without a channel.
type LogDispatcher struct {
	log zerolog.Logger
}

func NewLogDispatcher(log zerolog.Logger) *LogDispatcher {
	return &LogDispatcher{log: log.With().Str("component", "log_dispatcher").Logger()}
}

func (d *LogDispatcher) Channel() string {
	return ChannelLog
}

func (d *LogDispatcher) Dispatch(_ context.Context, payload *model.DispatchPayload) (*Result, error) {
	d.log.Info().
		Str("student_id", payload.Student.ID).
		Str("guardian_email", payload.Guardian.Email).
		Strs("channels", payload.Metadata.Channels).
		Str("content", payload.Message.Content).
		Msg("Message dispatched (dry run)")
	return &Result{Detail: "dry run"}, nil
}
