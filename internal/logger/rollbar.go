package logger

import (
	"github.com/rollbar/rollbar-go"
	"github.com/rs/zerolog"
)

// WithRollbar forwards error and fatal entries of log to Rollbar.
// An empty token returns log unchanged.
func WithRollbar(log zerolog.Logger, token, env, host string) zerolog.Logger {
	if token == "" {
		return log
	}

	rollbar.SetToken(token)
	rollbar.SetEnvironment(env)
	rollbar.SetServerHost(host)

	return log.Hook(RollbarHook{report: reportToRollbar, flush: rollbar.Wait})
}

// FlushRollbar waits for queued Rollbar items to be sent.
func FlushRollbar() {
	rollbar.Wait()
}

// RollbarHook is a zerolog hook reporting error-level messages.
// Fatal and panic entries are flushed before the hook returns, since the
// process stops right after them.
type RollbarHook struct {
	report func(level zerolog.Level, msg string)
	flush  func()
}

// Run implements zerolog.Hook.
func (h RollbarHook) Run(_ *zerolog.Event, level zerolog.Level, msg string) {
	switch level {
	case zerolog.ErrorLevel:
		h.report(level, msg)
	case zerolog.FatalLevel, zerolog.PanicLevel:
		h.report(level, msg)
		if h.flush != nil {
			h.flush()
		}
	}
}

func reportToRollbar(level zerolog.Level, msg string) {
	if level == zerolog.ErrorLevel {
		rollbar.Error(msg)
		return
	}
	rollbar.Critical(msg)
}
