package server

import (
	"time"

	"trackbase/core/track"
	"trackbase/logger"
	"trackbase/server/console"
)

// Broadcaster delivers diagnostics to console listeners.
type Broadcaster interface {
	Broadcast(console.Diagnostic)
}

// Console is the owning context handed to every track the server touches. It
// forwards diagnostics to the structured log and, when a hub is attached, to
// the websocket console.
type Console struct {
	hub Broadcaster
}

// NewConsole creates a console context. hub may be nil; diagnostics are then
// only logged.
func NewConsole(hub Broadcaster) *Console {
	return &Console{hub: hub}
}

// PostDiagnostic implements track.DiagnosticPoster.
func (c *Console) PostDiagnostic(category track.Category, level track.Level, message string) {
	switch level {
	case track.LevelError:
		logger.Error(message, logger.String("category", string(category)))
	case track.LevelWarning:
		logger.Warn(message, logger.String("category", string(category)))
	default:
		logger.Info(message, logger.String("category", string(category)))
	}

	if c.hub != nil {
		c.hub.Broadcast(console.Diagnostic{
			Category: string(category),
			Level:    string(level),
			Message:  message,
			Time:     time.Now(),
		})
	}
}
