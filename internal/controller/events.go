package controller

import (
	"coworking/internal/domain"

	"github.com/rs/zerolog"
)

func publish(events domain.EventPublisher, logger *zerolog.Logger, eventType string, payload any) {
	if events == nil {
		return
	}
	if err := events.PublishJSON(eventType, payload); err != nil {
		logger.Error().Err(err).Str("event", eventType).Msg("Failed to publish event")
	}
}

func nopLogger(logger *zerolog.Logger) *zerolog.Logger {
	if logger != nil {
		return logger
	}
	nop := zerolog.Nop()
	return &nop
}
