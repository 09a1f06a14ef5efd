package output

import "gemini-agent/internal/domain/entity"

type EventPrinter interface {
	PrintUser(message string)
	PrintEvent(event entity.Event, verbose bool)
}
