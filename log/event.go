package log

import (
	"fmt"
	"time"

	"github.com/lumavpn/broadcast"
)

// eventReplay is how many recent entries a late subscriber gets replayed.
const eventReplay = 64

var emitter, events = broadcast.New[Event](
	broadcast.WithStrategy(broadcast.BoundedReplay(eventReplay)))

type Event struct {
	Level   LogLevel  `json:"level"`
	Message string    `json:"msg"`
	Time    time.Time `json:"time"`
}

func newEvent(level LogLevel, format string, args ...any) Event {
	event := Event{
		Level:   level,
		Time:    time.Now(),
		Message: fmt.Sprintf(format, args...),
	}
	emitter.Broadcast(event)
	return event
}

// Listen subscribes handler to the log event feed. Recent entries are
// replayed first; dispose the returned subscription to stop.
func Listen(handler func(Event)) *broadcast.Subscription {
	return events.Listen(handler)
}
