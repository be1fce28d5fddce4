package realtime

import (
	"context"
	"time"

	"github.com/online-bazar/bazar-backend/logger"
)

// Broadcaster is the entry point services use to emit events.
type Broadcaster struct {
	bus Bus
	log *logger.Logger
}

func NewBroadcaster(bus Bus, log *logger.Logger) *Broadcaster {
	if log == nil {
		log = logger.Nop()
	}
	return &Broadcaster{bus: bus, log: log}
}

// Emit publishes event with data on every channel. Failures are logged and
// otherwise ignored so callers never fail because of realtime delivery.
func (b *Broadcaster) Emit(ctx context.Context, event string, data any, channels ...string) {
	if b == nil || b.bus == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()

	for _, ch := range channels {
		if ch == "" {
			continue
		}
		if err := b.bus.Publish(ctx, Message{Channel: ch, Event: event, Data: data}); err != nil {
			b.log.Warn("[realtime] publish failed", "channel", ch, "event", event, "error", err)
		}
	}
}
