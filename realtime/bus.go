package realtime

import "context"

// Bus carries messages between processes. Every message published on the bus
// is delivered to the local hub of each running instance.
type Bus interface {
	Publish(ctx context.Context, msg Message) error
	Start(ctx context.Context) error
	Close() error
}

// LocalBus delivers straight to a single in-process hub.
type LocalBus struct {
	hub *Hub
}

func NewLocalBus(hub *Hub) *LocalBus {
	return &LocalBus{hub: hub}
}

func (b *LocalBus) Publish(_ context.Context, msg Message) error {
	b.hub.Broadcast(msg)
	return nil
}

func (b *LocalBus) Start(context.Context) error { return nil }

func (b *LocalBus) Close() error { return nil }
