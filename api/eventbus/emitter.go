package eventbus

import (
	"sync"
	"sync/atomic"

	"github.com/cskr/pubsub/v2"
	"github.com/neurodeck-org/cortex-native/api/cortex"
)

// nilEventHandler represents a disabled event handler.
type nilEventHandler struct{}

// defaultEventHandler represents an internal event handler.
type defaultEventHandler struct {
	*pubsub.PubSub[cortex.StreamName, any]

	closed atomic.Bool
}

// EventPublisher represents an interface that provides an event publisher.
type EventPublisher interface {
	// Publish publishes an event to the event stream.
	Publish(stream cortex.StreamName, data any)
}

// EventSubscriber represents an interface that provides an event subscriber.
type EventSubscriber interface {
	// Subscribe subscribes to an event from the event stream.
	Subscribe(stream cortex.StreamName) SubscriberID
}

// EventHandler represents an interface that provides an event publisher and subscriber.
type EventHandler interface {
	EventPublisher
	EventSubscriber
}

// SubscriberID is a subscription to one stream.
// C receives either cortex.StreamSample or cortex.TrainingEvent values.
type SubscriberID struct {
	C <-chan any

	active bool
	unsub  func()
	once   *sync.Once
}

// Bus dispatches polled stream messages to subscribers.
type Bus struct {
	p EventPublisher
	s EventSubscriber

	mu sync.RWMutex
}

// New returns a bus backed by the default event handler.
func New(capacity int) *Bus {
	b := &Bus{}
	b.RegisterEventHandler(DefaultHandler(capacity))

	return b
}

// RegisterEventHandler registers the event handler interface.
func (b *Bus) RegisterEventHandler(eh EventHandler) {
	if eh == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.p = eh
	b.s = eh
}

// Close shuts down the registered handler, closing all subscriber channels.
// The bus stays usable afterwards with events disabled.
func (b *Bus) Close() {
	if b == nil {
		return
	}

	b.mu.Lock()
	p := b.p
	b.p = &nilEventHandler{}
	b.s = &nilEventHandler{}
	b.mu.Unlock()

	if d, ok := p.(*defaultEventHandler); ok {
		d.closed.Store(true)
		d.Shutdown()
	}
}

// DisableEvents unregisters the event handler.
func (b *Bus) DisableEvents() {
	b.RegisterEventHandler(&nilEventHandler{})
}

// Publish calls the registered publisher handler.
func (b *Bus) Publish(stream cortex.StreamName, data any) {
	if b == nil || stream == "" {
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	b.p.Publish(stream, data)
}

// Subscribe calls the registered subscriber handler.
func (b *Bus) Subscribe(stream cortex.StreamName) SubscriberID {
	if b == nil || stream == "" {
		return (&nilEventHandler{}).Subscribe("")
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.s.Subscribe(stream)
}

// DefaultHandler returns the default event handler.
func DefaultHandler(capacity int) *defaultEventHandler {
	return &defaultEventHandler{PubSub: pubsub.New[cortex.StreamName, any](capacity)}
}

// Publish publishes an event to the event stream without blocking.
func (d *defaultEventHandler) Publish(stream cortex.StreamName, data any) {
	d.TryPub(data, stream)
}

// Subscribe subscribes to an event from the event stream.
func (d *defaultEventHandler) Subscribe(stream cortex.StreamName) SubscriberID {
	ch := d.Sub(stream)
	return SubscriberID{
		C:      ch,
		active: true,
		unsub: func() {
			if d.closed.Load() {
				return
			}

			go d.Unsub(ch, stream)
		},
		once: &sync.Once{},
	}
}

// Publish does not do anything.
func (n *nilEventHandler) Publish(cortex.StreamName, any) {
}

// Subscribe does not do anything.
func (n *nilEventHandler) Subscribe(cortex.StreamName) SubscriberID {
	ch := make(chan any)
	close(ch)
	return SubscriberID{C: ch}
}

// Active reports whether the subscription can receive events.
func (s SubscriberID) Active() bool {
	return s.active
}

// Unsubscribe cancels the subscription. The channel is closed asynchronously.
func (s SubscriberID) Unsubscribe() {
	if !s.active || s.unsub == nil {
		return
	}

	s.once.Do(s.unsub)
}
