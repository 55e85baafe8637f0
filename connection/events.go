package connection

import (
	"sync"

	"github.com/hzamani/cassandra-go/message"
	"github.com/rs/zerolog/log"
)

// Event is a server-pushed notification delivered to every subscriber registered through Connection.Register.
type Event = message.Event

// eventBroadcaster fans an incoming Event out to every current subscriber. publish and closeAll only ever run on
// the actor goroutine; subscribe runs on whichever caller goroutine calls Connection.Register, once the server has
// acknowledged the registration. The mutex guards the subscriber map between that caller and the actor.
type eventBroadcaster struct {
	mu          sync.Mutex
	subscribers map[int]chan Event
	nextId      int
	buffer      int
}

func newEventBroadcaster(buffer int) *eventBroadcaster {
	return &eventBroadcaster{subscribers: make(map[int]chan Event), buffer: buffer}
}

func (b *eventBroadcaster) subscribe() <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextId
	b.nextId++
	ch := make(chan Event, b.buffer)
	b.subscribers[id] = ch
	return ch
}

// publish delivers event to every subscriber without blocking on any of them: a subscriber whose buffer is full is
// lagging, and the event is dropped for it rather than stalling request/response routing on the same connection,
// which shares this goroutine with event delivery.
func (b *eventBroadcaster) publish(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			log.Warn().Msgf("event subscriber %d is lagging, dropping event: %v", id, event)
		}
	}
}

func (b *eventBroadcaster) closeAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subscribers {
		close(ch)
		delete(b.subscribers, id)
	}
}
