package audio

import (
	"context"
	"slices"
	"time"

	"github.com/spincat/pixelpet/internal/pubsub"
)

// EventType categorizes audio subsystem events.
type EventType string

const (
	// EventAction signals an abstract UI action that may map to a sound.
	EventAction EventType = "audio.event"
	// EventVolumeChanged signals a master volume change.
	EventVolumeChanged EventType = "audio.volume_changed"
	// EventEnabledChanged signals the enabled flag flipping.
	EventEnabledChanged EventType = "audio.enabled_changed"
	// EventSystemInitialized signals the engine finished starting up.
	EventSystemInitialized EventType = "audio.system_initialized"
)

// String returns the string representation of the EventType.
func (t EventType) String() string {
	return string(t)
}

// Event is the envelope for all audio subsystem events.
type Event struct {
	// Type identifies the kind of event.
	Type EventType
	// Timestamp when the event occurred.
	Timestamp time.Time

	// Action names the abstract trigger, e.g. "slider.change". Set for
	// EventAction.
	Action string

	// Volume carries the new master volume for EventVolumeChanged.
	Volume float64
	// Enabled carries the new flag for EventEnabledChanged.
	Enabled bool
}

// NewActionEvent creates an EventAction for the named trigger.
func NewActionEvent(action string) Event {
	return Event{
		Type:      EventAction,
		Timestamp: time.Now(),
		Action:    action,
	}
}

// EventFilter defines criteria for filtering Events in subscriptions.
// Criteria are AND'd together.
type EventFilter struct {
	// Types limits events to these specific types. If empty, all types are allowed.
	Types []EventType

	// ExcludeTypes excludes events of these types. Applied after Types.
	ExcludeTypes []EventType
}

// Matches returns true if the event passes the filter. An empty filter
// matches all events.
func (f *EventFilter) Matches(event Event) bool {
	if len(f.Types) > 0 && !slices.Contains(f.Types, event.Type) {
		return false
	}
	if len(f.ExcludeTypes) > 0 && slices.Contains(f.ExcludeTypes, event.Type) {
		return false
	}
	return true
}

// IsEmpty returns true if the filter has no criteria set.
func (f *EventFilter) IsEmpty() bool {
	return len(f.Types) == 0 && len(f.ExcludeTypes) == 0
}

// Bus distributes audio events to subscribers. Publishing never blocks.
type Bus struct {
	broker *pubsub.Broker[Event]
}

// NewBus creates an event bus ready for use.
func NewBus() *Bus {
	return &Bus{broker: pubsub.NewBroker[Event]()}
}

// Publish delivers the event to all matching subscribers.
func (b *Bus) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	b.broker.Publish(event)
}

// Subscribe registers a subscriber. A nil filter receives everything. The
// returned channel closes when ctx is cancelled.
func (b *Bus) Subscribe(ctx context.Context, filter *EventFilter) <-chan Event {
	raw := b.broker.Subscribe(ctx)
	if filter == nil || filter.IsEmpty() {
		return raw
	}

	out := make(chan Event, cap(raw))
	go func() {
		defer close(out)
		for event := range raw {
			if !filter.Matches(event) {
				continue
			}
			select {
			case out <- event:
			default:
			}
		}
	}()
	return out
}

// Shutdown closes all subscriptions.
func (b *Bus) Shutdown() {
	b.broker.Shutdown()
}
