package rules

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType indicates the category of a rules event.
type EventType string

const (
	// Match/turn events
	EventMatchStarted        EventType = "MATCH_STARTED"
	EventTurnStarted         EventType = "TURN_STARTED"
	EventTurnSwitchRequested EventType = "TURN_SWITCH_REQUESTED"
	EventTurnSwitched        EventType = "TURN_SWITCHED"
	EventRoundAdvanced       EventType = "ROUND_ADVANCED"
	EventGameOver            EventType = "GAME_OVER"
	EventForcedEndTurn       EventType = "FORCED_END_TURN"
	EventPresentationCue     EventType = "PRESENTATION_CUE"

	// Card events
	EventCardDrawn     EventType = "CARD_DRAWN"
	EventCardPlayed    EventType = "CARD_PLAYED"
	EventCardResolved  EventType = "CARD_RESOLVED"
	EventCardDiscarded EventType = "CARD_DISCARDED"
	EventDeckRefilled  EventType = "DECK_REFILLED"

	// Damage/resource events
	EventDamageDealt     EventType = "DAMAGE_DEALT"
	EventDamageNegated   EventType = "DAMAGE_NEGATED"
	EventHealed          EventType = "HEALED"
	EventLifeLost        EventType = "LIFE_LOST"
	EventResourcePaid    EventType = "RESOURCE_PAID"
	EventResourceGained  EventType = "RESOURCE_GAINED"
	EventMaxHealthShrunk EventType = "MAX_HEALTH_SHRUNK"

	// Buff events
	EventBuffAdded      EventType = "BUFF_ADDED"
	EventBuffExpired    EventType = "BUFF_EXPIRED"
	EventChargeConsumed EventType = "CHARGE_CONSUMED"
	EventCleansed       EventType = "CLEANSED"

	// Counter events
	EventCounterAdded   EventType = "COUNTER_ADDED"
	EventCounterRemoved EventType = "COUNTER_REMOVED"
	EventComboResolved  EventType = "COMBO_RESOLVED"
)

// Event represents a state change that other subsystems may react to.
type Event struct {
	Type        EventType
	ID          string            // Unique event ID
	TargetID    string            // ID of the target (card, player)
	SourceID    string            // ID of the source card or buff
	Controller  string            // Player ID of the controller
	PlayerID    string            // Player ID (often same as Controller, but can differ)
	Amount      int               // Numeric value (damage, health, counters, etc.)
	Flag        bool              // Boolean flag (e.g. human vs npc for turn cues)
	Data        string            // Additional string data
	Round       int               // Round the event occurred in
	Timestamp   time.Time         // When the event occurred
	Metadata    map[string]string // Additional metadata
	Description string            // Human-readable description
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

type handledListener struct {
	handle   int
	listener Listener
}

// EventBus provides a synchronous publish/subscribe implementation with type filtering.
// Listeners run in subscription order and may publish or subscribe re-entrantly.
type EventBus struct {
	mu             sync.RWMutex
	listeners      []handledListener
	typedListeners map[EventType][]TypedListener
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners = append(bus.listeners, handledListener{handle: handle, listener: listener})
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle, typed or not.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, l := range bus.listeners {
		if l.handle == handle {
			bus.listeners = append(bus.listeners[:i:i], bus.listeners[i+1:]...)
			return
		}
	}
	for eventType, listeners := range bus.typedListeners {
		for i := range listeners {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i:i], listeners[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
func (bus *EventBus) Publish(event Event) {
	if bus == nil {
		return
	}
	bus.mu.RLock()
	all := make([]handledListener, len(bus.listeners))
	copy(all, bus.listeners)
	typed := make([]TypedListener, len(bus.typedListeners[event.Type]))
	copy(typed, bus.typedListeners[event.Type])
	bus.mu.RUnlock()

	for _, l := range all {
		l.listener(event)
	}
	for _, l := range typed {
		l.Callback(event)
	}
}

// PublishBatch publishes multiple events in order.
func (bus *EventBus) PublishBatch(events []Event) {
	for _, event := range events {
		bus.Publish(event)
	}
}

// NewEvent creates a new event with common fields populated.
func NewEvent(eventType EventType, targetID, sourceID, controllerID string) Event {
	return Event{
		Type:       eventType,
		ID:         uuid.NewString(),
		TargetID:   targetID,
		SourceID:   sourceID,
		Controller: controllerID,
		PlayerID:   controllerID,
		Timestamp:  time.Now(),
		Metadata:   make(map[string]string),
	}
}

// NewEventWithAmount creates a new event with an amount value.
func NewEventWithAmount(eventType EventType, targetID, sourceID, controllerID string, amount int) Event {
	evt := NewEvent(eventType, targetID, sourceID, controllerID)
	evt.Amount = amount
	return evt
}

// NewEventWithFlag creates a new event with a flag value.
func NewEventWithFlag(eventType EventType, targetID, sourceID, controllerID string, flag bool) Event {
	evt := NewEvent(eventType, targetID, sourceID, controllerID)
	evt.Flag = flag
	return evt
}
