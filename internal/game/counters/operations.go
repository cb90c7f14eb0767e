package counters

import (
	"fmt"

	"github.com/magefree/hollowdeck/internal/game/rules"
)

// Operations changes player-level counters and emits events describing the change.
type Operations struct {
	eventBus *rules.EventBus
}

// NewOperations creates a new Operations instance. A nil bus disables events.
func NewOperations(eventBus *rules.EventBus) *Operations {
	return &Operations{eventBus: eventBus}
}

// Add adds amount of counterType to the collection owned by playerID.
func (o *Operations) Add(cs *Counters, playerID string, counterType CounterType, amount int) {
	if cs == nil || amount <= 0 {
		return
	}
	total := cs.Add(counterType, amount)
	o.publish(rules.EventCounterAdded, playerID, counterType, amount, total)
}

// Take clears counterType from the collection and returns how many were held.
func (o *Operations) Take(cs *Counters, playerID string, counterType CounterType) int {
	if cs == nil {
		return 0
	}
	amount := cs.Clear(counterType)
	if amount > 0 {
		o.publish(rules.EventCounterRemoved, playerID, counterType, amount, 0)
	}
	return amount
}

func (o *Operations) publish(eventType rules.EventType, playerID string, counterType CounterType, amount, total int) {
	if o == nil || o.eventBus == nil {
		return
	}
	evt := rules.NewEventWithAmount(eventType, playerID, playerID, playerID, amount)
	evt.Data = counterType.String()
	evt.Metadata["counter_name"] = counterType.String()
	evt.Metadata["counter_total"] = fmt.Sprintf("%d", total)
	evt.Description = fmt.Sprintf("%s %s counter now %d", playerID, counterType, total)
	o.eventBus.Publish(evt)
}
