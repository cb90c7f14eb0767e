package counters

import "maps"

// Counter is a single named tally owned by something else, such as the
// remaining charges of a buff.
type Counter struct {
	Name  string
	Count int
}

// NewCounter returns a counter holding at least one.
func NewCounter(name string, count int) *Counter {
	return &Counter{Name: name, Count: max(count, 1)}
}

// Add grows the tally; non-positive amounts are ignored.
func (c *Counter) Add(amount int) {
	c.Count += max(amount, 0)
}

// Remove shrinks the tally, stopping at zero.
func (c *Counter) Remove(amount int) {
	c.Count = max(c.Count-max(amount, 0), 0)
}

// Exhausted reports whether nothing is left.
func (c *Counter) Exhausted() bool {
	return c.Count <= 0
}

// Counters holds the player-level tallies, keyed by type. Zero tallies are
// never stored.
type Counters struct {
	tally map[CounterType]int
}

// NewCounters returns an empty set.
func NewCounters() *Counters {
	return &Counters{tally: make(map[CounterType]int)}
}

// Add increases ct by amount and returns the new total.
func (cs *Counters) Add(ct CounterType, amount int) int {
	if amount > 0 {
		cs.tally[ct] += amount
	}
	return cs.tally[ct]
}

// Remove decreases ct by amount, deleting it once it reaches zero. It
// reports whether anything was held.
func (cs *Counters) Remove(ct CounterType, amount int) bool {
	held, ok := cs.tally[ct]
	if !ok || amount <= 0 {
		return false
	}
	if held <= amount {
		delete(cs.tally, ct)
	} else {
		cs.tally[ct] = held - amount
	}
	return true
}

// Clear drops ct and returns what it held.
func (cs *Counters) Clear(ct CounterType) int {
	held := cs.tally[ct]
	delete(cs.tally, ct)
	return held
}

// Count returns the tally for ct.
func (cs *Counters) Count(ct CounterType) int {
	return cs.tally[ct]
}

// Total sums every tally.
func (cs *Counters) Total() int {
	total := 0
	for _, n := range cs.tally {
		total += n
	}
	return total
}

// Clone returns an independent copy.
func (cs *Counters) Clone() *Counters {
	return &Counters{tally: maps.Clone(cs.tally)}
}
