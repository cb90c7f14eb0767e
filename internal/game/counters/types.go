package counters

// CounterType names the counters used by the rules engine.
type CounterType string

const (
	// CounterTypeCharges counts remaining uses, e.g. evasion charges.
	CounterTypeCharges CounterType = "charges"
	// CounterTypeRounds counts rounds a timed buff has left.
	CounterTypeRounds CounterType = "rounds"
	// CounterTypeCards counts cards the owner may play before a buff expires.
	CounterTypeCards CounterType = "cards"
	// CounterTypeCombo is the forced-draw count pending on a player.
	CounterTypeCombo CounterType = "combo"
)

// String returns the counter name.
func (ct CounterType) String() string {
	return string(ct)
}

// New creates a counter of this type.
func (ct CounterType) New(count int) *Counter {
	return NewCounter(string(ct), count)
}
