package resources

// Kind identifies one of the player resources.
type Kind string

const (
	Health  Kind = "HEALTH"
	Stamina Kind = "STAMINA"
	Focus   Kind = "FOCUS"
)

// Pool is a clamped resource counter. Original keeps the starting maximum so
// effects that shrink Max can be reported against it.
type Pool struct {
	Kind     Kind
	Current  int
	Max      int
	Original int
}

// NewPool creates a full pool with the given maximum.
func NewPool(kind Kind, max int) *Pool {
	if max < 0 {
		max = 0
	}
	return &Pool{
		Kind:     kind,
		Current:  max,
		Max:      max,
		Original: max,
	}
}

// Add raises the pool by amount, clamped to Max. Returns the amount applied.
func (p *Pool) Add(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := p.Current
	p.Current += amount
	if p.Current > p.Max {
		p.Current = p.Max
	}
	return p.Current - before
}

// Remove lowers the pool by amount, clamped to 0. Returns the amount applied.
func (p *Pool) Remove(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := p.Current
	p.Current -= amount
	if p.Current < 0 {
		p.Current = 0
	}
	return before - p.Current
}

// Spend removes exactly amount or nothing.
// Returns false if the pool holds less than amount.
func (p *Pool) Spend(amount int) bool {
	if amount <= 0 {
		return true
	}
	if p.Current < amount {
		return false
	}
	p.Current -= amount
	return true
}

// Refill restores the pool to Max.
func (p *Pool) Refill() {
	p.Current = p.Max
}

// ShrinkMax lowers Max by amount (never below 1) and clamps Current.
// Returns the amount Max actually dropped.
func (p *Pool) ShrinkMax(amount int) int {
	if amount <= 0 {
		return 0
	}
	before := p.Max
	p.Max -= amount
	if p.Max < 1 {
		p.Max = 1
	}
	if p.Current > p.Max {
		p.Current = p.Max
	}
	return before - p.Max
}

// Depleted reports whether the pool dropped below 1.
func (p *Pool) Depleted() bool {
	return p.Current < 1
}

// Copy creates a copy of the pool.
func (p *Pool) Copy() *Pool {
	cpy := *p
	return &cpy
}
