package effects

// Builder provides a fluent API for creating buffs from card ops.
type Builder struct {
	kind     Kind
	amount   int
	duration int
	sourceID string
}

// New starts a builder for kind with magnitude 1 lasting 1.
func New(kind Kind) *Builder {
	return &Builder{
		kind:     kind,
		amount:   1,
		duration: 1,
	}
}

// Magnitude sets the buff strength.
func (b *Builder) Magnitude(amount int) *Builder {
	b.amount = amount
	return b
}

// For sets the number of charges, rounds, or cards the buff lasts.
func (b *Builder) For(duration int) *Builder {
	if duration > 0 {
		b.duration = duration
	}
	return b
}

// From records the card that created the buff.
func (b *Builder) From(cardID string) *Builder {
	b.sourceID = cardID
	return b
}

// Build creates the buff. Unknown kinds return an error.
func (b *Builder) Build() (*Buff, error) {
	buff, err := newBuff(b.kind, b.amount, b.duration)
	if err != nil {
		return nil, err
	}
	buff.SourceCardID = b.sourceID
	return buff, nil
}

// MustBuild is Build for kinds known at compile time.
func (b *Builder) MustBuild() *Buff {
	buff, err := b.Build()
	if err != nil {
		panic(err)
	}
	return buff
}
