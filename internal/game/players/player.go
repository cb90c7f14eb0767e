package players

import (
	"fmt"
	"time"

	"github.com/magefree/hollowdeck/internal/game/cards"
	"github.com/magefree/hollowdeck/internal/game/counters"
	"github.com/magefree/hollowdeck/internal/game/effects"
	"github.com/magefree/hollowdeck/internal/game/resources"
	"github.com/magefree/hollowdeck/internal/game/rules"
)

// Kind distinguishes the human player from NPC opponents.
type Kind int

const (
	KindHuman Kind = iota
	KindNpc
)

func (k Kind) String() string {
	if k == KindNpc {
		return "npc"
	}
	return "human"
}

const (
	// DefaultHandSize is the number of cards drawn up to at turn start.
	DefaultHandSize = 5
	// MaxHandSize caps the hand; cards drawn beyond it go to the reserve.
	MaxHandSize = 10
)

// Stats are the starting values of a player.
type Stats struct {
	Health     int `yaml:"health" mapstructure:"health"`
	Stamina    int `yaml:"stamina" mapstructure:"stamina"`
	Focus      int `yaml:"focus" mapstructure:"focus"`
	FocusRegen int `yaml:"focus_regen" mapstructure:"focus_regen"`
	HandSize   int `yaml:"hand_size" mapstructure:"hand_size"`
}

// Player is one side of a match. Zone stacks hold card instances by
// reference; a card is in exactly one of them or in the shared played pile.
type Player struct {
	ID   string
	Name string
	Kind Kind

	Health  *resources.Pool
	Stamina *resources.Pool
	Focus   *resources.Pool

	FocusRegen int
	HandSize   int
	// MotionDuration is how long a freshly drawn or played card is in motion.
	MotionDuration time.Duration

	Hand    *cards.Stack
	Deck    *cards.Stack
	Reserve *cards.Stack

	Effects  *effects.Manager
	Counters *counters.Counters
	Opponent *Player

	bus *rules.EventBus
}

// New creates a player with full pools and empty zones.
func New(id, name string, kind Kind, stats Stats, bus *rules.EventBus) *Player {
	if stats.HandSize <= 0 {
		stats.HandSize = DefaultHandSize
	}
	stats.HandSize = min(stats.HandSize, MaxHandSize)
	p := &Player{
		ID:         id,
		Name:       name,
		Kind:       kind,
		Health:     resources.NewPool(resources.Health, stats.Health),
		Stamina:    resources.NewPool(resources.Stamina, stats.Stamina),
		Focus:      resources.NewPool(resources.Focus, stats.Focus),
		FocusRegen: stats.FocusRegen,
		HandSize:   stats.HandSize,
		Hand:       cards.NewStack(),
		Deck:       cards.NewStack(),
		Reserve:    cards.NewStack(),
		Counters:   counters.NewCounters(),
		bus:        bus,
	}
	p.Effects = effects.NewManager(p, bus)
	return p
}

// PlayerID returns the player's ID.
func (p *Player) PlayerID() string {
	return p.ID
}

// IsHuman reports whether the player is controlled by input.
func (p *Player) IsHuman() bool {
	return p.Kind == KindHuman
}

// Pool returns the resource pool of the given kind.
func (p *Player) Pool(kind resources.Kind) *resources.Pool {
	switch kind {
	case resources.Health:
		return p.Health
	case resources.Stamina:
		return p.Stamina
	case resources.Focus:
		return p.Focus
	default:
		return nil
	}
}

// Alive reports whether the player's health is at least 1.
func (p *Player) Alive() bool {
	return !p.Health.Depleted()
}

// OwnedCards returns the cards in hand followed by the deck.
func (p *Player) OwnedCards() []*cards.Card {
	out := p.Hand.Cards()
	return append(out, p.Deck.Cards()...)
}

// SetDeck replaces the deck with cs, shuffled with rng when non-nil.
func (p *Player) SetDeck(cs []*cards.Card, rng cards.RNG) {
	p.Deck = cards.NewStack(cs...)
	if rng != nil {
		p.Deck.Shuffle(rng)
	}
	p.Effects.Reconcile()
}

// BeginTurn refills stamina, regenerates focus and draws up to hand size.
// It returns the number of cards drawn.
func (p *Player) BeginTurn(played *cards.Stack, rng cards.RNG) int {
	p.Stamina.Refill()
	if p.FocusRegen > 0 {
		p.Focus.Add(p.FocusRegen)
	}
	need := p.HandSize - p.Hand.Len()
	if need <= 0 {
		return 0
	}
	return p.Draw(need, played, rng)
}

// Draw moves up to n cards from the deck into the hand. Before each draw,
// a deck holding at most one card is refilled from the reserve and the
// player's own played cards other than the topmost played card. A card drawn
// into a full hand is discarded. It returns the number of cards kept.
func (p *Player) Draw(n int, played *cards.Stack, rng cards.RNG) int {
	drawn := 0
	for i := 0; i < n; i++ {
		if p.Deck.Len() <= 1 {
			p.Refill(played, rng)
		}
		card, ok := p.Deck.PopFront()
		if !ok {
			break
		}
		p.Hand.PushBack(card)
		if p.Hand.Len() > MaxHandSize {
			p.Discard(card)
			continue
		}
		card.StartMotion(p.MotionDuration)
		p.Effects.ReconcileCard(card)
		drawn++

		evt := rules.NewEvent(rules.EventCardDrawn, card.ID, card.ID, p.ID)
		evt.Data = card.Name()
		p.bus.Publish(evt)
	}
	return drawn
}

// Refill appends the reserve and the player's played cards, except the
// topmost played card, to the deck in shuffled order. It returns the number
// of cards moved.
func (p *Player) Refill(played *cards.Stack, rng cards.RNG) int {
	pool := p.Reserve.RemoveWhere(func(*cards.Card) bool { return true })
	if played != nil {
		top, hasTop := played.Top()
		pool = append(pool, played.RemoveWhere(func(c *cards.Card) bool {
			return c.Owner == p.ID && (!hasTop || c != top)
		})...)
	}
	if len(pool) == 0 {
		return 0
	}
	if rng != nil {
		cards.Shuffle(pool, rng)
	}
	for _, c := range pool {
		c.ResetModifiers()
	}
	p.Deck.PushBack(pool...)
	p.Effects.Reconcile()

	evt := rules.NewEventWithAmount(rules.EventDeckRefilled, p.ID, p.ID, p.ID, len(pool))
	evt.Description = fmt.Sprintf("%s reshuffled %d cards", p.Name, len(pool))
	p.bus.Publish(evt)
	return len(pool)
}

// Discard moves a card from hand to reserve.
func (p *Player) Discard(card *cards.Card) bool {
	if !p.Hand.Remove(card) {
		return false
	}
	card.ResetModifiers()
	p.Reserve.PushBack(card)
	p.bus.Publish(rules.NewEvent(rules.EventCardDiscarded, card.ID, card.ID, p.ID))
	return true
}

// CardsInMotion counts this player's cards still moving in hand or on the
// played pile.
func (p *Player) CardsInMotion(played *cards.Stack) int {
	moving := 0
	for _, c := range p.Hand.Cards() {
		if c.Moving() {
			moving++
		}
	}
	if played != nil {
		for _, c := range played.Cards() {
			if c.Owner == p.ID && c.Moving() {
				moving++
			}
		}
	}
	return moving
}

// UpdateMotion advances the motion of every card the player holds.
func (p *Player) UpdateMotion(dt time.Duration) {
	for _, c := range p.Hand.Cards() {
		c.UpdateMotion(dt)
	}
}

// Affordable returns the cards in hand the player can currently pay for.
func (p *Player) Affordable() []*cards.Card {
	var out []*cards.Card
	for _, c := range p.Hand.Cards() {
		if c.IsAffordable(p) {
			out = append(out, c)
		}
	}
	return out
}

// Info returns the view used by legality checks.
func (p *Player) Info() rules.PlayerInfo {
	return rules.PlayerInfo{
		PlayerID: p.ID,
		Name:     p.Name,
		Health:   p.Health.Current,
		Lost:     !p.Alive(),
	}
}

// Seat returns the turn manager seat for this player.
func (p *Player) Seat() rules.Seat {
	return rules.Seat{PlayerID: p.ID, Human: p.IsHuman()}
}

// Snapshot is a copy of the player's visible numbers.
type Snapshot struct {
	ID       string
	Name     string
	Kind     string
	Health   resources.Pool
	Stamina  resources.Pool
	Focus    resources.Pool
	Hand     []string
	DeckSize int
	Reserve  int
	Buffs    []string
	Combo    int
}

// Snapshot captures the player's current state.
func (p *Player) Snapshot() Snapshot {
	hand := make([]string, 0, p.Hand.Len())
	for _, c := range p.Hand.Cards() {
		hand = append(hand, c.Name())
	}
	return Snapshot{
		ID:       p.ID,
		Name:     p.Name,
		Kind:     p.Kind.String(),
		Health:   *p.Health,
		Stamina:  *p.Stamina,
		Focus:    *p.Focus,
		Hand:     hand,
		DeckSize: p.Deck.Len(),
		Reserve:  p.Reserve.Len(),
		Buffs:    p.Effects.Labels(),
		Combo:    p.Counters.Count(counters.CounterTypeCombo),
	}
}
