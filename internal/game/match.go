package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"github.com/magefree/hollowdeck/internal/game/ai"
	"github.com/magefree/hollowdeck/internal/game/cards"
	"github.com/magefree/hollowdeck/internal/game/counters"
	"github.com/magefree/hollowdeck/internal/game/effects"
	"github.com/magefree/hollowdeck/internal/game/players"
	"github.com/magefree/hollowdeck/internal/game/resources"
	"github.com/magefree/hollowdeck/internal/game/rules"
	"github.com/magefree/hollowdeck/internal/game/watchers"
)

// Timing holds the delays a match waits on between actions.
type Timing struct {
	// CardMotion is how long a drawn or played card moves before it settles.
	CardMotion time.Duration
	// ThinkDelay is the pause before each NPC action.
	ThinkDelay time.Duration
}

// DefaultTiming is used when a setup leaves Timing empty.
var DefaultTiming = Timing{
	CardMotion: 350 * time.Millisecond,
	ThinkDelay: 800 * time.Millisecond,
}

// SeatSetup describes one side of a match.
type SeatSetup struct {
	ID    string
	Name  string
	Kind  players.Kind
	Stats players.Stats
	Deck  []cards.DeckEntry
	// Rules drive an NPC seat. Empty rules use ai.DefaultRules.
	Rules []ai.Rule
}

// Setup is everything needed to start a match.
type Setup struct {
	MatchID  string
	Level    string
	Backdrop string
	Music    string
	Ruleset  rules.Ruleset
	Catalog  *cards.Catalog
	Player   SeatSetup
	Enemy    SeatSetup
	Seed     uint64
	// Coin decides the first turn. Nil flips with the match RNG.
	Coin      rules.Coin
	Timing    Timing
	Presenter Presenter
	ReplayDir string
	Logger    *zap.Logger
}

// Match is the composition root of one battle. It is driven by Update and
// Draw from a single goroutine.
type Match struct {
	id       string
	level    string
	backdrop string
	music    string
	seed     uint64
	timing   Timing
	logger   *zap.Logger

	rng    *rand.Rand
	bus    *rules.EventBus
	seats  [2]*players.Player
	played *cards.Stack

	turns    *rules.TurnManager
	legality *rules.LegalityChecker
	gameOver *GameOverManager

	watchers    *rules.WatcherSet
	playedCount *watchers.CardsPlayedWatcher
	damage      *watchers.DamageWatcher
	drawn       *watchers.CardsDrawnWatcher
	counterOps  *counters.Operations

	npcs      map[string]*NpcController
	human     *HumanController
	presenter Presenter
	recorder  *replayRecorder

	elapsed time.Duration
}

// NewMatch builds both decks, seats the players, flips for the first turn,
// and deals opening hands.
func NewMatch(setup Setup) (*Match, error) {
	if setup.Catalog == nil {
		return nil, errors.New("match setup without card catalog")
	}
	if setup.Player.ID == "" || setup.Enemy.ID == "" || setup.Player.ID == setup.Enemy.ID {
		return nil, fmt.Errorf("match setup needs two distinct player IDs, got %q and %q", setup.Player.ID, setup.Enemy.ID)
	}
	if setup.MatchID == "" {
		setup.MatchID = uuid.NewString()
	}
	if setup.Seed == 0 {
		setup.Seed = uint64(time.Now().UnixNano())
	}
	if setup.Timing == (Timing{}) {
		setup.Timing = DefaultTiming
	}
	logger := setup.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("match_id", setup.MatchID))

	m := &Match{
		id:        setup.MatchID,
		level:     setup.Level,
		backdrop:  setup.Backdrop,
		music:     setup.Music,
		seed:      setup.Seed,
		timing:    setup.Timing,
		logger:    logger,
		rng:       rand.New(rand.NewSource(setup.Seed)),
		bus:       rules.NewEventBus(),
		played:    cards.NewStack(),
		npcs:      make(map[string]*NpcController),
		presenter: setup.Presenter,
		recorder:  newReplayRecorder(logger, setup.ReplayDir),
	}

	m.watchers = rules.NewWatcherSet()
	m.playedCount = watchers.NewCardsPlayedWatcher()
	m.damage = watchers.NewDamageWatcher()
	m.drawn = watchers.NewCardsDrawnWatcher()
	m.watchers.Add(m.playedCount)
	m.watchers.Add(m.damage)
	m.watchers.Add(m.drawn)
	m.watchers.Attach(m.bus)
	m.counterOps = counters.NewOperations(m.bus)

	for i, seat := range []SeatSetup{setup.Player, setup.Enemy} {
		p, err := m.seat(seat, setup.Catalog)
		if err != nil {
			return nil, err
		}
		m.seats[i] = p
	}
	m.seats[0].Opponent = m.seats[1]
	m.seats[1].Opponent = m.seats[0]

	var coin rules.Coin = m.rng
	if setup.Coin != nil {
		coin = setup.Coin
	}
	m.turns = rules.NewTurnManager(m.seats[0].Seat(), m.seats[1].Seat(), coin, m.settled, m.bus)
	m.legality = rules.NewLegalityChecker(m, m.turns, setup.Ruleset)
	m.gameOver = NewGameOverManager(m.turns, m.bus, logger)
	m.gameOver.OnGameOver(m.finish)

	for i, seat := range []SeatSetup{setup.Player, setup.Enemy} {
		p := m.seats[i]
		if p.IsHuman() {
			m.human = NewHumanController(p, logger)
			continue
		}
		planner, err := ai.NewPlanner(seat.Rules, logger)
		if err != nil {
			return nil, fmt.Errorf("npc %s rules: %w", p.Name, err)
		}
		m.npcs[p.ID] = NewNpcController(p, planner, m.timing.ThinkDelay, logger)
	}

	m.bus.SubscribeTyped(rules.EventTurnSwitched, func(e rules.Event) {
		m.cue(e.Data)
	})
	m.bus.Subscribe(func(e rules.Event) {
		logger.Debug("event",
			zap.String("type", string(e.Type)),
			zap.String("player_id", e.PlayerID),
			zap.Int("amount", e.Amount),
			zap.String("data", e.Data))
	})

	m.start()
	return m, nil
}

func (m *Match) seat(seat SeatSetup, catalog *cards.Catalog) (*players.Player, error) {
	name := seat.Name
	if name == "" {
		name = seat.ID
	}
	p := players.New(seat.ID, name, seat.Kind, seat.Stats, m.bus)
	p.MotionDuration = m.timing.CardMotion
	deck, err := catalog.BuildDeck(seat.Deck, p.ID)
	if err != nil {
		return nil, fmt.Errorf("%s deck: %w", name, err)
	}
	if len(deck) == 0 {
		return nil, fmt.Errorf("%s deck is empty", name)
	}
	p.SetDeck(deck, m.rng)
	return p, nil
}

func (m *Match) start() {
	m.recorder.begin(m.id, m.level, m.seed)

	evt := rules.NewEvent(rules.EventMatchStarted, m.id, "", m.turns.CurrentPlayer())
	evt.Data = m.level
	evt.Round = m.turns.Round()
	m.bus.Publish(evt)
	m.logger.Info("match started",
		zap.String("level", m.level),
		zap.String("ruleset", string(m.legality.Ruleset())),
		zap.String("first_player", m.turns.CurrentPlayer()),
		zap.Uint64("seed", m.seed))

	opposing := m.Player(m.turns.OpposingPlayer())
	opposing.Draw(opposing.HandSize, m.played, m.rng)
	m.beginTurn(m.Player(m.turns.CurrentPlayer()))
	m.cue(m.turns.Current().Cue())
}

// ID returns the match ID.
func (m *Match) ID() string { return m.id }

// Level returns the level name the match was set up from.
func (m *Match) Level() string { return m.level }

// Backdrop returns the background image name.
func (m *Match) Backdrop() string { return m.backdrop }

// Music returns the level's music cue.
func (m *Match) Music() string { return m.music }

// Seed returns the RNG seed.
func (m *Match) Seed() uint64 { return m.seed }

// Bus returns the match event bus.
func (m *Match) Bus() *rules.EventBus { return m.bus }

// Turns returns the turn manager.
func (m *Match) Turns() *rules.TurnManager { return m.turns }

// Played returns the shared played pile.
func (m *Match) Played() *cards.Stack { return m.played }

// Players returns the player seat followed by the enemy seat.
func (m *Match) Players() []*players.Player {
	return []*players.Player{m.seats[0], m.seats[1]}
}

// Player returns the player with id, or nil.
func (m *Match) Player(id string) *players.Player {
	for _, p := range m.seats {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Current returns the player holding the turn.
func (m *Match) Current() *players.Player {
	return m.Player(m.turns.CurrentPlayer())
}

// Over reports whether the match has ended.
func (m *Match) Over() bool {
	return m.gameOver.Over()
}

// Result returns the outcome once the match is over.
func (m *Match) Result() (Result, bool) {
	return m.gameOver.Result()
}

// Replay returns the recorded round snapshots.
func (m *Match) Replay() *Replay {
	return m.recorder.replay
}

// OnGameOver registers a callback fired once when the match ends.
func (m *Match) OnGameOver(fn func(Result)) {
	m.gameOver.OnGameOver(fn)
}

// Update advances the match by dt: card motion, buff ticks, game over, the
// turn barrier, and then whoever holds the turn.
func (m *Match) Update(dt time.Duration) {
	m.elapsed += dt
	for _, p := range m.seats {
		p.UpdateMotion(dt)
	}
	for _, c := range m.played.Cards() {
		c.UpdateMotion(dt)
	}

	round := m.turns.Round()
	for _, p := range m.seats {
		p.Effects.Update(effects.Tick{Round: round})
	}
	if m.checkGameOver() {
		return
	}

	if m.turns.Update() {
		m.Current().Opponent.Effects.Update(effects.Tick{Round: round, TurnEnd: true})
		m.beginTurn(m.Current())
		if m.checkGameOver() {
			return
		}
	}
	if m.turns.Switching() {
		return
	}

	current := m.Current()
	if npc, ok := m.npcs[current.ID]; ok {
		npc.Update(m, dt)
	} else if m.human != nil && m.human.player == current {
		m.human.Update(m, m.presenter.Input)
	}
	if m.gameOver.Over() || m.turns.Switching() {
		return
	}

	if current.CardsInMotion(m.played) == 0 && len(m.Playable(current.ID)) == 0 {
		m.forceEndTurn(current)
	}
}

// PlayCard plays cardID from playerID's hand and resolves it.
func (m *Match) PlayCard(playerID, cardID string) error {
	p := m.Player(playerID)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
	}
	if m.gameOver.Over() {
		return ErrGameOver
	}
	if res := m.legality.CheckPlay(playerID, cardID); !res.Legal {
		return playError(res)
	}
	card, ok := p.Hand.Find(cardID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrCardNotInHand, cardID)
	}

	// spent buffs expire before this play is counted
	p.Effects.Update(effects.Tick{Round: m.turns.Round()})
	p.Hand.Remove(card)
	m.played.PushBack(card)
	card.StartMotion(m.timing.CardMotion)
	p.Effects.NotePlayed()

	evt := rules.NewEvent(rules.EventCardPlayed, card.ID, card.ID, p.ID)
	evt.Data = card.Name()
	evt.Round = m.turns.Round()
	m.bus.Publish(evt)
	m.logger.Debug("card played",
		zap.String("player_id", p.ID),
		zap.String("card", card.Name()))

	m.performEffect(p, card)
	m.checkGameOver()
	return nil
}

// EndTurn requests the turn switch for playerID. Pending combo is drawn
// before the turn passes.
func (m *Match) EndTurn(playerID string) error {
	p := m.Player(playerID)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
	}
	if m.gameOver.Over() {
		return ErrGameOver
	}
	if err := m.turns.EndTurn(playerID); err != nil {
		return turnError(err)
	}
	m.resolvePendingCombo(p, true)
	return nil
}

// HumanID returns the ID of the input-controlled seat, or "" when both seats
// are NPCs.
func (m *Match) HumanID() string {
	if m.human == nil {
		return ""
	}
	return m.human.player.ID
}

// Concede ends the match in favour of playerID's opponent.
func (m *Match) Concede(playerID string) error {
	p := m.Player(playerID)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
	}
	m.gameOver.Concede(p.Opponent, p)
	return nil
}

// Playable returns the cards in playerID's hand that may be played now.
func (m *Match) Playable(playerID string) []*cards.Card {
	p := m.Player(playerID)
	if p == nil {
		return nil
	}
	var out []*cards.Card
	for _, c := range p.Hand.Cards() {
		if m.legality.CheckPlay(playerID, c.ID).Legal {
			out = append(out, c)
		}
	}
	return out
}

func (m *Match) forceEndTurn(p *players.Player) {
	evt := rules.NewEvent(rules.EventForcedEndTurn, p.ID, "", p.ID)
	evt.Round = m.turns.Round()
	m.bus.Publish(evt)
	if err := m.EndTurn(p.ID); err != nil {
		m.logger.Debug("forced end turn rejected", zap.String("player_id", p.ID), zap.Error(err))
	}
}

// beginTurn runs the start-of-turn sequence for p.
func (m *Match) beginTurn(p *players.Player) {
	round := m.turns.Round()
	if round > 1 {
		evt := rules.NewEventWithAmount(rules.EventRoundAdvanced, m.id, "", p.ID, round)
		evt.Round = round
		m.bus.Publish(evt)
		m.watchers.EndRound()
	}
	p.Effects.Update(effects.Tick{Round: round, TurnStart: true})
	drawn := p.BeginTurn(m.played, m.rng)
	m.resolvePendingCombo(p, false)

	evt := rules.NewEventWithAmount(rules.EventTurnStarted, p.ID, "", p.ID, drawn)
	evt.Round = round
	evt.Flag = p.IsHuman()
	m.bus.Publish(evt)

	if npc, ok := m.npcs[p.ID]; ok {
		npc.Reset()
	}
	m.recorder.record(m.Snapshot())
}

// settled reports whether playerID has no cards in motion.
func (m *Match) settled(playerID string) bool {
	p := m.Player(playerID)
	return p == nil || p.CardsInMotion(m.played) == 0
}

func (m *Match) checkGameOver() bool {
	return m.gameOver.Check(m.seats[0], m.seats[1])
}

func (m *Match) finish(res Result) {
	m.recorder.record(m.Snapshot())
	if _, err := m.recorder.finish(); err != nil {
		m.logger.Warn("replay not saved", zap.Error(err))
	}
	if res.Winner != "" {
		if w := m.Player(res.Winner); w != nil && w.IsHuman() {
			m.cue("victory")
			return
		}
	}
	m.cue("defeat")
}

func (m *Match) cue(name string) {
	if name == "" {
		return
	}
	evt := rules.NewEvent(rules.EventPresentationCue, m.id, "", m.turns.CurrentPlayer())
	evt.Data = name
	evt.Round = m.turns.Round()
	m.bus.Publish(evt)
	if m.presenter.Audio != nil {
		m.presenter.Audio.PlaySound(name)
	}
}

// FindCard implements rules.GameStateAccessor.
func (m *Match) FindCard(cardID string) (rules.CardInfo, bool) {
	for _, p := range m.seats {
		zones := []struct {
			zone  rules.Zone
			stack *cards.Stack
		}{
			{rules.ZoneHand, p.Hand},
			{rules.ZoneDeck, p.Deck},
			{rules.ZoneReserve, p.Reserve},
		}
		for _, z := range zones {
			if c, ok := z.stack.Find(cardID); ok {
				return c.Info(z.zone, affordable(c, p)), true
			}
		}
	}
	if c, ok := m.played.Find(cardID); ok {
		return c.Info(rules.ZonePlayed, false), true
	}
	return rules.CardInfo{}, false
}

// FindPlayer implements rules.GameStateAccessor.
func (m *Match) FindPlayer(playerID string) (rules.PlayerInfo, bool) {
	p := m.Player(playerID)
	if p == nil {
		return rules.PlayerInfo{}, false
	}
	return p.Info(), true
}

// TopPlayed implements rules.GameStateAccessor.
func (m *Match) TopPlayed() (rules.CardInfo, bool) {
	c, ok := m.played.Top()
	if !ok {
		return rules.CardInfo{}, false
	}
	return c.Info(rules.ZonePlayed, false), true
}

func affordable(c *cards.Card, owner *players.Player) bool {
	return c.IsAffordable(owner) && resources.CanPay(c.Cost(), owner)
}

// Snapshot captures the visible match state.
func (m *Match) Snapshot() *Snapshot {
	s := &Snapshot{
		MatchID:   m.id,
		Level:     m.level,
		Ruleset:   string(m.legality.Ruleset()),
		Round:     m.turns.Round(),
		Current:   m.turns.CurrentPlayer(),
		Switching: m.turns.Switching(),
		Over:      m.gameOver.Over(),
		Timestamp: time.Now(),
	}
	if res, ok := m.gameOver.Result(); ok {
		s.Winner = res.Winner
	}
	for _, p := range m.seats {
		s.Players = append(s.Players, p.Snapshot())
	}
	for _, c := range m.played.Cards() {
		s.Played = append(s.Played, c.Name())
	}
	return s
}
