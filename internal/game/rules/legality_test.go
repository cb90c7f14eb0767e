package rules

import (
	"testing"
)

// mockGameStateAccessor implements GameStateAccessor for testing
type mockGameStateAccessor struct {
	cards   map[string]CardInfo
	players map[string]PlayerInfo
	top     *CardInfo
}

func newMockGameStateAccessor() *mockGameStateAccessor {
	m := &mockGameStateAccessor{
		cards:   make(map[string]CardInfo),
		players: make(map[string]PlayerInfo),
	}
	m.players["human"] = PlayerInfo{PlayerID: "human", Name: "Hero", Health: 100}
	m.players["npc"] = PlayerInfo{PlayerID: "npc", Name: "Goblin", Health: 100}
	return m
}

func (m *mockGameStateAccessor) FindCard(cardID string) (CardInfo, bool) {
	card, ok := m.cards[cardID]
	return card, ok
}

func (m *mockGameStateAccessor) FindPlayer(playerID string) (PlayerInfo, bool) {
	player, ok := m.players[playerID]
	return player, ok
}

func (m *mockGameStateAccessor) TopPlayed() (CardInfo, bool) {
	if m.top == nil {
		return CardInfo{}, false
	}
	return *m.top, true
}

func TestLegalityChecker_PlayableCard(t *testing.T) {
	state := newMockGameStateAccessor()
	state.cards["slash"] = CardInfo{ID: "slash", Name: "Slash", OwnerID: "human", Zone: ZoneHand, Affordable: true}

	tm := NewTurnManager(human, npc, fixedCoin(0), nil, nil)
	checker := NewLegalityChecker(state, tm, RulesetClassic)

	result := checker.CheckPlay("human", "slash")
	if !result.Legal {
		t.Fatalf("expected legal play, got %s", result)
	}
}

func TestLegalityChecker_Violations(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*mockGameStateAccessor, *TurnManager)
		player   string
		card     string
		expected Violation
	}{
		{
			name:     "not your turn",
			player:   "npc",
			card:     "slash",
			expected: ViolationNotYourTurn,
		},
		{
			name: "switching",
			setup: func(_ *mockGameStateAccessor, tm *TurnManager) {
				_ = tm.EndTurn("human")
			},
			player:   "human",
			card:     "slash",
			expected: ViolationSwitching,
		},
		{
			name: "frozen",
			setup: func(_ *mockGameStateAccessor, tm *TurnManager) {
				tm.Freeze()
			},
			player:   "human",
			card:     "slash",
			expected: ViolationFrozen,
		},
		{
			name:     "card in deck",
			player:   "human",
			card:     "decked",
			expected: ViolationNotInHand,
		},
		{
			name:     "opponent card",
			player:   "human",
			card:     "enemy",
			expected: ViolationNotInHand,
		},
		{
			name:     "unknown card",
			player:   "human",
			card:     "missing",
			expected: ViolationNotInHand,
		},
		{
			name:     "unaffordable",
			player:   "human",
			card:     "fireball",
			expected: ViolationUnaffordable,
		},
		{
			name: "lost player",
			setup: func(m *mockGameStateAccessor, _ *TurnManager) {
				p := m.players["human"]
				p.Lost = true
				m.players["human"] = p
			},
			player:   "human",
			card:     "slash",
			expected: ViolationPlayerLost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := newMockGameStateAccessor()
			state.cards["slash"] = CardInfo{ID: "slash", Name: "Slash", OwnerID: "human", Zone: ZoneHand, Affordable: true}
			state.cards["decked"] = CardInfo{ID: "decked", Name: "Slash", OwnerID: "human", Zone: ZoneDeck, Affordable: true}
			state.cards["enemy"] = CardInfo{ID: "enemy", Name: "Bite", OwnerID: "npc", Zone: ZoneHand, Affordable: true}
			state.cards["fireball"] = CardInfo{ID: "fireball", Name: "Fireball", OwnerID: "human", Zone: ZoneHand}

			tm := NewTurnManager(human, npc, fixedCoin(0), nil, nil)
			if tt.setup != nil {
				tt.setup(state, tm)
			}
			result := NewLegalityChecker(state, tm, RulesetClassic).CheckPlay(tt.player, tt.card)
			if result.Legal {
				t.Fatalf("expected illegal play")
			}
			if result.Violation != tt.expected {
				t.Fatalf("expected violation %s, got %s (%s)", tt.expected, result.Violation, result.Reason)
			}
		})
	}
}

func TestLegalityChecker_RegionsRuleset(t *testing.T) {
	state := newMockGameStateAccessor()
	state.cards["forest"] = CardInfo{ID: "forest", Name: "Vine Lash", Region: "forest", OwnerID: "human", Zone: ZoneHand, Affordable: true}
	state.cards["wild"] = CardInfo{ID: "wild", Name: "Wanderer", Region: "wild", OwnerID: "human", Zone: ZoneHand, Affordable: true}
	state.cards["same"] = CardInfo{ID: "same", Name: "Sandstorm", Region: "forest", OwnerID: "human", Zone: ZoneHand, Affordable: true}

	tm := NewTurnManager(human, npc, fixedCoin(0), nil, nil)
	checker := NewLegalityChecker(state, tm, RulesetRegions)

	// empty played pile accepts anything
	if r := checker.CheckPlay("human", "forest"); !r.Legal {
		t.Fatalf("expected legal on empty pile, got %s", r)
	}

	state.top = &CardInfo{Name: "Sandstorm", Region: "desert"}
	if r := checker.CheckPlay("human", "forest"); r.Legal || r.Violation != ViolationRegion {
		t.Fatalf("expected region violation, got %+v", r)
	}
	if r := checker.CheckPlay("human", "wild"); !r.Legal {
		t.Fatalf("wild card should follow anything, got %s", r)
	}
	if r := checker.CheckPlay("human", "same"); !r.Legal {
		t.Fatalf("same-name card should follow, got %s", r)
	}

	classic := NewLegalityChecker(state, tm, "")
	if classic.Ruleset() != RulesetClassic {
		t.Fatalf("expected classic default, got %s", classic.Ruleset())
	}
	if r := classic.CheckPlay("human", "forest"); !r.Legal {
		t.Fatalf("classic ruleset ignores regions, got %s", r)
	}
}
