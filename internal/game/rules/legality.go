package rules

import (
	"fmt"
	"strings"
)

// Zone is where a card instance currently lives.
type Zone int

const (
	ZoneNone Zone = iota
	ZoneDeck
	ZoneHand
	ZonePlayed
	ZoneReserve
)

func (z Zone) String() string {
	switch z {
	case ZoneDeck:
		return "DECK"
	case ZoneHand:
		return "HAND"
	case ZonePlayed:
		return "PLAYED"
	case ZoneReserve:
		return "RESERVE"
	default:
		return "NONE"
	}
}

// Ruleset selects which sequencing rules apply to a match.
type Ruleset string

const (
	// RulesetClassic allows any affordable card to be played.
	RulesetClassic Ruleset = "classic"
	// RulesetRegions additionally requires each card to follow the top played card's region.
	RulesetRegions Ruleset = "regions"
)

// RegionWild follows any card.
const RegionWild = "wild"

// Violation identifies why a play was rejected.
type Violation string

const (
	ViolationNone         Violation = ""
	ViolationFrozen       Violation = "frozen"
	ViolationNotYourTurn  Violation = "not_your_turn"
	ViolationSwitching    Violation = "switching_turns"
	ViolationNotInHand    Violation = "not_in_hand"
	ViolationUnaffordable Violation = "unaffordable"
	ViolationRegion       Violation = "region_mismatch"
	ViolationPlayerLost   Violation = "player_lost"
)

// GameStateAccessor provides access to game state needed for legality checks.
type GameStateAccessor interface {
	// FindCard finds a card by ID in any zone
	FindCard(cardID string) (CardInfo, bool)
	// FindPlayer finds player info by ID
	FindPlayer(playerID string) (PlayerInfo, bool)
	// TopPlayed returns the topmost card of the played pile
	TopPlayed() (CardInfo, bool)
}

// CardInfo provides information about a card for legality checks.
type CardInfo struct {
	ID         string
	Name       string
	Region     string
	OwnerID    string
	Zone       Zone
	Affordable bool
}

// PlayerInfo provides information about a player for legality checks.
type PlayerInfo struct {
	PlayerID string
	Name     string
	Health   int
	Lost     bool
}

// LegalityResult represents the result of a legality check.
type LegalityResult struct {
	Legal     bool
	Violation Violation
	Reason    string
	Details   map[string]string
}

// LegalityChecker validates card plays before they resolve.
type LegalityChecker struct {
	gameState GameStateAccessor
	turns     *TurnManager
	ruleset   Ruleset
}

// NewLegalityChecker creates a new legality checker.
func NewLegalityChecker(gameState GameStateAccessor, turns *TurnManager, ruleset Ruleset) *LegalityChecker {
	if ruleset == "" {
		ruleset = RulesetClassic
	}
	return &LegalityChecker{
		gameState: gameState,
		turns:     turns,
		ruleset:   ruleset,
	}
}

// Ruleset returns the active ruleset.
func (lc *LegalityChecker) Ruleset() Ruleset {
	return lc.ruleset
}

// CheckPlay validates that playerID may play cardID right now.
func (lc *LegalityChecker) CheckPlay(playerID, cardID string) LegalityResult {
	if lc.turns != nil {
		if lc.turns.Frozen() {
			return illegal(ViolationFrozen, "Match is over", nil)
		}
		if !lc.turns.IsCurrent(playerID) {
			return illegal(ViolationNotYourTurn, "Player does not hold the turn", map[string]string{
				"player_id":  playerID,
				"current_id": lc.turns.CurrentPlayer(),
			})
		}
		if lc.turns.Switching() {
			return illegal(ViolationSwitching, "Turn switch in progress", nil)
		}
	}

	if player, found := lc.gameState.FindPlayer(playerID); !found || player.Lost {
		return illegal(ViolationPlayerLost, "Player not in match", map[string]string{
			"player_id": playerID,
		})
	}

	card, found := lc.gameState.FindCard(cardID)
	if !found || card.Zone != ZoneHand || card.OwnerID != playerID {
		details := map[string]string{"card_id": cardID}
		if found {
			details["zone"] = card.Zone.String()
		}
		return illegal(ViolationNotInHand, "Card is not in the player's hand", details)
	}

	if !card.Affordable {
		return illegal(ViolationUnaffordable, "Card cost cannot be paid", map[string]string{
			"card": card.Name,
		})
	}

	if lc.ruleset == RulesetRegions {
		if top, ok := lc.gameState.TopPlayed(); ok && !RegionFollows(top, card) {
			return illegal(ViolationRegion, "Card does not follow the played region", map[string]string{
				"card":       card.Name,
				"region":     card.Region,
				"top_card":   top.Name,
				"top_region": top.Region,
			})
		}
	}

	return LegalityResult{
		Legal:  true,
		Reason: "All legality checks passed",
	}
}

// RegionFollows reports whether next may be played on top of top under the
// regions ruleset: same region, same card name, or a wild card on either side.
func RegionFollows(top, next CardInfo) bool {
	if strings.EqualFold(next.Region, RegionWild) || strings.EqualFold(top.Region, RegionWild) {
		return true
	}
	if top.Name != "" && top.Name == next.Name {
		return true
	}
	return strings.EqualFold(top.Region, next.Region)
}

func illegal(v Violation, reason string, details map[string]string) LegalityResult {
	return LegalityResult{
		Legal:     false,
		Violation: v,
		Reason:    reason,
		Details:   details,
	}
}

// String renders the rejection reason, or "legal".
func (r LegalityResult) String() string {
	if r.Legal {
		return "legal"
	}
	if len(r.Details) == 0 {
		return r.Reason
	}
	return fmt.Sprintf("%s %v", r.Reason, r.Details)
}
