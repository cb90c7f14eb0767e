package ai

import (
	"errors"
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// Rule scores a card when its condition matches. Both fields are CEL
// expressions over the variables card, self, opponent, and round.
type Rule struct {
	When  string `yaml:"when" mapstructure:"when"`
	Score string `yaml:"score" mapstructure:"score"`
}

// DefaultRules play the hardest-hitting card, preferring cheap ones.
var DefaultRules = []Rule{
	{When: "card.damage > 0", Score: "card.damage * 10 - card.stamina"},
	{When: "true", Score: "1"},
}

// CardView is the card data visible to rules.
type CardView struct {
	ID       string   `cel:"id"`
	Name     string   `cel:"name"`
	Kind     string   `cel:"kind"`
	Damage   int      `cel:"damage"`
	Stamina  int      `cel:"stamina"`
	Focus    int      `cel:"focus"`
	Region   string   `cel:"region"`
	Ops      []string `cel:"ops"`
	Effects  []string `cel:"effects"`
	Negation int      `cel:"negation"`
}

// ActorView is the player data visible to rules.
type ActorView struct {
	Health     int      `cel:"health"`
	MaxHealth  int      `cel:"max_health"`
	Stamina    int      `cel:"stamina"`
	Focus      int      `cel:"focus"`
	HandSize   int      `cel:"hand"`
	DeckSize   int      `cel:"deck"`
	Combo      int      `cel:"combo"`
	Buffs      []string `cel:"buffs"`
	Debuffs    []string `cel:"debuffs"`
	PlayedThis int      `cel:"played_this_round"`
}

// Situation is the match state a decision is made in.
type Situation struct {
	Self     ActorView
	Opponent ActorView
	Round    int
}

// Choice is the outcome of a decision.
type Choice struct {
	CardID string
	Score  int
	Rule   int
}

type compiledRule struct {
	source Rule
	when   cel.Program
	score  cel.Program
}

// Planner picks the card an NPC plays next.
type Planner struct {
	rules  []compiledRule
	logger *zap.Logger
}

// NewPlanner compiles rules. An empty rule set uses DefaultRules.
func NewPlanner(rules []Rule, logger *zap.Logger) (*Planner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(rules) == 0 {
		rules = DefaultRules
	}
	env, err := cel.NewEnv(
		cel.Variable("card", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("self", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("opponent", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("round", cel.IntType),
	)
	if err != nil {
		return nil, fmt.Errorf("create rule environment: %w", err)
	}

	p := &Planner{logger: logger}
	for i, r := range rules {
		when, err := compile(env, r.When)
		if err != nil {
			return nil, fmt.Errorf("rule %d when: %w", i, err)
		}
		score, err := compile(env, r.Score)
		if err != nil {
			return nil, fmt.Errorf("rule %d score: %w", i, err)
		}
		p.rules = append(p.rules, compiledRule{source: r, when: when, score: score})
	}
	return p, nil
}

func compile(env *cel.Env, expr string) (cel.Program, error) {
	if expr == "" {
		return nil, errors.New("empty expression")
	}
	ast, iss := env.Compile(expr)
	if iss.Err() != nil {
		return nil, iss.Err()
	}
	return env.Program(ast)
}

// Choose scores every candidate with the first matching rule and returns the
// best one. Candidates matching no rule, or scoring below zero, are never
// chosen. ok is false when nothing should be played.
func (p *Planner) Choose(situation Situation, candidates []CardView) (choice Choice, ok bool, err error) {
	self, err := toActivation(situation.Self)
	if err != nil {
		return Choice{}, false, err
	}
	opponent, err := toActivation(situation.Opponent)
	if err != nil {
		return Choice{}, false, err
	}

	for _, candidate := range candidates {
		card, err := toActivation(candidate)
		if err != nil {
			return Choice{}, false, err
		}
		vars := map[string]any{
			"card":     card,
			"self":     self,
			"opponent": opponent,
			"round":    situation.Round,
		}
		score, rule, matched, err := p.score(vars)
		if err != nil {
			return Choice{}, false, fmt.Errorf("score %s: %w", candidate.Name, err)
		}
		if !matched || score < 0 {
			continue
		}
		if !ok || score > choice.Score {
			choice = Choice{CardID: candidate.ID, Score: score, Rule: rule}
			ok = true
		}
	}

	if ok {
		p.logger.Debug("npc choice",
			zap.String("card_id", choice.CardID),
			zap.Int("score", choice.Score),
			zap.Int("rule", choice.Rule))
	}
	return choice, ok, nil
}

func (p *Planner) score(vars map[string]any) (int, int, bool, error) {
	for i, r := range p.rules {
		out, _, err := r.when.Eval(vars)
		if err != nil {
			return 0, i, false, fmt.Errorf("rule %d when %q: %w", i, r.source.When, err)
		}
		if matched, isBool := out.Value().(bool); !isBool || !matched {
			continue
		}
		out, _, err = r.score.Eval(vars)
		if err != nil {
			return 0, i, false, fmt.Errorf("rule %d score %q: %w", i, r.source.Score, err)
		}
		switch v := out.Value().(type) {
		case int64:
			return int(v), i, true, nil
		case uint64:
			return int(v), i, true, nil
		case float64:
			return int(v), i, true, nil
		default:
			return 0, i, false, fmt.Errorf("rule %d score %q: not a number", i, r.source.Score)
		}
	}
	return 0, -1, false, nil
}

func toActivation(view any) (map[string]any, error) {
	out := map[string]any{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "cel",
		Result:  &out,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(view); err != nil {
		return nil, fmt.Errorf("build rule activation: %w", err)
	}
	return out, nil
}
