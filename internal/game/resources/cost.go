package resources

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Cost represents what a card charges its owner when played.
type Cost struct {
	Stamina int
	Focus   int
	Health  int
}

var costSymbol = regexp.MustCompile(`\{([^}]+)\}`)

// ParseCost parses a cost string such as "{3S}", "{2S}{4F}" or "{5H}".
// S is stamina, F is focus and H is health. A bare number counts as stamina.
func ParseCost(costStr string) (Cost, error) {
	var cost Cost
	costStr = strings.TrimSpace(costStr)
	if costStr == "" {
		return cost, nil
	}

	matches := costSymbol.FindAllStringSubmatch(costStr, -1)
	if len(matches) == 0 {
		return cost, fmt.Errorf("invalid cost %q", costStr)
	}

	for _, match := range matches {
		symbol := strings.ToUpper(strings.TrimSpace(match[1]))
		if symbol == "" {
			return Cost{}, fmt.Errorf("empty cost symbol in %q", costStr)
		}

		unit := symbol[len(symbol)-1]
		digits := symbol
		if unit == 'S' || unit == 'F' || unit == 'H' {
			digits = symbol[:len(symbol)-1]
		} else {
			unit = 'S'
		}

		amount := 1
		if digits != "" {
			n, err := strconv.Atoi(digits)
			if err != nil || n < 0 {
				return Cost{}, fmt.Errorf("unknown cost symbol: {%s}", symbol)
			}
			amount = n
		}

		switch unit {
		case 'S':
			cost.Stamina += amount
		case 'F':
			cost.Focus += amount
		case 'H':
			cost.Health += amount
		}
	}

	return cost, nil
}

// Adjusted returns the cost with staminaDelta applied, never below zero.
func (c Cost) Adjusted(staminaDelta int) Cost {
	c.Stamina += staminaDelta
	if c.Stamina < 0 {
		c.Stamina = 0
	}
	return c
}

// IsFree reports whether the cost charges nothing.
func (c Cost) IsFree() bool {
	return c.Stamina == 0 && c.Focus == 0 && c.Health == 0
}

// String returns the canonical cost string.
func (c Cost) String() string {
	var parts []string
	if c.Stamina > 0 {
		parts = append(parts, fmt.Sprintf("{%dS}", c.Stamina))
	}
	if c.Focus > 0 {
		parts = append(parts, fmt.Sprintf("{%dF}", c.Focus))
	}
	if c.Health > 0 {
		parts = append(parts, fmt.Sprintf("{%dH}", c.Health))
	}
	return strings.Join(parts, "")
}
