package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCost(t *testing.T) {
	tests := []struct {
		in   string
		want Cost
	}{
		{"", Cost{}},
		{"{3S}", Cost{Stamina: 3}},
		{"{2S}{4F}", Cost{Stamina: 2, Focus: 4}},
		{"{5H}", Cost{Health: 5}},
		{"{3}", Cost{Stamina: 3}},
		{"{S}{S}", Cost{Stamina: 2}},
		{"{1s}{1f}", Cost{Stamina: 1, Focus: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCost(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCostRejectsUnknownSymbols(t *testing.T) {
	_, err := ParseCost("{XS}")
	assert.Error(t, err)

	_, err = ParseCost("three stamina")
	assert.Error(t, err)
}

func TestCostStringRoundTrip(t *testing.T) {
	cost := Cost{Stamina: 2, Focus: 3, Health: 1}
	parsed, err := ParseCost(cost.String())
	require.NoError(t, err)
	assert.Equal(t, cost, parsed)
}

func TestCostAdjusted(t *testing.T) {
	cost := Cost{Stamina: 2}
	assert.Equal(t, 5, cost.Adjusted(3).Stamina)
	assert.Equal(t, 0, cost.Adjusted(-4).Stamina)
	assert.Equal(t, 2, cost.Stamina, "Adjusted must not modify the receiver")
}

type testWallet map[Kind]*Pool

func (w testWallet) Pool(kind Kind) *Pool { return w[kind] }

func TestPayIsAllOrNothing(t *testing.T) {
	wallet := testWallet{
		Stamina: NewPool(Stamina, 5),
		Focus:   NewPool(Focus, 1),
		Health:  NewPool(Health, 20),
	}

	result := Pay(Cost{Stamina: 3, Focus: 2}, wallet)
	assert.False(t, result.Success)
	assert.Contains(t, result.Reason, "FOCUS")
	assert.Equal(t, 5, wallet[Stamina].Current, "stamina must be untouched on failed payment")

	result = Pay(Cost{Stamina: 3, Focus: 1, Health: 2}, wallet)
	require.True(t, result.Success)
	assert.Equal(t, 2, wallet[Stamina].Current)
	assert.Equal(t, 0, wallet[Focus].Current)
	assert.Equal(t, 18, wallet[Health].Current)
	assert.True(t, CanPay(Cost{Stamina: 2}, wallet))
	assert.False(t, CanPay(Cost{Stamina: 3}, wallet))
}
