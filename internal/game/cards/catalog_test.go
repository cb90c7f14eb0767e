package cards

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogYAML = `
cards:
  - name: Slash
    kind: attack
    cost: "{3S}"
    damage: 6
    sound: sword
  - name: Fireball
    kind: magic
    cost: "{2S}{4F}"
    damage: 12
    region: volcano
  - name: Potion
    kind: item
    ops:
      - op: heal
        amount: 15
`

func TestDecodeCatalog(t *testing.T) {
	catalog, err := DecodeCatalog(strings.NewReader(catalogYAML))
	require.NoError(t, err)
	assert.Equal(t, 3, catalog.Len())
	assert.Equal(t, []string{"Fireball", "Potion", "Slash"}, catalog.Names())

	fireball, err := catalog.Lookup("Fireball")
	require.NoError(t, err)
	assert.Equal(t, 2, fireball.BaseCost().Stamina)
	assert.Equal(t, 4, fireball.BaseCost().Focus)
	assert.Equal(t, "volcano", fireball.Region)

	potion, err := catalog.Lookup("Potion")
	require.NoError(t, err)
	assert.True(t, potion.HasOp(OpHeal))
	assert.False(t, potion.Damaging())
}

func TestCatalogUnknownCard(t *testing.T) {
	catalog, err := DecodeCatalog(strings.NewReader(catalogYAML))
	require.NoError(t, err)

	_, err = catalog.Lookup("Slahs")
	assert.True(t, errors.Is(err, ErrUnknownCard))

	_, err = catalog.Instantiate("Slahs", "human", 2)
	assert.ErrorIs(t, err, ErrUnknownCard)
}

func TestCatalogInstantiate(t *testing.T) {
	catalog, err := DecodeCatalog(strings.NewReader(catalogYAML))
	require.NoError(t, err)

	cs, err := catalog.Instantiate("Slash", "human", 3)
	require.NoError(t, err)
	require.Len(t, cs, 3)
	assert.NotEqual(t, cs[0].ID, cs[1].ID)
	assert.Same(t, cs[0].Def, cs[2].Def)
	assert.Equal(t, "human", cs[1].Owner)
}

func TestCatalogRejectsDuplicatesAndUnknownFields(t *testing.T) {
	_, err := NewCatalog(
		&Definition{Name: "Slash", Kind: KindAttack},
		&Definition{Name: "Slash", Kind: KindAttack},
	)
	assert.Error(t, err)

	_, err = DecodeCatalog(strings.NewReader("cards:\n  - name: X\n    kind: attack\n    dmg: 3\n"))
	assert.Error(t, err)
}

func TestCatalogBuildDeck(t *testing.T) {
	catalog, err := DecodeCatalog(strings.NewReader(catalogYAML))
	require.NoError(t, err)

	deck, err := catalog.BuildDeck([]DeckEntry{{Card: "Slash", Count: 2}, {Card: "Potion"}}, "npc")
	require.NoError(t, err)
	require.Len(t, deck, 3)
	assert.Equal(t, "Slash", deck[0].Name())
	assert.Equal(t, "Potion", deck[2].Name())
	assert.Equal(t, "npc", deck[2].Owner)

	_, err = catalog.BuildDeck([]DeckEntry{{Card: "Nope", Count: 1}}, "npc")
	assert.True(t, errors.Is(err, ErrUnknownCard))
}
