package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magefree/hollowdeck/internal/game/cards"
)

func TestParseOps(t *testing.T) {
	ops, err := parseOps("heal:5; buff:strength:2:3 ;debuff:poison:3;draw:1;cleanse")
	require.NoError(t, err)
	assert.Equal(t, []cards.Op{
		{Type: cards.OpHeal, Amount: 5},
		{Type: cards.OpBuff, Effect: "strength", Duration: 2, Amount: 3},
		{Type: cards.OpDebuff, Effect: "poison", Duration: 3},
		{Type: cards.OpDraw, Amount: 1},
		{Type: cards.OpCleanse},
	}, ops)

	_, err = parseOps("buff")
	assert.Error(t, err)
	_, err = parseOps("heal:lots")
	assert.Error(t, err)
}

func TestImportRoundTrip(t *testing.T) {
	csv := `name,kind,cost,damage,region,ops
Slash,attack,{3S},6,,
Frost Ward,magic,{2F},,ice,buff:guard:1
,attack,{1S},1,,
`
	defs, err := readDefinitions(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, defs, 2)

	data, err := encodeCatalog(defs)
	require.NoError(t, err)

	catalog, err := cards.DecodeCatalog(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, []string{"Frost Ward", "Slash"}, catalog.Names())

	ward, err := catalog.Lookup("Frost Ward")
	require.NoError(t, err)
	assert.Equal(t, "ice", ward.Region)
	assert.Equal(t, 2, ward.BaseCost().Focus)
}

func TestImportRejectsInvalidCards(t *testing.T) {
	_, err := readDefinitions(strings.NewReader("name,kind\nBroken,weapon\n"))
	assert.Error(t, err)

	_, err = readDefinitions(strings.NewReader("kind\nattack\n"))
	assert.Error(t, err)
}
