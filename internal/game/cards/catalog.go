package cards

import (
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Cards []*Definition `yaml:"cards"`
}

// Catalog maps card names to definitions.
type Catalog struct {
	defs  map[string]*Definition
	order []string
}

// NewCatalog builds a catalog, preparing every definition. Duplicate names are rejected.
func NewCatalog(defs ...*Definition) (*Catalog, error) {
	c := &Catalog{defs: make(map[string]*Definition, len(defs))}
	for _, def := range defs {
		if err := c.Add(def); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// DecodeCatalog reads a YAML document with a top-level cards list.
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode card catalog: %w", err)
	}
	return NewCatalog(file.Cards...)
}

// Add prepares and registers a definition.
func (c *Catalog) Add(def *Definition) error {
	if def == nil {
		return fmt.Errorf("nil card definition")
	}
	if err := def.Prepare(); err != nil {
		return err
	}
	if _, exists := c.defs[def.Name]; exists {
		return fmt.Errorf("duplicate card %q", def.Name)
	}
	c.defs[def.Name] = def
	c.order = append(c.order, def.Name)
	return nil
}

// Lookup returns the definition for name.
func (c *Catalog) Lookup(name string) (*Definition, error) {
	def, ok := c.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCard, name)
	}
	return def, nil
}

// Has reports whether name is in the catalog.
func (c *Catalog) Has(name string) bool {
	_, ok := c.defs[name]
	return ok
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// Names returns all card names sorted alphabetically.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	sort.Strings(names)
	return names
}

// Definitions returns the definitions in load order.
func (c *Catalog) Definitions() []*Definition {
	defs := make([]*Definition, 0, len(c.order))
	for _, name := range c.order {
		defs = append(defs, c.defs[name])
	}
	return defs
}

// Instantiate creates count fresh instances of name owned by ownerID.
func (c *Catalog) Instantiate(name, ownerID string, count int) ([]*Card, error) {
	def, err := c.Lookup(name)
	if err != nil {
		return nil, err
	}
	out := make([]*Card, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, NewCard(def, ownerID))
	}
	return out, nil
}

// DeckEntry is one line of a deck list.
type DeckEntry struct {
	Card  string `yaml:"card"`
	Count int    `yaml:"count"`
}

// BuildDeck instantiates every entry in order. Entries with a count below 1
// contribute one card.
func (c *Catalog) BuildDeck(entries []DeckEntry, ownerID string) ([]*Card, error) {
	var deck []*Card
	for _, e := range entries {
		count := e.Count
		if count < 1 {
			count = 1
		}
		cs, err := c.Instantiate(e.Card, ownerID, count)
		if err != nil {
			return nil, fmt.Errorf("deck entry %q: %w", e.Card, err)
		}
		deck = append(deck, cs...)
	}
	return deck, nil
}
