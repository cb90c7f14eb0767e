package cards

// RNG is the random source used for shuffles.
type RNG interface {
	Intn(n int) int
}

// Stack is an ordered sequence of cards used for decks, hands, the played
// pile, and reserves. Front is index 0; the top of the played pile is the back.
type Stack struct {
	items []*Card
}

// NewStack creates a stack holding cards in order.
func NewStack(cards ...*Card) *Stack {
	items := make([]*Card, 0, len(cards)+8)
	items = append(items, cards...)
	return &Stack{items: items}
}

// Len returns the number of cards.
func (s *Stack) Len() int {
	return len(s.items)
}

// IsEmpty returns whether the stack is empty.
func (s *Stack) IsEmpty() bool {
	return len(s.items) == 0
}

// PushBack appends a card.
func (s *Stack) PushBack(cards ...*Card) {
	s.items = append(s.items, cards...)
}

// PushFront inserts a card before all others.
func (s *Stack) PushFront(card *Card) {
	s.items = append(s.items, nil)
	copy(s.items[1:], s.items)
	s.items[0] = card
}

// PopFront removes and returns the first card.
func (s *Stack) PopFront() (*Card, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	card := s.items[0]
	s.items[0] = nil
	s.items = s.items[1:]
	return card, true
}

// PopBack removes and returns the last card.
func (s *Stack) PopBack() (*Card, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	idx := len(s.items) - 1
	card := s.items[idx]
	s.items[idx] = nil
	s.items = s.items[:idx]
	return card, true
}

// Top returns the last card without removing it.
func (s *Stack) Top() (*Card, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	return s.items[len(s.items)-1], true
}

// Find returns the card with the given ID.
func (s *Stack) Find(id string) (*Card, bool) {
	for _, card := range s.items {
		if card.ID == id {
			return card, true
		}
	}
	return nil, false
}

// Contains reports whether this exact instance is in the stack.
func (s *Stack) Contains(card *Card) bool {
	for _, c := range s.items {
		if c == card {
			return true
		}
	}
	return false
}

// Remove deletes a card instance from anywhere in the stack.
func (s *Stack) Remove(card *Card) bool {
	for idx, c := range s.items {
		if c == card {
			s.items = append(s.items[:idx], s.items[idx+1:]...)
			return true
		}
	}
	return false
}

// RemoveWhere removes and returns, in order, every card matching match.
func (s *Stack) RemoveWhere(match func(*Card) bool) []*Card {
	var removed []*Card
	kept := s.items[:0]
	for _, c := range s.items {
		if match(c) {
			removed = append(removed, c)
		} else {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(s.items); i++ {
		s.items[i] = nil
	}
	s.items = kept
	return removed
}

// Cards returns a copy of the cards in order.
func (s *Stack) Cards() []*Card {
	cpy := make([]*Card, len(s.items))
	copy(cpy, s.items)
	return cpy
}

// Shuffle permutes the stack in place with Fisher-Yates.
func (s *Stack) Shuffle(rng RNG) {
	Shuffle(s.items, rng)
}

// Shuffle permutes cards in place with Fisher-Yates.
func Shuffle(cards []*Card, rng RNG) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
