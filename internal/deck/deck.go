// Package deck holds ordered piles of cards. The deck is the only
// source of card supply and removal; draw takes from the front and
// shuffles are Fisher-Yates over an injected RNG so runs are
// reproducible under a fixed seed.
package deck

import (
	"errors"
	"math/rand"

	"lifedeck/internal/card"
)

// Deck is a named ordered sequence of cards. Not safe for concurrent
// use; the owning game serializes access.
type Deck struct {
	name  string
	cards []card.Card
}

// New builds a deck from cards. Cards without an id are rejected at
// this boundary so the deck never holds an unidentifiable card.
func New(name string, cards []card.Card) (*Deck, error) {
	for _, c := range cards {
		if c.ID == "" {
			return nil, errors.New("deck: card without id")
		}
	}
	d := &Deck{name: name, cards: make([]card.Card, len(cards))}
	for i, c := range cards {
		d.cards[i] = c.Copy()
	}
	return d, nil
}

func (d *Deck) Name() string { return d.name }

// Draw removes and returns the head card. The second return is false
// when the deck is empty; an empty deck is never an error.
func (d *Deck) Draw() (card.Card, bool) {
	if len(d.cards) == 0 {
		return card.Card{}, false
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, true
}

// Add appends a card to the back.
func (d *Deck) Add(c card.Card) {
	d.cards = append(d.cards, c.Copy())
}

// AddAll appends cards in order. Used when reshuffling a discard pile
// back into the deck.
func (d *Deck) AddAll(cards []card.Card) {
	for _, c := range cards {
		d.Add(c)
	}
}

// Shuffle randomizes the order in place (Fisher-Yates).
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

func (d *Deck) Size() int { return len(d.cards) }

func (d *Deck) Empty() bool { return len(d.cards) == 0 }

// Clone returns a deep, independent copy: mutating the clone never
// affects the original.
func (d *Deck) Clone() *Deck {
	out := &Deck{name: d.name, cards: make([]card.Card, len(d.cards))}
	for i, c := range d.cards {
		out.cards[i] = c.Copy()
	}
	return out
}

// Cards returns a defensive copy of the contents in order.
func (d *Deck) Cards() []card.Card {
	out := make([]card.Card, len(d.cards))
	for i, c := range d.cards {
		out[i] = c.Copy()
	}
	return out
}
