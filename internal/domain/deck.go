package domain

import (
	"math/rand"
	"time"
)

// Deck is a single 52-card deck with a cursor marking the next undealt card.
// Dealing past the last card reshuffles, so callers never see an empty deck.
type Deck struct {
	cards [DeckSize]Card
	pos   int
	rng   *rand.Rand
}

// NewDeck returns a deck in canonical suit-major order with the cursor at zero.
// rng drives every later shuffle; nil selects a time-seeded default.
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	d := &Deck{rng: rng}
	d.fill()
	return d
}

func (d *Deck) fill() {
	i := 0
	for _, s := range Suits {
		for r := Ace; r <= King; r++ {
			d.cards[i] = Card{Suit: s, Rank: r}
			i++
		}
	}
}

// Shuffle permutes the deck in place with a Fisher-Yates pass and rewinds the cursor.
func (d *Deck) Shuffle() {
	for i := 0; i < DeckSize-1; i++ {
		j := i + d.rng.Intn(DeckSize-i)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	d.pos = 0
}

// Reset restores canonical order and then shuffles, discarding any prior permutation.
func (d *Deck) Reset() {
	d.fill()
	d.Shuffle()
}

// Deal returns the next card, reshuffling first when the deck is exhausted.
func (d *Deck) Deal() Card {
	if d.pos >= DeckSize {
		d.Shuffle()
	}
	c := d.cards[d.pos]
	d.pos++
	return c
}

// Remaining reports how many cards are left before the next reshuffle.
func (d *Deck) Remaining() int {
	return DeckSize - d.pos
}

// Cards returns a copy of the full deck order, dealt cards included.
func (d *Deck) Cards() []Card {
	out := make([]Card, DeckSize)
	copy(out, d.cards[:])
	return out
}

// Clone copies the deck order and cursor. The clone shares the random source.
func (d *Deck) Clone() *Deck {
	c := *d
	return &c
}
