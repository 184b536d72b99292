package domain

import (
	"errors"
	"strings"
)

// ErrHandCapacityExceeded is returned when a card is dealt into a full hand.
var ErrHandCapacityExceeded = errors.New("hand capacity exceeded")

// Hand is the ordered set of cards held by one side of the table.
type Hand struct {
	Role  Role
	Cards []Card
	// Total caches Evaluate(Cards); it is refreshed on every Add.
	Total int

	capacity int // 0 means unbounded
}

// NewHand returns an empty hand. capacity <= 0 leaves the hand unbounded.
func NewHand(role Role, capacity int) *Hand {
	if capacity < 0 {
		capacity = 0
	}
	return &Hand{Role: role, capacity: capacity}
}

// Capacity reports the maximum hand size, or 0 when unbounded.
func (h *Hand) Capacity() int {
	return h.capacity
}

// Full reports whether another card would exceed the hand's capacity.
func (h *Hand) Full() bool {
	return h.capacity > 0 && len(h.Cards) >= h.capacity
}

// Add appends a card and refreshes the cached total.
func (h *Hand) Add(c Card) error {
	if h.Full() {
		return ErrHandCapacityExceeded
	}
	h.Cards = append(h.Cards, c)
	h.Total = Evaluate(h.Cards)
	return nil
}

// Busted reports whether the hand is over 21.
func (h *Hand) Busted() bool {
	return h.Total > BlackjackTotal
}

// Clear empties the hand, keeping its role and capacity.
func (h *Hand) Clear() {
	h.Cards = nil
	h.Total = 0
}

// Clone returns a deep copy of the hand.
func (h *Hand) Clone() *Hand {
	c := *h
	c.Cards = append([]Card(nil), h.Cards...)
	return &c
}

// Describe joins the card names with ", ".
func (h *Hand) Describe() string {
	names := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		names[i] = c.String()
	}
	return strings.Join(names, ", ")
}
