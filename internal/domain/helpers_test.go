package domain

import (
	"errors"
	"testing"
)

func TestHandAddRefreshesTotal(t *testing.T) {
	h := NewHand(RolePlayer, 0)
	steps := []struct {
		card  Card
		total int
	}{
		{Card{Suit: Hearts, Rank: Ace}, 11},
		{Card{Suit: Spades, Rank: Six}, 17},
		{Card{Suit: Clubs, Rank: Nine}, 16},
		{Card{Suit: Diamonds, Rank: King}, 26},
	}

	for i, s := range steps {
		if err := h.Add(s.card); err != nil {
			t.Fatalf("step %d: add error: %v", i, err)
		}
		if h.Total != s.total {
			t.Fatalf("step %d: total = %d, want %d", i, h.Total, s.total)
		}
	}
	if !h.Busted() {
		t.Fatalf("expected hand at %d to be busted", h.Total)
	}
}

func TestHandCapacity(t *testing.T) {
	h := NewHand(RoleDealer, 2)
	for i := 0; i < 2; i++ {
		if err := h.Add(Card{Suit: Hearts, Rank: Two}); err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
	}
	if !h.Full() {
		t.Fatalf("expected hand to be full")
	}

	err := h.Add(Card{Suit: Hearts, Rank: Three})
	if !errors.Is(err, ErrHandCapacityExceeded) {
		t.Fatalf("err = %v, want ErrHandCapacityExceeded", err)
	}
	if len(h.Cards) != 2 || h.Total != 4 {
		t.Fatalf("full hand was modified: %v total=%d", h.Cards, h.Total)
	}
}

func TestHandUnboundedWhenCapacityNotPositive(t *testing.T) {
	for _, capacity := range []int{0, -3} {
		h := NewHand(RolePlayer, capacity)
		for i := 0; i < 20; i++ {
			if err := h.Add(Card{Suit: Clubs, Rank: Ace}); err != nil {
				t.Fatalf("capacity %d: add %d: %v", capacity, i, err)
			}
		}
		if h.Capacity() != 0 {
			t.Fatalf("capacity = %d, want 0", h.Capacity())
		}
	}
}

func TestHandCloneIsIndependent(t *testing.T) {
	h := NewHand(RolePlayer, 0)
	_ = h.Add(Card{Suit: Hearts, Rank: Five})

	c := h.Clone()
	_ = c.Add(Card{Suit: Hearts, Rank: Six})

	if len(h.Cards) != 1 || h.Total != 5 {
		t.Fatalf("original changed after clone mutation: %v total=%d", h.Cards, h.Total)
	}
}

func TestHandDescribe(t *testing.T) {
	h := NewHand(RolePlayer, 0)
	_ = h.Add(Card{Suit: Hearts, Rank: Ace})
	_ = h.Add(Card{Suit: Spades, Rank: King})

	if got, want := h.Describe(), "Ace of Hearts, King of Spades"; got != want {
		t.Fatalf("Describe() = %q, want %q", got, want)
	}

	h.Clear()
	if h.Describe() != "" || h.Total != 0 {
		t.Fatalf("cleared hand should be empty")
	}
}
