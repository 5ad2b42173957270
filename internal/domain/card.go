package domain

import (
	"fmt"
	"strings"
)

// Faces in ascending comparison order. Suit never breaks a tie; an equal
// face is what triggers a war.
var Faces = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

// Suits in canonical enumeration order.
var Suits = []string{"♤", "♧", "♡", "♢"}

// CardValue parses a card token ("10♤", "A♡") into its face rank, 0 for a
// two up to 12 for an ace.
func CardValue(card string) (int, error) {
	runes := []rune(card)
	if len(runes) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCard, card)
	}

	face := string(runes[:len(runes)-1])
	suit := string(runes[len(runes)-1])

	value := -1
	for i, f := range Faces {
		if f == face {
			value = i
			break
		}
	}
	if value == -1 {
		return 0, fmt.Errorf("%w: face %q from card %q", ErrInvalidCard, face, card)
	}

	validSuit := false
	for _, s := range Suits {
		if s == suit {
			validSuit = true
			break
		}
	}
	if !validSuit {
		return 0, fmt.Errorf("%w: suit %q from card %q", ErrInvalidCard, suit, card)
	}

	return value, nil
}

// FullDeck returns the 52 card tokens in suit-major, face-minor order.
func FullDeck() []string {
	deck := make([]string, 0, len(Suits)*len(Faces))
	for _, suit := range Suits {
		for _, face := range Faces {
			deck = append(deck, face+suit)
		}
	}
	return deck
}

// CollectionString renders a card sequence for logging.
func CollectionString(cards []string) string {
	if len(cards) == 0 {
		return "empty"
	}
	return strings.Join(cards, " ")
}
