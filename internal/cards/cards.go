// Package cards provides playing-card value types and deck helpers.
package cards

import "math/rand"

// Suit is one of the four card suits, lowercase.
type Suit string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

// Rank is a card rank token: "2".."10", "J", "Q", "K", "A".
type Rank string

// Suits lists all suits in deck-construction order.
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Ranks lists all ranks in ascending order. RankValue is the index
// into this slice.
var Ranks = []Rank{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

// Card is an immutable rank/suit pair.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// RankValue returns the total-order index of a rank: "2"=0 .. "A"=12.
// Unknown ranks return -1 and never compare above a real rank.
// Ace is high here; straight logic handles the ace-low wheel itself.
func RankValue(r Rank) int {
	for i, known := range Ranks {
		if known == r {
			return i
		}
	}
	return -1
}

// NewDeck returns all 52 rank-suit combinations in a fixed order.
func NewDeck() []Card {
	deck := make([]Card, 0, len(Suits)*len(Ranks))
	for _, s := range Suits {
		for _, r := range Ranks {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// Shuffle permutes the deck in place with a Fisher-Yates walk from the
// last index down.
func Shuffle(deck []Card) {
	for i := len(deck) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}
