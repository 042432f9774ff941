// Package poker evaluates poker hand categories over an arbitrary card
// pool. The pool is the union of revealed board cards and player hands,
// so it can hold far more than 5 cards; every query considers any
// 5-card subset.
package poker

import (
	"sort"

	"liarspoker/internal/cards"
)

// Category is a standard poker hand category, ordered weakest first.
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var categoryNames = []string{
	"high_card", "pair", "two_pair", "three_of_a_kind", "straight",
	"flush", "full_house", "four_of_a_kind", "straight_flush", "royal_flush",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "unknown"
	}
	return categoryNames[c]
}

// CategoryFromName maps a wire name back to a Category.
func CategoryFromName(name string) (Category, bool) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), true
		}
	}
	return 0, false
}

var royalRanks = []cards.Rank{"10", "J", "Q", "K", "A"}

// CountsByRank tallies how many cards of each rank the pool holds.
func CountsByRank(pool []cards.Card) map[cards.Rank]int {
	counts := make(map[cards.Rank]int)
	for _, c := range pool {
		counts[c.Rank]++
	}
	return counts
}

// BySuit groups the pool by suit.
func BySuit(pool []cards.Card) map[cards.Suit][]cards.Card {
	groups := make(map[cards.Suit][]cards.Card)
	for _, c := range pool {
		groups[c.Suit] = append(groups[c.Suit], c)
	}
	return groups
}

// HasStraight reports whether any 5 consecutive ranks are present.
// The Ace counts both high and low.
func HasStraight(pool []cards.Card) bool {
	return straightHighValue(pool) >= 0
}

// straightHighValue returns the rank value of the highest card of the
// best straight in the pool, or -1 if none. A wheel run ends at value
// 3, so the lowest possible result is 3 (the "5").
func straightHighValue(pool []cards.Card) int {
	present := make(map[int]bool)
	for _, c := range pool {
		present[cards.RankValue(c.Rank)] = true
	}
	delete(present, -1)
	vals := make([]int, 0, len(present))
	for v := range present {
		vals = append(vals, v)
	}
	sort.Ints(vals)
	if present[12] { // Ace also plays low
		vals = append([]int{-1}, vals...)
	}
	best := -1
	consec := 1
	for i := 1; i < len(vals); i++ {
		if vals[i] == vals[i-1]+1 {
			consec++
			if consec >= 5 {
				best = vals[i]
			}
		} else {
			consec = 1
		}
	}
	return best
}

// BestCategory returns the strongest category any subset of the pool
// can form. Counts are taken over the whole pool, not a 5-card hand.
func BestCategory(pool []cards.Card) Category {
	var flushGroup []cards.Card
	for _, group := range BySuit(pool) {
		if len(group) >= 5 {
			flushGroup = group
			break
		}
	}

	var pairs, trips, quads int
	for _, n := range CountsByRank(pool) {
		switch n {
		case 2:
			pairs++
		case 3:
			trips++
		case 4:
			quads++
		}
	}

	straight := HasStraight(pool)
	flush := flushGroup != nil

	straightFlush := false
	royal := false
	if flush {
		straightFlush = HasStraight(flushGroup)
		if straightFlush {
			suited := make(map[cards.Rank]bool)
			for _, c := range flushGroup {
				suited[c.Rank] = true
			}
			royal = true
			for _, r := range royalRanks {
				if !suited[r] {
					royal = false
					break
				}
			}
		}
	}

	switch {
	case royal:
		return RoyalFlush
	case straightFlush:
		return StraightFlush
	case quads > 0:
		return FourOfAKind
	case trips > 0 && pairs > 0:
		return FullHouse
	case flush:
		return Flush
	case straight:
		return Straight
	case trips > 0:
		return ThreeOfAKind
	case pairs >= 2:
		return TwoPair
	case pairs == 1:
		return Pair
	default:
		return HighCard
	}
}

// ranksWithCount returns ranks whose pool count is at least min,
// sorted by descending rank value.
func ranksWithCount(pool []cards.Card, min int) []cards.Rank {
	counts := CountsByRank(pool)
	out := make([]cards.Rank, 0, len(counts))
	for r, n := range counts {
		if n >= min {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return cards.RankValue(out[i]) > cards.RankValue(out[j])
	})
	return out
}

// HighestPair returns the highest rank appearing at least twice.
func HighestPair(pool []cards.Card) (cards.Rank, bool) {
	pairs := ranksWithCount(pool, 2)
	if len(pairs) == 0 {
		return "", false
	}
	return pairs[0], true
}

// TwoPairRanks returns the two highest pair ranks, high first.
func TwoPairRanks(pool []cards.Card) (high, low cards.Rank, ok bool) {
	pairs := ranksWithCount(pool, 2)
	if len(pairs) < 2 {
		return "", "", false
	}
	return pairs[0], pairs[1], true
}

// TripsRank returns the highest rank appearing at least three times.
func TripsRank(pool []cards.Card) (cards.Rank, bool) {
	trips := ranksWithCount(pool, 3)
	if len(trips) == 0 {
		return "", false
	}
	return trips[0], true
}

// QuadsRank returns the highest rank appearing at least four times.
func QuadsRank(pool []cards.Card) (cards.Rank, bool) {
	quads := ranksWithCount(pool, 4)
	if len(quads) == 0 {
		return "", false
	}
	return quads[0], true
}

// FullHouseRanks returns the best trip rank plus the best independent
// pair rank. The pair rank is always distinct from the trip rank.
func FullHouseRanks(pool []cards.Card) (trip, pair cards.Rank, ok bool) {
	trips := ranksWithCount(pool, 3)
	if len(trips) == 0 {
		return "", "", false
	}
	trip = trips[0]
	for _, r := range ranksWithCount(pool, 2) {
		if r != trip {
			return trip, r, true
		}
	}
	return "", "", false
}

// HighestCard returns the highest rank present in the pool.
func HighestCard(pool []cards.Card) (cards.Rank, bool) {
	best := -1
	var bestRank cards.Rank
	for _, c := range pool {
		if v := cards.RankValue(c.Rank); v > best {
			best = v
			bestRank = c.Rank
		}
	}
	if best < 0 {
		return "", false
	}
	return bestRank, true
}

// StraightHigh returns the high rank of the best straight in the pool.
// A wheel reports "5".
func StraightHigh(pool []cards.Card) (cards.Rank, bool) {
	v := straightHighValue(pool)
	if v < 0 {
		return "", false
	}
	return cards.Ranks[v], true
}

// DescribeBest names the pool's best hand in claim phrasing, e.g.
// "Pair of Ks" or "9-high Straight".
func DescribeBest(pool []cards.Card) string {
	switch BestCategory(pool) {
	case RoyalFlush:
		return "Royal Flush"
	case StraightFlush:
		for _, group := range BySuit(pool) {
			if len(group) < 5 {
				continue
			}
			if r, ok := StraightHigh(group); ok {
				return string(r) + "-high Straight Flush"
			}
		}
	case FourOfAKind:
		if r, ok := QuadsRank(pool); ok {
			return "Four of a Kind of " + string(r) + "s"
		}
	case FullHouse:
		if trip, pair, ok := FullHouseRanks(pool); ok {
			return string(trip) + "s over " + string(pair) + "s"
		}
	case Flush:
		for _, group := range BySuit(pool) {
			if len(group) < 5 {
				continue
			}
			if r, ok := HighestCard(group); ok {
				return string(r) + "-high Flush"
			}
		}
	case Straight:
		if r, ok := StraightHigh(pool); ok {
			return string(r) + "-high Straight"
		}
	case ThreeOfAKind:
		if r, ok := TripsRank(pool); ok {
			return "Three of a Kind of " + string(r) + "s"
		}
	case TwoPair:
		if high, low, ok := TwoPairRanks(pool); ok {
			return "Two Pair of " + string(high) + "s and " + string(low) + "s"
		}
	case Pair:
		if r, ok := HighestPair(pool); ok {
			return "Pair of " + string(r) + "s"
		}
	case HighCard:
		if r, ok := HighestCard(pool); ok {
			return string(r) + "-high Card"
		}
	}
	return "nothing"
}
