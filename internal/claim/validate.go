package claim

import (
	"liarspoker/internal/cards"
	"liarspoker/internal/poker"
)

// Valid parses the claim text and checks it against the pool of
// visible cards. Unparseable text is always false: a player who
// submits a claim the grammar cannot read simply loses the challenge.
func Valid(text string, pool []cards.Card) bool {
	parsed := Parse(text)
	if parsed == nil {
		return false
	}
	return parsed.Valid(pool)
}

// Valid reports whether the claimed hand exists in the pool.
//
// Claims name exact ranks and suits, so most categories use existence
// rules over the whole pool rather than a comparison against the best
// hand: "K-high Card" is true whenever a king is present, even if the
// pool's best hand is a full house. The switch is exhaustive over
// every category the parser can produce; anything else is false.
func (cl *Claim) Valid(pool []cards.Card) bool {
	counts := poker.CountsByRank(pool)

	switch cl.Category {
	case poker.HighCard:
		return cl.Rank != "" && counts[cl.Rank] >= 1

	case poker.Pair:
		return cl.Rank != "" && counts[cl.Rank] >= 2

	case poker.TwoPair:
		return twoPairValid(cl, pool, counts)

	case poker.ThreeOfAKind:
		return cl.Rank != "" && counts[cl.Rank] >= 3

	case poker.FourOfAKind:
		return cl.Rank != "" && counts[cl.Rank] >= 4

	case poker.Straight:
		return cl.Rank != "" && straightWithHigh(pool, cl.Rank)

	case poker.Flush:
		return cl.Rank != "" && flushWithHigh(pool, cl.Rank, cl.Suit)

	case poker.StraightFlush:
		return cl.Rank != "" && straightFlushWithHigh(pool, cl.Rank, cl.Suit)

	case poker.FullHouse:
		if cl.Rank == "" || cl.PairRank == "" || cl.Rank == cl.PairRank {
			return false
		}
		return counts[cl.Rank] >= 3 && counts[cl.PairRank] >= 2

	case poker.RoyalFlush:
		// A royal flush claim must name its suit.
		if cl.Suit == "" {
			return false
		}
		return royalFlushIn(pool, cl.Suit)

	default:
		return false
	}
}

// twoPairValid: both named ranks paired, or the pool's actual two best
// pairs dominate the claimed pair. Malformed claims (missing or equal
// ranks) skip the quick check but still get the domination comparison:
// a missing rank compares as -1, so any real two pair dominates it.
func twoPairValid(cl *Claim, pool []cards.Card, counts map[cards.Rank]int) bool {
	if cl.Rank != "" && cl.SecondRank != "" && cl.Rank != cl.SecondRank {
		if counts[cl.Rank] >= 2 && counts[cl.SecondRank] >= 2 {
			return true
		}
	}
	highActual, lowActual, ok := poker.TwoPairRanks(pool)
	if !ok {
		return false
	}
	if cards.RankValue(highActual) > cards.RankValue(cl.Rank) {
		return true
	}
	return cards.RankValue(highActual) == cards.RankValue(cl.Rank) &&
		cards.RankValue(lowActual) >= cards.RankValue(cl.SecondRank)
}

// straightWithHigh reports whether a straight exists whose highest
// card is exactly highRank. The wheel (5-high) needs 5,4,3,2,A.
func straightWithHigh(pool []cards.Card, highRank cards.Rank) bool {
	present := make(map[cards.Rank]bool, len(pool))
	for _, c := range pool {
		present[c.Rank] = true
	}
	return runEndsAt(present, highRank)
}

func runEndsAt(present map[cards.Rank]bool, highRank cards.Rank) bool {
	if highRank == "5" {
		for _, r := range []cards.Rank{"5", "4", "3", "2", "A"} {
			if !present[r] {
				return false
			}
		}
		return true
	}
	highIdx := cards.RankValue(highRank)
	if highIdx < 4 { // no room for 5 ranks below
		return false
	}
	for _, r := range cards.Ranks[highIdx-4 : highIdx+1] {
		if !present[r] {
			return false
		}
	}
	return true
}

// suitsToCheck returns the single named suit, or all suits when the
// claim left it open.
func suitsToCheck(suit cards.Suit) []cards.Suit {
	if suit != "" {
		return []cards.Suit{suit}
	}
	return cards.Suits
}

// flushWithHigh reports whether some checked suit holds at least 5
// cards whose highest rank is exactly highRank.
func flushWithHigh(pool []cards.Card, highRank cards.Rank, suit cards.Suit) bool {
	groups := poker.BySuit(pool)
	target := cards.RankValue(highRank)
	for _, s := range suitsToCheck(suit) {
		suited := groups[s]
		if len(suited) < 5 {
			continue
		}
		best := -1
		for _, c := range suited {
			if v := cards.RankValue(c.Rank); v > best {
				best = v
			}
		}
		if best == target {
			return true
		}
	}
	return false
}

// straightFlushWithHigh reports whether some checked suit contains the
// 5-rank run ending exactly at highRank (wheel-aware).
func straightFlushWithHigh(pool []cards.Card, highRank cards.Rank, suit cards.Suit) bool {
	groups := poker.BySuit(pool)
	for _, s := range suitsToCheck(suit) {
		suited := groups[s]
		if len(suited) < 5 {
			continue
		}
		present := make(map[cards.Rank]bool, len(suited))
		for _, c := range suited {
			present[c.Rank] = true
		}
		if runEndsAt(present, highRank) {
			return true
		}
	}
	return false
}

// royalFlushIn reports whether 10-J-Q-K-A are all present in the suit.
func royalFlushIn(pool []cards.Card, suit cards.Suit) bool {
	present := make(map[cards.Rank]bool)
	for _, c := range pool {
		if c.Suit == suit {
			present[c.Rank] = true
		}
	}
	for _, r := range []cards.Rank{"10", "J", "Q", "K", "A"} {
		if !present[r] {
			return false
		}
	}
	return true
}
