// Package claim parses free-form claim phrases into structured claims
// and validates them against a card pool.
package claim

import (
	"regexp"
	"strings"

	"liarspoker/internal/cards"
	"liarspoker/internal/poker"
)

// Claim is a parsed claim. Which fields are set depends on Category:
// pair/trips/quads/straight/high-card use Rank, two-pair adds
// SecondRank (Rank is the higher pair), full house uses Rank (trips)
// plus PairRank, flush family optionally carries Suit. Absent fields
// are zero values.
type Claim struct {
	Category   poker.Category
	Rank       cards.Rank
	SecondRank cards.Rank
	PairRank   cards.Rank
	Suit       cards.Suit
}

var (
	overRe    = regexp.MustCompile(`(?i)([0-9A-Za-z]+)s over ([0-9A-Za-z]+)s`)
	twoPairRe = regexp.MustCompile(`(?i)Two Pair of ([0-9A-Za-z]+)s and ([0-9A-Za-z]+)s`)
	tripsRe   = regexp.MustCompile(`(?i)Three of a Kind of ([0-9A-Za-z]+)s`)
	quadsRe   = regexp.MustCompile(`(?i)Four of a Kind of ([0-9A-Za-z]+)s`)
	suitRe    = regexp.MustCompile(`(?i)(Hearts|Diamonds|Clubs|Spades)`)
	pairSplit = regexp.MustCompile(`(?i)Pair of `)
	highSplit = regexp.MustCompile(`(?i)-high ?`)
)

// normalizeRank strips one trailing plural "s" and uppercases, so
// "as" -> "A", "10s" -> "10". Face cards must already be single-letter
// tokens in the phrase.
func normalizeRank(word string) cards.Rank {
	return cards.Rank(strings.ToUpper(strings.TrimSuffix(word, "s")))
}

func parseSuit(s string) cards.Suit {
	m := suitRe.FindString(s)
	if m == "" {
		return ""
	}
	return cards.Suit(strings.ToLower(m))
}

// Parse turns a claim phrase into a structured Claim, or nil if the
// phrase matches no known pattern. The rules run in a fixed priority
// order: later patterns are substrings of earlier ones ("two pair"
// contains "pair of", "X-high straight flush" contains "flush"), so
// reordering them changes meaning.
func Parse(text string) *Claim {
	if text == "" {
		return nil
	}
	lc := strings.ToLower(text)

	// Implicit full house: "As over 10s", "Queens over 2s".
	if m := overRe.FindStringSubmatch(text); m != nil {
		r1, r2 := normalizeRank(m[1]), normalizeRank(m[2])
		if r1 != r2 {
			return &Claim{Category: poker.FullHouse, Rank: r1, PairRank: r2}
		}
	}
	// Explicit "full house" keyword with the same X-over-Y shape.
	if strings.Contains(lc, "full house") {
		if m := overRe.FindStringSubmatch(text); m != nil {
			return &Claim{Category: poker.FullHouse, Rank: normalizeRank(m[1]), PairRank: normalizeRank(m[2])}
		}
	}
	// "two pair" must run before the generic "pair of" branch: a
	// two-pair phrase contains "pair of" as a substring.
	if strings.Contains(lc, "two pair") {
		if m := twoPairRe.FindStringSubmatch(text); m != nil {
			r1, r2 := normalizeRank(m[1]), normalizeRank(m[2])
			high, low := r1, r2
			if cards.RankValue(r2) > cards.RankValue(r1) {
				high, low = r2, r1
			}
			return &Claim{Category: poker.TwoPair, Rank: high, SecondRank: low}
		}
		// Keyword present but ranks unreadable: keep the category so
		// the validator can still compare the pool's actual pairs
		// against the (empty) claimed ranks.
		return &Claim{Category: poker.TwoPair}
	}
	if strings.Contains(lc, "pair of") {
		parts := pairSplit.Split(text, 2)
		if len(parts) == 2 {
			return &Claim{Category: poker.Pair, Rank: normalizeRank(parts[1])}
		}
		return &Claim{Category: poker.Pair}
	}
	if strings.Contains(lc, "three of a kind") {
		cl := &Claim{Category: poker.ThreeOfAKind}
		if m := tripsRe.FindStringSubmatch(text); m != nil {
			cl.Rank = normalizeRank(m[1])
		}
		return cl
	}
	if strings.Contains(lc, "four of a kind") {
		cl := &Claim{Category: poker.FourOfAKind}
		if m := quadsRe.FindStringSubmatch(text); m != nil {
			cl.Rank = normalizeRank(m[1])
		}
		return cl
	}
	if strings.Contains(lc, "-high straight") {
		return &Claim{Category: poker.Straight, Rank: highPrefixRank(text)}
	}
	if strings.Contains(lc, "-high") && strings.Contains(lc, "flush") {
		// "Q-high Hearts Flush" or "Q-high Hearts Straight Flush".
		parts := highSplit.Split(text, 2)
		rank := normalizeRank(parts[0])
		rest := ""
		if len(parts) == 2 {
			rest = parts[1]
		}
		suit := parseSuit(rest)
		if strings.Contains(strings.ToLower(rest), "straight flush") {
			return &Claim{Category: poker.StraightFlush, Rank: rank, Suit: suit}
		}
		return &Claim{Category: poker.Flush, Rank: rank, Suit: suit}
	}
	if strings.Contains(lc, "-high card") {
		return &Claim{Category: poker.HighCard, Rank: highPrefixRank(text)}
	}
	// Bare "Ace-high" style phrases with no trailing noun.
	if strings.Contains(lc, "-high") && !strings.Contains(lc, "straight") && !strings.Contains(lc, "flush") {
		return &Claim{Category: poker.HighCard, Rank: highPrefixRank(text)}
	}
	if strings.Contains(lc, "straight flush") {
		return &Claim{Category: poker.StraightFlush}
	}
	if strings.Contains(lc, "royal flush") {
		return &Claim{Category: poker.RoyalFlush, Suit: parseSuit(text)}
	}
	return nil
}

func highPrefixRank(text string) cards.Rank {
	idx := strings.Index(strings.ToLower(text), "-high")
	if idx < 0 {
		return ""
	}
	return normalizeRank(text[:idx])
}
