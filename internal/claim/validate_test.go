package claim

import (
	"testing"

	"liarspoker/internal/cards"
)

func c(rank cards.Rank, suit cards.Suit) cards.Card {
	return cards.Card{Rank: rank, Suit: suit}
}

func TestHighCardExistenceOnly(t *testing.T) {
	pool := []cards.Card{
		c("K", cards.Hearts),
		c("2", cards.Clubs), c("2", cards.Spades), // a pair elsewhere is irrelevant
		c("7", cards.Diamonds),
	}
	if !Valid("K-high Card", pool) {
		t.Fatal("K exists, claim should hold")
	}
	if Valid("A-high Card", pool) {
		t.Fatal("no ace in pool")
	}
}

func TestPairByNamedRank(t *testing.T) {
	pool := []cards.Card{c("9", cards.Hearts), c("9", cards.Clubs), c("K", cards.Spades)}
	if !Valid("Pair of 9s", pool) {
		t.Fatal("pair of 9s exists")
	}
	if Valid("Pair of Ks", pool) {
		t.Fatal("only one king")
	}
}

func TestTwoPairQuickCheck(t *testing.T) {
	pool := []cards.Card{
		c("7", cards.Hearts), c("7", cards.Clubs),
		c("6", cards.Spades), c("6", cards.Diamonds),
	}
	if !Valid("Two Pair of 7s and 6s", pool) {
		t.Fatal("both named pairs exist")
	}
}

func TestTwoPairDomination(t *testing.T) {
	pool := []cards.Card{
		c("K", cards.Hearts), c("K", cards.Clubs),
		c("Q", cards.Spades), c("Q", cards.Diamonds),
	}
	// Neither named rank is paired, but K/Q dominates 7/6.
	if !Valid("Two Pair of 7s and 6s", pool) {
		t.Fatal("actual pairs dominate the claim")
	}
	// Equal high pair, lower second pair: J < Q holds, 7 > Q fails.
	if !Valid("Two Pair of Ks and Js", pool) {
		t.Fatal("K/Q dominates K/J")
	}
	if Valid("Two Pair of As and 2s", pool) {
		t.Fatal("no ace pair and K < A")
	}
}

func TestTwoPairMalformedFallsThroughToDomination(t *testing.T) {
	pool := []cards.Card{
		c("K", cards.Hearts), c("K", cards.Clubs),
		c("Q", cards.Spades), c("Q", cards.Diamonds),
	}
	// Missing or equal ranks skip the quick check but still get the
	// domination comparison; the missing rank compares as -1, so any
	// real two pair wins.
	if !Valid("two pair, trust me", pool) {
		t.Fatal("rankless claim is dominated by K/Q")
	}
	if !Valid("Two Pair of 7s and 7s", pool) {
		t.Fatal("equal-rank claim is dominated by K/Q")
	}

	// Without two actual pairs in the pool, a malformed claim stays
	// false.
	onePair := []cards.Card{
		c("K", cards.Hearts), c("K", cards.Clubs), c("4", cards.Spades),
	}
	if Valid("two pair, trust me", onePair) {
		t.Fatal("a single pair cannot satisfy any two-pair claim")
	}
	if Valid("Two Pair of 7s and 7s", onePair) {
		t.Fatal("a single pair cannot satisfy any two-pair claim")
	}
}

func TestKindCounts(t *testing.T) {
	pool := []cards.Card{
		c("5", cards.Hearts), c("5", cards.Clubs), c("5", cards.Spades), c("5", cards.Diamonds),
		c("8", cards.Hearts), c("8", cards.Clubs), c("8", cards.Spades),
	}
	if !Valid("Three of a Kind of 8s", pool) {
		t.Fatal("three 8s exist")
	}
	if !Valid("Four of a Kind of 5s", pool) {
		t.Fatal("four 5s exist")
	}
	if Valid("Four of a Kind of 8s", pool) {
		t.Fatal("only three 8s")
	}
}

func TestStraightExactHigh(t *testing.T) {
	// Pool holds both a 9-high and a K-high straight.
	pool := []cards.Card{
		c("5", cards.Hearts), c("6", cards.Clubs), c("7", cards.Spades), c("8", cards.Diamonds),
		c("9", cards.Hearts), c("10", cards.Clubs), c("J", cards.Spades), c("Q", cards.Diamonds),
		c("K", cards.Hearts),
	}
	if !Valid("9-high Straight", pool) {
		t.Fatal("9-high straight exists even though a higher one does too")
	}
	if !Valid("K-high Straight", pool) {
		t.Fatal("K-high straight exists")
	}
	if Valid("A-high Straight", pool) {
		t.Fatal("no A-high straight without an ace")
	}
}

func TestStraightWheel(t *testing.T) {
	pool := []cards.Card{
		c("A", cards.Hearts), c("2", cards.Clubs), c("3", cards.Spades),
		c("4", cards.Diamonds), c("5", cards.Hearts),
	}
	if !Valid("5-high Straight", pool) {
		t.Fatal("wheel should validate as 5-high")
	}
	if Valid("4-high Straight", pool) {
		t.Fatal("no straight tops out below 5")
	}
}

func TestFlushExactHigh(t *testing.T) {
	pool := []cards.Card{
		c("2", cards.Hearts), c("5", cards.Hearts), c("9", cards.Hearts),
		c("J", cards.Hearts), c("Q", cards.Hearts),
		c("A", cards.Spades),
	}
	if !Valid("Q-high Hearts Flush", pool) {
		t.Fatal("hearts flush tops at Q")
	}
	if Valid("J-high Hearts Flush", pool) {
		t.Fatal("flush high must match exactly")
	}
	if Valid("Q-high Spades Flush", pool) {
		t.Fatal("no spades flush")
	}
	// Suitless claim checks every suit.
	if !Valid("Q-high Flush", pool) {
		t.Fatal("suitless flush claim should find the hearts flush")
	}
}

func TestStraightFlush(t *testing.T) {
	pool := []cards.Card{
		c("5", cards.Clubs), c("6", cards.Clubs), c("7", cards.Clubs),
		c("8", cards.Clubs), c("9", cards.Clubs),
		c("9", cards.Hearts),
	}
	if !Valid("9-high Clubs Straight Flush", pool) {
		t.Fatal("9-high clubs straight flush exists")
	}
	if Valid("8-high Clubs Straight Flush", pool) {
		t.Fatal("8-high run needs the 4 of clubs")
	}
	if Valid("9-high Hearts Straight Flush", pool) {
		t.Fatal("hearts has a single card")
	}
}

func TestFullHouseCounts(t *testing.T) {
	pool := []cards.Card{
		c("A", cards.Hearts), c("A", cards.Clubs), c("A", cards.Spades),
		c("10", cards.Diamonds), c("10", cards.Hearts),
	}
	if !Valid("As over 10s", pool) {
		t.Fatal("aces full of tens exists")
	}
	if Valid("10s over As", pool) {
		t.Fatal("only two tens, trips required")
	}
}

func TestRoyalFlushRequiresSuit(t *testing.T) {
	pool := []cards.Card{
		c("10", cards.Spades), c("J", cards.Spades), c("Q", cards.Spades),
		c("K", cards.Spades), c("A", cards.Spades),
	}
	if Valid("Royal Flush", pool) {
		t.Fatal("suitless royal flush claim is always invalid")
	}
	if !Valid("Royal Flush of Spades", pool) {
		t.Fatal("royal flush in spades exists")
	}
	if Valid("Royal Flush of Hearts", pool) {
		t.Fatal("wrong suit")
	}
}

func TestUnparseableClaimInvalid(t *testing.T) {
	pool := []cards.Card{c("A", cards.Hearts)}
	if Valid("I definitely have cards", pool) {
		t.Fatal("unparseable text must resolve false")
	}
	if Valid("", pool) {
		t.Fatal("empty claim must resolve false")
	}
}
