package game

import (
	"liarspoker/internal/cards"
)

// Phase is the round lifecycle phase.
type Phase string

const (
	PhasePlaying  Phase = "playing"
	PhaseBSReveal Phase = "bs-reveal"
)

// BoardSize is the number of community cards per round.
const BoardSize = 5

// FlopSize is how many board cards the host flips one by one at the
// start of a round.
const FlopSize = 3

// Reveal stages: 0 until the flop is complete, then one stage per
// extra board card.
const (
	StagePreflop = 0
	StageFlop    = 1
	StageTurn    = 2
)

// Round is the live state of one dealt round. A fresh Round replaces
// the previous one entirely; revealed flags only ever flip to true
// within a round.
type Round struct {
	Community [BoardSize]cards.Card   `json:"communityCards"`
	Revealed  [BoardSize]bool         `json:"revealedCards"`
	Hands     map[string][]cards.Card `json:"playerCards"`
	Claim     string                  `json:"currentClaim"`
	ClaimerID string                  `json:"currentClaimerId"`
	Turn      string                  `json:"currentTurn"`
	Starter   string                  `json:"roundStarter"`
	Phase     Phase                   `json:"phase"`
	Stage     int                     `json:"stage"`
	Acks      map[string]bool         `json:"-"`
	Reveal    *RevealSnapshot         `json:"-"`
}

// RevealSnapshot freezes everything a BS resolution exposes: all
// hands, the full board, and the verdict.
type RevealSnapshot struct {
	Hands     map[string][]cards.Card `json:"revealedPlayerCards"`
	Community [BoardSize]cards.Card   `json:"communityCards"`
	Flags     [BoardSize]bool         `json:"revealedBoardFlags"`
	Claim     string                  `json:"claim"`
	ClaimTrue bool                    `json:"claimTrue"`
	LoserID   string                  `json:"loser"`
	BestHand  string                  `json:"bestActualHand"`
}

func (r *Round) revealedCount() int {
	n := 0
	for _, flipped := range r.Revealed {
		if flipped {
			n++
		}
	}
	return n
}

// pool gathers every card a BS challenge exposes: revealed board
// cards plus all players' full hands.
func (r *Round) pool() []cards.Card {
	var out []cards.Card
	for i, c := range r.Community {
		if r.Revealed[i] {
			out = append(out, c)
		}
	}
	for _, hand := range r.Hands {
		out = append(out, hand...)
	}
	return out
}
