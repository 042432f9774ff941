package game

import (
	"liarspoker/internal/cards"
)

// Snapshot is the state one player is allowed to see. Board cards stay
// nil until their reveal flag flips, and other players' hands are only
// present inside the bs-reveal snapshot.
type Snapshot struct {
	RoomCode  string          `json:"roomCode"`
	Players   []Player        `json:"players"`
	Started   bool            `json:"gameStarted"`
	Community []*cards.Card   `json:"communityCards,omitempty"`
	Revealed  []bool          `json:"revealedCards,omitempty"`
	Hand      []cards.Card    `json:"hand,omitempty"`
	Claim     string          `json:"currentClaim,omitempty"`
	ClaimerID string          `json:"currentClaimerId,omitempty"`
	Turn      string          `json:"currentTurn,omitempty"`
	Starter   string          `json:"roundStarter,omitempty"`
	Phase     Phase           `json:"phase,omitempty"`
	Stage     int             `json:"stage"`
	Reveal    *RevealSnapshot `json:"bsReveal,omitempty"`
}

// Snapshot builds the view for one player.
func (r *Room) Snapshot(playerID string) Snapshot {
	snap := Snapshot{
		RoomCode: r.Code,
		Players:  make([]Player, 0, len(r.Players)),
	}
	for _, p := range r.Players {
		snap.Players = append(snap.Players, *p)
	}
	round := r.Round
	if round == nil {
		return snap
	}
	snap.Started = true
	snap.Revealed = round.Revealed[:]
	snap.Community = make([]*cards.Card, BoardSize)
	for i := range round.Community {
		if round.Revealed[i] {
			c := round.Community[i]
			snap.Community[i] = &c
		}
	}
	snap.Hand = round.Hands[playerID]
	snap.Claim = round.Claim
	snap.ClaimerID = round.ClaimerID
	snap.Turn = round.Turn
	snap.Starter = round.Starter
	snap.Phase = round.Phase
	snap.Stage = round.Stage
	if round.Phase == PhaseBSReveal {
		snap.Reveal = round.Reveal
	}
	return snap
}
