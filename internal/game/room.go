// Package game implements the liar's poker round state machine: one
// Room per join code, holding the roster and the live Round. All
// methods mutate in place and return what the caller needs to
// broadcast; nothing here touches the network.
package game

import (
	"errors"
	"fmt"
	"sort"

	"liarspoker/internal/cards"
	"liarspoker/internal/claim"
	"liarspoker/internal/poker"
)

// ErrNoRound marks a command against a round that does not exist or
// has already moved past the phase the command belongs to. Stale
// clients race into this constantly; the transport drops it silently
// instead of surfacing an error.
var ErrNoRound = errors.New("no round in progress")

// Room is one game room. Not safe for concurrent use; the caller
// serializes commands per room.
type Room struct {
	Code    string
	Players []*Player
	Round   *Round
}

// NewRoom creates an empty room.
func NewRoom(code string) *Room {
	return &Room{Code: code}
}

// AddPlayer seats a new player. The first player in becomes host and
// dealer.
func (r *Room) AddPlayer(id, name string) (*Player, error) {
	if r.Round != nil {
		return nil, fmt.Errorf("game is already in progress")
	}
	if len(r.Players) >= MaxPlayers {
		return nil, fmt.Errorf("room is full")
	}
	for _, p := range r.Players {
		if p.ID == id {
			return nil, fmt.Errorf("player already in room")
		}
	}
	p := &Player{
		ID:       id,
		Name:     name,
		IsHost:   len(r.Players) == 0,
		IsDealer: len(r.Players) == 0,
		IsActive: true,
	}
	r.Players = append(r.Players, p)
	return p, nil
}

func (r *Room) player(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (r *Room) seatIndex(id string) int {
	for i, p := range r.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (r *Room) activeCount() int {
	n := 0
	for _, p := range r.Players {
		if p.IsActive {
			n++
		}
	}
	return n
}

// nextActive finds the next active player after fromID in seating
// order, wrapping around. If fromID is no longer seated (it just
// disconnected), removedIdx is its former seat: the player who shifted
// into that seat is the rightful "next", so the scan anchors one
// position before it and the +1 step lands there.
func (r *Room) nextActive(fromID string, removedIdx int) string {
	n := len(r.Players)
	if n == 0 {
		return ""
	}
	start := r.seatIndex(fromID)
	if start == -1 {
		start = removedIdx - 1
	}
	for i := 1; i <= n; i++ {
		p := r.Players[(start+i+n)%n]
		if p.IsActive {
			return p.ID
		}
	}
	return ""
}

// Start deals the first round. Rejected with a user-visible error when
// fewer than two players are seated or a round is already live.
func (r *Room) Start() error {
	if r.Round != nil {
		return fmt.Errorf("game is already in progress")
	}
	if len(r.Players) < 2 {
		return fmt.Errorf("need at least 2 players to start the game")
	}
	r.deal()
	return nil
}

// deal replaces the live round: fresh shuffle, 5 board cards face
// down, and a hand per active player sized by accumulated penalties.
// Eliminated players get an explicit empty hand. The dealer takes the
// first turn; if the dealer is eliminated the turn advances past them.
func (r *Room) deal() {
	deck := cards.NewDeck()
	cards.Shuffle(deck)

	round := &Round{
		Hands: make(map[string][]cards.Card, len(r.Players)),
		Phase: PhasePlaying,
		Stage: StagePreflop,
	}
	copy(round.Community[:], deck[:BoardSize])
	deck = deck[BoardSize:]

	for _, p := range r.Players {
		if !p.IsActive {
			round.Hands[p.ID] = []cards.Card{}
			continue
		}
		size := p.EffectiveHandSize()
		round.Hands[p.ID] = append([]cards.Card(nil), deck[:size]...)
		deck = deck[size:]
	}

	dealer := r.dealer()
	turn := dealer.ID
	if !dealer.IsActive {
		turn = r.nextActive(dealer.ID, -1)
	}
	round.Turn = turn
	round.Starter = turn
	r.Round = round
}

func (r *Room) dealer() *Player {
	for _, p := range r.Players {
		if p.IsDealer {
			return p
		}
	}
	return r.Players[0]
}

// ClaimResult reports what a claim did to the room.
type ClaimResult struct {
	GameOver bool
	WinnerID string
	Revealed bool // a board card flipped on rotation completion
}

// SubmitClaim records the claim verbatim (even nonsense: an
// unreadable claim simply loses any challenge) and passes the turn.
// Completing a full rotation past the flop flips the next board card.
func (r *Room) SubmitClaim(playerID, text string) (*ClaimResult, error) {
	round := r.Round
	if round == nil || round.Phase != PhasePlaying {
		return nil, ErrNoRound
	}
	if round.Turn != playerID {
		return nil, fmt.Errorf("not your turn")
	}
	round.Claim = text
	round.ClaimerID = playerID

	next := r.nextActive(playerID, -1)
	if next == "" || next == playerID {
		// Nobody else can act: the lone active player wins outright.
		winner := ""
		if p := r.player(playerID); p != nil && p.IsActive {
			winner = playerID
		} else {
			for _, p := range r.Players {
				if p.IsActive {
					winner = p.ID
					break
				}
			}
		}
		return &ClaimResult{GameOver: true, WinnerID: winner}, nil
	}
	round.Turn = next

	res := &ClaimResult{}
	if round.Turn == round.Starter {
		if round.Stage == StageFlop || round.Stage == StageTurn {
			if n := round.revealedCount(); n < BoardSize {
				round.Revealed[n] = true
				round.Stage++
				res.Revealed = true
			}
		}
	}
	return res, nil
}

// RevealNext flips the next face-down flop card. Host-driven, used
// only to pace the initial 3-card flop; turn and river flips happen
// on rotation completion inside SubmitClaim.
func (r *Room) RevealNext(playerID string) error {
	round := r.Round
	if round == nil || round.Phase != PhasePlaying {
		return ErrNoRound
	}
	if p := r.player(playerID); p == nil || !p.IsHost {
		return fmt.Errorf("only the host can reveal cards")
	}
	n := round.revealedCount()
	if n >= FlopSize {
		return nil
	}
	round.Revealed[n] = true
	if n+1 == FlopSize {
		round.Stage = StageFlop
	}
	return nil
}

// Challenge resolves a BS call by the current turn holder. Every hand
// is pooled with the revealed board; if the claimed hand exists the
// challenger loses, otherwise the claimer does. The loser takes a
// penalty card, may be eliminated, and deals the next round.
func (r *Room) Challenge(challengerID string) (*RevealSnapshot, error) {
	round := r.Round
	if round == nil || round.Phase != PhasePlaying {
		return nil, ErrNoRound
	}
	if round.Turn != challengerID {
		return nil, fmt.Errorf("not your turn")
	}
	if round.Claim == "" {
		return nil, fmt.Errorf("no claim to challenge")
	}

	pool := round.pool()
	claimTrue := claim.Valid(round.Claim, pool)

	loserID := round.ClaimerID
	if claimTrue {
		loserID = challengerID
	}
	if loser := r.player(loserID); loser != nil {
		loser.ExtraCards++
		if loser.EffectiveHandSize() >= EliminationHandSize {
			loser.IsActive = false
		}
	}
	for _, p := range r.Players {
		p.IsDealer = p.ID == loserID
	}

	round.Phase = PhaseBSReveal
	round.Acks = make(map[string]bool)
	round.Reveal = &RevealSnapshot{
		Hands:     round.Hands,
		Community: round.Community,
		Flags:     round.Revealed,
		Claim:     round.Claim,
		ClaimTrue: claimTrue,
		LoserID:   loserID,
		BestHand:  poker.DescribeBest(pool),
	}
	return round.Reveal, nil
}

// AckResult reports the outcome of an acknowledgement (or of an
// acknowledgement-set re-check after a disconnect).
type AckResult struct {
	AllAcked bool
	NewRound bool
	GameOver bool
	Ranking  []PlayerResult
}

// Acknowledge records that a player has seen the BS reveal. When every
// active player has acknowledged, either the next round deals or, with
// at most one active player left, the game ends with a final ranking.
func (r *Room) Acknowledge(playerID string) (*AckResult, error) {
	round := r.Round
	if round == nil || round.Phase != PhaseBSReveal {
		return nil, ErrNoRound
	}
	if round.Acks == nil {
		round.Acks = make(map[string]bool)
	}
	round.Acks[playerID] = true
	return r.checkAcks(), nil
}

func (r *Room) checkAcks() *AckResult {
	round := r.Round
	res := &AckResult{}
	if len(round.Acks) < r.activeCount() {
		return res
	}
	res.AllAcked = true
	if r.activeCount() <= 1 {
		res.GameOver = true
		res.Ranking = r.Ranking()
		return res
	}
	r.deal()
	res.NewRound = true
	return res
}

// Ranking sorts every seated player by remaining hand size ascending
// and assigns placements 1..N.
func (r *Room) Ranking() []PlayerResult {
	out := make([]PlayerResult, 0, len(r.Players))
	for _, p := range r.Players {
		count := p.EffectiveHandSize()
		if r.Round != nil {
			if hand, ok := r.Round.Hands[p.ID]; ok {
				count = len(hand)
			}
		}
		out = append(out, PlayerResult{ID: p.ID, Name: p.Name, CardCount: count})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CardCount < out[j].CardCount
	})
	for i := range out {
		out[i].Placement = i + 1
	}
	return out
}

// LeaveResult reports everything a disconnect changed.
type LeaveResult struct {
	Removed   bool
	RoomEmpty bool
	// Ack re-check outcome, when the leaver departed mid bs-reveal.
	NewRound bool
	GameOver bool
	Ranking  []PlayerResult
}

// RemovePlayer handles a disconnect: the seat is removed, roles and
// the turn are repaired, a pending acknowledgement set is pruned and
// re-checked, and the end-of-game condition is re-evaluated for the
// whole room.
func (r *Room) RemovePlayer(playerID string) *LeaveResult {
	res := &LeaveResult{}
	idx := r.seatIndex(playerID)
	if idx == -1 {
		return res
	}
	res.Removed = true
	leaving := r.Players[idx]
	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)

	round := r.Round
	if round != nil {
		delete(round.Hands, playerID)
	}

	if len(r.Players) == 0 {
		res.RoomEmpty = true
		return res
	}

	if round != nil && round.Turn == playerID {
		next := r.nextActive(playerID, idx)
		round.Turn = next
		if round.Starter == playerID {
			round.Starter = next
		}
	}
	if leaving.IsDealer {
		if nextID := r.nextActive(playerID, idx); nextID != "" {
			r.player(nextID).IsDealer = true
		} else {
			r.Players[0].IsDealer = true
		}
	}
	if leaving.IsHost {
		r.Players[0].IsHost = true
	}

	if round != nil && round.Phase == PhaseBSReveal && round.Acks != nil {
		delete(round.Acks, playerID)
		ack := r.checkAcks()
		res.NewRound = ack.NewRound
		res.GameOver = ack.GameOver
		res.Ranking = ack.Ranking
	}

	// A departure can leave a single survivor in any phase.
	if r.Round != nil && !res.GameOver && !res.NewRound && r.activeCount() <= 1 {
		res.GameOver = true
		res.Ranking = r.Ranking()
	}
	return res
}
