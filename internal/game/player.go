package game

// BaseHandSize is how many cards a player starts each round with
// before penalties.
const BaseHandSize = 2

// EliminationHandSize is the effective hand size at which a player is
// out of the game.
const EliminationHandSize = 6

// MaxPlayers caps a room. 5 board cards plus 8 hands of up to 5 cards
// always fit in one deck.
const MaxPlayers = 8

// Player is one seat in a room. Seating order is the order players
// joined and never changes while they stay connected.
type Player struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsHost     bool   `json:"isHost"`
	IsDealer   bool   `json:"isDealer"`
	IsActive   bool   `json:"isActive"`
	ExtraCards int    `json:"extraCards"`
}

// EffectiveHandSize is the number of cards the player would be dealt
// next round: 2 base cards plus accumulated penalties.
func (p *Player) EffectiveHandSize() int {
	return BaseHandSize + p.ExtraCards
}

// PlayerResult is one row of the final ranking.
type PlayerResult struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CardCount int    `json:"cardCount"`
	Placement int    `json:"placement"` // 1 = winner
}
