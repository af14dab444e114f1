package pokerserver

import (
	"github.com/FICHEKK/poker-server/poker"
)

// TablePlayer is a connected player seated at a table. Stack is the chips in
// play at the table; ChipCount is the persisted bankroll and mirrors every
// stack change so settlement can flush it to storage without recomputing.
type TablePlayer struct {
	Username  string       `json:"username"`
	Stack     int          `json:"stack"`
	ChipCount int          `json:"chip_count"`
	HoleCards []poker.Card `json:"-"`
	Folded    bool         `json:"folded"`

	// TotalBet accumulates the player's contribution over the whole round
	// and feeds the side-pot calculation; CurrentBet is the contribution on
	// the current street only and resets when the street closes.
	TotalBet   int `json:"total_bet"`
	CurrentBet int `json:"current_bet"`
}

func NewTablePlayer(username string, buyIn, chipCount int) *TablePlayer {
	return &TablePlayer{
		Username:  username,
		Stack:     buyIn,
		ChipCount: chipCount,
	}
}

// pay moves chips from the player into the pot bookkeeping. Amounts above
// the stack are capped, which turns an over-sized call into an all-in.
func (p *TablePlayer) pay(amount int) int {
	if amount > p.Stack {
		amount = p.Stack
	}

	p.Stack -= amount
	p.ChipCount -= amount
	p.TotalBet += amount
	p.CurrentBet += amount
	return amount
}

// credit awards won chips to both the table stack and the bankroll mirror.
func (p *TablePlayer) credit(amount int) {
	p.Stack += amount
	p.ChipCount += amount
}

// resetForNewRound clears all per-round state before a fresh deal.
func (p *TablePlayer) resetForNewRound() {
	p.HoleCards = nil
	p.Folded = false
	p.TotalBet = 0
	p.CurrentBet = 0
}

// AllIn reports whether the player has committed their whole stack.
func (p *TablePlayer) AllIn() bool {
	return p.Stack == 0 && !p.Folded
}
