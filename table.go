package pokerserver

import (
	"math/rand"
	"time"
)

// UnsetValue marks an index that has not been assigned yet.
const UnsetValue = -1

// Table is fixed-capacity seating: a seat array with stable indexes and the
// dealer button. A folded player keeps their seat slot (Folded flag) so that
// position-based lookups stay valid for the whole round.
type Table struct {
	seats        []*TablePlayer
	dealerButton int
	rnd          *rand.Rand
}

func NewTable(maxPlayers int) *Table {
	return NewTableWithRand(maxPlayers, rand.New(rand.NewSource(time.Now().UnixNano())))
}

func NewTableWithRand(maxPlayers int, rnd *rand.Rand) *Table {
	return &Table{
		seats:        make([]*TablePlayer, maxPlayers),
		dealerButton: UnsetValue,
		rnd:          rnd,
	}
}

func (t *Table) MaxPlayers() int {
	return len(t.seats)
}

func (t *Table) Seats() []*TablePlayer {
	return t.seats
}

func (t *Table) PlayerCount() int {
	count := 0
	for _, p := range t.seats {
		if p != nil {
			count++
		}
	}
	return count
}

// DealerButton is the seat index holding the dealer marker, or UnsetValue
// before the first round has started.
func (t *Table) DealerButton() int {
	return t.dealerButton
}

// AddPlayer seats the player at a uniformly random free seat.
func (t *Table) AddPlayer(player *TablePlayer) (int, error) {
	free := make([]int, 0, len(t.seats))
	for seat, p := range t.seats {
		if p == nil {
			free = append(free, seat)
		}
	}
	if len(free) == 0 {
		return UnsetValue, ErrTableNoEmptySeats
	}

	seat := free[t.rnd.Intn(len(free))]
	t.seats[seat] = player
	return seat, nil
}

func (t *Table) RemovePlayer(username string) error {
	seat := t.FindSeat(username)
	if seat == UnsetValue {
		return ErrTablePlayerNotFound
	}

	t.seats[seat] = nil
	return nil
}

// FindSeat returns the seat index of the given player, or UnsetValue.
func (t *Table) FindSeat(username string) int {
	for seat, p := range t.seats {
		if p != nil && p.Username == username {
			return seat
		}
	}
	return UnsetValue
}

func (t *Table) Player(username string) *TablePlayer {
	if seat := t.FindSeat(username); seat != UnsetValue {
		return t.seats[seat]
	}
	return nil
}

// MoveDealerButton advances the button to the next occupied seat, wrapping
// around the table.
func (t *Table) MoveDealerButton() int {
	t.dealerButton = t.NextOccupiedSeat(t.dealerButton)
	return t.dealerButton
}

// NextOccupiedSeat walks seat indexes in order, wrapping, and returns the
// first occupied seat strictly after the given one. Returns UnsetValue when
// the table is empty.
func (t *Table) NextOccupiedSeat(after int) int {
	if after == UnsetValue {
		after = len(t.seats) - 1
	}

	for i := 1; i <= len(t.seats); i++ {
		seat := (after + i) % len(t.seats)
		if t.seats[seat] != nil {
			return seat
		}
	}
	return UnsetValue
}

// Usernames lists the usernames of all seated players in seat order.
func (t *Table) Usernames() []string {
	usernames := make([]string, 0, len(t.seats))
	for _, p := range t.seats {
		if p != nil {
			usernames = append(usernames, p.Username)
		}
	}
	return usernames
}
