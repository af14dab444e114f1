package settlement

import (
	"errors"

	"github.com/thoas/go-funk"
)

var ErrNoEligibleWinners = errors.New("settlement: pot has no eligible winners")

// Contender is a player's stake in the pot at the end of a round: the seat
// they occupy, everything they put in over the whole round, and whether they
// folded. Folded contenders still size the pots they contributed to but can
// never win any of them.
type Contender struct {
	Seat     int
	TotalBet int
	Folded   bool
}

// Pot is one layer of the all-in ladder: a value and the seats allowed to
// contend for it.
type Pot struct {
	Value    int
	Eligible []int
}

// CalculatePots partitions the round's chips into one or more pots. Each
// iteration takes the minimum remaining bet m, forms a layer worth
// m x (remaining contenders) open to the non-folded among them, then peels m
// off everyone. Consecutive layers with identical eligible seats are merged,
// which collapses the no-all-in case into a single main pot.
//
// The sum of pot values always equals the sum of the contenders' total bets.
// A layer without a single non-folded contender means the caller fed an
// impossible round state and is rejected.
func CalculatePots(contenders []Contender) ([]Pot, error) {
	remaining := funk.Filter(contenders, func(c Contender) bool {
		return c.TotalBet > 0
	}).([]Contender)

	var pots []Pot
	for len(remaining) > 0 {
		m := remaining[0].TotalBet
		for _, c := range remaining[1:] {
			if c.TotalBet < m {
				m = c.TotalBet
			}
		}

		pot := Pot{Value: m * len(remaining)}
		for _, c := range remaining {
			if !c.Folded {
				pot.Eligible = append(pot.Eligible, c.Seat)
			}
		}
		if len(pot.Eligible) == 0 {
			return nil, ErrNoEligibleWinners
		}

		for i := range remaining {
			remaining[i].TotalBet -= m
		}
		remaining = funk.Filter(remaining, func(c Contender) bool {
			return c.TotalBet > 0
		}).([]Contender)

		if n := len(pots); n > 0 && equalSeats(pots[n-1].Eligible, pot.Eligible) {
			pots[n-1].Value += pot.Value
		} else {
			pots = append(pots, pot)
		}
	}

	return pots, nil
}

func equalSeats(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
