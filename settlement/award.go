package settlement

import (
	"github.com/FICHEKK/poker-server/poker"
)

// PotResult is a settled pot: the winners who split it and each winner's
// share (integer floor of an even split).
type PotResult struct {
	Value   int
	Winners []int
	Share   int
}

// Award resolves every pot against the contenders' best hands, keyed by seat.
// A pot is split among all eligible seats whose hands tie for strongest.
// Seats missing from the hands map (the sole survivor of an all-fold round)
// win their pots uncontested.
func Award(pots []Pot, hands map[int]poker.Hand) []PotResult {
	results := make([]PotResult, 0, len(pots))

	for _, pot := range pots {
		winners := []int{pot.Eligible[0]}
		best, contested := hands[pot.Eligible[0]]

		for _, seat := range pot.Eligible[1:] {
			hand, ok := hands[seat]
			if !ok || !contested {
				continue
			}
			switch cmp := hand.Compare(best); {
			case cmp > 0:
				winners = []int{seat}
				best = hand
			case cmp == 0:
				winners = append(winners, seat)
			}
		}

		results = append(results, PotResult{
			Value:   pot.Value,
			Winners: winners,
			Share:   pot.Value / len(winners),
		})
	}

	return results
}
