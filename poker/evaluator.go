package poker

import "fmt"

// BestHand finds the strongest 5-card hand among the 7 cards formed by a
// player's hole cards and the community cards. All C(7,5) = 21 subsets are
// evaluated; a later subset replaces the current best only on strict
// improvement, so the result is deterministic for a given card order.
func BestHand(holeCards []Card, communityCards []Card) (Hand, error) {
	cards := make([]Card, 0, len(holeCards)+len(communityCards))
	cards = append(cards, holeCards...)
	cards = append(cards, communityCards...)

	if len(cards) != HandSize+2 {
		return Hand{}, fmt.Errorf("poker: best hand requires 7 cards, got %d", len(cards))
	}

	var best Hand
	first := true

	// Choosing 5 of 7 is the same as excluding 2 of 7.
	for skipA := 0; skipA < len(cards); skipA++ {
		for skipB := skipA + 1; skipB < len(cards); skipB++ {
			var subset [HandSize]Card
			n := 0
			for i, card := range cards {
				if i == skipA || i == skipB {
					continue
				}
				subset[n] = card
				n++
			}

			hand := NewHand(subset)
			if first || hand.Compare(best) > 0 {
				best = hand
				first = false
			}
		}
	}

	return best, nil
}
