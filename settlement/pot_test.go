package settlement

import (
	"testing"

	"github.com/FICHEKK/poker-server/poker"
	"github.com/stretchr/testify/assert"
)

func TestCalculatePots_SingleMainPot(t *testing.T) {
	contenders := []Contender{
		{Seat: 0, TotalBet: 50},
		{Seat: 1, TotalBet: 50},
		{Seat: 2, TotalBet: 50},
	}

	pots, err := CalculatePots(contenders)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(pots))
	assert.Equal(t, 150, pots[0].Value)
	assert.Equal(t, []int{0, 1, 2}, pots[0].Eligible)
}

func TestCalculatePots_AllInLadder(t *testing.T) {
	contenders := []Contender{
		{Seat: 0, TotalBet: 20},
		{Seat: 1, TotalBet: 40},
		{Seat: 2, TotalBet: 40, Folded: true},
		{Seat: 3, TotalBet: 50},
	}

	pots, err := CalculatePots(contenders)
	assert.Nil(t, err)

	total := 0
	for _, pot := range pots {
		total += pot.Value
		assert.NotContains(t, pot.Eligible, 2, "folded contender must never be eligible")
	}
	assert.Equal(t, 150, total)

	// Layer 1: 20 x 4 contenders; layer 2: 20 x 3; layer 3: 10 x 1.
	assert.Equal(t, 3, len(pots))
	assert.Equal(t, 80, pots[0].Value)
	assert.Equal(t, []int{0, 1, 3}, pots[0].Eligible)
	assert.Equal(t, 60, pots[1].Value)
	assert.Equal(t, []int{1, 3}, pots[1].Eligible)
	assert.Equal(t, 10, pots[2].Value)
	assert.Equal(t, []int{3}, pots[2].Eligible)
}

func TestCalculatePots_MergesLayersWithSameContenders(t *testing.T) {
	// Seat 1 folded after betting less than the others. The layer at their
	// bet level and the layer above it are both open to seats 0 and 2 only,
	// so they collapse into one pot.
	contenders := []Contender{
		{Seat: 0, TotalBet: 100},
		{Seat: 1, TotalBet: 30, Folded: true},
		{Seat: 2, TotalBet: 100},
	}

	pots, err := CalculatePots(contenders)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(pots))
	assert.Equal(t, 230, pots[0].Value)
	assert.Equal(t, []int{0, 2}, pots[0].Eligible)
}

func TestCalculatePots_IgnoresZeroBets(t *testing.T) {
	contenders := []Contender{
		{Seat: 0, TotalBet: 0},
		{Seat: 1, TotalBet: 10},
		{Seat: 2, TotalBet: 10},
	}

	pots, err := CalculatePots(contenders)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(pots))
	assert.Equal(t, 20, pots[0].Value)
	assert.Equal(t, []int{1, 2}, pots[0].Eligible)
}

func TestCalculatePots_AllFoldedLayerIsRejected(t *testing.T) {
	contenders := []Contender{
		{Seat: 0, TotalBet: 10, Folded: true},
		{Seat: 1, TotalBet: 10, Folded: true},
	}

	_, err := CalculatePots(contenders)
	assert.ErrorIs(t, err, ErrNoEligibleWinners)
}

func fiveCards(ranks [5]poker.Rank, suits [5]poker.Suit) [5]poker.Card {
	var cards [5]poker.Card
	for i := range cards {
		cards[i] = poker.NewCard(ranks[i], suits[i])
	}
	return cards
}

func TestAward_SplitsTiedPotEvenly(t *testing.T) {
	// Both seats hold the exact same straight by rank.
	straightA := poker.NewHand(fiveCards(
		[5]poker.Rank{poker.Six, poker.Seven, poker.Eight, poker.Nine, poker.Ten},
		[5]poker.Suit{poker.Clubs, poker.Diamonds, poker.Hearts, poker.Spades, poker.Clubs},
	))
	straightB := poker.NewHand(fiveCards(
		[5]poker.Rank{poker.Six, poker.Seven, poker.Eight, poker.Nine, poker.Ten},
		[5]poker.Suit{poker.Spades, poker.Hearts, poker.Diamonds, poker.Clubs, poker.Spades},
	))

	results := Award(
		[]Pot{{Value: 101, Eligible: []int{0, 1}}},
		map[int]poker.Hand{0: straightA, 1: straightB},
	)

	assert.Equal(t, 1, len(results))
	assert.ElementsMatch(t, []int{0, 1}, results[0].Winners)
	assert.Equal(t, 50, results[0].Share)
}

func TestAward_StrongerHandTakesWholePot(t *testing.T) {
	flush := poker.NewHand(fiveCards(
		[5]poker.Rank{poker.Two, poker.Six, poker.Nine, poker.Jack, poker.King},
		[5]poker.Suit{poker.Hearts, poker.Hearts, poker.Hearts, poker.Hearts, poker.Hearts},
	))
	pair := poker.NewHand(fiveCards(
		[5]poker.Rank{poker.Ace, poker.Ace, poker.Two, poker.Five, poker.Nine},
		[5]poker.Suit{poker.Clubs, poker.Diamonds, poker.Hearts, poker.Spades, poker.Clubs},
	))

	results := Award(
		[]Pot{{Value: 200, Eligible: []int{3, 5}}},
		map[int]poker.Hand{3: flush, 5: pair},
	)

	assert.Equal(t, []int{3}, results[0].Winners)
	assert.Equal(t, 200, results[0].Share)
}

func TestAward_UncontestedPotGoesToSoleSurvivor(t *testing.T) {
	results := Award(
		[]Pot{{Value: 60, Eligible: []int{4}}},
		map[int]poker.Hand{},
	)

	assert.Equal(t, []int{4}, results[0].Winners)
	assert.Equal(t, 60, results[0].Share)
}
