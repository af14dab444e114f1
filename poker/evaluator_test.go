package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBestHand_RoyalFlush(t *testing.T) {
	hole := []Card{NewCard(Ace, Hearts), NewCard(King, Hearts)}
	community := []Card{
		NewCard(Queen, Hearts),
		NewCard(Jack, Hearts),
		NewCard(Ten, Hearts),
		NewCard(Two, Clubs),
		NewCard(Three, Diamonds),
	}

	best, err := BestHand(hole, community)
	assert.Nil(t, err)
	assert.Equal(t, RoyalFlush, best.Category())
}

func TestBestHand_FullHouse(t *testing.T) {
	hole := []Card{NewCard(Two, Clubs), NewCard(Two, Diamonds)}
	community := []Card{
		NewCard(Two, Hearts),
		NewCard(Three, Spades),
		NewCard(Three, Diamonds),
		NewCard(Nine, Clubs),
		NewCard(King, Hearts),
	}

	best, err := BestHand(hole, community)
	assert.Nil(t, err)
	assert.Equal(t, FullHouse, best.Category())
	assert.Equal(t, 3, best.RankCount(Two))
	assert.Equal(t, 2, best.RankCount(Three))
}

func TestBestHand_PicksBestKickers(t *testing.T) {
	hole := []Card{NewCard(Ace, Hearts), NewCard(Ace, Spades)}
	community := []Card{
		NewCard(Two, Hearts),
		NewCard(Five, Clubs),
		NewCard(Nine, Diamonds),
		NewCard(Jack, Clubs),
		NewCard(King, Hearts),
	}

	best, err := BestHand(hole, community)
	assert.Nil(t, err)
	assert.Equal(t, OnePair, best.Category())
	// The pair of aces keeps the three highest kickers.
	assert.Equal(t, 1, best.RankCount(King))
	assert.Equal(t, 1, best.RankCount(Jack))
	assert.Equal(t, 1, best.RankCount(Nine))
	assert.Equal(t, 0, best.RankCount(Five))
	assert.Equal(t, 0, best.RankCount(Two))
}

func TestBestHand_RejectsWrongCardCount(t *testing.T) {
	_, err := BestHand([]Card{NewCard(Ace, Hearts)}, []Card{NewCard(Two, Clubs)})
	assert.NotNil(t, err)
}
