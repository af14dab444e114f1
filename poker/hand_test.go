package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func hand(cards ...Card) Hand {
	var fixed [HandSize]Card
	copy(fixed[:], cards)
	return NewHand(fixed)
}

func TestHand_Categories(t *testing.T) {
	testCases := []struct {
		name     string
		hand     Hand
		expected Category
	}{
		{
			"high card",
			hand(NewCard(Two, Clubs), NewCard(Five, Diamonds), NewCard(Nine, Hearts), NewCard(Jack, Spades), NewCard(King, Clubs)),
			HighCard,
		},
		{
			"one pair",
			hand(NewCard(Two, Clubs), NewCard(Two, Diamonds), NewCard(Nine, Hearts), NewCard(Jack, Spades), NewCard(King, Clubs)),
			OnePair,
		},
		{
			"two pair",
			hand(NewCard(Two, Clubs), NewCard(Two, Diamonds), NewCard(Nine, Hearts), NewCard(Nine, Spades), NewCard(King, Clubs)),
			TwoPair,
		},
		{
			"three of a kind",
			hand(NewCard(Queen, Clubs), NewCard(Queen, Diamonds), NewCard(Queen, Hearts), NewCard(Nine, Spades), NewCard(King, Clubs)),
			ThreeOfAKind,
		},
		{
			"straight",
			hand(NewCard(Six, Clubs), NewCard(Seven, Diamonds), NewCard(Eight, Hearts), NewCard(Nine, Spades), NewCard(Ten, Clubs)),
			Straight,
		},
		{
			"wheel straight",
			hand(NewCard(Ace, Clubs), NewCard(Two, Diamonds), NewCard(Three, Hearts), NewCard(Four, Spades), NewCard(Five, Clubs)),
			Straight,
		},
		{
			"flush",
			hand(NewCard(Two, Hearts), NewCard(Six, Hearts), NewCard(Nine, Hearts), NewCard(Jack, Hearts), NewCard(King, Hearts)),
			Flush,
		},
		{
			"full house",
			hand(NewCard(Three, Clubs), NewCard(Three, Diamonds), NewCard(Three, Hearts), NewCard(King, Spades), NewCard(King, Clubs)),
			FullHouse,
		},
		{
			"four of a kind",
			hand(NewCard(Seven, Clubs), NewCard(Seven, Diamonds), NewCard(Seven, Hearts), NewCard(Seven, Spades), NewCard(King, Clubs)),
			FourOfAKind,
		},
		{
			"straight flush",
			hand(NewCard(Five, Spades), NewCard(Six, Spades), NewCard(Seven, Spades), NewCard(Eight, Spades), NewCard(Nine, Spades)),
			StraightFlush,
		},
		{
			"steel wheel",
			hand(NewCard(Ace, Spades), NewCard(Two, Spades), NewCard(Three, Spades), NewCard(Four, Spades), NewCard(Five, Spades)),
			StraightFlush,
		},
		{
			"royal flush",
			hand(NewCard(Ten, Diamonds), NewCard(Jack, Diamonds), NewCard(Queen, Diamonds), NewCard(King, Diamonds), NewCard(Ace, Diamonds)),
			RoyalFlush,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.hand.Category())
		})
	}
}

func TestHand_CategoryPrecedence(t *testing.T) {
	// The weakest flush still beats the strongest straight.
	weakFlush := hand(NewCard(Two, Clubs), NewCard(Three, Clubs), NewCard(Four, Clubs), NewCard(Five, Clubs), NewCard(Seven, Clubs))
	strongStraight := hand(NewCard(Ten, Clubs), NewCard(Jack, Diamonds), NewCard(Queen, Hearts), NewCard(King, Spades), NewCard(Ace, Clubs))

	assert.Greater(t, weakFlush.Compare(strongStraight), 0)
	assert.Less(t, strongStraight.Compare(weakFlush), 0)
}

func TestHand_TieBreaks(t *testing.T) {
	testCases := []struct {
		name     string
		stronger Hand
		weaker   Hand
	}{
		{
			"higher pair wins",
			hand(NewCard(King, Clubs), NewCard(King, Diamonds), NewCard(Two, Hearts), NewCard(Three, Spades), NewCard(Four, Clubs)),
			hand(NewCard(Queen, Clubs), NewCard(Queen, Diamonds), NewCard(Ace, Hearts), NewCard(Three, Spades), NewCard(Four, Clubs)),
		},
		{
			"equal pair falls back to kickers",
			hand(NewCard(King, Clubs), NewCard(King, Diamonds), NewCard(Ace, Hearts), NewCard(Three, Spades), NewCard(Four, Clubs)),
			hand(NewCard(King, Hearts), NewCard(King, Spades), NewCard(Queen, Hearts), NewCard(Three, Clubs), NewCard(Four, Diamonds)),
		},
		{
			"two pair compares high pair first",
			hand(NewCard(Ace, Clubs), NewCard(Ace, Diamonds), NewCard(Two, Hearts), NewCard(Two, Spades), NewCard(Three, Clubs)),
			hand(NewCard(King, Clubs), NewCard(King, Diamonds), NewCard(Queen, Hearts), NewCard(Queen, Spades), NewCard(Ace, Hearts)),
		},
		{
			"full house compares triple first",
			hand(NewCard(Nine, Clubs), NewCard(Nine, Diamonds), NewCard(Nine, Hearts), NewCard(Two, Spades), NewCard(Two, Clubs)),
			hand(NewCard(Eight, Clubs), NewCard(Eight, Diamonds), NewCard(Eight, Hearts), NewCard(Ace, Spades), NewCard(Ace, Clubs)),
		},
		{
			"four of a kind compares quad first",
			hand(NewCard(Nine, Clubs), NewCard(Nine, Diamonds), NewCard(Nine, Hearts), NewCard(Nine, Spades), NewCard(Two, Clubs)),
			hand(NewCard(Eight, Clubs), NewCard(Eight, Diamonds), NewCard(Eight, Hearts), NewCard(Eight, Spades), NewCard(Ace, Clubs)),
		},
		{
			"ordinary straight beats the wheel",
			hand(NewCard(Two, Clubs), NewCard(Three, Diamonds), NewCard(Four, Hearts), NewCard(Five, Spades), NewCard(Six, Clubs)),
			hand(NewCard(Ace, Clubs), NewCard(Two, Diamonds), NewCard(Three, Hearts), NewCard(Four, Spades), NewCard(Five, Clubs)),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Greater(t, tc.stronger.Compare(tc.weaker), 0)
			assert.Less(t, tc.weaker.Compare(tc.stronger), 0)
		})
	}
}

func TestHand_SuitsNeverBreakTies(t *testing.T) {
	clubs := hand(NewCard(Two, Clubs), NewCard(Five, Diamonds), NewCard(Nine, Hearts), NewCard(Jack, Spades), NewCard(King, Clubs))
	spades := hand(NewCard(Two, Spades), NewCard(Five, Hearts), NewCard(Nine, Diamonds), NewCard(Jack, Clubs), NewCard(King, Spades))

	assert.Equal(t, 0, clubs.Compare(spades))
	assert.Equal(t, 0, spades.Compare(clubs))
}

func TestHand_CompareIsAntisymmetricAndTransitive(t *testing.T) {
	hands := []Hand{
		hand(NewCard(Two, Clubs), NewCard(Five, Diamonds), NewCard(Nine, Hearts), NewCard(Jack, Spades), NewCard(King, Clubs)),
		hand(NewCard(King, Clubs), NewCard(King, Diamonds), NewCard(Two, Hearts), NewCard(Three, Spades), NewCard(Four, Clubs)),
		hand(NewCard(Six, Clubs), NewCard(Seven, Diamonds), NewCard(Eight, Hearts), NewCard(Nine, Spades), NewCard(Ten, Clubs)),
		hand(NewCard(Two, Hearts), NewCard(Six, Hearts), NewCard(Nine, Hearts), NewCard(Jack, Hearts), NewCard(King, Hearts)),
		hand(NewCard(Ten, Diamonds), NewCard(Jack, Diamonds), NewCard(Queen, Diamonds), NewCard(King, Diamonds), NewCard(Ace, Diamonds)),
	}

	for i := range hands {
		for j := range hands {
			cmpIJ := hands[i].Compare(hands[j])
			cmpJI := hands[j].Compare(hands[i])
			if cmpIJ > 0 {
				assert.Less(t, cmpJI, 0)
			} else if cmpIJ < 0 {
				assert.Greater(t, cmpJI, 0)
			} else {
				assert.Equal(t, 0, cmpJI)
			}

			for k := range hands {
				if hands[i].Compare(hands[j]) > 0 && hands[j].Compare(hands[k]) > 0 {
					assert.Greater(t, hands[i].Compare(hands[k]), 0)
				}
			}
		}
	}
}

func TestHand_Describe(t *testing.T) {
	fullHouse := hand(NewCard(Three, Clubs), NewCard(Three, Diamonds), NewCard(Three, Hearts), NewCard(King, Spades), NewCard(King, Clubs))
	assert.Equal(t, "Full House, 3s over Ks", fullHouse.Describe())

	royal := hand(NewCard(Ten, Diamonds), NewCard(Jack, Diamonds), NewCard(Queen, Diamonds), NewCard(King, Diamonds), NewCard(Ace, Diamonds))
	assert.Equal(t, "Royal Flush", royal.Describe())
}
