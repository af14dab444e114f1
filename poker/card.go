package poker

// Rank of a card. Cards are totally ordered by rank only; suits never
// participate in ordering.
type Rank int8

const (
	Two Rank = iota
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// RankCount is the number of distinct ranks in a deck.
const RankCount = 13

var rankSymbols = [RankCount]string{"2", "3", "4", "5", "6", "7", "8", "9", "T", "J", "Q", "K", "A"}

func (r Rank) String() string {
	if r < Two || r > Ace {
		return "?"
	}
	return rankSymbols[r]
}

type Suit int8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// SuitCount is the number of suits in a deck.
const SuitCount = 4

var suitSymbols = [SuitCount]string{"C", "D", "H", "S"}

func (s Suit) String() string {
	if s < Clubs || s > Spades {
		return "?"
	}
	return suitSymbols[s]
}

// Card is an immutable rank + suit value.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String renders the card in the usual two-symbol notation, e.g. "AH", "TC".
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}
