package poker

import (
	"fmt"
	"sort"
	"strings"
)

// Category is one of the ten hand categories, ordered weakest to strongest.
type Category int8

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var categoryNames = map[Category]string{
	HighCard:      "High Card",
	OnePair:       "One Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
	RoyalFlush:    "Royal Flush",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "Unknown"
}

// HandSize is the number of cards forming a hand.
const HandSize = 5

// Hand is a combination of exactly 5 cards. Cards are sorted ascending by
// rank at construction and the hand's category and tie-break key are derived
// once, so comparisons are cheap.
type Hand struct {
	cards     [HandSize]Card
	category  Category
	rankCount [RankCount]int
	tiebreak  [HandSize]Rank
}

func NewHand(cards [HandSize]Card) Hand {
	h := Hand{cards: cards}
	sort.Slice(h.cards[:], func(i, j int) bool {
		return h.cards[i].Rank < h.cards[j].Rank
	})
	h.analyse()
	return h
}

func (h Hand) Cards() []Card {
	return h.cards[:]
}

func (h Hand) Category() Category {
	return h.category
}

// RankCount reports how many cards of the given rank the hand holds.
func (h Hand) RankCount(rank Rank) int {
	return h.rankCount[rank]
}

// Compare orders two hands: negative if h is weaker than other, positive if
// stronger, zero on an exact tie. Category decides first; within a category
// the derived tie-break key is compared rank by rank. Suits never break ties,
// so equal hands are possible and produce split pots.
func (h Hand) Compare(other Hand) int {
	if h.category != other.category {
		return int(h.category) - int(other.category)
	}

	for i := 0; i < HandSize; i++ {
		if h.tiebreak[i] != other.tiebreak[i] {
			return int(h.tiebreak[i]) - int(other.tiebreak[i])
		}
	}

	return 0
}

// Describe renders a short human-readable summary used by showdown reveals,
// e.g. "Full House, Kings over Twos".
func (h Hand) Describe() string {
	switch h.category {
	case OnePair:
		return fmt.Sprintf("One Pair of %ss", h.tiebreak[0])
	case TwoPair:
		return fmt.Sprintf("Two Pair, %ss and %ss", h.tiebreak[0], h.tiebreak[1])
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %ss", h.tiebreak[0])
	case FullHouse:
		return fmt.Sprintf("Full House, %ss over %ss", h.tiebreak[0], h.tiebreak[1])
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %ss", h.tiebreak[0])
	case Straight, Flush, StraightFlush:
		return fmt.Sprintf("%s, %s High", h.category, h.tiebreak[0])
	case RoyalFlush:
		return h.category.String()
	default:
		return fmt.Sprintf("High Card %s", h.tiebreak[0])
	}
}

func (h Hand) String() string {
	symbols := make([]string, 0, HandSize)
	for _, card := range h.cards {
		symbols = append(symbols, card.String())
	}
	return strings.Join(symbols, " ")
}

func (h *Hand) analyse() {
	for _, card := range h.cards {
		h.rankCount[card.Rank]++
	}

	var singles, pairs, threes, fours []Rank
	for rank := Ace; rank >= Two; rank-- {
		switch h.rankCount[rank] {
		case 1:
			singles = append(singles, rank)
		case 2:
			pairs = append(pairs, rank)
		case 3:
			threes = append(threes, rank)
		case 4:
			fours = append(fours, rank)
		}
	}

	straight, wheel := h.isStraight()
	flush := h.isFlush()

	switch {
	case straight && flush:
		if h.cards[0].Rank == Ten {
			h.category = RoyalFlush
		} else {
			h.category = StraightFlush
		}
		h.tiebreak = straightKey(h.cards[HandSize-1].Rank, wheel)
	case len(fours) == 1:
		h.category = FourOfAKind
		h.tiebreak = [HandSize]Rank{fours[0], singles[0]}
	case len(threes) == 1 && len(pairs) == 1:
		h.category = FullHouse
		h.tiebreak = [HandSize]Rank{threes[0], pairs[0]}
	case flush:
		h.category = Flush
		copy(h.tiebreak[:], singles)
	case straight:
		h.category = Straight
		h.tiebreak = straightKey(h.cards[HandSize-1].Rank, wheel)
	case len(threes) == 1:
		h.category = ThreeOfAKind
		h.tiebreak = [HandSize]Rank{threes[0], singles[0], singles[1]}
	case len(pairs) == 2:
		h.category = TwoPair
		h.tiebreak = [HandSize]Rank{pairs[0], pairs[1], singles[0]}
	case len(pairs) == 1:
		h.category = OnePair
		h.tiebreak = [HandSize]Rank{pairs[0], singles[0], singles[1], singles[2]}
	default:
		h.category = HighCard
		copy(h.tiebreak[:], singles)
	}
}

// isStraight reports whether the sorted cards form five consecutive ranks.
// The Ace plays both high and low, so A-2-3-4-5 (the wheel) is a straight.
func (h *Hand) isStraight() (straight bool, wheel bool) {
	wheel = h.cards[0].Rank == Two &&
		h.cards[1].Rank == Three &&
		h.cards[2].Rank == Four &&
		h.cards[3].Rank == Five &&
		h.cards[4].Rank == Ace
	if wheel {
		return true, true
	}

	for i := 1; i < HandSize; i++ {
		if h.cards[i].Rank != h.cards[i-1].Rank+1 {
			return false, false
		}
	}
	return true, false
}

func (h *Hand) isFlush() bool {
	for i := 1; i < HandSize; i++ {
		if h.cards[i].Suit != h.cards[0].Suit {
			return false
		}
	}
	return true
}

// straightKey ranks a straight by its top card. The wheel's top card is the
// Five, not the Ace, so it loses to every other straight.
func straightKey(top Rank, wheel bool) [HandSize]Rank {
	key := [HandSize]Rank{}
	if wheel {
		top = Five
	}
	for i := 0; i < HandSize; i++ {
		rank := top - Rank(i)
		if wheel && i == HandSize-1 {
			// Ace playing low sits below the Two.
			rank = Two - 1
		}
		key[i] = rank
	}
	return key
}
