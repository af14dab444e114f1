package poker

import (
	"errors"
	"math/rand"
	"time"
)

var ErrDeckExhausted = errors.New("deck: no cards left to draw")

// DeckSize is the number of cards in a full deck.
const DeckSize = RankCount * SuitCount

// Deck holds all 52 distinct cards and draws them sequentially. Draws after
// the 52nd fail with ErrDeckExhausted until the next Shuffle.
type Deck struct {
	cards  [DeckSize]Card
	cursor int
	rnd    *rand.Rand
}

func NewDeck() *Deck {
	return NewDeckWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewDeckWithRand creates a deck driven by the given random source, which
// makes shuffles reproducible for a fixed seed.
func NewDeckWithRand(rnd *rand.Rand) *Deck {
	d := &Deck{rnd: rnd}

	i := 0
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}

	return d
}

// Shuffle produces a uniform random permutation (Fisher-Yates) and resets the
// draw cursor.
func (d *Deck) Shuffle() {
	for i := DeckSize - 1; i > 0; i-- {
		j := d.rnd.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	d.cursor = 0
}

// Draw returns the next card in the shuffled order.
func (d *Deck) Draw() (Card, error) {
	if d.cursor >= DeckSize {
		return Card{}, ErrDeckExhausted
	}

	card := d.cards[d.cursor]
	d.cursor++
	return card, nil
}

// Remaining reports how many cards can still be drawn.
func (d *Deck) Remaining() int {
	return DeckSize - d.cursor
}
