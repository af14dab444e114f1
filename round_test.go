package pokerserver

import (
	"testing"

	"github.com/FICHEKK/poker-server/poker"
	"github.com/stretchr/testify/assert"
)

func mustShuffledDeck() *poker.Deck {
	deck := poker.NewDeck()
	deck.Shuffle()
	return deck
}

// fourSeatedRound builds a 4-player round with 1000-chip stacks, small blind
// 25 at seat 0, big blind at seat 1 and seat 2 first to act.
func fourSeatedRound() (*Round, []*TablePlayer) {
	seats := []*TablePlayer{
		NewTablePlayer("alice", 1000, 1000),
		NewTablePlayer("bob", 1000, 1000),
		NewTablePlayer("carol", 1000, 1000),
		NewTablePlayer("dave", 1000, 1000),
	}
	return NewRound(seats, 0, 1, 2, 25), seats
}

func Test_NewRound_PostsBlinds(t *testing.T) {
	r, seats := fourSeatedRound()

	assert.Equal(t, 75, r.Pot())
	assert.Equal(t, 50, r.HighestBet())
	assert.Equal(t, PhasePreFlop, r.Phase())
	assert.Equal(t, 2, r.CurrentSeat())
	assert.Equal(t, 975, seats[0].Stack)
	assert.Equal(t, 950, seats[1].Stack)
	assert.Equal(t, 25, seats[0].CurrentBet)
	assert.Equal(t, 50, seats[1].CurrentBet)
}

func Test_Round_Start_AnnouncesFirstTurn(t *testing.T) {
	r, _ := fourSeatedRound()

	var turns []TurnInfo
	r.OnTurnChanged(func(info TurnInfo) {
		turns = append(turns, info)
	})
	r.Start()

	assert.Len(t, turns, 1)
	assert.Equal(t, 2, turns[0].Seat)
	assert.Equal(t, 50, turns[0].RequiredCall)
	assert.Equal(t, 100, turns[0].MinRaise)
	assert.Equal(t, 1050, turns[0].MaxRaise)
}

func Test_Round_StreetCompletes_ExactlyOnceAllMatched(t *testing.T) {
	r, _ := fourSeatedRound()

	var phases []RoundPhase
	r.OnPhaseChanged(func(phase RoundPhase) {
		phases = append(phases, phase)
	})

	assert.NoError(t, r.Call()) // carol
	assert.NoError(t, r.Call()) // dave
	assert.Empty(t, phases)

	assert.NoError(t, r.Call()) // alice completes the small blind
	assert.Empty(t, phases)

	assert.NoError(t, r.Check()) // bob closes the street
	assert.Equal(t, []RoundPhase{PhaseFlop}, phases)
	assert.Equal(t, 200, r.Pot())

	// Post-flop action starts from the small blind seat.
	assert.Equal(t, 0, r.CurrentSeat())
	assert.Equal(t, 0, r.HighestBet())
}

func Test_Round_RaiseRestartsTheStreet(t *testing.T) {
	r, _ := fourSeatedRound()

	var phases []RoundPhase
	r.OnPhaseChanged(func(phase RoundPhase) {
		phases = append(phases, phase)
	})

	assert.NoError(t, r.Call())     // carol
	assert.NoError(t, r.Call())     // dave
	assert.NoError(t, r.Raise(150)) // alice raises
	assert.Empty(t, phases)

	assert.NoError(t, r.Call()) // bob
	assert.NoError(t, r.Call()) // carol again
	assert.Empty(t, phases)

	assert.NoError(t, r.Call()) // dave closes the street
	assert.Equal(t, []RoundPhase{PhaseFlop}, phases)
	assert.Equal(t, 600, r.Pot())
}

func Test_Round_CheckWithStandingBet_IsRejected(t *testing.T) {
	r, _ := fourSeatedRound()

	assert.ErrorIs(t, r.Check(), ErrRoundInvalidCheck)
}

func Test_Round_RaiseBelowMinimum_IsRejected(t *testing.T) {
	r, _ := fourSeatedRound()

	assert.ErrorIs(t, r.Raise(99), ErrRoundInvalidRaise)
	assert.NoError(t, r.Raise(100))
}

func Test_Round_RaiseAboveStack_IsRejected(t *testing.T) {
	r, _ := fourSeatedRound()

	assert.ErrorIs(t, r.Raise(1051), ErrRoundInvalidRaise)
}

func Test_Round_AllInBelowMinimumRaise_IsAllowed(t *testing.T) {
	seats := []*TablePlayer{
		NewTablePlayer("alice", 1000, 1000),
		NewTablePlayer("bob", 1000, 1000),
		NewTablePlayer("carol", 60, 60),
	}
	r := NewRound(seats, 0, 1, 2, 25)

	// A raise-to of 60 is below the 100 minimum but it is carol's whole
	// stack, so it stands.
	assert.NoError(t, r.Raise(60))
	assert.Equal(t, 60, r.HighestBet())
	assert.True(t, seats[2].AllIn())
}

func Test_Round_FoldToOne_EndsRoundFromAnyStreet(t *testing.T) {
	r, _ := fourSeatedRound()

	var phases []RoundPhase
	r.OnPhaseChanged(func(phase RoundPhase) {
		phases = append(phases, phase)
	})

	assert.NoError(t, r.Fold()) // carol
	assert.NoError(t, r.Fold()) // dave
	assert.Empty(t, phases)

	assert.NoError(t, r.Fold()) // alice, only bob remains
	assert.Equal(t, []RoundPhase{PhaseOnePlayerLeft}, phases)
	assert.True(t, r.Phase().Terminal())

	assert.ErrorIs(t, r.Check(), ErrRoundAlreadyOver)
	assert.ErrorIs(t, r.Fold(), ErrRoundAlreadyOver)
}

func Test_Round_FoldCanCloseTheStreet(t *testing.T) {
	r, _ := fourSeatedRound()

	var phases []RoundPhase
	r.OnPhaseChanged(func(phase RoundPhase) {
		phases = append(phases, phase)
	})

	assert.NoError(t, r.Call()) // carol
	assert.NoError(t, r.Call()) // dave
	assert.NoError(t, r.Call()) // alice

	// Bob folding means three matched actions now cover all three active
	// players, so the street closes without another action.
	assert.NoError(t, r.Fold())
	assert.Equal(t, []RoundPhase{PhaseFlop}, phases)
}

func Test_Round_EveryoneAllIn_RunsTheBoardOut(t *testing.T) {
	seats := []*TablePlayer{
		NewTablePlayer("alice", 100, 100),
		NewTablePlayer("bob", 100, 100),
	}
	r := NewRound(seats, 0, 1, 0, 25)

	var phases []RoundPhase
	r.OnPhaseChanged(func(phase RoundPhase) {
		phases = append(phases, phase)
	})

	assert.NoError(t, r.AllIn()) // alice shoves
	assert.NoError(t, r.Call())  // bob calls all-in

	assert.Equal(t, []RoundPhase{PhaseFlop, PhaseTurn, PhaseRiver, PhaseShowdown}, phases)
	assert.Equal(t, 200, r.Pot())
	assert.True(t, seats[0].AllIn())
	assert.True(t, seats[1].AllIn())
}

func Test_Round_AllInAtOrBelowHighestBet_ActsAsCall(t *testing.T) {
	seats := []*TablePlayer{
		NewTablePlayer("alice", 1000, 1000),
		NewTablePlayer("bob", 1000, 1000),
		NewTablePlayer("carol", 40, 40),
	}
	r := NewRound(seats, 0, 1, 2, 25)

	assert.NoError(t, r.AllIn()) // carol's 40 cannot match the blind of 50
	assert.Equal(t, 50, r.HighestBet())
	assert.True(t, seats[2].AllIn())
	assert.Equal(t, 115, r.Pot())
}

func Test_Round_ForceFold_NonCurrentSeat(t *testing.T) {
	r, seats := fourSeatedRound()

	var phases []RoundPhase
	r.OnPhaseChanged(func(phase RoundPhase) {
		phases = append(phases, phase)
	})

	assert.NoError(t, r.Call()) // carol
	assert.NoError(t, r.Call()) // dave
	assert.NoError(t, r.Call()) // alice

	// Bob disconnects while holding the action; his forced fold closes the
	// street just like a voluntary one.
	r.ForceFold(1)
	assert.True(t, seats[1].Folded)
	assert.Equal(t, []RoundPhase{PhaseFlop}, phases)
}

func Test_Round_ForceFold_PassesTurnWhenActing(t *testing.T) {
	r, seats := fourSeatedRound()

	var turns []TurnInfo
	r.OnTurnChanged(func(info TurnInfo) {
		turns = append(turns, info)
	})

	r.ForceFold(2) // carol disconnects before acting
	assert.True(t, seats[2].Folded)
	assert.Equal(t, 3, r.CurrentSeat())
	assert.Len(t, turns, 1)
}

func Test_Round_ForceFold_ToOneEndsRound(t *testing.T) {
	r, _ := fourSeatedRound()

	r.ForceFold(2)
	r.ForceFold(3)
	r.ForceFold(0)

	assert.Equal(t, PhaseOnePlayerLeft, r.Phase())
}

func Test_Round_SixthCommunityCard_Panics(t *testing.T) {
	r, _ := fourSeatedRound()

	deck := mustShuffledDeck()
	for i := 0; i < 5; i++ {
		card, err := deck.Draw()
		assert.NoError(t, err)
		r.AddCommunityCard(card)
	}

	assert.Panics(t, func() {
		card, _ := deck.Draw()
		r.AddCommunityCard(card)
	})
}
