package pokerserver

import (
	"fmt"

	"github.com/FICHEKK/poker-server/poker"
)

// RoundPhase is a phase of a single hand. The four streets run in order and
// end in Showdown; OnePlayerLeft is the terminal short-circuit reached when
// folds leave a single active player.
type RoundPhase int8

const (
	PhasePreFlop RoundPhase = iota
	PhaseFlop
	PhaseTurn
	PhaseRiver
	PhaseShowdown
	PhaseOnePlayerLeft
)

var phaseNames = map[RoundPhase]string{
	PhasePreFlop:       "pre-flop",
	PhaseFlop:          "flop",
	PhaseTurn:          "turn",
	PhaseRiver:         "river",
	PhaseShowdown:      "showdown",
	PhaseOnePlayerLeft: "one-player-left",
}

func (p RoundPhase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether no more player actions are accepted.
func (p RoundPhase) Terminal() bool {
	return p == PhaseShowdown || p == PhaseOnePlayerLeft
}

// maxCommunityCards is the flop, the turn and the river combined.
const maxCommunityCards = 5

// TurnInfo describes whose turn it is and the bounds of their decision.
type TurnInfo struct {
	Seat         int
	RequiredCall int
	MinRaise     int
	MaxRaise     int
}

// Round is one hand's betting state machine. It is created fresh for every
// hand, never outlives it, and performs no I/O: the driver observes it
// through the two callbacks and deals cards / broadcasts in response.
//
// The same-action counter counts consecutive actions that matched the
// current highest bet; once it reaches the active-player count the street is
// complete. Any raise resets it to 1 because everyone else must act again.
type Round struct {
	seats      []*TablePlayer
	smallBlind int

	phase           RoundPhase
	pot             int
	highestBet      int
	currentSeat     int
	sameActionCount int
	activeCount     int
	communityCards  []poker.Card

	// where the turn starts once a new street opens
	postFlopFirstSeat int

	onTurnChanged  func(TurnInfo)
	onPhaseChanged func(RoundPhase)
}

// NewRound snapshots the seat array and posts the blinds: the pot opens at
// 3x the small blind and the highest bet at 2x (the big blind).
func NewRound(seats []*TablePlayer, smallBlindSeat, bigBlindSeat, firstToActSeat, smallBlind int) *Round {
	r := &Round{
		seats:             append([]*TablePlayer(nil), seats...),
		smallBlind:        smallBlind,
		phase:             PhasePreFlop,
		currentSeat:       firstToActSeat,
		postFlopFirstSeat: smallBlindSeat,
		onTurnChanged:     func(TurnInfo) {},
		onPhaseChanged:    func(RoundPhase) {},
	}

	for _, p := range r.seats {
		if p != nil {
			r.activeCount++
		}
	}

	r.pot += r.seats[smallBlindSeat].pay(smallBlind)
	r.pot += r.seats[bigBlindSeat].pay(smallBlind * 2)
	r.highestBet = smallBlind * 2

	return r
}

// OnTurnChanged registers the callback fired every time the acting player
// changes, carrying the amounts the player may act with.
func (r *Round) OnTurnChanged(fn func(TurnInfo)) {
	r.onTurnChanged = fn
}

// OnPhaseChanged registers the callback fired on every phase transition,
// including the terminal ones.
func (r *Round) OnPhaseChanged(fn func(RoundPhase)) {
	r.onPhaseChanged = fn
}

// Start announces the first player to act. Call it after registering the
// callbacks.
func (r *Round) Start() {
	r.emitTurnChanged()
}

func (r *Round) Phase() RoundPhase {
	return r.phase
}

func (r *Round) Pot() int {
	return r.pot
}

func (r *Round) HighestBet() int {
	return r.highestBet
}

func (r *Round) CurrentSeat() int {
	return r.currentSeat
}

func (r *Round) ActiveCount() int {
	return r.activeCount
}

func (r *Round) Seats() []*TablePlayer {
	return r.seats
}

func (r *Round) CommunityCards() []poker.Card {
	return r.communityCards
}

// SmallBlind returns the round's small blind amount.
func (r *Round) SmallBlind() int {
	return r.smallBlind
}

// CurrentPlayer returns the player whose turn it is.
func (r *Round) CurrentPlayer() *TablePlayer {
	return r.seats[r.currentSeat]
}

// AddCommunityCard appends a dealt community card. Dealing a sixth card is a
// driver bug, not a recoverable condition.
func (r *Round) AddCommunityCard(card poker.Card) {
	if len(r.communityCards) >= maxCommunityCards {
		panic(fmt.Sprintf("round: dealt community card #%d", len(r.communityCards)+1))
	}
	r.communityCards = append(r.communityCards, card)
}

// Check passes the action without betting. Only legal when the player has
// already matched the highest bet.
func (r *Round) Check() error {
	if r.phase.Terminal() {
		return ErrRoundAlreadyOver
	}
	if r.CurrentPlayer().CurrentBet != r.highestBet {
		return ErrRoundInvalidCheck
	}

	r.matchingActionDone()
	return nil
}

// Call matches the highest bet, going all-in if the stack cannot cover it.
func (r *Round) Call() error {
	if r.phase.Terminal() {
		return ErrRoundAlreadyOver
	}

	p := r.CurrentPlayer()
	r.pot += p.pay(r.highestBet - p.CurrentBet)
	r.matchingActionDone()
	return nil
}

// Raise lifts the player's street bet to the given total. Every other active
// player must act again, so the same-action counter restarts at 1.
func (r *Round) Raise(amount int) error {
	if r.phase.Terminal() {
		return ErrRoundAlreadyOver
	}

	p := r.CurrentPlayer()
	if amount < r.MinRaise() && amount != p.CurrentBet+p.Stack {
		return ErrRoundInvalidRaise
	}
	if amount > p.CurrentBet+p.Stack {
		return ErrRoundInvalidRaise
	}

	r.pot += p.pay(amount - p.CurrentBet)
	r.highestBet = amount
	r.sameActionCount = 1
	r.moveToNextPlayer(r.nextSeat(r.currentSeat))
	return nil
}

// AllIn commits the player's whole stack. Above the highest bet it acts as a
// raise; at or below it, as a call that cannot be matched further.
func (r *Round) AllIn() error {
	if r.phase.Terminal() {
		return ErrRoundAlreadyOver
	}

	p := r.CurrentPlayer()
	amount := p.CurrentBet + p.Stack
	if amount > r.highestBet {
		return r.Raise(amount)
	}

	return r.Call()
}

// Fold removes the player from the active set. Folding down to one active
// player ends the round immediately from any phase; otherwise the fold can
// also complete the street, since fewer matches are now needed.
func (r *Round) Fold() error {
	if r.phase.Terminal() {
		return ErrRoundAlreadyOver
	}

	r.CurrentPlayer().Folded = true
	r.activeCount--

	if r.activeCount == 1 {
		r.phase = PhaseOnePlayerLeft
		r.onPhaseChanged(r.phase)
		return nil
	}

	if r.sameActionCount >= r.activeCount {
		r.advancePhase()
		return nil
	}

	r.moveToNextPlayer(r.nextSeat(r.currentSeat))
	return nil
}

// ForceFold folds an arbitrary seat on the driver's behalf, e.g. when a
// player disconnects mid-hand. Folding the acting player passes the turn;
// folding anyone can complete the street or end the round.
func (r *Round) ForceFold(seat int) {
	if r.phase.Terminal() {
		return
	}

	p := r.seats[seat]
	if p == nil || p.Folded {
		return
	}

	p.Folded = true
	r.activeCount--

	if r.activeCount == 1 {
		r.phase = PhaseOnePlayerLeft
		r.onPhaseChanged(r.phase)
		return
	}

	if seat == r.currentSeat {
		if r.sameActionCount >= r.activeCount {
			r.advancePhase()
			return
		}
		r.moveToNextPlayer(r.nextSeat(r.currentSeat))
		return
	}

	if r.sameActionCount >= r.activeCount {
		r.advancePhase()
	}
}

// RequiredCall is what the current player must add to stay in.
func (r *Round) RequiredCall() int {
	return r.highestBet - r.CurrentPlayer().CurrentBet
}

// MinRaise is the lowest legal raise-to total: one big blind above the
// highest bet.
func (r *Round) MinRaise() int {
	return r.highestBet + r.smallBlind*2
}

// MaxRaise is the raise-to total that puts the current player all-in.
func (r *Round) MaxRaise() int {
	p := r.CurrentPlayer()
	return p.CurrentBet + p.Stack
}

func (r *Round) matchingActionDone() {
	r.sameActionCount++
	if r.sameActionCount >= r.activeCount {
		r.advancePhase()
		return
	}
	r.moveToNextPlayer(r.nextSeat(r.currentSeat))
}

// advancePhase closes the street: bets reset, the match counter restarts and
// the turn returns to the first active seat from the small blind onward.
func (r *Round) advancePhase() {
	r.phase++
	if r.phase == PhaseShowdown {
		r.onPhaseChanged(r.phase)
		return
	}

	r.sameActionCount = 0
	r.highestBet = 0
	for _, p := range r.seats {
		if p != nil {
			p.CurrentBet = 0
		}
	}

	r.onPhaseChanged(r.phase)
	r.moveToNextPlayer(r.postFlopFirstSeat)
}

// moveToNextPlayer walks seats from the given index, wrapping, skipping
// empty and folded seats. An all-in player has no decisions left, so passing
// over them counts as a matching action; that can itself close the street
// (or run the board out when everyone is all-in).
func (r *Round) moveToNextPlayer(start int) {
	if r.phase.Terminal() {
		return
	}

	for i := 0; i < len(r.seats); i++ {
		seat := (start + i) % len(r.seats)
		p := r.seats[seat]
		if p == nil || p.Folded {
			continue
		}

		if p.Stack == 0 {
			r.sameActionCount++
			if r.sameActionCount >= r.activeCount {
				r.advancePhase()
				return
			}
			continue
		}

		r.currentSeat = seat
		r.emitTurnChanged()
		return
	}
}

func (r *Round) nextSeat(seat int) int {
	return (seat + 1) % len(r.seats)
}

func (r *Round) emitTurnChanged() {
	r.onTurnChanged(TurnInfo{
		Seat:         r.currentSeat,
		RequiredCall: r.RequiredCall(),
		MinRaise:     r.MinRaise(),
		MaxRaise:     r.MaxRaise(),
	})
}
