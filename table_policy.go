package pokerserver

// tablePolicy captures how a table reacts to membership changes. Standard
// tables are open-ended cash games; ranked tables lock once full and play
// until one player holds every chip.
type tablePolicy interface {
	joinAllowed(tc *tableController) error
	playerJoined(tc *tableController)
	leaveRequested(tc *tableController, username string)
	roundSettled(tc *tableController)
}

type standardPolicy struct{}

func (p *standardPolicy) joinAllowed(tc *tableController) error {
	return nil
}

func (p *standardPolicy) playerJoined(tc *tableController) {}

func (p *standardPolicy) leaveRequested(tc *tableController, username string) {
	seat := tc.table.FindSeat(username)
	if seat == UnsetValue {
		return
	}

	if tc.round != nil && !tc.round.Phase().Terminal() {
		tc.round.ForceFold(seat)
	}

	tc.kickPlayer(username, "left")
}

func (p *standardPolicy) roundSettled(tc *tableController) {
	for _, player := range tc.table.Seats() {
		if player != nil && player.Stack == 0 {
			tc.kickPlayer(player.Username, "busted")
		}
	}
}

// rankedPolicy runs a sit-and-go: the table locks once every seat is taken,
// nobody new may join, and players are ranked in reverse order of
// elimination. Leaving a locked table counts as busting.
type rankedPolicy struct {
	locked     bool
	eliminated []string
}

func (p *rankedPolicy) joinAllowed(tc *tableController) error {
	if p.locked {
		return ErrTableLocked
	}
	return nil
}

func (p *rankedPolicy) playerJoined(tc *tableController) {
	if tc.table.PlayerCount() == tc.table.MaxPlayers() {
		p.locked = true
	}
}

func (p *rankedPolicy) leaveRequested(tc *tableController, username string) {
	seat := tc.table.FindSeat(username)
	if seat == UnsetValue {
		return
	}

	if tc.round != nil && !tc.round.Phase().Terminal() {
		tc.round.ForceFold(seat)
	}

	if p.locked {
		p.eliminated = append(p.eliminated, username)
	}
	tc.kickPlayer(username, "left")

	p.maybeFinish(tc)
}

func (p *rankedPolicy) roundSettled(tc *tableController) {
	for _, player := range tc.table.Seats() {
		if player != nil && player.Stack == 0 {
			if p.locked {
				p.eliminated = append(p.eliminated, player.Username)
			}
			tc.kickPlayer(player.Username, "busted")
		}
	}

	p.maybeFinish(tc)
}

func (p *rankedPolicy) maybeFinish(tc *tableController) {
	if !p.locked || tc.table.PlayerCount() != 1 {
		return
	}

	// First place is the survivor, then the eliminated in reverse order.
	rankings := make([]string, 0, len(p.eliminated)+1)
	rankings = append(rankings, tc.table.Usernames()...)
	for i := len(p.eliminated) - 1; i >= 0; i-- {
		rankings = append(rankings, p.eliminated[i])
	}

	tc.onTableFinished(tc.title, rankings)
}
