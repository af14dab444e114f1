package pokerserver

import (
	"context"
	"fmt"
	"time"

	"github.com/FICHEKK/poker-server/poker"
	"github.com/FICHEKK/poker-server/settlement"
	"github.com/weedbox/syncsaga"
	"go.uber.org/zap"
)

func (tc *tableController) run() {
	for req := range tc.incoming {
		if !tc.handleRequest(req) {
			return
		}
	}
}

// handleRequest applies one queued request on the worker goroutine. It
// returns false only for the poison request.
func (tc *tableController) handleRequest(req *Request) bool {
	switch req.Action {
	case RequestAction_StartRound:
		tc.handleStartRound()
	case RequestAction_PlayerJoin:
		tc.handlePlayerJoin(req.Param.(PlayerJoinParam))
	case RequestAction_PlayerLeave:
		tc.handlePlayerLeave(req.Param.(PlayerActionParam))
	case RequestAction_PlayerCheck:
		tc.handlePlayerCheck(req.Param.(PlayerActionParam))
	case RequestAction_PlayerCall:
		tc.handlePlayerCall(req.Param.(PlayerActionParam))
	case RequestAction_PlayerRaise:
		tc.handlePlayerRaise(req.Param.(PlayerActionParam))
	case RequestAction_PlayerAllIn:
		tc.handlePlayerAllIn(req.Param.(PlayerActionParam))
	case RequestAction_PlayerFold:
		tc.handlePlayerFold(req.Param.(PlayerActionParam))
	case RequestAction_PlayerChat:
		tc.handlePlayerChat(req.Param.(PlayerChatParam))
	case RequestAction_AutoFold:
		tc.handleAutoFold(req.Param.(AutoFoldParam))
	case RequestAction_ArmReadyGroup:
		tc.armReadyGroup()
	case RequestAction_CloseTable:
		tc.handleCloseTable()
		return false
	default:
		tc.logger.Warn("unknown table request", zap.String("action", string(req.Action)))
	}
	return true
}

func (tc *tableController) handleCloseTable() {
	tc.decisionTimer.Cancel()
	tc.pacer.Cancel()
	tc.rg.Stop()
}

func (tc *tableController) handlePlayerJoin(param PlayerJoinParam) {
	player := param.Player

	if err := tc.policy.joinAllowed(tc); err != nil {
		tc.onPlayerLeft(player.Username, "table locked")
		return
	}

	seat, err := tc.table.AddPlayer(player)
	if err != nil {
		tc.onPlayerLeft(player.Username, "table full")
		return
	}

	tc.broadcast(ServerMessage{Type: ServerMessage_PlayerJoined, Data: PlayerJoinedData{
		Username: player.Username,
		Seat:     seat,
		Stack:    player.Stack,
	}})

	tc.policy.playerJoined(tc)

	if tc.round == nil && tc.table.PlayerCount() >= 2 {
		tc.handleStartRound()
	}
}

func (tc *tableController) handlePlayerLeave(param PlayerActionParam) {
	tc.policy.leaveRequested(tc, param.Username)
}

func (tc *tableController) handleStartRound() {
	if tc.round != nil {
		return
	}
	if tc.table.PlayerCount() < 2 {
		return
	}

	dealerSeat := tc.table.MoveDealerButton()
	sbSeat := tc.table.NextOccupiedSeat(dealerSeat)
	bbSeat := tc.table.NextOccupiedSeat(sbSeat)
	firstToActSeat := tc.table.NextOccupiedSeat(bbSeat)

	for _, p := range tc.table.Seats() {
		if p != nil {
			p.resetForNewRound()
		}
	}

	tc.round = NewRound(tc.table.Seats(), sbSeat, bbSeat, firstToActSeat, tc.options.SmallBlind)
	tc.round.OnPhaseChanged(tc.handlePhaseChanged)
	tc.round.OnTurnChanged(tc.handleTurnChanged)

	tc.deck = poker.NewDeck()
	tc.deck.Shuffle()

	tc.broadcast(ServerMessage{Type: ServerMessage_Blinds, Data: BlindsData{
		DealerSeat:     dealerSeat,
		SmallBlindSeat: sbSeat,
		BigBlindSeat:   bbSeat,
		SmallBlind:     tc.options.SmallBlind,
		BigBlind:       tc.options.SmallBlind * 2,
	}})

	for _, p := range tc.round.Seats() {
		if p == nil {
			continue
		}
		p.HoleCards = []poker.Card{tc.mustDraw(), tc.mustDraw()}
		tc.send(p.Username, ServerMessage{Type: ServerMessage_Hand, Data: HandData{
			Cards: cardSymbols(p.HoleCards),
		}})
	}

	tc.logger.Info("round started",
		zap.String("table", tc.title),
		zap.Int("players", tc.table.PlayerCount()),
		zap.Int("dealer_seat", dealerSeat))

	tc.round.Start()
}

func (tc *tableController) handlePhaseChanged(phase RoundPhase) {
	switch phase {
	case PhaseFlop:
		tc.dealCommunityCards(3, ServerMessage_Flop)
	case PhaseTurn:
		tc.dealCommunityCards(1, ServerMessage_Turn)
	case PhaseRiver:
		tc.dealCommunityCards(1, ServerMessage_River)
	case PhaseShowdown:
		tc.settle(true)
	case PhaseOnePlayerLeft:
		tc.settle(false)
	}
}

func (tc *tableController) dealCommunityCards(count int, messageType ServerMessageType) {
	dealt := make([]poker.Card, 0, count)
	for i := 0; i < count; i++ {
		card := tc.mustDraw()
		tc.round.AddCommunityCard(card)
		dealt = append(dealt, card)
	}

	tc.broadcast(ServerMessage{Type: messageType, Data: CommunityCardsData{
		Cards: cardSymbols(dealt),
		Pot:   tc.round.Pot(),
	}})
}

func (tc *tableController) handleTurnChanged(info TurnInfo) {
	tc.broadcast(ServerMessage{Type: ServerMessage_PlayerTurn, Data: PlayerTurnData{
		Seat:         info.Seat,
		RequiredCall: info.RequiredCall,
		MinRaise:     info.MinRaise,
		MaxRaise:     info.MaxRaise,
	}})

	tc.turnSerial++
	serial := tc.turnSerial
	username := tc.round.CurrentPlayer().Username

	tc.decisionTimer.Cancel()
	_ = tc.decisionTimer.NewTask(tc.options.TurnTime+tc.options.Overtime, func(isCancelled bool) {
		if isCancelled {
			return
		}
		_ = tc.enqueue(RequestAction_AutoFold, AutoFoldParam{Username: username, TurnID: serial})
	})
}

// currentActor validates that the round is running and it is the given
// player's turn. Out-of-turn and post-round actions are protocol violations:
// they are dropped without touching state.
func (tc *tableController) currentActor(username string) (*TablePlayer, int, bool) {
	if tc.round == nil || tc.round.Phase().Terminal() {
		tc.logger.Debug("action outside a running round", zap.String("username", username))
		return nil, UnsetValue, false
	}

	seat := tc.round.CurrentSeat()
	player := tc.round.CurrentPlayer()
	if player == nil || player.Username != username {
		tc.logger.Debug("action out of turn",
			zap.String("table", tc.title),
			zap.String("username", username))
		return nil, UnsetValue, false
	}

	return player, seat, true
}

func (tc *tableController) handlePlayerCheck(param PlayerActionParam) {
	player, seat, ok := tc.currentActor(param.Username)
	if !ok {
		return
	}
	if player.CurrentBet != tc.round.HighestBet() {
		tc.logger.Debug("check with a standing bet", zap.String("username", param.Username))
		return
	}

	tc.broadcast(ServerMessage{Type: ServerMessage_PlayerChecked, Data: PlayerActionData{
		Username: param.Username,
		Seat:     seat,
		Pot:      tc.round.Pot(),
	}})

	if err := tc.round.Check(); err != nil {
		tc.logger.Error("check failed", zap.Error(err))
	}
}

func (tc *tableController) handlePlayerCall(param PlayerActionParam) {
	player, seat, ok := tc.currentActor(param.Username)
	if !ok {
		return
	}

	amount := tc.round.RequiredCall()
	if amount > player.Stack {
		amount = player.Stack
	}

	tc.broadcast(ServerMessage{Type: ServerMessage_PlayerCalled, Data: PlayerActionData{
		Username: param.Username,
		Seat:     seat,
		Amount:   amount,
		Pot:      tc.round.Pot() + amount,
	}})

	if err := tc.round.Call(); err != nil {
		tc.logger.Error("call failed", zap.Error(err))
	}
}

func (tc *tableController) handlePlayerRaise(param PlayerActionParam) {
	player, seat, ok := tc.currentActor(param.Username)
	if !ok {
		return
	}

	maxRaise := tc.round.MaxRaise()
	if param.Amount > maxRaise || (param.Amount < tc.round.MinRaise() && param.Amount != maxRaise) {
		tc.logger.Debug("raise out of bounds",
			zap.String("username", param.Username),
			zap.Int("amount", param.Amount))
		return
	}

	paid := param.Amount - player.CurrentBet
	tc.broadcast(ServerMessage{Type: ServerMessage_PlayerRaised, Data: PlayerActionData{
		Username: param.Username,
		Seat:     seat,
		Amount:   param.Amount,
		Pot:      tc.round.Pot() + paid,
	}})

	if err := tc.round.Raise(param.Amount); err != nil {
		tc.logger.Error("raise failed", zap.Error(err))
	}
}

func (tc *tableController) handlePlayerAllIn(param PlayerActionParam) {
	player, seat, ok := tc.currentActor(param.Username)
	if !ok {
		return
	}

	tc.broadcast(ServerMessage{Type: ServerMessage_PlayerAllIn, Data: PlayerActionData{
		Username: param.Username,
		Seat:     seat,
		Amount:   player.CurrentBet + player.Stack,
		Pot:      tc.round.Pot() + player.Stack,
	}})

	if err := tc.round.AllIn(); err != nil {
		tc.logger.Error("all-in failed", zap.Error(err))
	}
}

func (tc *tableController) handlePlayerFold(param PlayerActionParam) {
	_, seat, ok := tc.currentActor(param.Username)
	if !ok {
		return
	}

	tc.foldCurrentPlayer(param.Username, seat)
}

// handleAutoFold folds the player whose decision timer expired. The turn
// serial guards against a stale expiry racing a real action through the
// queue: if the turn moved on, the expiry is a no-op.
func (tc *tableController) handleAutoFold(param AutoFoldParam) {
	if tc.round == nil || tc.round.Phase().Terminal() {
		return
	}
	if param.TurnID != tc.turnSerial {
		return
	}

	player := tc.round.CurrentPlayer()
	if player == nil || player.Username != param.Username {
		return
	}

	tc.logger.Info("decision time expired, folding",
		zap.String("table", tc.title),
		zap.String("username", param.Username))

	tc.foldCurrentPlayer(param.Username, tc.round.CurrentSeat())
}

func (tc *tableController) foldCurrentPlayer(username string, seat int) {
	tc.broadcast(ServerMessage{Type: ServerMessage_PlayerFolded, Data: PlayerActionData{
		Username: username,
		Seat:     seat,
		Pot:      tc.round.Pot(),
	}})

	if err := tc.round.Fold(); err != nil {
		tc.logger.Error("fold failed", zap.Error(err))
	}
}

func (tc *tableController) handlePlayerChat(param PlayerChatParam) {
	if tc.table.FindSeat(param.Username) == UnsetValue {
		return
	}

	tc.broadcast(ServerMessage{Type: ServerMessage_Chat, Data: ChatData{
		Username: param.Username,
		Message:  param.Message,
	}})
}

// refundUncalledBets returns every chip bet beyond the highest amount a
// surviving player put in. A short all-in leaves opponents' calls above that
// amount with nobody who can contest them; once those opponents fold, the
// excess would otherwise form a pot layer with no eligible winner. The
// excess goes back to its contributors before the pots are carved.
func (tc *tableController) refundUncalledBets(round *Round) {
	callable := 0
	for _, p := range round.Seats() {
		if p != nil && !p.Folded && p.TotalBet > callable {
			callable = p.TotalBet
		}
	}

	for _, p := range round.Seats() {
		if p == nil || p.TotalBet <= callable {
			continue
		}

		refund := p.TotalBet - callable
		p.TotalBet = callable
		p.credit(refund)
		round.pot -= refund

		tc.logger.Info("returned uncalled bet",
			zap.String("table", tc.title),
			zap.String("username", p.Username),
			zap.Int("refund", refund))
	}
}

// settle ends the round: pots are carved out of the players' total bets,
// awarded, broadcast and persisted. With showdown=false (single survivor)
// no cards are revealed and every pot goes to the survivor uncontested.
func (tc *tableController) settle(showdown bool) {
	tc.decisionTimer.Cancel()

	round := tc.round
	tc.refundUncalledBets(round)

	contenders := make([]settlement.Contender, 0, len(round.Seats()))
	for seat, p := range round.Seats() {
		if p != nil && p.TotalBet > 0 {
			contenders = append(contenders, settlement.Contender{
				Seat:     seat,
				TotalBet: p.TotalBet,
				Folded:   p.Folded,
			})
		}
	}

	pots, err := settlement.CalculatePots(contenders)
	if err != nil {
		// Unreachable once uncalled bets are refunded. If it ever fires,
		// give every bet back rather than let chips vanish, and fall
		// through so the table still schedules the next round.
		tc.logger.Error("pot calculation failed", zap.String("table", tc.title), zap.Error(err))
		for _, p := range round.Seats() {
			if p != nil && p.TotalBet > 0 {
				p.credit(p.TotalBet)
				p.TotalBet = 0
			}
		}
		pots = nil
	}

	hands := make(map[int]poker.Hand)
	if showdown && len(pots) > 0 {
		reveals := make([]PlayerCardsData, 0, len(round.Seats()))
		for seat, p := range round.Seats() {
			if p == nil || p.Folded {
				continue
			}
			best, err := poker.BestHand(p.HoleCards, round.CommunityCards())
			if err != nil {
				tc.logger.Error("hand evaluation failed", zap.Error(err))
				continue
			}
			hands[seat] = best
			reveals = append(reveals, PlayerCardsData{
				Username: p.Username,
				Seat:     seat,
				Cards:    cardSymbols(p.HoleCards),
			})
		}

		tc.broadcast(ServerMessage{Type: ServerMessage_CardsReveal, Data: CardsRevealData{Reveals: reveals}})
	}

	results := settlement.Award(pots, hands)
	potData := make([]ShowdownPotData, 0, len(results))
	for _, result := range results {
		winners := make([]string, 0, len(result.Winners))
		for _, seat := range result.Winners {
			round.Seats()[seat].credit(result.Share)
			winners = append(winners, round.Seats()[seat].Username)
		}

		// The odd chip of an uneven split goes to the first winner.
		if remainder := result.Value - result.Share*len(result.Winners); remainder > 0 {
			round.Seats()[result.Winners[0]].credit(remainder)
		}

		description := ""
		if hand, ok := hands[result.Winners[0]]; ok {
			description = hand.Describe()
		}

		potData = append(potData, ShowdownPotData{
			Value:       result.Value,
			Winners:     winners,
			Share:       result.Share,
			Description: description,
		})
	}

	tc.broadcast(ServerMessage{Type: ServerMessage_Showdown, Data: ShowdownData{Pots: potData}})

	stacks := make(map[string]int)
	for _, p := range tc.table.Seats() {
		if p != nil {
			stacks[p.Username] = p.Stack
		}
	}

	tc.persistSettlement(results, round)
	tc.publishSettlement(potData, stacks)
	tc.broadcast(ServerMessage{Type: ServerMessage_RoundFinished, Data: RoundFinishedData{Stacks: stacks}})

	tc.logger.Info("round settled",
		zap.String("table", tc.title),
		zap.Int("pots", len(pots)),
		zap.Bool("showdown", showdown))

	tc.round = nil
	tc.policy.roundSettled(tc)

	if tc.table.PlayerCount() >= 2 {
		tc.scheduleNextRound(len(pots))
	}
}

// persistSettlement flushes chip counts for everyone seated and bumps the
// winners' win counts. Storage failures are logged, never rolled back: the
// in-memory stacks stay authoritative.
func (tc *tableController) persistSettlement(results []settlement.PotResult, round *Round) {
	if tc.storage == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, p := range round.Seats() {
		if p == nil {
			continue
		}
		if err := tc.storage.SetChipCount(ctx, p.Username, p.ChipCount); err != nil {
			tc.logger.Error("failed to persist chip count",
				zap.String("username", p.Username), zap.Error(err))
		}
	}

	winners := make(map[string]bool)
	for _, result := range results {
		for _, seat := range result.Winners {
			winners[round.Seats()[seat].Username] = true
		}
	}

	for username := range winners {
		wins, err := tc.storage.WinCount(ctx, username)
		if err != nil {
			tc.logger.Error("failed to read win count",
				zap.String("username", username), zap.Error(err))
			continue
		}
		if err := tc.storage.SetWinCount(ctx, username, wins+1); err != nil {
			tc.logger.Error("failed to persist win count",
				zap.String("username", username), zap.Error(err))
		}
	}
}

func (tc *tableController) publishSettlement(pots []ShowdownPotData, stacks map[string]int) {
	if tc.publisher == nil {
		return
	}

	event := SettlementEvent{
		TableID:     tc.id,
		TableTitle:  tc.title,
		Pots:        pots,
		FinalStacks: stacks,
		SettledAt:   time.Now().Unix(),
	}
	if err := tc.publisher.PublishSettlement(event); err != nil {
		tc.logger.Error("failed to publish settlement event", zap.Error(err))
	}
}

// scheduleNextRound observes the pacing delay (longer when side pots were
// shown) and then gates the next deal on a ready group: players have a short
// window to get ready, after which the stragglers are readied automatically.
// The timer goroutine only enqueues; the worker does the arming, so seats
// are never read off-worker.
func (tc *tableController) scheduleNextRound(potCount int) {
	if potCount < 1 {
		potCount = 1
	}
	delay := tc.options.PotPacingDelay * time.Duration(potCount)

	_ = tc.pacer.NewTask(delay, func(isCancelled bool) {
		if isCancelled {
			return
		}
		_ = tc.enqueue(RequestAction_ArmReadyGroup, nil)
	})
}

func (tc *tableController) armReadyGroup() {
	tc.rg.Stop()
	tc.rg.SetTimeoutInterval(2)
	tc.rg.OnTimeout(func(rg *syncsaga.ReadyGroup) {
		for seat, isReady := range rg.GetParticipantStates() {
			if !isReady {
				rg.Ready(seat)
			}
		}
	})
	tc.rg.OnCompleted(func(rg *syncsaga.ReadyGroup) {
		_ = tc.enqueue(RequestAction_StartRound, nil)
	})

	tc.rg.ResetParticipants()
	for seat, p := range tc.table.Seats() {
		if p != nil {
			tc.rg.Add(int64(seat), false)
		}
	}
	tc.rg.Start()
}

// kickPlayer removes a player from the table, tells them why, and raises the
// left event so the casino can restore their lobby membership.
func (tc *tableController) kickPlayer(username, reason string) {
	tc.send(username, ServerMessage{Type: ServerMessage_LeaveTable, Data: PlayerLeftData{
		Username: username,
		Reason:   reason,
	}})

	if err := tc.table.RemovePlayer(username); err != nil {
		tc.logger.Error("failed to remove player", zap.String("username", username), zap.Error(err))
		return
	}

	tc.broadcast(ServerMessage{Type: ServerMessage_PlayerLeft, Data: PlayerLeftData{
		Username: username,
		Reason:   reason,
	}})

	tc.onPlayerLeft(username, reason)
}

func (tc *tableController) mustDraw() poker.Card {
	card, err := tc.deck.Draw()
	if err != nil {
		panic(fmt.Sprintf("table %s: %v", tc.title, err))
	}
	return card
}

func (tc *tableController) broadcast(message ServerMessage) {
	if tc.messenger == nil {
		return
	}
	for _, username := range tc.table.Usernames() {
		tc.messenger.Send(username, message)
	}
}

func (tc *tableController) send(username string, message ServerMessage) {
	if tc.messenger == nil {
		return
	}
	tc.messenger.Send(username, message)
}

func cardSymbols(cards []poker.Card) []string {
	symbols := make([]string, 0, len(cards))
	for _, card := range cards {
		symbols = append(symbols, card.String())
	}
	return symbols
}
