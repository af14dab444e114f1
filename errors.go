package pokerserver

import "errors"

var (
	// Casino registry
	ErrCasinoTableNotFound     = errors.New("casino: table not found")
	ErrCasinoDuplicateTitle    = errors.New("casino: table title already in use")
	ErrCasinoAlreadyLoggedIn   = errors.New("casino: username already logged in")
	ErrCasinoNotInLobby        = errors.New("casino: player is not in the lobby")
	ErrCasinoNotAtTable        = errors.New("casino: player is not seated at a table")
	ErrCasinoBanned            = errors.New("casino: player is banned")
	ErrCasinoBadCredentials    = errors.New("casino: wrong username or password")
	ErrCasinoAlreadyRegistered = errors.New("casino: username already registered")
	ErrCasinoNotEnoughChips    = errors.New("casino: not enough chips for the buy-in")
	ErrCasinoRewardNotReady    = errors.New("casino: daily reward was already claimed")

	// Table
	ErrTableNoEmptySeats   = errors.New("table: no empty seats available")
	ErrTablePlayerNotFound = errors.New("table: player not found")
	ErrTableClosed         = errors.New("table: controller is closed")
	ErrTableLocked         = errors.New("table: table is locked")

	// Round
	ErrRoundNotPlayerTurn = errors.New("round: not the player's turn")
	ErrRoundInvalidCheck  = errors.New("round: cannot check a standing bet")
	ErrRoundInvalidRaise  = errors.New("round: raise below the minimum or above the player's stack")
	ErrRoundAlreadyOver   = errors.New("round: round is already over")
	ErrRoundNotInProgress = errors.New("round: no round in progress")
)
