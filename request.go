package pokerserver

// RequestAction names every action a table controller's worker can process.
// All table mutation flows through these, including the dealer-driven ones.
type RequestAction string

const (
	RequestAction_StartRound  RequestAction = "StartRound"
	RequestAction_PlayerJoin  RequestAction = "PlayerJoin"
	RequestAction_PlayerLeave RequestAction = "PlayerLeave"
	RequestAction_PlayerCheck RequestAction = "PlayerCheck"
	RequestAction_PlayerCall  RequestAction = "PlayerCall"
	RequestAction_PlayerRaise RequestAction = "PlayerRaise"
	RequestAction_PlayerAllIn RequestAction = "PlayerAllIn"
	RequestAction_PlayerFold  RequestAction = "PlayerFold"
	RequestAction_PlayerChat  RequestAction = "PlayerChat"

	// AutoFold is enqueued by the decision timer, never by a client.
	RequestAction_AutoFold RequestAction = "AutoFold"

	// ArmReadyGroup is enqueued by the pot pacing timer once the delay
	// elapses; the ready group itself is armed on the worker.
	RequestAction_ArmReadyGroup RequestAction = "ArmReadyGroup"

	// CloseTable is the poison request that stops the worker.
	RequestAction_CloseTable RequestAction = "CloseTable"
)

// Request is one unit of work for the table worker.
type Request struct {
	Action RequestAction
	Param  interface{}
}

type PlayerJoinParam struct {
	Player *TablePlayer
}

type PlayerActionParam struct {
	Username string
	Amount   int
}

type PlayerChatParam struct {
	Username string
	Message  string
}

// AutoFoldParam identifies the turn the timer was armed for, so a stale
// expiry cannot fold a player who already acted.
type AutoFoldParam struct {
	Username string
	TurnID   int64
}
