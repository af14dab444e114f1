package pokerserver

// ServerMessageType tags every message the engine emits towards clients.
// The transport layer decides the framing; the engine's contract is only the
// order and content of these messages.
type ServerMessageType string

const (
	ServerMessage_PlayerJoined  ServerMessageType = "player_joined"
	ServerMessage_PlayerLeft    ServerMessageType = "player_left"
	ServerMessage_Blinds        ServerMessageType = "blinds"
	ServerMessage_Hand          ServerMessageType = "hand"
	ServerMessage_Flop          ServerMessageType = "flop"
	ServerMessage_Turn          ServerMessageType = "turn"
	ServerMessage_River         ServerMessageType = "river"
	ServerMessage_PlayerTurn    ServerMessageType = "player_turn"
	ServerMessage_PlayerChecked ServerMessageType = "player_checked"
	ServerMessage_PlayerCalled  ServerMessageType = "player_called"
	ServerMessage_PlayerRaised  ServerMessageType = "player_raised"
	ServerMessage_PlayerAllIn   ServerMessageType = "player_all_in"
	ServerMessage_PlayerFolded  ServerMessageType = "player_folded"
	ServerMessage_CardsReveal   ServerMessageType = "cards_reveal"
	ServerMessage_Showdown      ServerMessageType = "showdown"
	ServerMessage_RoundFinished ServerMessageType = "round_finished"
	ServerMessage_LeaveTable    ServerMessageType = "leave_table"
	ServerMessage_Chat          ServerMessageType = "chat"
)

// ServerMessage is one typed engine-to-client message.
type ServerMessage struct {
	Type ServerMessageType `json:"type"`
	Data interface{}       `json:"data,omitempty"`
}

// Messenger delivers server messages to connected players. The transport
// implements it; tests substitute a recorder.
type Messenger interface {
	Send(username string, message ServerMessage)
}

type PlayerJoinedData struct {
	Username string `json:"username"`
	Seat     int    `json:"seat"`
	Stack    int    `json:"stack"`
}

type PlayerLeftData struct {
	Username string `json:"username"`
	Reason   string `json:"reason,omitempty"`
}

type BlindsData struct {
	DealerSeat     int `json:"dealer_seat"`
	SmallBlindSeat int `json:"small_blind_seat"`
	BigBlindSeat   int `json:"big_blind_seat"`
	SmallBlind     int `json:"small_blind"`
	BigBlind       int `json:"big_blind"`
}

type HandData struct {
	Cards []string `json:"cards"`
}

type CommunityCardsData struct {
	Cards []string `json:"cards"`
	Pot   int      `json:"pot"`
}

type PlayerTurnData struct {
	Seat         int `json:"seat"`
	RequiredCall int `json:"required_call"`
	MinRaise     int `json:"min_raise"`
	MaxRaise     int `json:"max_raise"`
}

type PlayerActionData struct {
	Username string `json:"username"`
	Seat     int    `json:"seat"`
	Amount   int    `json:"amount,omitempty"`
	Pot      int    `json:"pot"`
}

type CardsRevealData struct {
	Reveals []PlayerCardsData `json:"reveals"`
}

type PlayerCardsData struct {
	Username string   `json:"username"`
	Seat     int      `json:"seat"`
	Cards    []string `json:"cards"`
}

type ShowdownPotData struct {
	Value       int      `json:"value"`
	Winners     []string `json:"winners"`
	Share       int      `json:"share"`
	Description string   `json:"description,omitempty"`
}

type ShowdownData struct {
	Pots []ShowdownPotData `json:"pots"`
}

type RoundFinishedData struct {
	Stacks map[string]int `json:"stacks"`
}

type ChatData struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// SettlementEvent is published after every settled round so external
// consumers (statistics, persistence mirrors) can react without coupling the
// showdown path to storage.
type SettlementEvent struct {
	TableID     string            `json:"table_id"`
	TableTitle  string            `json:"table_title"`
	Pots        []ShowdownPotData `json:"pots"`
	FinalStacks map[string]int    `json:"final_stacks"`
	SettledAt   int64             `json:"settled_at"`
}

// SettlementPublisher pushes settlement events to an external broker.
type SettlementPublisher interface {
	PublishSettlement(event SettlementEvent) error
}
