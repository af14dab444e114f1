package transport

// ClientMessageType tags every message a connected player sends.
type ClientMessageType string

const (
	ClientMessage_CreateTable ClientMessageType = "create_table"
	ClientMessage_JoinTable   ClientMessageType = "join_table"
	ClientMessage_LeaveTable  ClientMessageType = "leave_table"
	ClientMessage_ListTables  ClientMessageType = "list_tables"
	ClientMessage_Check       ClientMessageType = "check"
	ClientMessage_Call        ClientMessageType = "call"
	ClientMessage_Raise       ClientMessageType = "raise"
	ClientMessage_AllIn       ClientMessageType = "all_in"
	ClientMessage_Fold        ClientMessageType = "fold"
	ClientMessage_Chat        ClientMessageType = "chat"
	ClientMessage_ClaimReward ClientMessageType = "claim_reward"
)

// ClientMessage is the envelope of every inbound websocket frame. Fields
// beyond Type are used only by some message types.
type ClientMessage struct {
	Type       ClientMessageType `json:"type"`
	Table      string            `json:"table,omitempty"`
	BuyIn      int               `json:"buy_in,omitempty"`
	Amount     int               `json:"amount,omitempty"`
	Message    string            `json:"message,omitempty"`
	SmallBlind int               `json:"small_blind,omitempty"`
	Ranked     bool              `json:"ranked,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type tableListResponse struct {
	Tables []string `json:"tables"`
}

type rewardResponse struct {
	Reward int `json:"reward"`
}
