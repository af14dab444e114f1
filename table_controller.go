package pokerserver

import (
	"sync"
	"time"

	"github.com/FICHEKK/poker-server/dao"
	"github.com/FICHEKK/poker-server/poker"
	"github.com/google/uuid"
	"github.com/weedbox/syncsaga"
	"github.com/weedbox/timebank"
	"go.uber.org/zap"
)

type TableControllerOpt func(*tableController)

// TableController owns one Table and serializes every player action and
// dealer transition through a single-consumer request queue: one worker
// goroutine drains the queue, so table state is never touched by two
// goroutines at once and actions apply in enqueue order.
type TableController interface {
	// Events
	OnPlayerLeft(fn func(username, reason string))
	OnTableFinished(fn func(title string, rankings []string))

	// Lifecycle
	ID() string
	Title() string
	Table() *Table
	Start()
	Close() error

	// Player table actions
	PlayerJoin(player *TablePlayer) error
	PlayerLeave(username string) error

	// Player game actions
	PlayerCheck(username string) error
	PlayerCall(username string) error
	PlayerRaise(username string, amount int) error
	PlayerAllIn(username string) error
	PlayerFold(username string) error
	PlayerChat(username, message string) error
}

// TableControllerOptions bundle the table's fixed parameters.
type TableControllerOptions struct {
	MaxPlayers int
	SmallBlind int

	// TurnTime plus Overtime bounds every decision; expiry folds the player.
	TurnTime time.Duration
	Overtime time.Duration

	// PotPacingDelay is observed once per settled pot before the next round.
	PotPacingDelay time.Duration

	// Ranked tables lock once full and rank players as they bust.
	Ranked bool

	// QueueSize bounds the request queue; enqueues block once it fills.
	QueueSize int
}

func NewTableControllerOptions() *TableControllerOptions {
	return &TableControllerOptions{
		MaxPlayers:     9,
		SmallBlind:     25,
		TurnTime:       30 * time.Second,
		Overtime:       15 * time.Second,
		PotPacingDelay: 2 * time.Second,
		QueueSize:      1024,
	}
}

type tableController struct {
	id      string
	title   string
	options *TableControllerOptions

	table *Table
	round *Round
	deck  *poker.Deck

	incoming   chan *Request
	mu         sync.RWMutex
	closed     bool
	turnSerial int64

	decisionTimer *timebank.TimeBank
	pacer         *timebank.TimeBank
	rg            *syncsaga.ReadyGroup

	policy tablePolicy

	storage   dao.DAO
	publisher SettlementPublisher
	messenger Messenger
	logger    *zap.Logger

	onPlayerLeft    func(username, reason string)
	onTableFinished func(title string, rankings []string)
}

func NewTableController(title string, options *TableControllerOptions, opts ...TableControllerOpt) TableController {
	tc := &tableController{
		id:              uuid.New().String(),
		title:           title,
		options:         options,
		table:           NewTable(options.MaxPlayers),
		incoming:        make(chan *Request, options.QueueSize),
		decisionTimer:   timebank.NewTimeBank(),
		pacer:           timebank.NewTimeBank(),
		rg:              syncsaga.NewReadyGroup(),
		logger:          zap.NewNop(),
		onPlayerLeft:    func(string, string) {},
		onTableFinished: func(string, []string) {},
	}

	if options.Ranked {
		tc.policy = &rankedPolicy{}
	} else {
		tc.policy = &standardPolicy{}
	}

	for _, opt := range opts {
		opt(tc)
	}

	return tc
}

func WithStorage(storage dao.DAO) TableControllerOpt {
	return func(tc *tableController) {
		tc.storage = storage
	}
}

func WithSettlementPublisher(publisher SettlementPublisher) TableControllerOpt {
	return func(tc *tableController) {
		tc.publisher = publisher
	}
}

func WithMessenger(messenger Messenger) TableControllerOpt {
	return func(tc *tableController) {
		tc.messenger = messenger
	}
}

func WithLogger(logger *zap.Logger) TableControllerOpt {
	return func(tc *tableController) {
		tc.logger = logger
	}
}

func (tc *tableController) OnPlayerLeft(fn func(username, reason string)) {
	tc.onPlayerLeft = fn
}

func (tc *tableController) OnTableFinished(fn func(title string, rankings []string)) {
	tc.onTableFinished = fn
}

func (tc *tableController) ID() string {
	return tc.id
}

func (tc *tableController) Title() string {
	return tc.title
}

func (tc *tableController) Table() *Table {
	return tc.table
}

// Start launches the worker that drains the request queue.
func (tc *tableController) Start() {
	go tc.run()
}

// Close enqueues the poison request. The worker finishes everything queued
// before it, cancels the timers and exits.
func (tc *tableController) Close() error {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if tc.closed {
		return ErrTableClosed
	}
	tc.closed = true
	tc.incoming <- &Request{Action: RequestAction_CloseTable}
	return nil
}

func (tc *tableController) PlayerJoin(player *TablePlayer) error {
	return tc.enqueue(RequestAction_PlayerJoin, PlayerJoinParam{Player: player})
}

func (tc *tableController) PlayerLeave(username string) error {
	return tc.enqueue(RequestAction_PlayerLeave, PlayerActionParam{Username: username})
}

func (tc *tableController) PlayerCheck(username string) error {
	return tc.enqueue(RequestAction_PlayerCheck, PlayerActionParam{Username: username})
}

func (tc *tableController) PlayerCall(username string) error {
	return tc.enqueue(RequestAction_PlayerCall, PlayerActionParam{Username: username})
}

func (tc *tableController) PlayerRaise(username string, amount int) error {
	return tc.enqueue(RequestAction_PlayerRaise, PlayerActionParam{Username: username, Amount: amount})
}

func (tc *tableController) PlayerAllIn(username string) error {
	return tc.enqueue(RequestAction_PlayerAllIn, PlayerActionParam{Username: username})
}

func (tc *tableController) PlayerFold(username string) error {
	return tc.enqueue(RequestAction_PlayerFold, PlayerActionParam{Username: username})
}

func (tc *tableController) PlayerChat(username, message string) error {
	return tc.enqueue(RequestAction_PlayerChat, PlayerChatParam{Username: username, Message: message})
}

// enqueue appends a request to the worker's queue. The queue is bounded by
// QueueSize, so once the worker falls that far behind, callers block until
// it drains; QueueSize outpaces what a nine-seat table can generate between
// worker iterations, so in practice the send never waits. The read lock only
// fences the closed flag against Close, which takes the write lock.
func (tc *tableController) enqueue(action RequestAction, param interface{}) error {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	if tc.closed {
		return ErrTableClosed
	}

	tc.incoming <- &Request{Action: action, Param: param}
	return nil
}
