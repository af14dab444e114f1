package pokerserver

import (
	"context"
	"sync"
	"time"

	"github.com/FICHEKK/poker-server/dao"
	"go.uber.org/zap"
)

type CasinoOpt func(*Casino)

// CasinoOptions bundle the casino-wide account parameters.
type CasinoOptions struct {
	StartingChips  int
	DailyReward    int
	RewardInterval time.Duration
}

func NewCasinoOptions() *CasinoOptions {
	return &CasinoOptions{
		StartingChips:  10_000,
		DailyReward:    1_000,
		RewardInterval: 24 * time.Hour,
	}
}

// Casino is the root registry of the server: who is logged in, who sits
// where, and which tables exist. Every player is in exactly one place, the
// lobby or a single table, and moves between them atomically under the
// casino mutex.
type Casino struct {
	mu sync.Mutex

	options *CasinoOptions
	storage dao.DAO
	elo     *dao.EloService
	logger  *zap.Logger

	// Options forwarded to every table controller the casino creates.
	tableOpts []TableControllerOpt

	lobby  map[string]bool
	seated map[string]string
	tables map[string]TableController
}

func NewCasino(options *CasinoOptions, storage dao.DAO, opts ...CasinoOpt) *Casino {
	c := &Casino{
		options: options,
		storage: storage,
		elo:     dao.NewEloService(storage),
		logger:  zap.NewNop(),
		lobby:   make(map[string]bool),
		seated:  make(map[string]string),
		tables:  make(map[string]TableController),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func WithCasinoLogger(logger *zap.Logger) CasinoOpt {
	return func(c *Casino) {
		c.logger = logger
	}
}

// WithTableControllerOpts forwards controller options (storage, messenger,
// settlement publisher) to every table the casino creates.
func WithTableControllerOpts(opts ...TableControllerOpt) CasinoOpt {
	return func(c *Casino) {
		c.tableOpts = opts
	}
}

// SetTableControllerOpts replaces the options forwarded to new tables. The
// transport implements the messenger and needs the casino to exist first, so
// the composition root sets the options after both are built. Must be called
// before the first CreateTable.
func (c *Casino) SetTableControllerOpts(opts ...TableControllerOpt) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tableOpts = opts
}

// Register creates a new account with the starting chip grant.
func (c *Casino) Register(ctx context.Context, username, password string) error {
	err := c.storage.Register(ctx, username, password, c.options.StartingChips)
	if err == dao.ErrUserExists {
		return ErrCasinoAlreadyRegistered
	}
	return err
}

// Login verifies the player's credentials and ban status. It does not place
// the player anywhere; that happens in Enter, once their connection is up.
func (c *Casino) Login(ctx context.Context, username, password string) error {
	if err := c.storage.Authenticate(ctx, username, password); err != nil {
		if err == dao.ErrUserNotFound || err == dao.ErrWrongPassword {
			return ErrCasinoBadCredentials
		}
		return err
	}

	banned, err := c.storage.IsBanned(ctx, username)
	if err != nil {
		return err
	}
	if banned {
		return ErrCasinoBanned
	}

	return nil
}

// Enter places an authenticated player in the lobby. A username may be in
// the casino at most once.
func (c *Casino) Enter(username string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.lobby[username] || c.seated[username] != "" {
		return ErrCasinoAlreadyLoggedIn
	}

	c.lobby[username] = true
	c.logger.Info("player entered the casino", zap.String("username", username))
	return nil
}

// Logout removes the player from the casino. A seated player is first asked
// to leave their table; their lobby membership is dropped immediately so the
// username frees up even before the table worker processes the leave.
func (c *Casino) Logout(username string) {
	c.mu.Lock()

	delete(c.lobby, username)
	title := c.seated[username]
	delete(c.seated, username)

	var controller TableController
	if title != "" {
		controller = c.tables[title]
	}
	c.mu.Unlock()

	if controller != nil {
		if err := controller.PlayerLeave(username); err != nil {
			c.logger.Warn("leave on logout failed",
				zap.String("username", username), zap.Error(err))
		}
	}

	c.logger.Info("player logged out", zap.String("username", username))
}

// IsLoggedIn reports whether the username is anywhere in the casino.
func (c *Casino) IsLoggedIn(username string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lobby[username] || c.seated[username] != ""
}

// CreateTable registers and starts a new table under a unique title.
func (c *Casino) CreateTable(title string, options *TableControllerOptions) (TableController, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.tables[title]; ok {
		return nil, ErrCasinoDuplicateTitle
	}

	controller := NewTableController(title, options, c.tableOpts...)
	controller.OnPlayerLeft(c.handlePlayerLeft)
	controller.OnTableFinished(c.handleTableFinished)
	controller.Start()

	c.tables[title] = controller
	c.logger.Info("table created",
		zap.String("title", title),
		zap.Int("small_blind", options.SmallBlind),
		zap.Bool("ranked", options.Ranked))
	return controller, nil
}

// CloseTable shuts the table down and returns everyone seated there to the
// lobby.
func (c *Casino) CloseTable(title string) error {
	c.mu.Lock()

	controller, ok := c.tables[title]
	if !ok {
		c.mu.Unlock()
		return ErrCasinoTableNotFound
	}
	delete(c.tables, title)

	for username, at := range c.seated {
		if at == title {
			delete(c.seated, username)
			c.lobby[username] = true
		}
	}
	c.mu.Unlock()

	if err := controller.Close(); err != nil {
		return err
	}

	c.logger.Info("table closed", zap.String("title", title))
	return nil
}

// GetTableController looks a running table up by title.
func (c *Casino) GetTableController(title string) (TableController, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	controller, ok := c.tables[title]
	if !ok {
		return nil, ErrCasinoTableNotFound
	}
	return controller, nil
}

// TableTitles lists the running tables for the lobby view.
func (c *Casino) TableTitles() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	titles := make([]string, 0, len(c.tables))
	for title := range c.tables {
		titles = append(titles, title)
	}
	return titles
}

// JoinTable moves a lobby player to a table with the given buy-in. The
// lobby-to-seated move happens before the join request is queued, so a
// player can never race their way onto two tables. If the table worker later
// rejects the join, handlePlayerLeft puts the player back in the lobby.
func (c *Casino) JoinTable(ctx context.Context, username, title string, buyIn int) error {
	chipCount, err := c.storage.ChipCount(ctx, username)
	if err != nil {
		return err
	}
	if buyIn <= 0 || buyIn > chipCount {
		return ErrCasinoNotEnoughChips
	}

	c.mu.Lock()

	if !c.lobby[username] {
		c.mu.Unlock()
		return ErrCasinoNotInLobby
	}

	controller, ok := c.tables[title]
	if !ok {
		c.mu.Unlock()
		return ErrCasinoTableNotFound
	}

	delete(c.lobby, username)
	c.seated[username] = title
	c.mu.Unlock()

	if err := controller.PlayerJoin(NewTablePlayer(username, buyIn, chipCount)); err != nil {
		c.mu.Lock()
		delete(c.seated, username)
		c.lobby[username] = true
		c.mu.Unlock()
		return err
	}

	return nil
}

// SeatedAt returns the table the player is currently seated at.
func (c *Casino) SeatedAt(username string) (TableController, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	title := c.seated[username]
	if title == "" {
		return nil, ErrCasinoNotAtTable
	}

	controller, ok := c.tables[title]
	if !ok {
		return nil, ErrCasinoTableNotFound
	}
	return controller, nil
}

// LeaveTable asks the player's table to release them. The actual move back
// to the lobby happens when the table worker confirms via handlePlayerLeft.
func (c *Casino) LeaveTable(username string) error {
	c.mu.Lock()
	title := c.seated[username]
	controller := c.tables[title]
	c.mu.Unlock()

	if title == "" {
		return ErrCasinoNotAtTable
	}
	if controller == nil {
		return ErrCasinoTableNotFound
	}

	return controller.PlayerLeave(username)
}

// ClaimReward grants the daily chip reward if the claim interval elapsed.
func (c *Casino) ClaimReward(ctx context.Context, username string) (int, error) {
	claimedAt, err := c.storage.LastRewardClaim(ctx, username)
	if err != nil {
		return 0, err
	}
	if time.Since(claimedAt) < c.options.RewardInterval {
		return 0, ErrCasinoRewardNotReady
	}

	chipCount, err := c.storage.ChipCount(ctx, username)
	if err != nil {
		return 0, err
	}
	if err := c.storage.SetChipCount(ctx, username, chipCount+c.options.DailyReward); err != nil {
		return 0, err
	}
	if err := c.storage.SetLastRewardClaim(ctx, username, time.Now()); err != nil {
		return 0, err
	}

	return c.options.DailyReward, nil
}

// handlePlayerLeft runs on a table worker goroutine whenever a player is no
// longer seated, whether they left, busted, or a full table rejected their
// join. Players who logged out in the meantime stay out.
func (c *Casino) handlePlayerLeft(username, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.seated[username]; !ok {
		return
	}

	delete(c.seated, username)
	c.lobby[username] = true
	c.logger.Info("player returned to lobby",
		zap.String("username", username),
		zap.String("reason", reason))
}

// handleTableFinished applies ELO adjustments once a ranked table has a
// final standing.
func (c *Casino) handleTableFinished(title string, rankings []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	updated, err := c.elo.ApplyRankings(ctx, rankings)
	if err != nil {
		c.logger.Error("failed to apply elo adjustments",
			zap.String("title", title), zap.Error(err))
		return
	}

	c.logger.Info("ranked table finished",
		zap.String("title", title),
		zap.Strings("rankings", rankings),
		zap.Any("ratings", updated))
}
