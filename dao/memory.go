package dao

import (
	"context"
	"sync"
	"time"
)

type memoryAccount struct {
	password        string
	chipCount       int
	winCount        int
	eloRating       int
	banned          bool
	lastRewardClaim time.Time
}

// MemoryDAO keeps accounts in a map. It backs tests and the standalone mode
// of the server, where no database is configured.
type MemoryDAO struct {
	mu       sync.RWMutex
	accounts map[string]*memoryAccount
}

func NewMemoryDAO() *MemoryDAO {
	return &MemoryDAO{accounts: make(map[string]*memoryAccount)}
}

func (d *MemoryDAO) IsRegistered(ctx context.Context, username string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, ok := d.accounts[username]
	return ok, nil
}

func (d *MemoryDAO) Register(ctx context.Context, username, password string, startingChips int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.accounts[username]; ok {
		return ErrUserExists
	}
	d.accounts[username] = &memoryAccount{
		password:  password,
		chipCount: startingChips,
		eloRating: DefaultEloRating,
	}
	return nil
}

func (d *MemoryDAO) Authenticate(ctx context.Context, username, password string) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	account, ok := d.accounts[username]
	if !ok {
		return ErrUserNotFound
	}
	if account.password != password {
		return ErrWrongPassword
	}
	return nil
}

func (d *MemoryDAO) ChipCount(ctx context.Context, username string) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	account, ok := d.accounts[username]
	if !ok {
		return 0, ErrUserNotFound
	}
	return account.chipCount, nil
}

func (d *MemoryDAO) SetChipCount(ctx context.Context, username string, chipCount int) error {
	return d.update(username, func(account *memoryAccount) {
		account.chipCount = chipCount
	})
}

func (d *MemoryDAO) WinCount(ctx context.Context, username string) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	account, ok := d.accounts[username]
	if !ok {
		return 0, ErrUserNotFound
	}
	return account.winCount, nil
}

func (d *MemoryDAO) SetWinCount(ctx context.Context, username string, winCount int) error {
	return d.update(username, func(account *memoryAccount) {
		account.winCount = winCount
	})
}

func (d *MemoryDAO) EloRating(ctx context.Context, username string) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	account, ok := d.accounts[username]
	if !ok {
		return 0, ErrUserNotFound
	}
	return account.eloRating, nil
}

func (d *MemoryDAO) SetEloRating(ctx context.Context, username string, rating int) error {
	return d.update(username, func(account *memoryAccount) {
		account.eloRating = rating
	})
}

func (d *MemoryDAO) IsBanned(ctx context.Context, username string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	account, ok := d.accounts[username]
	if !ok {
		return false, ErrUserNotFound
	}
	return account.banned, nil
}

// Ban exists for tests and admin tooling.
func (d *MemoryDAO) Ban(username string) error {
	return d.update(username, func(account *memoryAccount) {
		account.banned = true
	})
}

func (d *MemoryDAO) LastRewardClaim(ctx context.Context, username string) (time.Time, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	account, ok := d.accounts[username]
	if !ok {
		return time.Time{}, ErrUserNotFound
	}
	return account.lastRewardClaim, nil
}

func (d *MemoryDAO) SetLastRewardClaim(ctx context.Context, username string, claimedAt time.Time) error {
	return d.update(username, func(account *memoryAccount) {
		account.lastRewardClaim = claimedAt
	})
}

func (d *MemoryDAO) Close() {}

func (d *MemoryDAO) update(username string, fn func(*memoryAccount)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	account, ok := d.accounts[username]
	if !ok {
		return ErrUserNotFound
	}
	fn(account)
	return nil
}
