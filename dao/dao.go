// Package dao persists player accounts and their long-lived statistics.
package dao

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUserNotFound  = errors.New("dao: user not found")
	ErrWrongPassword = errors.New("dao: wrong password")
	ErrUserExists    = errors.New("dao: user already exists")
)

// DAO is the persistence boundary of the server. The engine only ever talks
// to this interface; tests substitute an in-memory fake.
type DAO interface {
	IsRegistered(ctx context.Context, username string) (bool, error)
	Register(ctx context.Context, username, password string, startingChips int) error
	Authenticate(ctx context.Context, username, password string) error

	ChipCount(ctx context.Context, username string) (int, error)
	SetChipCount(ctx context.Context, username string, chipCount int) error

	WinCount(ctx context.Context, username string) (int, error)
	SetWinCount(ctx context.Context, username string, winCount int) error

	EloRating(ctx context.Context, username string) (int, error)
	SetEloRating(ctx context.Context, username string, rating int) error

	IsBanned(ctx context.Context, username string) (bool, error)

	LastRewardClaim(ctx context.Context, username string) (time.Time, error)
	SetLastRewardClaim(ctx context.Context, username string, claimedAt time.Time) error

	Close()
}
