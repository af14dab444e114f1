package dao

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// PgDAO stores accounts in a single players table. Schema:
//
//	CREATE TABLE IF NOT EXISTS players (
//	    username          TEXT PRIMARY KEY,
//	    password_hash     TEXT NOT NULL,
//	    chip_count        BIGINT NOT NULL,
//	    win_count         INT NOT NULL DEFAULT 0,
//	    elo_rating        INT NOT NULL DEFAULT 1200,
//	    banned            BOOLEAN NOT NULL DEFAULT FALSE,
//	    last_reward_claim TIMESTAMPTZ NOT NULL DEFAULT 'epoch'
//	);
type PgDAO struct {
	pool *pgxpool.Pool
}

func NewPgDAO(ctx context.Context, connString string) (*PgDAO, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &PgDAO{pool: pool}, nil
}

func (d *PgDAO) IsRegistered(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := d.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM players WHERE username = $1)", username).Scan(&exists)
	return exists, err
}

func (d *PgDAO) Register(ctx context.Context, username, password string, startingChips int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tag, err := d.pool.Exec(ctx, `
		INSERT INTO players (username, password_hash, chip_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING
	`, username, string(hash), startingChips)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserExists
	}
	return nil
}

func (d *PgDAO) Authenticate(ctx context.Context, username, password string) error {
	var hash string
	err := d.pool.QueryRow(ctx,
		"SELECT password_hash FROM players WHERE username = $1", username).Scan(&hash)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrUserNotFound
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrWrongPassword
	}
	return nil
}

func (d *PgDAO) ChipCount(ctx context.Context, username string) (int, error) {
	var chipCount int
	err := d.queryColumn(ctx, "chip_count", username, &chipCount)
	return chipCount, err
}

func (d *PgDAO) SetChipCount(ctx context.Context, username string, chipCount int) error {
	return d.updateColumn(ctx, "chip_count", username, chipCount)
}

func (d *PgDAO) WinCount(ctx context.Context, username string) (int, error) {
	var winCount int
	err := d.queryColumn(ctx, "win_count", username, &winCount)
	return winCount, err
}

func (d *PgDAO) SetWinCount(ctx context.Context, username string, winCount int) error {
	return d.updateColumn(ctx, "win_count", username, winCount)
}

func (d *PgDAO) EloRating(ctx context.Context, username string) (int, error) {
	var rating int
	err := d.queryColumn(ctx, "elo_rating", username, &rating)
	return rating, err
}

func (d *PgDAO) SetEloRating(ctx context.Context, username string, rating int) error {
	return d.updateColumn(ctx, "elo_rating", username, rating)
}

func (d *PgDAO) IsBanned(ctx context.Context, username string) (bool, error) {
	var banned bool
	err := d.queryColumn(ctx, "banned", username, &banned)
	return banned, err
}

func (d *PgDAO) LastRewardClaim(ctx context.Context, username string) (time.Time, error) {
	var claimedAt time.Time
	err := d.queryColumn(ctx, "last_reward_claim", username, &claimedAt)
	return claimedAt, err
}

func (d *PgDAO) SetLastRewardClaim(ctx context.Context, username string, claimedAt time.Time) error {
	return d.updateColumn(ctx, "last_reward_claim", username, claimedAt)
}

func (d *PgDAO) Close() {
	d.pool.Close()
}

func (d *PgDAO) queryColumn(ctx context.Context, column, username string, dest interface{}) error {
	err := d.pool.QueryRow(ctx,
		"SELECT "+column+" FROM players WHERE username = $1", username).Scan(dest)
	if err == pgx.ErrNoRows {
		return ErrUserNotFound
	}
	return err
}

func (d *PgDAO) updateColumn(ctx context.Context, column, username string, value interface{}) error {
	tag, err := d.pool.Exec(ctx,
		"UPDATE players SET "+column+" = $1 WHERE username = $2", value, username)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
