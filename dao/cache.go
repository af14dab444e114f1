package dao

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const chipKeyPrefix = "poker:chips:"

// CachedDAO decorates another DAO with a Redis read-through cache for chip
// counts, the one column read on every lobby refresh and buy-in. Everything
// else passes straight through.
type CachedDAO struct {
	DAO

	rdb *redis.Client
	ttl time.Duration
}

func NewCachedDAO(inner DAO, rdb *redis.Client, ttl time.Duration) *CachedDAO {
	return &CachedDAO{DAO: inner, rdb: rdb, ttl: ttl}
}

func (c *CachedDAO) ChipCount(ctx context.Context, username string) (int, error) {
	cached, err := c.rdb.Get(ctx, chipKeyPrefix+username).Result()
	if err == nil {
		if chipCount, convErr := strconv.Atoi(cached); convErr == nil {
			return chipCount, nil
		}
	}

	chipCount, err := c.DAO.ChipCount(ctx, username)
	if err != nil {
		return 0, err
	}

	// Best effort; a missed cache write only costs the next read.
	c.rdb.Set(ctx, chipKeyPrefix+username, chipCount, c.ttl)
	return chipCount, nil
}

func (c *CachedDAO) SetChipCount(ctx context.Context, username string, chipCount int) error {
	if err := c.DAO.SetChipCount(ctx, username, chipCount); err != nil {
		return err
	}
	c.rdb.Set(ctx, chipKeyPrefix+username, chipCount, c.ttl)
	return nil
}

func (c *CachedDAO) Close() {
	c.rdb.Close()
	c.DAO.Close()
}
