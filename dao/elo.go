package dao

import (
	"context"
	"math"
)

const (
	// DefaultEloRating is assigned to every new account.
	DefaultEloRating = 1200

	eloKFactor = 32
)

// EloService adjusts ratings after a ranked table finishes. The final
// standing is treated as a series of head-to-head results: every player
// beat everyone ranked below them and lost to everyone ranked above.
type EloService struct {
	dao DAO
}

func NewEloService(dao DAO) *EloService {
	return &EloService{dao: dao}
}

// ApplyRankings reads the current ratings of everyone in rankings (best
// first), computes the new ratings and writes them back. It returns the new
// ratings keyed by username.
func (s *EloService) ApplyRankings(ctx context.Context, rankings []string) (map[string]int, error) {
	ratings := make(map[string]int, len(rankings))
	for _, username := range rankings {
		rating, err := s.dao.EloRating(ctx, username)
		if err != nil {
			return nil, err
		}
		ratings[username] = rating
	}

	updated := make(map[string]int, len(rankings))
	for i, username := range rankings {
		delta := 0.0
		for j, opponent := range rankings {
			if i == j {
				continue
			}

			expected := expectedScore(ratings[username], ratings[opponent])
			score := 0.0
			if i < j {
				score = 1.0
			}
			delta += eloKFactor * (score - expected)
		}
		updated[username] = ratings[username] + int(math.Round(delta))
	}

	for username, rating := range updated {
		if err := s.dao.SetEloRating(ctx, username, rating); err != nil {
			return nil, err
		}
	}
	return updated, nil
}

func expectedScore(rating, opponent int) float64 {
	return 1.0 / (1.0 + math.Pow(10, float64(opponent-rating)/400.0))
}
