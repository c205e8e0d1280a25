package services

import (
	"context"
	"fmt"

	"github.com/Dosada05/swiss-system/models"
	"github.com/Dosada05/swiss-system/repositories"
	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	GetStats(ctx context.Context) (models.DashboardStats, error)
}

type dashboardService struct {
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
}

func NewDashboardService(
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
) DashboardService {
	return &dashboardService{
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
	}
}

// GetStats is a best-effort overview; the three counters are read independently.
func (s *dashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.playerRepo.Count(gCtx, nil)
		if err != nil {
			return fmt.Errorf("players total: %w", err)
		}
		stats.PlayersTotal = n
		return nil
	})
	g.Go(func() error {
		n, err := s.matchRepo.Count(gCtx, nil)
		if err != nil {
			return fmt.Errorf("matches total: %w", err)
		}
		stats.MatchesTotal = n
		return nil
	})
	g.Go(func() error {
		maxRound, ok, err := s.matchRepo.MaxRound(gCtx, nil)
		if err != nil {
			return fmt.Errorf("current round: %w", err)
		}
		stats.CurrentRound = models.FirstRound
		if ok {
			stats.CurrentRound = maxRound
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, handleRepositoryError(err)
	}
	return stats, nil
}
