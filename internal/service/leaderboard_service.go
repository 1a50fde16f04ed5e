package service

import (
	"context"
	"sort"

	"arjuna.id/healthquest/internal/dto"
	"arjuna.id/healthquest/internal/model"
	"arjuna.id/healthquest/internal/repository"
	"arjuna.id/healthquest/pkg/apperror"
	"github.com/google/uuid"
)

// LeaderboardService derives the global exp ranking. The ranking is stateless
// and recomputed from the account store on every call; rank is the 1-based
// position after sorting, with ties broken by account age for determinism.
type LeaderboardService interface {
	GetGlobalRanking(ctx context.Context) ([]dto.RankEntry, error)
	GetRankFor(ctx context.Context, userID uuid.UUID) (*dto.RankEntry, error)
}

type leaderboardService struct {
	userRepo repository.UserRepository
}

func NewLeaderboardService(userRepo repository.UserRepository) LeaderboardService {
	return &leaderboardService{userRepo: userRepo}
}

func (s *leaderboardService) GetGlobalRanking(ctx context.Context) ([]dto.RankEntry, error) {
	users, err := s.userRepo.FindAllRanked(ctx)
	if err != nil {
		return nil, err
	}

	return rankUsers(users), nil
}

func (s *leaderboardService) GetRankFor(ctx context.Context, userID uuid.UUID) (*dto.RankEntry, error) {
	ranking, err := s.GetGlobalRanking(ctx)
	if err != nil {
		return nil, err
	}

	for i := range ranking {
		if ranking[i].ID == userID {
			return &ranking[i], nil
		}
	}

	return nil, apperror.NotFound("user not found")
}

// rankUsers orders accounts by exp descending and assigns 1-based positions.
// The stable sort preserves the repository's secondary ordering for equal exp.
func rankUsers(users []model.User) []dto.RankEntry {
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Exp > users[j].Exp
	})

	entries := make([]dto.RankEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, dto.RankEntry{
			Rank:     i + 1,
			ID:       u.ID,
			Username: u.Username,
			Exp:      u.Exp,
			Avatar:   u.Avatar,
		})
	}

	return entries
}
