package service

import (
	"context"
	"errors"
	"testing"

	"arjuna.id/healthquest/internal/model"
	"arjuna.id/healthquest/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetGlobalRankingOrdersByExpDescending(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&model.User{Username: "alice", Exp: 50})
	repo.add(&model.User{Username: "bob", Exp: 200})
	repo.add(&model.User{Username: "carol", Exp: 200})
	repo.add(&model.User{Username: "dave", Exp: 10})

	svc := NewLeaderboardService(repo)

	ranking, err := svc.GetGlobalRanking(context.Background())
	require.NoError(t, err)
	require.Len(t, ranking, 4)

	assert.Equal(t, 1, ranking[0].Rank)
	assert.Equal(t, 200, ranking[0].Exp)
	assert.Equal(t, 200, ranking[1].Exp)
	assert.Equal(t, 50, ranking[2].Exp)
	assert.Equal(t, 4, ranking[3].Rank)
	assert.Equal(t, "dave", ranking[3].Username)
	assert.Equal(t, 10, ranking[3].Exp)
}

func TestGetGlobalRankingEmpty(t *testing.T) {
	svc := NewLeaderboardService(newFakeUserRepo())

	ranking, err := svc.GetGlobalRanking(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ranking)
}

func TestGetRankFor(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&model.User{Username: "alice", Exp: 50})
	bob := repo.add(&model.User{Username: "bob", Exp: 200})

	svc := NewLeaderboardService(repo)

	entry, err := svc.GetRankFor(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Rank)
	assert.Equal(t, "bob", entry.Username)
}

func TestGetRankForUnknownUser(t *testing.T) {
	svc := NewLeaderboardService(newFakeUserRepo())

	_, err := svc.GetRankFor(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
