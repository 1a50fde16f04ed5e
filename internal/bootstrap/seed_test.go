package bootstrap

import (
	"context"
	"testing"

	"arjuna.id/healthquest/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memQuestRepo struct {
	quests []model.Quest
}

func (r *memQuestRepo) FindAll(ctx context.Context) ([]model.Quest, error) {
	return append([]model.Quest(nil), r.quests...), nil
}

func (r *memQuestRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Quest, error) {
	for i := range r.quests {
		if r.quests[i].ID == id {
			return &r.quests[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memQuestRepo) Create(ctx context.Context, quest *model.Quest) error {
	if quest.ID == uuid.Nil {
		quest.ID = uuid.New()
	}
	r.quests = append(r.quests, *quest)
	return nil
}

func (r *memQuestRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.quests)), nil
}

func TestSeedQuestsPopulatesEmptyCatalog(t *testing.T) {
	repo := &memQuestRepo{}

	require.NoError(t, SeedQuests(context.Background(), repo))

	assert.NotEmpty(t, repo.quests)
	for _, q := range repo.quests {
		assert.NotEmpty(t, q.Title)
		assert.Positive(t, q.XPReward)
		assert.Positive(t, q.TargetCount)
	}
}

func TestSeedQuestsLeavesExistingCatalogAlone(t *testing.T) {
	repo := &memQuestRepo{}
	require.NoError(t, repo.Create(context.Background(), &model.Quest{
		Title:       "Custom quest",
		Type:        model.QuestTypePost,
		TargetCount: 1,
		XPReward:    5,
		Repeatable:  model.RepeatDaily,
	}))

	require.NoError(t, SeedQuests(context.Background(), repo))

	assert.Len(t, repo.quests, 1)
	assert.Equal(t, "Custom quest", repo.quests[0].Title)
}
