package repository

import (
	"context"

	"arjuna.id/healthquest/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuestRepository is read-only from the engine's perspective; Create and
// Count exist for startup seeding only.
type QuestRepository interface {
	FindAll(ctx context.Context) ([]model.Quest, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Quest, error)
	Create(ctx context.Context, quest *model.Quest) error
	Count(ctx context.Context) (int64, error)
}

type questRepository struct {
	db *gorm.DB
}

func NewQuestRepository(db *gorm.DB) QuestRepository {
	return &questRepository{db: db}
}

func (r *questRepository) FindAll(ctx context.Context) ([]model.Quest, error) {
	var quests []model.Quest
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&quests).Error; err != nil {
		return nil, err
	}

	return quests, nil
}

func (r *questRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Quest, error) {
	var quest model.Quest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&quest).Error; err != nil {
		return nil, err
	}

	return &quest, nil
}

func (r *questRepository) Create(ctx context.Context, quest *model.Quest) error {
	return r.db.WithContext(ctx).Create(quest).Error
}

func (r *questRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Quest{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
