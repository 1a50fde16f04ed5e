package service

import (
	"context"
	"errors"

	"arjuna.id/healthquest/internal/model"
	"arjuna.id/healthquest/internal/repository"
	"arjuna.id/healthquest/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuestService exposes the read-only quest catalog.
type QuestService interface {
	GetAllQuests(ctx context.Context) ([]model.Quest, error)
	GetQuestByID(ctx context.Context, id uuid.UUID) (*model.Quest, error)
}

type questService struct {
	questRepo repository.QuestRepository
}

func NewQuestService(questRepo repository.QuestRepository) QuestService {
	return &questService{questRepo: questRepo}
}

func (s *questService) GetAllQuests(ctx context.Context) ([]model.Quest, error) {
	return s.questRepo.FindAll(ctx)
}

func (s *questService) GetQuestByID(ctx context.Context, id uuid.UUID) (*model.Quest, error) {
	quest, err := s.questRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("quest not found")
		}
		return nil, err
	}

	return quest, nil
}
