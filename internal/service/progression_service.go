package service

import (
	"context"
	"errors"
	"fmt"

	"arjuna.id/healthquest/internal/dto"
	"arjuna.id/healthquest/internal/model"
	"arjuna.id/healthquest/internal/repository"
	"arjuna.id/healthquest/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressionService owns every mutation of an account's exp, streak and
// quest history. Completion entries are append-only; exp only grows.
type ProgressionService interface {
	RecordCompletion(ctx context.Context, userID uuid.UUID, req dto.CompleteQuestRequest) (*dto.CompletionResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error)
	GetCompletedQuests(ctx context.Context, userID uuid.UUID) ([]model.QuestCompletion, error)
}

type progressionService struct {
	userRepo            repository.UserRepository
	notificationService NotificationService
}

func NewProgressionService(userRepo repository.UserRepository, notificationService NotificationService) ProgressionService {
	return &progressionService{
		userRepo:            userRepo,
		notificationService: notificationService,
	}
}

func (s *progressionService) RecordCompletion(ctx context.Context, userID uuid.UUID, req dto.CompleteQuestRequest) (*dto.CompletionResponse, error) {
	if req.QuestID == "" {
		return nil, apperror.InvalidInput("quest_id is required")
	}
	if req.ExpEarned <= 0 {
		return nil, apperror.InvalidInput("exp_earned must be positive")
	}
	if req.CompletedAt.IsZero() {
		return nil, apperror.InvalidInput("completed_at is required")
	}

	// The claimed exp_earned is accepted as-is, without checking the quest
	// catalog's xp_reward or repeatable policy. That matches the documented
	// contract; see DESIGN.md before tightening it.
	completion := &model.QuestCompletion{
		QuestID:     req.QuestID,
		ExpEarned:   req.ExpEarned,
		CompletedAt: req.CompletedAt,
	}

	totalExp, err := s.userRepo.AddQuestCompletion(ctx, userID, completion)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	s.notifyLevelUp(userID, totalExp-req.ExpEarned, totalExp)

	return &dto.CompletionResponse{
		QuestID:     completion.QuestID,
		ExpEarned:   completion.ExpEarned,
		CompletedAt: completion.CompletedAt,
		TotalExp:    totalExp,
	}, nil
}

// notifyLevelUp sends a notification when the completion pushed the account
// across a level boundary.
func (s *progressionService) notifyLevelUp(userID uuid.UUID, oldExp, newExp int) {
	if s.notificationService == nil {
		return
	}

	oldLevel := ComputeLevel(oldExp).Level
	newLevel := ComputeLevel(newExp).Level
	if newLevel <= oldLevel {
		return
	}

	notification := &model.Notification{
		UserID:     userID,
		ActorID:    userID,
		EntityID:   userID,
		EntityType: "quest",
		Type:       "level_up",
		Message:    fmt.Sprintf("You reached level %d with %d exp!", newLevel, newExp),
	}
	_ = s.notificationService.CreateNotification(context.Background(), notification)
}

func (s *progressionService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	info := ComputeLevel(user.Exp)

	return &dto.ProfileResponse{
		Username:   user.Username,
		Level:      info.Level,
		Exp:        user.Exp,
		ExpToNext:  info.ExpToNext,
		Progress:   info.ProgressDecile,
		Streak:     user.StreakCurrentStreak,
		TotalBadge: len(user.Badges),
		TotalQuest: len(user.QuestHistory),
	}, nil
}

func (s *progressionService) GetCompletedQuests(ctx context.Context, userID uuid.UUID) ([]model.QuestCompletion, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	return s.userRepo.FindQuestHistory(ctx, userID)
}
