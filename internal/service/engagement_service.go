package service

import (
	"context"
	"errors"
	"strings"

	"arjuna.id/healthquest/internal/dto"
	"arjuna.id/healthquest/internal/model"
	"arjuna.id/healthquest/internal/repository"
	"arjuna.id/healthquest/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EngagementService covers the per-post interaction rules: toggle-likes,
// append-only comments and the monotonic share counter. Every mutation is a
// single atomic update against the post record.
type EngagementService interface {
	// ToggleLike likes the post for userID, or removes the like when it is
	// already present. The caller infers the outcome from the returned
	// likes set.
	ToggleLike(ctx context.Context, postID, userID uuid.UUID) (*dto.PostResponse, error)
	AddComment(ctx context.Context, postID, userID uuid.UUID, req dto.CommentRequest) (*dto.PostResponse, error)
	IncrementShare(ctx context.Context, postID uuid.UUID) (*dto.PostResponse, error)
}

type engagementService struct {
	postRepo            repository.PostRepository
	notificationService NotificationService
}

func NewEngagementService(postRepo repository.PostRepository, notificationService NotificationService) EngagementService {
	return &engagementService{
		postRepo:            postRepo,
		notificationService: notificationService,
	}
}

func (s *engagementService) ToggleLike(ctx context.Context, postID, userID uuid.UUID) (*dto.PostResponse, error) {
	post, err := s.postRepo.ToggleLike(ctx, postID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("post not found")
		}
		return nil, err
	}

	if post.LikedBy(userID) && post.UserID != userID {
		s.notify(&model.Notification{
			UserID:     post.UserID,
			ActorID:    userID,
			EntityID:   post.ID,
			EntityType: "post",
			Type:       "like_post",
			Message:    "Someone liked your post",
		})
	}

	return mapPostToResponse(post), nil
}

func (s *engagementService) AddComment(ctx context.Context, postID, userID uuid.UUID, req dto.CommentRequest) (*dto.PostResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, apperror.InvalidInput("text is required")
	}

	comment := &model.Comment{
		PostID: postID,
		UserID: userID,
		Text:   req.Text,
	}

	post, err := s.postRepo.AddComment(ctx, comment)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("post not found")
		}
		return nil, err
	}

	if post.UserID != userID {
		s.notify(&model.Notification{
			UserID:     post.UserID,
			ActorID:    userID,
			EntityID:   post.ID,
			EntityType: "post",
			Type:       "comment_post",
			Message:    "Someone commented on your post",
		})
	}

	return mapPostToResponse(post), nil
}

func (s *engagementService) IncrementShare(ctx context.Context, postID uuid.UUID) (*dto.PostResponse, error) {
	post, err := s.postRepo.IncrementShare(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("post not found")
		}
		return nil, err
	}

	return mapPostToResponse(post), nil
}

func (s *engagementService) notify(notification *model.Notification) {
	if s.notificationService == nil {
		return
	}
	_ = s.notificationService.CreateNotification(context.Background(), notification)
}
