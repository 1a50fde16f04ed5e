package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"arjuna.id/healthquest/internal/dto"
	"arjuna.id/healthquest/internal/model"
	"arjuna.id/healthquest/internal/repository"
	"arjuna.id/healthquest/pkg/apperror"
	"arjuna.id/healthquest/pkg/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ImageFile is an uploaded image attached to a post or avatar.
type ImageFile struct {
	Reader   io.Reader
	FileName string
}

type PostService interface {
	CreatePost(ctx context.Context, userID uuid.UUID, req dto.CreatePostRequest, image *ImageFile) (*dto.PostResponse, error)
	GetAllPosts(ctx context.Context) ([]dto.PostResponse, error)
	GetPostByID(ctx context.Context, postID uuid.UUID) (*dto.PostResponse, error)
	UpdatePost(ctx context.Context, userID, postID uuid.UUID, req dto.UpdatePostRequest, image *ImageFile) (*dto.PostResponse, error)
	DeletePost(ctx context.Context, userID, postID uuid.UUID) error
	SearchPosts(ctx context.Context, filter dto.SearchPostsFilter) ([]dto.PostResponse, error)
}

type postService struct {
	postRepo       repository.PostRepository
	searchService  SearchService
	fileStorage    storage.ImageStorage
	redisClient    *redis.Client
	globalCooldown time.Duration
	postCooldown   time.Duration
}

func NewPostService(postRepo repository.PostRepository, searchService SearchService, fileStorage storage.ImageStorage, redisClient *redis.Client, globalCooldown, postCooldown time.Duration) PostService {
	if globalCooldown <= 0 {
		globalCooldown = 5 * time.Second
	}
	if postCooldown <= 0 {
		postCooldown = 15 * time.Second
	}

	return &postService{
		postRepo:       postRepo,
		searchService:  searchService,
		fileStorage:    fileStorage,
		redisClient:    redisClient,
		globalCooldown: globalCooldown,
		postCooldown:   postCooldown,
	}
}

// IsOwner is the single authorization predicate for mutating operations on
// owned resources.
func IsOwner(ownerID, callerID uuid.UUID) bool {
	return ownerID == callerID
}

func (s *postService) CreatePost(ctx context.Context, userID uuid.UUID, req dto.CreatePostRequest, image *ImageFile) (*dto.PostResponse, error) {
	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, userID, "global", s.globalCooldown)
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !allowed {
		ttl, _ := GetRateLimitTTL(ctx, s.redisClient, userID, "global")
		return nil, apperror.New(429,
			fmt.Sprintf("you are doing that too fast, wait %.0f seconds", ttl.Seconds()),
			apperror.ErrRateLimitExceeded)
	}

	allowed, err = CheckAndSetRateLimit(ctx, s.redisClient, userID, "post", s.postCooldown)
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !allowed {
		ttl, _ := GetRateLimitTTL(ctx, s.redisClient, userID, "post")
		return nil, apperror.New(429,
			fmt.Sprintf("you are posting too fast, wait %.0f seconds", ttl.Seconds()),
			apperror.ErrRateLimitExceeded)
	}

	imageURL := model.DefaultPostImage
	if image != nil && image.Reader != nil && s.fileStorage != nil {
		url, err := s.fileStorage.UploadImage(ctx, image.Reader, "posts", image.FileName)
		if err != nil {
			s.clearCooldowns(ctx, userID)
			return nil, err
		}
		imageURL = url
	}

	post := &model.Post{
		UserID:      userID,
		Description: req.Description,
		Image:       imageURL,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		s.clearCooldowns(ctx, userID)
		return nil, err
	}

	created, err := s.postRepo.FindByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	if s.searchService != nil {
		s.searchService.IndexPost(created)
	}

	return mapPostToResponse(created), nil
}

func (s *postService) GetAllPosts(ctx context.Context) ([]dto.PostResponse, error) {
	posts, err := s.postRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		responses = append(responses, *mapPostToResponse(&posts[i]))
	}

	return responses, nil
}

func (s *postService) GetPostByID(ctx context.Context, postID uuid.UUID) (*dto.PostResponse, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("post not found")
		}
		return nil, err
	}

	return mapPostToResponse(post), nil
}

func (s *postService) UpdatePost(ctx context.Context, userID, postID uuid.UUID, req dto.UpdatePostRequest, image *ImageFile) (*dto.PostResponse, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("post not found")
		}
		return nil, err
	}

	if !IsOwner(post.UserID, userID) {
		return nil, apperror.Forbidden("you can only update your own post")
	}

	if req.Description != "" {
		post.Description = req.Description
	}

	if image != nil && image.Reader != nil && s.fileStorage != nil {
		url, err := s.fileStorage.UploadImage(ctx, image.Reader, "posts", image.FileName)
		if err != nil {
			return nil, err
		}
		s.releaseImage(ctx, post.Image)
		post.Image = url
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	updated, err := s.postRepo.FindByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	if s.searchService != nil {
		s.searchService.IndexPost(updated)
	}

	return mapPostToResponse(updated), nil
}

func (s *postService) DeletePost(ctx context.Context, userID, postID uuid.UUID) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("post not found")
		}
		return err
	}

	if !IsOwner(post.UserID, userID) {
		return apperror.Forbidden("you can only delete your own post")
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	s.releaseImage(ctx, post.Image)

	if s.searchService != nil {
		s.searchService.RemovePost(post.ID.String())
	}

	return nil
}

// clearCooldowns rolls the rate-limit keys back when a creation fails after
// the cooldowns were set.
func (s *postService) clearCooldowns(ctx context.Context, userID uuid.UUID) {
	_ = ClearRateLimit(ctx, s.redisClient, userID, "global")
	_ = ClearRateLimit(ctx, s.redisClient, userID, "post")
}

// releaseImage removes a stored post image. The shared default placeholder is
// never deleted.
func (s *postService) releaseImage(ctx context.Context, imageURL string) {
	if s.fileStorage == nil || imageURL == "" || imageURL == model.DefaultPostImage {
		return
	}
	if err := s.fileStorage.DeleteImage(ctx, imageURL); err != nil {
		log.Printf("failed to release post image %s: %v", imageURL, err)
	}
}

func (s *postService) SearchPosts(ctx context.Context, filter dto.SearchPostsFilter) ([]dto.PostResponse, error) {
	if s.searchService == nil {
		return []dto.PostResponse{}, nil
	}

	ids, err := s.searchService.SearchPosts(filter.Query, filter.Limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PostResponse, 0, len(ids))
	for _, id := range ids {
		post, err := s.postRepo.FindByID(ctx, id)
		if err != nil {
			// Index may lag the store; skip stale hits.
			continue
		}
		responses = append(responses, *mapPostToResponse(post))
	}

	return responses, nil
}

func mapPostToResponse(post *model.Post) *dto.PostResponse {
	likes := make([]uuid.UUID, 0, len(post.Likes))
	for _, l := range post.Likes {
		likes = append(likes, l.UserID)
	}

	comments := make([]dto.CommentResponse, 0, len(post.Comments))
	for _, c := range post.Comments {
		comments = append(comments, dto.CommentResponse{
			UserID:    c.UserID,
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}

	return &dto.PostResponse{
		ID: post.ID,
		User: dto.PostAuthor{
			ID:       post.UserID,
			Username: post.User.Username,
			Avatar:   post.User.Avatar,
		},
		Description: post.Description,
		Image:       post.Image,
		Likes:       likes,
		Shares:      post.Shares,
		Comments:    comments,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}
