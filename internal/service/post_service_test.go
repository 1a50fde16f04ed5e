package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"arjuna.id/healthquest/internal/dto"
	"arjuna.id/healthquest/internal/model"
	"arjuna.id/healthquest/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostService(repo *fakePostRepo, storage *fakeImageStorage) PostService {
	return NewPostService(repo, nil, storage, nil, 0, 0)
}

func TestCreatePostUsesDefaultImage(t *testing.T) {
	repo := newFakePostRepo()
	svc := newPostService(repo, &fakeImageStorage{})

	resp, err := svc.CreatePost(context.Background(), uuid.New(), dto.CreatePostRequest{Description: "salad for lunch"}, nil)
	require.NoError(t, err)

	assert.Equal(t, model.DefaultPostImage, resp.Image)
	assert.Equal(t, "salad for lunch", resp.Description)
	assert.Empty(t, resp.Likes)
	assert.Zero(t, resp.Shares)
}

func TestCreatePostUploadsImage(t *testing.T) {
	repo := newFakePostRepo()
	storage := &fakeImageStorage{}
	svc := newPostService(repo, storage)

	image := &ImageFile{Reader: strings.NewReader("jpeg bytes"), FileName: "lunch.jpg"}
	resp, err := svc.CreatePost(context.Background(), uuid.New(), dto.CreatePostRequest{Description: "lunch"}, image)
	require.NoError(t, err)

	assert.NotEqual(t, model.DefaultPostImage, resp.Image)
	require.Len(t, storage.uploaded, 1)
	assert.Equal(t, storage.uploaded[0], resp.Image)
}

func TestUpdatePostNonOwnerForbidden(t *testing.T) {
	repo := newFakePostRepo()
	owner := uuid.New()
	postID := seedPost(t, repo, owner)

	svc := newPostService(repo, &fakeImageStorage{})

	_, err := svc.UpdatePost(context.Background(), uuid.New(), postID, dto.UpdatePostRequest{Description: "hijacked"}, nil)
	assert.True(t, errors.Is(err, apperror.ErrForbidden))

	// A rejected update leaves the post untouched.
	post, err := repo.FindByID(context.Background(), postID)
	require.NoError(t, err)
	assert.Equal(t, "morning run done", post.Description)
}

func TestUpdatePostOwner(t *testing.T) {
	repo := newFakePostRepo()
	owner := uuid.New()
	postID := seedPost(t, repo, owner)

	svc := newPostService(repo, &fakeImageStorage{})

	resp, err := svc.UpdatePost(context.Background(), owner, postID, dto.UpdatePostRequest{Description: "evening run done"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "evening run done", resp.Description)
}

func TestUpdatePostReplacesImageAndReleasesOld(t *testing.T) {
	repo := newFakePostRepo()
	owner := uuid.New()
	storage := &fakeImageStorage{}
	svc := newPostService(repo, storage)

	first := &ImageFile{Reader: strings.NewReader("a"), FileName: "a.jpg"}
	created, err := svc.CreatePost(context.Background(), owner, dto.CreatePostRequest{Description: "meal"}, first)
	require.NoError(t, err)
	oldURL := created.Image

	second := &ImageFile{Reader: strings.NewReader("b"), FileName: "b.jpg"}
	updated, err := svc.UpdatePost(context.Background(), owner, created.ID, dto.UpdatePostRequest{}, second)
	require.NoError(t, err)

	assert.NotEqual(t, oldURL, updated.Image)
	assert.Contains(t, storage.deleted, oldURL)
}

func TestUpdatePostNeverReleasesDefaultImage(t *testing.T) {
	repo := newFakePostRepo()
	owner := uuid.New()
	storage := &fakeImageStorage{}
	svc := newPostService(repo, storage)

	created, err := svc.CreatePost(context.Background(), owner, dto.CreatePostRequest{Description: "meal"}, nil)
	require.NoError(t, err)
	require.Equal(t, model.DefaultPostImage, created.Image)

	image := &ImageFile{Reader: strings.NewReader("x"), FileName: "x.jpg"}
	_, err = svc.UpdatePost(context.Background(), owner, created.ID, dto.UpdatePostRequest{}, image)
	require.NoError(t, err)

	assert.NotContains(t, storage.deleted, model.DefaultPostImage)
}

func TestDeletePostNonOwnerForbidden(t *testing.T) {
	repo := newFakePostRepo()
	owner := uuid.New()
	postID := seedPost(t, repo, owner)

	svc := newPostService(repo, &fakeImageStorage{})

	err := svc.DeletePost(context.Background(), uuid.New(), postID)
	assert.True(t, errors.Is(err, apperror.ErrForbidden))

	_, err = repo.FindByID(context.Background(), postID)
	assert.NoError(t, err)
}

func TestDeletePostOwner(t *testing.T) {
	repo := newFakePostRepo()
	owner := uuid.New()
	storage := &fakeImageStorage{}
	svc := newPostService(repo, storage)

	image := &ImageFile{Reader: strings.NewReader("a"), FileName: "a.jpg"}
	created, err := svc.CreatePost(context.Background(), owner, dto.CreatePostRequest{Description: "meal"}, image)
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(context.Background(), owner, created.ID))

	_, err = svc.GetPostByID(context.Background(), created.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.Contains(t, storage.deleted, created.Image)
}

func TestDeletePostKeepsDefaultImage(t *testing.T) {
	repo := newFakePostRepo()
	owner := uuid.New()
	storage := &fakeImageStorage{}
	svc := newPostService(repo, storage)

	created, err := svc.CreatePost(context.Background(), owner, dto.CreatePostRequest{Description: "meal"}, nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeletePost(context.Background(), owner, created.ID))
	assert.Empty(t, storage.deleted)
}

func TestGetPostByIDUnknown(t *testing.T) {
	svc := newPostService(newFakePostRepo(), &fakeImageStorage{})

	_, err := svc.GetPostByID(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestIsOwner(t *testing.T) {
	id := uuid.New()
	assert.True(t, IsOwner(id, id))
	assert.False(t, IsOwner(id, uuid.New()))
}
