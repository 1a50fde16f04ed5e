package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"arjuna.id/healthquest/internal/dto"
	"arjuna.id/healthquest/internal/model"
	"arjuna.id/healthquest/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret-password",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, nil, "test-secret", time.Hour)
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerRequest(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, registered.AccessToken)
	assert.Equal(t, "Bearer", registered.TokenType)
	assert.Equal(t, int64(time.Hour.Seconds()), registered.ExpiresIn)
	assert.Equal(t, model.DefaultAvatar, registered.User.Avatar)
	assert.Empty(t, registered.User.PasswordHash)

	loggedIn, err := svc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "secret-password"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, loggedIn.User.ID)
}

func TestRegisterKeepsStoredCredential(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, nil, "test-secret", time.Hour)

	// The response scrubs the hash, but the persisted account must keep it.
	_, err := svc.Register(context.Background(), registerRequest(), nil)
	require.NoError(t, err)

	stored, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, nil, "test-secret", time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest(), nil)
	require.NoError(t, err)

	dup := registerRequest()
	dup.Email = "other@example.com"
	_, err = svc.Register(ctx, dup, nil)
	assert.True(t, errors.Is(err, apperror.ErrConflict))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, nil, "test-secret", time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest(), nil)
	require.NoError(t, err)

	dup := registerRequest()
	dup.Username = "alice2"
	_, err = svc.Register(ctx, dup, nil)
	assert.True(t, errors.Is(err, apperror.ErrConflict))
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, nil, "test-secret", time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest(), nil)
	require.NoError(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "wrong"})
	assert.True(t, errors.Is(err, apperror.ErrUnauthorized))
}

func TestLoginUnknownUser(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), nil, "test-secret", time.Hour)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ghost", Password: "whatever"})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
