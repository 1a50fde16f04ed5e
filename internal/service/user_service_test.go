package service

import (
	"context"
	"errors"
	"testing"

	"arjuna.id/healthquest/internal/dto"
	"arjuna.id/healthquest/internal/model"
	"arjuna.id/healthquest/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateUserDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&model.User{Username: "alice", Email: "alice@example.com"})
	bob := repo.add(&model.User{Username: "bob", Email: "bob@example.com"})

	svc := NewUserService(repo)

	_, err := svc.UpdateUser(context.Background(), bob.ID, dto.UpdateUserRequest{Username: strPtr("alice")})
	assert.True(t, errors.Is(err, apperror.ErrConflict))
}

func TestUpdateUserDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&model.User{Username: "alice", Email: "alice@example.com"})
	bob := repo.add(&model.User{Username: "bob", Email: "bob@example.com"})

	svc := NewUserService(repo)

	_, err := svc.UpdateUser(context.Background(), bob.ID, dto.UpdateUserRequest{Email: strPtr("alice@example.com")})
	assert.True(t, errors.Is(err, apperror.ErrConflict))

	// The rejected update leaves the account untouched.
	stored, err := repo.FindByID(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", stored.Email)
}

func TestUpdateUserSameEmailIsNoConflict(t *testing.T) {
	repo := newFakeUserRepo()
	bob := repo.add(&model.User{Username: "bob", Email: "bob@example.com"})

	svc := NewUserService(repo)

	updated, err := svc.UpdateUser(context.Background(), bob.ID, dto.UpdateUserRequest{
		Email: strPtr("bob@example.com"),
		Role:  strPtr("admin"),
	})
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", updated.Email)
	assert.Equal(t, "admin", updated.Role)
}

func TestUpdateUserFields(t *testing.T) {
	repo := newFakeUserRepo()
	bob := repo.add(&model.User{Username: "bob", Email: "bob@example.com"})

	svc := NewUserService(repo)

	updated, err := svc.UpdateUser(context.Background(), bob.ID, dto.UpdateUserRequest{
		Username: strPtr("bobby"),
		Email:    strPtr("bobby@example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, "bobby", updated.Username)
	assert.Equal(t, "bobby@example.com", updated.Email)
	assert.Empty(t, updated.PasswordHash)
}

func TestUpdateUserUnknown(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())

	_, err := svc.UpdateUser(context.Background(), uuid.New(), dto.UpdateUserRequest{})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestDeleteUser(t *testing.T) {
	repo := newFakeUserRepo()
	bob := repo.add(&model.User{Username: "bob", Email: "bob@example.com"})

	svc := NewUserService(repo)

	require.NoError(t, svc.DeleteUser(context.Background(), bob.ID))

	_, err := svc.GetUserByID(context.Background(), bob.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}
