package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindOrCreateCreatesOnFirstSight(t *testing.T) {
	service := NewUserService(NewStubUserRepository())

	created, err := service.FindOrCreate(context.Background(), User{Uid: "alice"})

	require.NoError(t, err)
	assert.NotZero(t, created.Id)
	assert.Equal(t, "alice", created.Uid)
	assert.Equal(t, "alice", created.Username)
	assert.Equal(t, "alice", created.DisplayName)
}

func TestFindOrCreateReturnsExisting(t *testing.T) {
	repo := NewStubUserRepository()
	service := NewUserService(repo)
	first, err := service.FindOrCreate(context.Background(), User{Uid: "alice", DisplayName: "Alice"})
	require.NoError(t, err)

	second, err := service.FindOrCreate(context.Background(), User{Uid: "alice", DisplayName: "Someone Else"})

	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFindOrCreateRejectsEmptyUid(t *testing.T) {
	service := NewUserService(NewStubUserRepository())

	_, err := service.FindOrCreate(context.Background(), User{Uid: "   "})

	assert.ErrorIs(t, err, ErrUserDataInvalid)
}

func TestGetCurrentUserRequiresContextUser(t *testing.T) {
	service := NewUserService(NewStubUserRepository())

	_, err := service.GetCurrentUser(context.Background())

	assert.ErrorIs(t, err, ErrNoUser)
}

func TestGetCurrentUserLoadsFromRepo(t *testing.T) {
	repo := NewStubUserRepository()
	service := NewUserService(repo)
	created, err := service.FindOrCreate(context.Background(), User{Uid: "alice"})
	require.NoError(t, err)

	ctx := WithUser(context.Background(), created)
	loaded, err := service.GetCurrentUser(ctx)

	require.NoError(t, err)
	assert.Equal(t, created, loaded)
}
