// Package repotest holds behaviour tests every domain.UserRepository
// implementation must pass.
package repotest

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/user-registry/internal/domain"
)

// Factory returns a fresh, empty repository for one subtest.
type Factory func(t *testing.T) domain.UserRepository

// Run exercises repo against the UserRepository contract.
func Run(t *testing.T, newRepo Factory) {
	t.Run("SaveAndFind", func(t *testing.T) { testSaveAndFind(t, newRepo(t)) })
	t.Run("FindMissing", func(t *testing.T) { testFindMissing(t, newRepo(t)) })
	t.Run("DuplicateSavePanics", func(t *testing.T) { testDuplicateSavePanics(t, newRepo(t)) })
	t.Run("GetAllOrder", func(t *testing.T) { testGetAllOrder(t, newRepo(t)) })
	t.Run("GetAllEmpty", func(t *testing.T) { testGetAllEmpty(t, newRepo(t)) })
	t.Run("CopyIsolation", func(t *testing.T) { testCopyIsolation(t, newRepo(t)) })
	t.Run("EmptyFields", func(t *testing.T) { testEmptyFields(t, newRepo(t)) })
}

// SavePanic calls Save and returns the recovered panic value, or nil.
func SavePanic(ctx context.Context, repo domain.UserRepository, u *domain.User) (recovered any, err error) {
	defer func() { recovered = recover() }()
	err = repo.Save(ctx, u)
	return nil, err
}

func testSaveAndFind(t *testing.T, repo domain.UserRepository) {
	ctx := context.Background()
	u := domain.NewUser("find@mail.com", "finder")
	require.NoError(t, repo.Save(ctx, u))

	found, err := repo.FindByEmail(ctx, "find@mail.com")
	require.NoError(t, err)
	assert.Equal(t, *u, *found)
	assert.NotSame(t, u, found)
}

func testFindMissing(t *testing.T, repo domain.UserRepository) {
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, domain.NewUser("present@mail.com", "present")))

	found, err := repo.FindByEmail(ctx, "absent@mail.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, found)
}

func testDuplicateSavePanics(t *testing.T, repo domain.UserRepository) {
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, domain.NewUser("dup@mail.com", "first")))

	recovered, _ := SavePanic(ctx, repo, domain.NewUser("dup@mail.com", "second"))
	require.NotNil(t, recovered, "expected Save to panic on duplicate email")

	err, ok := recovered.(error)
	require.True(t, ok, "panic value should be an error, got %T", recovered)
	assert.True(t, errors.Is(err, domain.ErrUserAlreadyExists))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "first", all[0].Username)
}

func testGetAllOrder(t *testing.T, repo domain.UserRepository) {
	ctx := context.Background()
	var want []domain.User
	for i := 5; i >= 1; i-- {
		u := domain.NewUser(fmt.Sprintf("user%d@mail.com", i), fmt.Sprintf("user%d", i))
		require.NoError(t, repo.Save(ctx, u))
		want = append(want, *u)
	}

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, all)
}

func testGetAllEmpty(t *testing.T, repo domain.UserRepository) {
	all, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func testCopyIsolation(t *testing.T, repo domain.UserRepository) {
	ctx := context.Background()
	saved := domain.NewUser("iso@mail.com", "iso")
	require.NoError(t, repo.Save(ctx, saved))

	// The caller's own value is not retained either.
	saved.Username = "mutated-before-read"

	found, err := repo.FindByEmail(ctx, "iso@mail.com")
	require.NoError(t, err)
	assert.Equal(t, "iso", found.Username)
	found.Username = "mutated-find"

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	all[0].Username = "mutated-list"
	all[0].Email = "other@mail.com"

	again, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.User{{Email: "iso@mail.com", Username: "iso"}}, again)
}

func testEmptyFields(t *testing.T, repo domain.UserRepository) {
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, domain.NewUser("", "")))

	found, err := repo.FindByEmail(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, domain.User{}, *found)
}
