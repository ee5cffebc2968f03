package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/user-registry/internal/domain"
	"github.com/msomdec/user-registry/internal/repository/repotest"
	"github.com/msomdec/user-registry/internal/repository/sqlite"
)

func TestUserRepository_Contract(t *testing.T) {
	repotest.Run(t, func(t *testing.T) domain.UserRepository {
		return sqlite.NewUserRepository(newTestDB(t))
	})
}

func TestUserRepository_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "users.db")
	ctx := context.Background()

	db, err := sqlite.New(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(ctx))
	require.NoError(t, db.Users().Save(ctx, domain.NewUser("keep@mail.com", "keep")))
	require.NoError(t, db.Close())

	db, err = sqlite.New(dbPath)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Migrate(ctx))

	found, err := db.Users().FindByEmail(ctx, "keep@mail.com")
	require.NoError(t, err)
	assert.Equal(t, "keep", found.Username)
}

func TestUserRepository_ClosedDB(t *testing.T) {
	db, err := sqlite.New(sqlite.MemoryDSN)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))
	repo := db.Users()
	require.NoError(t, db.Close())

	err = repo.Save(context.Background(), domain.NewUser("x@mail.com", "x"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUserAlreadyExists)
}
