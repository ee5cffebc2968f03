package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/user-registry/internal/domain"
	"github.com/msomdec/user-registry/internal/repository/memory"
)

const wantOutput = `email: test1@mail.com, username: test1
email: test1@mail.com, username: test1
email: test2@mail.com, username: test2
email: test3@mail.com, username: test3
After
email: test1@mail.com, username: test1
email: test2@mail.com, username: test2
email: test3@mail.com, username: test3
email: test4@mail.com, username: test4
`

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestRun_Memory(t *testing.T) {
	var out bytes.Buffer
	repo := memory.NewUserRepository()

	require.NoError(t, run(context.Background(), &out, repo, quiet))
	assert.Equal(t, wantOutput, out.String())
	assert.Equal(t, 4, repo.Len())
}

func TestRun_SQLite(t *testing.T) {
	users, closeStore, err := openStore(context.Background(), config{store: "sqlite", dbPath: ":memory:"})
	require.NoError(t, err)
	defer closeStore()

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, users, quiet))
	assert.Equal(t, wantOutput, out.String())
}

func TestRun_PreseededDuplicatePanics(t *testing.T) {
	repo := memory.NewUserRepository()
	require.NoError(t, repo.Save(context.Background(), domain.NewUser("test2@mail.com", "early")))

	assert.Panics(t, func() {
		_ = run(context.Background(), io.Discard, repo, quiet)
	})
}

func TestRun_RegistrationConflict(t *testing.T) {
	repo := memory.NewUserRepository()
	require.NoError(t, repo.Save(context.Background(), domain.NewUser("test4@mail.com", "early")))

	err := run(context.Background(), io.Discard, repo, quiet)
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("USER_STORE", "")
		t.Setenv("DATABASE_PATH", "")
		t.Setenv("LOG_LEVEL", "")

		cfg, err := loadConfig()
		require.NoError(t, err)
		assert.Equal(t, "memory", cfg.store)
		assert.Equal(t, ":memory:", cfg.dbPath)
		assert.Equal(t, slog.LevelInfo, cfg.logLevel)
	})

	t.Run("sqlite debug", func(t *testing.T) {
		t.Setenv("USER_STORE", "sqlite")
		t.Setenv("DATABASE_PATH", "/tmp/users.db")
		t.Setenv("LOG_LEVEL", "DEBUG")

		cfg, err := loadConfig()
		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.store)
		assert.Equal(t, "/tmp/users.db", cfg.dbPath)
		assert.Equal(t, slog.LevelDebug, cfg.logLevel)
	})

	t.Run("bad store", func(t *testing.T) {
		t.Setenv("USER_STORE", "postgres")
		_, err := loadConfig()
		assert.Error(t, err)
	})

	t.Run("bad level", func(t *testing.T) {
		t.Setenv("USER_STORE", "")
		t.Setenv("LOG_LEVEL", "loud")
		_, err := loadConfig()
		assert.Error(t, err)
	})
}

func TestOpenStore_Unknown(t *testing.T) {
	_, _, err := openStore(context.Background(), config{store: "redis"})
	assert.Error(t, err)
}
