package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/msomdec/user-registry/internal/domain"
	"github.com/msomdec/user-registry/internal/repository/memory"
	"github.com/msomdec/user-registry/internal/repository/sqlite"
	"github.com/msomdec/user-registry/internal/service"
)

type config struct {
	store    string
	dbPath   string
	logLevel slog.Level
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Stdout carries the user listing, so diagnostics go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.logLevel}))
	slog.SetDefault(logger)

	ctx := context.Background()

	users, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open user store", "store", cfg.store, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	if err := run(ctx, os.Stdout, users, logger); err != nil {
		slog.Error("run failed", "error", err)
		closeStore()
		os.Exit(1)
	}
}

// run seeds three users, prints a lookup and the listing, registers a fourth
// user through RegisterUserService and prints the listing again.
func run(ctx context.Context, out io.Writer, users domain.UserRepository, logger *slog.Logger) error {
	for _, u := range []*domain.User{
		domain.NewUser("test1@mail.com", "test1"),
		domain.NewUser("test2@mail.com", "test2"),
		domain.NewUser("test3@mail.com", "test3"),
	} {
		if err := users.Save(ctx, u); err != nil {
			return fmt.Errorf("seed %s: %w", u.Email, err)
		}
	}
	logger.Debug("users seeded", "count", 3)

	found, err := users.FindByEmail(ctx, "test1@mail.com")
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}
	if err := found.Print(out); err != nil {
		return err
	}

	if err := printAll(ctx, out, users); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, "After"); err != nil {
		return err
	}

	register := service.NewRegisterUserService(users, logger)
	if _, err := register.Execute(ctx, service.UserData{Email: "test4@mail.com", Username: "test4"}); err != nil {
		return fmt.Errorf("register user: %w", err)
	}

	return printAll(ctx, out, users)
}

func printAll(ctx context.Context, out io.Writer, users domain.UserRepository) error {
	all, err := users.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	for _, u := range all {
		if err := u.Print(out); err != nil {
			return err
		}
	}
	return nil
}

// openStore returns the configured repository and a func releasing it.
func openStore(ctx context.Context, cfg config) (domain.UserRepository, func() error, error) {
	switch cfg.store {
	case "memory":
		return memory.NewUserRepository(), func() error { return nil }, nil
	case "sqlite":
		db, err := sqlite.New(cfg.dbPath)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		slog.Info("sqlite store ready", "path", cfg.dbPath)
		return db.Users(), db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.store)
	}
}

func loadConfig() (config, error) {
	cfg := config{
		store:  envOrDefault("USER_STORE", "memory"),
		dbPath: envOrDefault("DATABASE_PATH", sqlite.MemoryDSN),
	}
	if cfg.store != "memory" && cfg.store != "sqlite" {
		return cfg, fmt.Errorf("USER_STORE must be memory or sqlite, got %q", cfg.store)
	}
	if err := cfg.logLevel.UnmarshalText([]byte(strings.ToLower(envOrDefault("LOG_LEVEL", "info")))); err != nil {
		return cfg, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return cfg, nil
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
