package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"gitlab.com/codejudge.net/internal/adapter/crypto"
	"gitlab.com/codejudge.net/internal/adapter/logging"
	"gitlab.com/codejudge.net/internal/adapter/memory"
	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/services/auth"
	"gitlab.com/codejudge.net/internal/domain"
)

const seedQuestion = `
id = "5b0f4e56-3a3c-4f0e-9a59-0a5f3f1e8d11"
title = "Sum"
max_runtime_ms = 1000
max_memory_mb = 64

[[test_cases]]
input = "1 2"
expected_output = "3"
`

func memoryStorage() *storage {
	return &storage{
		questions:   memory.NewQuestionStore(),
		submissions: memory.NewSubmissionStore(),
		users:       memory.NewUserStore(),
	}
}

func TestSeedStorage_PopulatesMemoryDriver(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sum.toml"), []byte(seedQuestion), 0o644))

	s := memoryStorage()
	jwtProvider := crypto.NewJWTService(&config.JwtConfig{Secret: "seed-secret"})
	cfg := &config.SeedConfig{QuestionsDir: dir, UserName: "admin", Password: "hunter22"}
	logger := logging.FromZap(zaptest.NewLogger(t))

	seeded, err := seedStorage(ctx, cfg, s, jwtProvider, logger)
	require.NoError(t, err)
	assert.Equal(t, 2, seeded)

	q, err := s.questions.GetQuestion(ctx, uuid.MustParse("5b0f4e56-3a3c-4f0e-9a59-0a5f3f1e8d11"))
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, "Sum", q.Title)

	password := "hunter22"
	token, err := auth.NewLocalAuthService(s.users, jwtProvider).Login(ctx, &domain.Users{
		UserName:     "admin",
		PasswordHash: &password,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	// a second start keeps the existing user
	seeded, err = seedStorage(ctx, cfg, s, jwtProvider, logger)
	require.NoError(t, err)
	assert.Equal(t, 1, seeded)
}

func TestSeedStorage_NothingConfigured(t *testing.T) {
	seeded, err := seedStorage(context.Background(), &config.SeedConfig{}, memoryStorage(),
		crypto.NewJWTService(&config.JwtConfig{Secret: "x"}), logging.FromZap(zaptest.NewLogger(t)))
	require.NoError(t, err)
	assert.Zero(t, seeded)
}

func TestSeedStorage_Rejects(t *testing.T) {
	logger := logging.FromZap(zaptest.NewLogger(t))
	jwtProvider := crypto.NewJWTService(&config.JwtConfig{Secret: "x"})

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.toml"), []byte(`id = "nope"`), 0o644))
	_, err := seedStorage(context.Background(), &config.SeedConfig{QuestionsDir: dir}, memoryStorage(), jwtProvider, logger)
	assert.Error(t, err)

	_, err = seedStorage(context.Background(), &config.SeedConfig{UserName: "admin"}, memoryStorage(), jwtProvider, logger)
	assert.Error(t, err)
}
