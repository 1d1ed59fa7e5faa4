package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/questionfile"
)

// seedStorage upserts the questions found in cfg.QuestionsDir and creates the
// configured local user when it does not exist yet. It runs for every storage
// driver and is the only way to populate the memory driver.
func seedStorage(ctx context.Context, cfg *config.SeedConfig, s *storage, jwtProvider primary.JWTService, logger primary.Logger) (int, error) {
	seeded := 0
	if cfg.QuestionsDir != "" {
		questions, err := questionfile.LoadDir(cfg.QuestionsDir)
		if err != nil {
			return 0, fmt.Errorf("failed to load questions: %w", err)
		}
		for _, q := range questions {
			if err := s.questions.SaveQuestion(ctx, q); err != nil {
				return seeded, fmt.Errorf("failed to save question %s: %w", q.ID, err)
			}
			seeded++
		}
		logger.Info("Seeded questions", "dir", cfg.QuestionsDir, "count", len(questions))
	}

	if cfg.UserName == "" {
		return seeded, nil
	}
	if cfg.Password == "" {
		return seeded, fmt.Errorf("seed user %q has no password", cfg.UserName)
	}
	existing, err := s.users.GetByUserName(ctx, cfg.UserName)
	if err != nil {
		return seeded, fmt.Errorf("failed to look up seed user: %w", err)
	}
	if existing != nil {
		logger.Debug("Seed user already exists", "username", cfg.UserName)
		return seeded, nil
	}

	hash, err := jwtProvider.EncryptPassword(ctx, cfg.Password)
	if err != nil {
		return seeded, fmt.Errorf("failed to hash seed password: %w", err)
	}
	user := &domain.Users{
		ID:           uuid.New(),
		UserName:     cfg.UserName,
		PasswordHash: &hash,
		AuthProvider: string(domain.ProviderLocal),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return seeded, fmt.Errorf("failed to create seed user: %w", err)
	}
	logger.Info("Created seed user", "username", cfg.UserName, "id", user.ID)
	return seeded + 1, nil
}
