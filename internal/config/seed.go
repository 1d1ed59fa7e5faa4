package config

import "os"

// SeedConfig describes data loaded into storage at startup. It is what makes
// the memory storage driver usable.
type SeedConfig struct {
	// QuestionsDir holds question TOML files, upserted on every start
	QuestionsDir string
	// UserName and Password create a local user when no user of that name
	// exists yet
	UserName string
	Password string
}

func NewSeedConfig() *SeedConfig {
	return &SeedConfig{
		QuestionsDir: os.Getenv("QUESTIONS_DIR"),
		UserName:     os.Getenv("SEED_USER"),
		Password:     os.Getenv("SEED_PASSWORD"),
	}
}
