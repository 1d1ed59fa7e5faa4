package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseLanguages(t *testing.T) {
	got := ParseLanguages("javascript=node --stack-size=65500; python = python3 -I ;broken;=x;ruby=")
	assert.Equal(t, map[string]string{
		"javascript": "node --stack-size=65500",
		"python":     "python3 -I",
	}, got)
}

func TestNewSystemConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("QUESTION_CACHE_TTL_SEC", "10")
	t.Setenv("EXECUTOR_LANGUAGES", "javascript=node")
	t.Setenv("JUDGE_MAX_CONCURRENT", "0")
	t.Setenv("JUDGE_DEFAULT_LANGUAGE", "")
	t.Setenv("QUESTIONS_DIR", "/srv/questions")
	t.Setenv("SEED_USER", "admin")

	cfg := NewSystemConfig()
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, 10*time.Second, cfg.RedisConfig.QuestionTTL)
	assert.Equal(t, map[string]string{"javascript": "node"}, cfg.ExecutorConfig.Languages)
	assert.Equal(t, int64(1), cfg.JudgeConfig.MaxConcurrent)
	assert.Equal(t, "javascript", cfg.JudgeConfig.DefaultLanguage)
	assert.Equal(t, ExecutorDriverProcess, cfg.ExecutorConfig.Driver)
	assert.Equal(t, "/srv/questions", cfg.SeedConfig.QuestionsDir)
	assert.Equal(t, "admin", cfg.SeedConfig.UserName)
}
