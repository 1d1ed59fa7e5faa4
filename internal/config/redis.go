package config

import "time"

type RedisConfig struct {
	DB       int
	Url      string
	Password string
	// QuestionTTL is how long a cached question stays valid. Zero disables
	// the cache.
	QuestionTTL time.Duration
}

func NewRedisConfig() *RedisConfig {
	return &RedisConfig{
		DB:          getIntEnv("REDIS_DB", 0),
		Url:         getEnv("REDIS_ADDR", "localhost:6379"),
		Password:    getEnv("REDIS_PASSWORD", ""),
		QuestionTTL: time.Duration(getIntEnv("QUESTION_CACHE_TTL_SEC", 300)) * time.Second,
	}
}
