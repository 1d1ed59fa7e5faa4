package config

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type AppConfig struct {
	DebugMode      bool
	HTTPPort       int
	StorageDriver  string
	RedisConfig    *RedisConfig
	PostgresConfig *PostgresConfig
	JwtConfig      *JwtConfig
	GGAuthConfig   *GGAuthConfig
	ExecutorConfig *ExecutorConfig
	JudgeConfig    *JudgeConfig
	SeedConfig     *SeedConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:      getBoolEnv("DEBUG_MODE"),
		HTTPPort:       getIntEnv("HTTP_PORT", 8082),
		StorageDriver:  getEnv("STORAGE_DRIVER", StorageDriverPostgres),
		RedisConfig:    NewRedisConfig(),
		PostgresConfig: NewPostgresConfig(),
		JwtConfig:      NewJwtConfig(),
		GGAuthConfig:   NewGGAuthConfig(),
		ExecutorConfig: NewExecutorConfig(),
		JudgeConfig:    NewJudgeConfig(),
		SeedConfig:     NewSeedConfig(),
	}
}
