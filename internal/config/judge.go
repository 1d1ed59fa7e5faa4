package config

type JudgeConfig struct {
	DefaultLanguage string
	// MaxConcurrent bounds how many submissions are judged at once
	MaxConcurrent int64
	ListLimit     int
}

func NewJudgeConfig() *JudgeConfig {
	maxConcurrent := getIntEnv("JUDGE_MAX_CONCURRENT", 4)
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &JudgeConfig{
		DefaultLanguage: getEnv("JUDGE_DEFAULT_LANGUAGE", "javascript"),
		MaxConcurrent:   int64(maxConcurrent),
		ListLimit:       getIntEnv("JUDGE_LIST_LIMIT", 50),
	}
}
