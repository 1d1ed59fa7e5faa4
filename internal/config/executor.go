package config

import (
	"os"
	"strings"
)

const (
	ExecutorDriverProcess = "process"
	ExecutorDriverGoJudge = "gojudge"
)

// DefaultLanguages maps language ids to interpreter command lines. The source
// file path is appended as the last argument.
var DefaultLanguages = map[string]string{
	"javascript": "node --stack-size=65500",
	"python":     "python3 -I",
}

type ExecutorConfig struct {
	Driver string
	// Languages maps a language id to an interpreter command line
	Languages     map[string]string
	MaxOutputKB   int
	GoJudgeAddr   string
	MemoryLimitMB int
}

func NewExecutorConfig() *ExecutorConfig {
	languages := ParseLanguages(os.Getenv("EXECUTOR_LANGUAGES"))
	if len(languages) == 0 {
		languages = DefaultLanguages
	}
	return &ExecutorConfig{
		Driver:        getEnv("EXECUTOR_DRIVER", ExecutorDriverProcess),
		Languages:     languages,
		MaxOutputKB:   getIntEnv("EXECUTOR_MAX_OUTPUT_KB", 1024),
		GoJudgeAddr:   getEnv("GOJUDGE_ADDR", "localhost:5051"),
		MemoryLimitMB: getIntEnv("GOJUDGE_MEMORY_LIMIT_MB", 512),
	}
}

// ParseLanguages reads "lang=command;lang=command". Malformed entries are
// skipped.
func ParseLanguages(s string) map[string]string {
	out := make(map[string]string)
	for _, entry := range strings.Split(s, ";") {
		name, cmd, ok := strings.Cut(entry, "=")
		name, cmd = strings.TrimSpace(name), strings.TrimSpace(cmd)
		if !ok || name == "" || cmd == "" {
			continue
		}
		out[name] = cmd
	}
	return out
}
