package process

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/shlex"

	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

var _ secondary.CodeExecutor = (*Executor)(nil)

// OutputLimitMessage is the fault text for a run whose output was cut off.
const OutputLimitMessage = "output limit exceeded"

// time given to a killed process to release its pipes
const waitDelay = 200 * time.Millisecond

var sourceExt = map[string]string{
	"javascript": ".js",
	"python":     ".py",
	"ruby":       ".rb",
	"sh":         ".sh",
}

// Executor runs code with a local interpreter. Every call gets a fresh
// working directory and a fresh process, both gone when Execute returns.
type Executor struct {
	commands  map[string][]string
	maxOutput int
	tempRoot  string
	logger    primary.Logger
}

// New builds an executor from interpreter command lines keyed by language.
func New(cfg *config.ExecutorConfig, logger primary.Logger) (*Executor, error) {
	commands := make(map[string][]string, len(cfg.Languages))
	for lang, line := range cfg.Languages {
		argv, err := shlex.Split(line)
		if err != nil {
			return nil, fmt.Errorf("parse command for %s: %w", lang, err)
		}
		if len(argv) == 0 {
			return nil, fmt.Errorf("empty command for %s", lang)
		}
		commands[lang] = argv
	}

	maxOutput := cfg.MaxOutputKB << 10
	if maxOutput <= 0 {
		maxOutput = 1 << 20
	}
	return &Executor{
		commands:  commands,
		maxOutput: maxOutput,
		logger:    logger,
	}, nil
}

func (e *Executor) Languages() []string {
	langs := make([]string, 0, len(e.commands))
	for lang := range e.commands {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Execute runs req.Code with req.Input on stdin. Whatever the program writes
// to stdout is its result.
func (e *Executor) Execute(ctx context.Context, req domain.ExecutionRequest) (*domain.ExecutionOutcome, error) {
	argv, ok := e.commands[req.Language]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedLanguage, req.Language)
	}

	dir, err := os.MkdirTemp(e.tempRoot, "judge-*")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			e.logger.Warn("Failed to remove work dir", "dir", dir, "error", err)
		}
	}()

	src := filepath.Join(dir, "main"+sourceExt[req.Language])
	if err := os.WriteFile(src, []byte(req.Code), 0o600); err != nil {
		return nil, fmt.Errorf("write source: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, req.TimeLimit)
	defer cancel()

	args := append(append([]string{}, argv[1:]...), src)
	cmd := exec.CommandContext(runCtx, argv[0], args...)
	cmd.Dir = dir
	cmd.Env = []string{"PATH=" + os.Getenv("PATH"), "HOME=" + dir}
	cmd.Stdin = strings.NewReader(req.Input)
	stdout := newLimitedBuffer(e.maxOutput)
	stderr := newLimitedBuffer(e.maxOutput)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay
	isolateProcess(cmd)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", argv[0], err)
	}
	waitErr := cmd.Wait()
	elapsed := time.Since(start)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outcome := &domain.ExecutionOutcome{
		ElapsedTimeMs: float64(elapsed.Microseconds()) / 1000,
		PeakMemoryMb:  peakMemoryMb(cmd.ProcessState),
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		outcome.TimedOut = true
		outcome.Error = domain.TimeoutMessage
		return outcome, nil
	}

	var exitErr *exec.ExitError
	switch {
	case waitErr == nil, errors.Is(waitErr, exec.ErrWaitDelay):
	case errors.As(waitErr, &exitErr):
		outcome.Error = faultMessage(stderr.String(), exitErr)
		return outcome, nil
	default:
		return nil, fmt.Errorf("wait %s: %w", argv[0], waitErr)
	}

	if stdout.Truncated() {
		outcome.Error = OutputLimitMessage
		return outcome, nil
	}
	outcome.Stdout = stdout.String()
	return outcome, nil
}

func faultMessage(stderr string, exitErr *exec.ExitError) string {
	if msg := strings.TrimSpace(stderr); msg != "" {
		return msg
	}
	return exitErr.Error()
}
