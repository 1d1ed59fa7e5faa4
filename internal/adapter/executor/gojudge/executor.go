package gojudge

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/criyle/go-judge/pb"
	"github.com/google/shlex"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/static/errs"
)

var _ secondary.CodeExecutor = (*Executor)(nil)

const (
	sourceName    = "main"
	procLimit     = 50
	minHeadroomMb = 16
)

// Executor runs code inside a remote go-judge sandbox. Each call is a single
// Exec request, so no files survive between calls.
type Executor struct {
	client      pb.ExecutorClient
	commands    map[string][]string
	memoryLimit uint64 // bytes, used when a request carries no limit
	maxOutput   int64
	logger      primary.Logger
}

// Dial connects to a go-judge gRPC endpoint.
func Dial(cfg *config.ExecutorConfig, logger primary.Logger) (*Executor, *grpc.ClientConn, error) {
	conn, err := grpc.NewClient(cfg.GoJudgeAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("dial go-judge %s: %w", cfg.GoJudgeAddr, err)
	}
	e, err := New(pb.NewExecutorClient(conn), cfg, logger)
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return e, conn, nil
}

func New(client pb.ExecutorClient, cfg *config.ExecutorConfig, logger primary.Logger) (*Executor, error) {
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
	maxOutput := int64(cfg.MaxOutputKB) << 10
	if maxOutput <= 0 {
		maxOutput = 1 << 20
	}
	memoryLimit := uint64(cfg.MemoryLimitMB) << 20
	if memoryLimit == 0 {
		memoryLimit = 512 << 20
	}
	return &Executor{
		client:      client,
		commands:    commands,
		memoryLimit: memoryLimit,
		maxOutput:   maxOutput,
		logger:      logger,
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

func (e *Executor) Execute(ctx context.Context, req domain.ExecutionRequest) (*domain.ExecutionOutcome, error) {
	argv, ok := e.commands[req.Language]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedLanguage, req.Language)
	}

	ceiling := e.sandboxMemory(req)
	resp, err := e.client.Exec(ctx, e.buildRequest(argv, req, ceiling))
	if err != nil {
		return nil, fmt.Errorf("go-judge exec: %w", err)
	}
	if msg := resp.GetError(); msg != "" {
		return nil, fmt.Errorf("go-judge: %s", msg)
	}
	results := resp.GetResults()
	if len(results) != 1 {
		return nil, fmt.Errorf("go-judge: expected 1 result, got %d", len(results))
	}
	return e.convertResult(results[0], ceiling)
}

// sandboxMemory is the ceiling handed to the sandbox. It sits above the
// question's limit so an overrun is measured and reported as a memory limit
// verdict by the judge rather than cut short at exactly the limit.
func (e *Executor) sandboxMemory(req domain.ExecutionRequest) uint64 {
	if req.MemoryLimitMb <= 0 {
		return e.memoryLimit
	}
	headroom := req.MemoryLimitMb / 4
	if headroom < minHeadroomMb {
		headroom = minHeadroomMb
	}
	return uint64(req.MemoryLimitMb+headroom) << 20
}

func memoryFile(content string) *pb.Request_File {
	return pb.Request_File_builder{
		Memory: pb.Request_MemoryFile_builder{Content: []byte(content)}.Build(),
	}.Build()
}

func pipeFile(name string, limit int64) *pb.Request_File {
	return pb.Request_File_builder{
		Pipe: pb.Request_PipeCollector_builder{Name: name, Max: limit}.Build(),
	}.Build()
}

func (e *Executor) buildRequest(argv []string, req domain.ExecutionRequest, ceiling uint64) *pb.Request {
	args := append(append([]string{}, argv...), sourceName)
	limit := uint64(req.TimeLimit.Nanoseconds())
	cmd := pb.Request_CmdType_builder{
		Args: args,
		Env:  []string{"PATH=/usr/local/bin:/usr/bin:/bin"},
		Files: []*pb.Request_File{
			memoryFile(req.Input),
			pipeFile("stdout", e.maxOutput),
			pipeFile("stderr", e.maxOutput),
		},
		CpuTimeLimit:   limit,
		ClockTimeLimit: limit,
		MemoryLimit:    ceiling,
		ProcLimit:      procLimit,
		CopyIn: map[string]*pb.Request_File{
			sourceName: memoryFile(req.Code),
		},
	}.Build()
	return pb.Request_builder{Cmd: []*pb.Request_CmdType{cmd}}.Build()
}

// convertResult maps a sandbox result to an outcome. ceiling is the memory
// limit the run was given, in bytes.
func (e *Executor) convertResult(r *pb.Response_Result, ceiling uint64) (*domain.ExecutionOutcome, error) {
	outcome := &domain.ExecutionOutcome{
		ElapsedTimeMs: float64(r.GetRunTime()) / float64(time.Millisecond),
		PeakMemoryMb:  float64(r.GetMemory()) / (1 << 20),
	}

	switch r.GetStatus() {
	case pb.Response_Result_Accepted:
		outcome.Stdout = string(r.GetFiles()["stdout"])
	case pb.Response_Result_TimeLimitExceeded:
		outcome.TimedOut = true
		outcome.Error = domain.TimeoutMessage
	case pb.Response_Result_MemoryLimitExceeded:
		outcome.Error = domain.MemoryLimitMessage
		if killedAt := float64(ceiling) / (1 << 20); outcome.PeakMemoryMb < killedAt {
			outcome.PeakMemoryMb = killedAt
		}
	case pb.Response_Result_InternalError, pb.Response_Result_FileError:
		return nil, fmt.Errorf("go-judge %s: %s", r.GetStatus(), r.GetError())
	default:
		outcome.Error = faultMessage(r)
	}
	return outcome, nil
}

func faultMessage(r *pb.Response_Result) string {
	if msg := strings.TrimSpace(string(r.GetFiles()["stderr"])); msg != "" {
		return msg
	}
	if msg := r.GetError(); msg != "" {
		return msg
	}
	if r.GetStatus() == pb.Response_Result_NonZeroExitStatus {
		return fmt.Sprintf("exit status %d", r.GetExitStatus())
	}
	return r.GetStatus().String()
}
