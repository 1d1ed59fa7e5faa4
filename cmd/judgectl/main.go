// Command judgectl judges code against TOML question files without running
// the service, and imports question files into Postgres.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/urfave/cli/v3"

	"gitlab.com/codejudge.net/internal/adapter/executor/process"
	"gitlab.com/codejudge.net/internal/adapter/logging"
	"gitlab.com/codejudge.net/internal/adapter/postgres/questionrepository"
	"gitlab.com/codejudge.net/internal/config"
	"gitlab.com/codejudge.net/internal/core/services/judge"
	"gitlab.com/codejudge.net/internal/domain"
	"gitlab.com/codejudge.net/internal/questionfile"
)

var questionFlag = &cli.StringFlag{
	Name:     "question",
	Aliases:  []string{"q"},
	Usage:    "path to the question TOML file",
	Required: true,
}

var languageFlag = &cli.StringFlag{
	Name:    "language",
	Aliases: []string{"l"},
	Value:   "javascript",
	Sources: cli.EnvVars("JUDGE_DEFAULT_LANGUAGE"),
}

func main() {
	cmd := &cli.Command{
		Name:  "judgectl",
		Usage: "judge code against question files",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Usage: "log every test case"},
		},
		Commands: []*cli.Command{
			{
				Name:  "judge",
				Usage: "judge a source file against a question",
				Flags: []cli.Flag{
					questionFlag,
					languageFlag,
					&cli.StringFlag{Name: "code", Aliases: []string{"c"}, Usage: "path to the source file", Required: true},
				},
				Action: judgeAction,
			},
			{
				Name:   "verify",
				Usage:  "check that a question's solution code is accepted",
				Flags:  []cli.Flag{questionFlag, languageFlag},
				Action: verifyAction,
			},
			{
				Name:  "import",
				Usage: "upsert a question into Postgres",
				Flags: []cli.Flag{
					questionFlag,
					&cli.StringFlag{Name: "database-url", Sources: cli.EnvVars("DATABASE_URL"), Required: true},
					&cli.StringFlag{Name: "schema", Value: "public", Sources: cli.EnvVars("DB_SCHEMA")},
				},
				Action: importAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func judgeAction(ctx context.Context, cmd *cli.Command) error {
	q, err := questionfile.Load(cmd.String("question"))
	if err != nil {
		return err
	}
	code, err := os.ReadFile(cmd.String("code"))
	if err != nil {
		return fmt.Errorf("failed to read code: %w", err)
	}
	return runAndReport(ctx, cmd, q, string(code))
}

func verifyAction(ctx context.Context, cmd *cli.Command) error {
	q, err := questionfile.Load(cmd.String("question"))
	if err != nil {
		return err
	}
	if q.SolutionCode == "" {
		return cli.Exit("question has no solution_code", 2)
	}
	return runAndReport(ctx, cmd, q, q.SolutionCode)
}

func runAndReport(ctx context.Context, cmd *cli.Command, q *domain.Question, code string) error {
	logger := logging.NewZapLogger(cmd.Bool("debug"))
	defer logger.Sync()

	executor, err := process.New(config.NewExecutorConfig(), logger)
	if err != nil {
		return err
	}
	j, err := judge.NewRunner(executor, nil, logger).RunSubmission(ctx, code, cmd.String("language"), q)
	if err != nil {
		return err
	}

	printJudgement(os.Stdout, q, j)
	if j.Status != domain.StatusAccepted {
		return cli.Exit("submission not accepted", 1)
	}
	return nil
}

func importAction(ctx context.Context, cmd *cli.Command) error {
	q, err := questionfile.Load(cmd.String("question"))
	if err != nil {
		return err
	}
	db, err := sqlx.ConnectContext(ctx, "postgres", cmd.String("database-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	logger := logging.NewZapLogger(cmd.Bool("debug"))
	defer logger.Sync()
	repo := questionrepository.NewQuestionRepository(db, logger, cmd.String("schema"))
	if err := repo.SaveQuestion(ctx, q); err != nil {
		return err
	}
	fmt.Printf("imported %s (%s) with %d test cases\n", q.ID, q.Title, len(q.TestCases))
	return nil
}
