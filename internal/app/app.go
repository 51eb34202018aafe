package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/nomoriel/phase2vec/internal/cli"
	"github.com/nomoriel/phase2vec/internal/ctxlog"
)

// App encapsulates the application's dependencies and lifecycle. outW
// receives user-facing output, errW receives diagnostics and logs.
type App struct {
	outW   io.Writer
	errW   io.Writer
	logger *slog.Logger
}

// NewApp constructs an App with its own isolated logger, configured from the
// parsed command.
func NewApp(outW, errW io.Writer, cmd *cli.Command) *App {
	return &App{
		outW:   outW,
		errW:   errW,
		logger: newLogger(cmd.LogLevel, cmd.LogFormat, errW),
	}
}

// Run dispatches the parsed command.
func (a *App) Run(ctx context.Context, cmd *cli.Command) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run started.", "command", cmd.Name)

	switch cmd.Name {
	case cli.CmdWriteGridsearchJobs:
		return a.runWriteGridsearchJobs(ctx, cmd)
	case cli.CmdGenerateGridsearchConfig:
		return a.runGenerateGridsearchConfig(ctx, cmd)
	case cli.CmdAggregateGridsearchResult:
		return a.runAggregateResults(ctx, cmd)
	case cli.CmdGenerateTrainConfig:
		return a.runGenerateConfig(ctx, cmd, defaultTrainParameters())
	case cli.CmdGenerateDataConfig:
		return a.runGenerateConfig(ctx, cmd, defaultDataParameters())
	case cli.CmdGenerateNetConfig:
		return a.runGenerateConfig(ctx, cmd, defaultNetParameters())
	case cli.CmdListRuns:
		return a.runListRuns(ctx, cmd)
	default:
		return fmt.Errorf("unknown command %q", cmd.Name)
	}
}
