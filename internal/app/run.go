package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/shandysiswandi/tweetprep/internal/dataset/usecase"
	"github.com/shandysiswandi/tweetprep/internal/pkg/pkgerror"
)

// Run executes the pipeline once. SIGINT, SIGTERM and SIGHUP cancel it.
func (a *App) Run() (usecase.RunResult, error) {
	ctx, stop := signal.NotifyContext(a.ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	var result usecase.RunResult
	a.goroutine.Go(ctx, func(ctx context.Context) error {
		res, err := a.pipeline.Run(ctx)
		if err != nil {
			return err
		}
		result = res
		return nil
	})

	if err := a.goroutine.Wait(); err != nil {
		err = normalizeErr(ctx, err)
		a.logger.ErrorContext(a.ctx, "pipeline failed", "error", err, "exit_code", pkgerror.ExitCode(err))
		return usecase.RunResult{}, err
	}

	a.logger.InfoContext(a.ctx, "pipeline completed",
		"datasets", result.Datasets,
		"records", result.Records,
		"chunks", result.Chunks,
		"elapsed", result.Elapsed.String(),
	)

	return result, nil
}

// Stop releases resources; it is safe to call after a failed Run.
func (a *App) Stop(ctx context.Context) {
	if a.cancel != nil {
		a.cancel()
	}

	for name, closer := range a.closerFn {
		if err := closer(ctx); err != nil {
			a.logger.ErrorContext(ctx, "failed to close resources", "name", name, "error", err)
		}
	}
}

func normalizeErr(ctx context.Context, err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr
	}
	if ctx.Err() != nil {
		return pkgerror.NewCanceled(err)
	}
	return pkgerror.NewInternal(err)
}
