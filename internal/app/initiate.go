package app

import (
	"context"

	"github.com/shandysiswandi/tweetprep/internal/dataset"
	"github.com/shandysiswandi/tweetprep/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/tweetprep/internal/pkg/pkgerror"
	"github.com/shandysiswandi/tweetprep/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/tweetprep/internal/pkg/pkguid"
)

func (a *App) initConfig() error {
	cfg, err := pkgconfig.NewViper(a.configPath, dataset.Defaults())
	if err != nil {
		a.logger.ErrorContext(a.ctx, "failed to init config", "path", a.configPath, "error", err)
		return pkgerror.NewInvalidConfig(err)
	}

	if used := cfg.Used(); used != "" {
		a.logger.InfoContext(a.ctx, "config loaded", "path", used)
	} else {
		a.logger.InfoContext(a.ctx, "config file not found, using defaults", "path", a.configPath)
	}

	a.config = cfg
	return nil
}

func (a *App) initLibraries() error {
	// The pipeline is strictly sequential; the manager is there for panic
	// recovery and error collection, not parallelism.
	a.goroutine = pkgroutine.NewManager(1)

	sf, err := pkguid.NewSnowflake()
	if err != nil {
		return pkgerror.NewInternal(err)
	}
	a.tempID = sf

	return nil
}

//nolint:unparam // is always nil
func (a *App) initClosers() error {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}

	a.closerFn["Config"] = func(context.Context) error {
		return a.config.Close()
	}

	return nil
}
