package app

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/tweetprep/internal/dataset/usecase"
	"github.com/shandysiswandi/tweetprep/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/tweetprep/internal/pkg/pkglog"
	"github.com/shandysiswandi/tweetprep/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/tweetprep/internal/pkg/pkguid"
)

// Pipeline is the single job this application runs.
type Pipeline interface {
	Run(ctx context.Context) (usecase.RunResult, error)
}

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	configPath string
	config     pkgconfig.Config

	// libraries
	logger    *slog.Logger
	runID     pkguid.StringID
	tempID    pkguid.NumberID
	goroutine *pkgroutine.Manager

	// modules
	pipeline Pipeline

	//
	closerFn map[string]func(context.Context) error
}

// New builds the application from the config file at configPath. A missing
// file falls back to compiled-in defaults.
func New(configPath string) (*App, error) {
	pkglog.InitLogging()

	app := &App{
		configPath: configPath,
		logger:     slog.Default(),
		runID:      pkguid.NewUUID(),
	}
	app.ctx, app.cancel = context.WithCancel(pkglog.SetRunID(context.Background(), app.runID.Generate()))

	for _, initFn := range []func() error{
		app.initConfig,
		app.initLibraries,
		app.initModules,
		app.initClosers,
	} {
		if err := initFn(); err != nil {
			app.cancel()
			return nil, err
		}
	}

	return app, nil
}
