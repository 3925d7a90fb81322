package app

import (
	"github.com/shandysiswandi/tweetprep/internal/dataset"
)

func (a *App) initModules() error {
	pipeline, err := dataset.New(dataset.Dependency{
		Config: a.config,
		TempID: a.tempID,
		Logger: a.logger,
	})
	if err != nil {
		a.logger.ErrorContext(a.ctx, "failed to init module dataset", "error", err)
		return err
	}

	a.pipeline = pipeline
	return nil
}
