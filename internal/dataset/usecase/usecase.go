package usecase

import (
	"context"
	"io"
	"math/rand/v2"
	"time"

	"github.com/shandysiswandi/tweetprep/internal/dataset/entity"
	"github.com/shandysiswandi/tweetprep/internal/pkg/pkgerror"
)

type Store interface {
	Path(name string) string
	Exists(ctx context.Context, name string) (bool, error)
	Checksum(ctx context.Context, name string) (string, error)
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Remove(ctx context.Context, name string) error
	Write(ctx context.Context, name string, fn func(w io.Writer) error) error
}

type Downloader interface {
	Download(ctx context.Context, url string, w io.Writer, progress func(written, total int64)) (int64, error)
}

type Reporter interface {
	Report(ctx context.Context, event entity.Event)
}

// ShuffleFunc permutes n elements through swap, like rand.Shuffle.
type ShuffleFunc func(n int, swap func(i, j int))

type Clock interface {
	Now() time.Time
}

type Dependency struct {
	Config   Config
	Inputs   Store
	Outputs  Store
	Source   Downloader
	Reporter Reporter
	Shuffle  ShuffleFunc
	Clock    Clock
}

type Usecase struct {
	cfg      Config
	inputs   Store
	outputs  Store
	source   Downloader
	reporter Reporter
	shuffle  ShuffleFunc
	clock    Clock
}

func New(dep Dependency) *Usecase {
	shuffle := dep.Shuffle
	if shuffle == nil {
		shuffle = rand.Shuffle
	}

	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	outputs := dep.Outputs
	if outputs == nil {
		outputs = dep.Inputs
	}

	return &Usecase{
		cfg:      dep.Config,
		inputs:   dep.Inputs,
		outputs:  outputs,
		source:   dep.Source,
		reporter: dep.Reporter,
		shuffle:  shuffle,
		clock:    clock,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Run fetches and verifies every dataset, merges them into one deduplicated
// set, shuffles it and writes it out in chunks. Nothing is written to the
// output store unless fetching and extraction both succeed.
func (u *Usecase) Run(ctx context.Context) (RunResult, error) {
	startedAt := u.clock.Now()
	u.report(ctx, entity.Event{Kind: entity.EventRunStarted, Stage: entity.StageRun, Total: len(u.cfg.Datasets)})

	if err := u.FetchAll(ctx); err != nil {
		return RunResult{}, err
	}

	set, err := u.Extract(ctx)
	if err != nil {
		return RunResult{}, err
	}

	texts := set.Texts()
	u.Shuffle(ctx, texts)

	files, err := u.WriteChunks(ctx, texts)
	if err != nil {
		return RunResult{}, err
	}

	result := RunResult{
		Datasets: len(u.cfg.Datasets),
		Records:  set.Len(),
		Chunks:   len(files),
		Files:    files,
		Elapsed:  u.clock.Now().Sub(startedAt),
	}

	u.report(ctx, entity.Event{
		Kind:  entity.EventRunFinished,
		Stage: entity.StageRun,
		Count: int64(result.Records),
		Total: result.Chunks,
	})

	return result, nil
}

func (u *Usecase) report(ctx context.Context, event entity.Event) {
	if u.reporter == nil {
		return
	}
	u.reporter.Report(ctx, event)
}

// fail reports err as a failed event for stage and returns it unchanged.
func (u *Usecase) fail(ctx context.Context, stage entity.Stage, file string, err error) error {
	u.report(ctx, entity.Event{Kind: entity.EventFailed, Stage: stage, File: file, Err: err})
	return err
}

// ioErr classifies a store failure, preferring cancellation when ctx is done.
func ioErr(ctx context.Context, err error, msg string) error {
	if ctx.Err() != nil {
		return pkgerror.NewCanceled(err)
	}
	return pkgerror.NewIO(err, msg)
}
