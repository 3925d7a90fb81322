package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shandysiswandi/tweetprep/internal/dataset/entity"
	"github.com/shandysiswandi/tweetprep/internal/pkg/pkgerror"
)

// FetchAll makes sure every configured dataset is present locally and matches
// its checksum, in configuration order.
func (u *Usecase) FetchAll(ctx context.Context) error {
	for _, d := range u.cfg.Datasets {
		if err := u.Fetch(ctx, d); err != nil {
			return u.fail(ctx, entity.StageFetch, d.Name, err)
		}
	}
	return nil
}

// Fetch downloads d when it is missing, then verifies it. A failed download or
// a file that fails verification gets exactly one more download; failing again
// is fatal. An intact local copy causes no network traffic.
func (u *Usecase) Fetch(ctx context.Context, d entity.Descriptor) error {
	exists, err := u.inputs.Exists(ctx, d.Name)
	if err != nil {
		return ioErr(ctx, err, "stat "+d.Name)
	}

	downloaded := true
	if exists {
		u.reportState(ctx, d, entity.FileStatePresent, "")
	} else {
		u.reportState(ctx, d, entity.FileStateMissing, "")
		if err := u.download(ctx, d); err != nil {
			if !retryable(err) {
				return err
			}
			u.report(ctx, entity.Event{Kind: entity.EventDownloadFailed, Stage: entity.StageFetch, File: d.Name, Path: u.inputs.Path(d.Name), Err: err})
			downloaded = false
		}
	}

	if downloaded {
		intact, err := u.verify(ctx, d)
		if err != nil || intact {
			return err
		}

		if err := u.inputs.Remove(ctx, d.Name); err != nil {
			return ioErr(ctx, err, "delete "+d.Name)
		}
		u.report(ctx, entity.Event{Kind: entity.EventFileDeleted, Stage: entity.StageFetch, File: d.Name, Path: u.inputs.Path(d.Name)})
	}

	if err := u.download(ctx, d); err != nil {
		return err
	}

	intact, err := u.verify(ctx, d)
	if err != nil {
		return err
	}
	if !intact {
		return pkgerror.NewFetch(
			fmt.Errorf("%s still does not match checksum %s after re-download", d.Name, d.Checksum),
			"verify "+d.Name,
			pkgerror.CodeChecksumMismatch,
		)
	}

	return nil
}

// retryable reports whether err came from the remote side. Cancellation and
// local write failures are not retried.
func retryable(err error) bool {
	var perr *pkgerror.Error
	return errors.As(err, &perr) && perr.Code() == pkgerror.CodeDownload
}

func (u *Usecase) verify(ctx context.Context, d entity.Descriptor) (bool, error) {
	actual, err := u.inputs.Checksum(ctx, d.Name)
	if err != nil {
		return false, ioErr(ctx, err, "checksum "+d.Name)
	}

	if !strings.EqualFold(actual, d.Checksum) {
		u.report(ctx, entity.Event{
			Kind:     entity.EventFileState,
			Stage:    entity.StageFetch,
			File:     d.Name,
			Path:     u.inputs.Path(d.Name),
			State:    entity.FileStateCorrupt,
			Expected: d.Checksum,
			Actual:   actual,
		})
		return false, nil
	}

	u.reportState(ctx, d, entity.FileStateIntact, actual)
	return true, nil
}

func (u *Usecase) download(ctx context.Context, d entity.Descriptor) error {
	path := u.inputs.Path(d.Name)
	u.report(ctx, entity.Event{Kind: entity.EventDownloadStarted, Stage: entity.StageFetch, File: d.Name, Path: path})

	var (
		written int64
		dlErr   error
	)
	err := u.inputs.Write(ctx, d.Name, func(w io.Writer) error {
		written, dlErr = u.source.Download(ctx, d.URL, w, func(n, total int64) {
			u.report(ctx, entity.Event{
				Kind:  entity.EventDownloadProgress,
				Stage: entity.StageFetch,
				File:  d.Name,
				Bytes: n,
				Size:  total,
			})
		})
		return dlErr
	})

	switch {
	case ctx.Err() != nil && err != nil:
		return pkgerror.NewCanceled(err)
	case dlErr != nil:
		return pkgerror.NewFetch(dlErr, "download "+d.Name, pkgerror.CodeDownload)
	case err != nil:
		return pkgerror.NewIO(err, "write "+d.Name)
	}

	u.report(ctx, entity.Event{Kind: entity.EventDownloadFinished, Stage: entity.StageFetch, File: d.Name, Path: path, Bytes: written})
	return nil
}

func (u *Usecase) reportState(ctx context.Context, d entity.Descriptor, state entity.FileState, actual string) {
	u.report(ctx, entity.Event{
		Kind:     entity.EventFileState,
		Stage:    entity.StageFetch,
		File:     d.Name,
		Path:     u.inputs.Path(d.Name),
		State:    state,
		Expected: d.Checksum,
		Actual:   actual,
	})
}
