package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"

	"github.com/shandysiswandi/tweetprep/internal/dataset/entity"
	"github.com/shandysiswandi/tweetprep/internal/pkg/pkgerror"
)

// Extract merges the id and text columns of every dataset, in configuration
// order, into one set. A later row with an identifier already seen replaces
// the earlier text.
func (u *Usecase) Extract(ctx context.Context) (*entity.RecordSet, error) {
	set := entity.NewRecordSet()

	for _, d := range u.cfg.Datasets {
		if err := u.extractFile(ctx, d, set); err != nil {
			return nil, u.fail(ctx, entity.StageExtract, d.Name, err)
		}
	}

	return set, nil
}

func (u *Usecase) extractFile(ctx context.Context, d entity.Descriptor, set *entity.RecordSet) error {
	u.report(ctx, entity.Event{Kind: entity.EventExtractStarted, Stage: entity.StageExtract, File: d.Name, Path: u.inputs.Path(d.Name)})

	rc, err := u.inputs.Open(ctx, d.Name)
	if err != nil {
		return ioErr(ctx, err, "open "+d.Name)
	}
	defer rc.Close()

	rows, err := parseRecords(ctx, rc, u.cfg.IDColumn, u.cfg.TextColumn, set.Put, func(line, fields int) {
		u.report(ctx, entity.Event{Kind: entity.EventShortRow, Stage: entity.StageExtract, File: d.Name, Index: line, Count: int64(fields)})
	})
	if err != nil {
		return classifyParseErr(ctx, d.Name, err)
	}

	u.report(ctx, entity.Event{
		Kind:  entity.EventExtractFinished,
		Stage: entity.StageExtract,
		File:  d.Name,
		Count: rows,
		Total: set.Len(),
	})

	return nil
}

func classifyParseErr(ctx context.Context, name string, err error) error {
	msg := "extract " + name
	wrapped := fmt.Errorf("%s: %w", name, err)

	var perr *csv.ParseError
	switch {
	case errors.Is(err, ErrMissingColumn):
		return pkgerror.NewSchema(wrapped, msg, pkgerror.CodeMissingColumn)
	case errors.As(err, &perr):
		return pkgerror.NewSchema(wrapped, msg, pkgerror.CodeMalformedCSV)
	default:
		return ioErr(ctx, wrapped, msg)
	}
}
