package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shandysiswandi/tweetprep/internal/dataset/entity"
)

var ErrMissingColumn = errors.New("missing column")

const (
	utf8BOM       = "\ufeff"
	ctxCheckEvery = 4096
)

// parseRecords reads a CSV with a header row and calls onRecord for every data
// row, projected to the idCol and textCol columns. It returns the number of
// data rows read. A row too short to hold a column gets an empty value for it
// and is passed to onShortRow, when set, with its line and field count.
func parseRecords(ctx context.Context, r io.Reader, idCol, textCol string, onRecord func(rec entity.Record), onShortRow func(line, fields int)) (int64, error) {
	reader := csv.NewReader(r)
	reader.ReuseRecord = true
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return 0, fmt.Errorf("%w: %q, %q (no header row)", ErrMissingColumn, idCol, textCol)
	}
	if err != nil {
		return 0, err
	}

	idIdx, textIdx, err := columnIndexes(header, idCol, textCol)
	if err != nil {
		return 0, err
	}

	var rows int64
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, err
		}

		if len(record) <= max(idIdx, textIdx) && onShortRow != nil {
			line, _ := reader.FieldPos(0)
			onShortRow(line, len(record))
		}

		rows++
		onRecord(entity.Record{ID: field(record, idIdx), Text: field(record, textIdx)})

		if rows%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return rows, err
			}
		}
	}

	return rows, nil
}

func field(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}

func columnIndexes(header []string, idCol, textCol string) (int, int, error) {
	idIdx, textIdx := -1, -1
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		switch name {
		case idCol:
			if idIdx < 0 {
				idIdx = i
			}
		case textCol:
			if textIdx < 0 {
				textIdx = i
			}
		}
	}

	var missing []string
	if idIdx < 0 {
		missing = append(missing, fmt.Sprintf("%q", idCol))
	}
	if textIdx < 0 {
		missing = append(missing, fmt.Sprintf("%q", textCol))
	}
	if len(missing) > 0 {
		return 0, 0, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}

	return idIdx, textIdx, nil
}
