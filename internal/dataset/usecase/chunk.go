package usecase

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/shandysiswandi/tweetprep/internal/dataset/entity"
)

const outputHeader = "text"

// splitChunks cuts texts into consecutive groups of size; only the last may be
// shorter. It never yields an empty chunk.
func splitChunks(texts []string, size int) []entity.Chunk {
	if size < 1 {
		size = 1
	}

	chunks := make([]entity.Chunk, 0, (len(texts)+size-1)/size)
	for start := 0; start < len(texts); start += size {
		end := min(start+size, len(texts))
		chunks = append(chunks, entity.Chunk{Index: len(chunks), Texts: texts[start:end]})
	}

	return chunks
}

// WriteChunks writes texts as numbered single-column CSV files and returns
// their paths in index order. No file is written for an empty input.
func (u *Usecase) WriteChunks(ctx context.Context, texts []string) ([]string, error) {
	chunks := splitChunks(texts, u.cfg.LinesPerChunk())
	files := make([]string, 0, len(chunks))

	for _, chunk := range chunks {
		name := u.cfg.ChunkName(chunk.Index)
		if err := u.outputs.Write(ctx, name, func(w io.Writer) error {
			return encodeChunk(w, chunk.Texts)
		}); err != nil {
			return files, u.fail(ctx, entity.StageWrite, name, ioErr(ctx, err, "write "+name))
		}

		path := u.outputs.Path(name)
		files = append(files, path)
		u.report(ctx, entity.Event{
			Kind:  entity.EventChunkWritten,
			Stage: entity.StageWrite,
			File:  name,
			Path:  path,
			Index: chunk.Index,
			Total: len(chunks),
			Count: int64(len(chunk.Texts)),
		})
	}

	return files, nil
}

func encodeChunk(w io.Writer, texts []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{outputHeader}); err != nil {
		return err
	}

	row := make([]string, 1)
	for _, text := range texts {
		if text == "" {
			// A lone empty field would be a blank line, which readers skip.
			cw.Flush()
			if err := cw.Error(); err != nil {
				return err
			}
			if _, err := io.WriteString(w, `""`+"\n"); err != nil {
				return err
			}
			continue
		}

		row[0] = text
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
