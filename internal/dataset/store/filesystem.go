package store

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shandysiswandi/tweetprep/internal/pkg/pkgerror"
	"github.com/shandysiswandi/tweetprep/internal/pkg/pkguid"
)

const (
	defaultPermFile os.FileMode = 0o644
	defaultPermDir  os.FileMode = 0o755
	defaultBufSize              = 64 * 1024
)

// FS keeps files as flat entries under a root directory. Writes go to a
// temporary part file in the same directory and are renamed into place.
type FS struct {
	root  string
	ids   pkguid.NumberID
	permF os.FileMode
	permD os.FileMode
}

func NewFS(root string, ids pkguid.NumberID) *FS {
	return &FS{
		root:  root,
		ids:   ids,
		permF: defaultPermFile,
		permD: defaultPermDir,
	}
}

func (s *FS) Root() string {
	return s.root
}

func (s *FS) Path(name string) string {
	return filepath.Join(s.root, name)
}

func (s *FS) Exists(ctx context.Context, name string) (bool, error) {
	if err := checkName(name); err != nil {
		return false, err
	}

	info, err := os.Stat(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return info.Mode().IsRegular(), nil
}

func (s *FS) Checksum(ctx context.Context, name string) (string, error) {
	rc, err := s.Open(ctx, name)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	return digest(readerWithCtx(ctx, rc))
}

func (s *FS) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, pkgerror.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return f, nil
}

// Remove deletes name. A file that is already gone is not an error.
func (s *FS) Remove(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}

	err := os.Remove(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

// Write streams fn's output into name. The destination only changes when fn
// and every flush succeed.
func (s *FS) Write(ctx context.Context, name string, fn func(w io.Writer) error) error {
	if err := checkName(name); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.root, s.permD); err != nil {
		return err
	}

	tmpPath := s.Path("." + name + "." + strconv.FormatInt(s.ids.Generate(), 10) + ".part")
	tmp, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, s.permF)
	if err != nil {
		return err
	}

	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}

	bw := bufio.NewWriterSize(tmp, defaultBufSize)
	if err := fn(writerWithCtx(ctx, bw)); err != nil {
		return fail(err)
	}
	if err := bw.Flush(); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, s.Path(name)); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	return nil
}

func readerWithCtx(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *ctxReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}

func writerWithCtx(ctx context.Context, w io.Writer) io.Writer {
	return &ctxWriter{ctx: ctx, w: w}
}

type ctxWriter struct {
	ctx context.Context
	w   io.Writer
}

func (cw *ctxWriter) Write(p []byte) (int, error) {
	if err := cw.ctx.Err(); err != nil {
		return 0, err
	}
	return cw.w.Write(p)
}
