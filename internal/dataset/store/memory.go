package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/shandysiswandi/tweetprep/internal/pkg/pkgerror"
)

// Memory is an in-process store with the same contract as FS.
type Memory struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{files: make(map[string][]byte)}
}

func (s *Memory) Path(name string) string {
	return "mem://" + name
}

func (s *Memory) Exists(ctx context.Context, name string) (bool, error) {
	if err := checkName(name); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.files[name]
	return ok, nil
}

func (s *Memory) Checksum(ctx context.Context, name string) (string, error) {
	rc, err := s.Open(ctx, name)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	return digest(rc)
}

func (s *Memory) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.files[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, pkgerror.ErrNotFound)
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *Memory) Remove(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.files, name)
	return nil
}

func (s *Memory) Write(ctx context.Context, name string, fn func(w io.Writer) error) error {
	if err := checkName(name); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := fn(writerWithCtx(ctx, &buf)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.files[name] = buf.Bytes()
	return nil
}

// Put stores data under name directly.
func (s *Memory) Put(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.files[name] = append([]byte(nil), data...)
}

// Get returns a copy of the bytes stored under name.
func (s *Memory) Get(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.files[name]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}

// Names lists the stored names in lexical order.
func (s *Memory) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
