package usecase

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/tweetprep/internal/dataset/entity"
	"github.com/shandysiswandi/tweetprep/internal/dataset/store"
	"github.com/shandysiswandi/tweetprep/internal/pkg/pkgerror"
)

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// testSource serves bodies by URL. A URL listed in bad serves its bad body
// for the first badTimes requests. A URL listed in fail returns its error on
// every request, or only the first failTimes requests when that is set.
type testSource struct {
	mu        sync.Mutex
	bodies    map[string]string
	bad       map[string]string
	badTimes  map[string]int
	fail      map[string]error
	failTimes map[string]int
	calls     map[string]int
}

func newTestSource() *testSource {
	return &testSource{
		bodies:    make(map[string]string),
		bad:       make(map[string]string),
		badTimes:  make(map[string]int),
		fail:      make(map[string]error),
		failTimes: make(map[string]int),
		calls:     make(map[string]int),
	}
}

func (s *testSource) Download(ctx context.Context, url string, w io.Writer, progress func(written, total int64)) (int64, error) {
	s.mu.Lock()
	s.calls[url]++
	call := s.calls[url]
	body, ok := s.bodies[url]
	if bad, isBad := s.bad[url]; isBad && call <= s.badTimes[url] {
		body = bad
	}
	failErr := s.fail[url]
	if limit := s.failTimes[url]; limit > 0 && call > limit {
		failErr = nil
	}
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if failErr != nil {
		return 0, failErr
	}
	if !ok {
		return 0, errors.New("no such url " + url)
	}

	n, err := io.WriteString(w, body)
	if progress != nil {
		progress(int64(n), int64(len(body)))
	}
	return int64(n), err
}

func (s *testSource) Calls(url string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[url]
}

type testReporter struct {
	mu     sync.Mutex
	events []entity.Event
}

func (r *testReporter) Report(ctx context.Context, ev entity.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *testReporter) Kinds(kind entity.EventKind) []entity.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []entity.Event
	for _, ev := range r.events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

func (r *testReporter) States(file string) []entity.FileState {
	var out []entity.FileState
	for _, ev := range r.Kinds(entity.EventFileState) {
		if ev.File == file {
			out = append(out, ev.State)
		}
	}
	return out
}

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time {
	return f.now
}

// fixture wires a Usecase over in-memory stores and a fake source. Each CSV
// body becomes one dataset served at http://datasets.test/<name>.
type fixture struct {
	uc       *Usecase
	inputs   *store.Memory
	outputs  *store.Memory
	source   *testSource
	reporter *testReporter
	cfg      Config
}

func newFixture(t *testing.T, linesPerChunk int, files ...[2]string) *fixture {
	t.Helper()

	f := &fixture{
		inputs:   store.NewMemory(),
		outputs:  store.NewMemory(),
		source:   newTestSource(),
		reporter: &testReporter{},
	}

	f.cfg = Config{
		ChunkBytes:      int64(linesPerChunk),
		AvgBytesPerLine: 1,
		FilePattern:     "out-%d.csv",
		IDColumn:        "id_str",
		TextColumn:      "text",
	}
	for _, file := range files {
		url := "http://datasets.test/" + file[0]
		f.source.bodies[url] = file[1]
		f.cfg.Datasets = append(f.cfg.Datasets, entity.Descriptor{Name: file[0], Checksum: md5Hex(file[1]), URL: url})
	}

	f.uc = New(Dependency{
		Config:   f.cfg,
		Inputs:   f.inputs,
		Outputs:  f.outputs,
		Source:   f.source,
		Reporter: f.reporter,
		Shuffle:  func(n int, swap func(i, j int)) {},
		Clock:    fixedClock{now: time.Unix(100, 0)},
	})

	return f
}

func assertPkgErr(t *testing.T, err error, typ pkgerror.Type, code pkgerror.Code) *pkgerror.Error {
	t.Helper()

	var perr *pkgerror.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *pkgerror.Error, got %T: %v", err, err)
	}
	if perr.Type() != typ || perr.Code() != code {
		t.Fatalf("error = %s, want type %s code %s", perr.String(), typ, code)
	}
	return perr
}

func csvBody(rows ...string) string {
	out := "id_str,text\n"
	for _, row := range rows {
		out += row + "\n"
	}
	return out
}

func manyTexts(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("tweet-%02d", i)
	}
	return out
}
