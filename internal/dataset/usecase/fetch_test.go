package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/tweetprep/internal/dataset/entity"
	"github.com/shandysiswandi/tweetprep/internal/dataset/source"
	"github.com/shandysiswandi/tweetprep/internal/pkg/pkgerror"
)

func TestFetchDownloadsMissingFile(t *testing.T) {
	body := csvBody("1,a")
	f := newFixture(t, 10, [2]string{"a.csv", body})
	d := f.cfg.Datasets[0]

	if err := f.uc.Fetch(context.Background(), d); err != nil {
		t.Fatalf("Fetch() err = %v", err)
	}

	got, ok := f.inputs.Get("a.csv")
	if !ok || string(got) != body {
		t.Fatalf("expected downloaded body, got %q", got)
	}
	if calls := f.source.Calls(d.URL); calls != 1 {
		t.Fatalf("expected 1 download, got %d", calls)
	}
	want := []entity.FileState{entity.FileStateMissing, entity.FileStateIntact}
	if diff := cmp.Diff(want, f.reporter.States("a.csv")); diff != "" {
		t.Fatalf("states mismatch (-want +got):\n%s", diff)
	}
	if len(f.reporter.Kinds(entity.EventDownloadProgress)) == 0 {
		t.Fatalf("expected progress events")
	}
}

func TestFetchIntactFileIsIdempotent(t *testing.T) {
	body := csvBody("1,a")
	f := newFixture(t, 10, [2]string{"a.csv", body})
	d := f.cfg.Datasets[0]
	f.inputs.Put("a.csv", []byte(body))

	for i := 0; i < 2; i++ {
		if err := f.uc.Fetch(context.Background(), d); err != nil {
			t.Fatalf("Fetch() #%d err = %v", i, err)
		}
	}

	if calls := f.source.Calls(d.URL); calls != 0 {
		t.Fatalf("expected no network calls, got %d", calls)
	}
	got, _ := f.inputs.Get("a.csv")
	if md5Hex(string(got)) != d.Checksum {
		t.Fatalf("file content changed")
	}
	if n := len(f.reporter.Kinds(entity.EventFileDeleted)); n != 0 {
		t.Fatalf("expected no deletes, got %d", n)
	}
}

func TestFetchCorruptFileIsReplacedOnce(t *testing.T) {
	body := csvBody("1,a")
	f := newFixture(t, 10, [2]string{"a.csv", body})
	d := f.cfg.Datasets[0]
	f.inputs.Put("a.csv", []byte("truncated"))

	if err := f.uc.Fetch(context.Background(), d); err != nil {
		t.Fatalf("Fetch() err = %v", err)
	}

	if calls := f.source.Calls(d.URL); calls != 1 {
		t.Fatalf("expected exactly 1 re-download, got %d", calls)
	}
	if n := len(f.reporter.Kinds(entity.EventFileDeleted)); n != 1 {
		t.Fatalf("expected exactly 1 delete, got %d", n)
	}
	want := []entity.FileState{entity.FileStatePresent, entity.FileStateCorrupt, entity.FileStateIntact}
	if diff := cmp.Diff(want, f.reporter.States("a.csv")); diff != "" {
		t.Fatalf("states mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchMissingFileCorruptOnFirstDownload(t *testing.T) {
	body := csvBody("1,a")
	f := newFixture(t, 10, [2]string{"a.csv", body})
	d := f.cfg.Datasets[0]
	f.source.bad[d.URL] = "garbage"
	f.source.badTimes[d.URL] = 1

	if err := f.uc.Fetch(context.Background(), d); err != nil {
		t.Fatalf("Fetch() err = %v", err)
	}

	if calls := f.source.Calls(d.URL); calls != 2 {
		t.Fatalf("expected download plus one retry, got %d", calls)
	}
	got, _ := f.inputs.Get("a.csv")
	if string(got) != body {
		t.Fatalf("expected good body after retry, got %q", got)
	}
}

func TestFetchPersistentMismatchIsFatal(t *testing.T) {
	f := newFixture(t, 10, [2]string{"a.csv", csvBody("1,a")})
	d := f.cfg.Datasets[0]
	f.source.bad[d.URL] = "garbage"
	f.source.badTimes[d.URL] = 100

	err := f.uc.Fetch(context.Background(), d)
	assertPkgErr(t, err, pkgerror.TypeFetch, pkgerror.CodeChecksumMismatch)

	if calls := f.source.Calls(d.URL); calls != 2 {
		t.Fatalf("expected exactly 2 downloads, got %d", calls)
	}
}

func TestFetchDownloadErrorIsRetriedOnce(t *testing.T) {
	f := newFixture(t, 10, [2]string{"a.csv", csvBody("1,a")})
	d := f.cfg.Datasets[0]
	boom := errors.New("connection reset")
	f.source.fail[d.URL] = boom

	err := f.uc.Fetch(context.Background(), d)
	perr := assertPkgErr(t, err, pkgerror.TypeFetch, pkgerror.CodeDownload)
	if !errors.Is(perr, boom) {
		t.Fatalf("expected wrapped cause, got %v", perr)
	}
	if calls := f.source.Calls(d.URL); calls != 2 {
		t.Fatalf("expected 2 download attempts, got %d", calls)
	}
	if ok, _ := f.inputs.Exists(context.Background(), "a.csv"); ok {
		t.Fatalf("expected no local file after failed download")
	}
	if n := len(f.reporter.Kinds(entity.EventDownloadFailed)); n != 1 {
		t.Fatalf("expected 1 download_failed event, got %d", n)
	}
}

func TestFetchRecoversFromTransientDownloadError(t *testing.T) {
	body := csvBody("1,a")
	f := newFixture(t, 10, [2]string{"a.csv", body})
	d := f.cfg.Datasets[0]
	f.source.fail[d.URL] = errors.New("connection reset")
	f.source.failTimes[d.URL] = 1

	if err := f.uc.Fetch(context.Background(), d); err != nil {
		t.Fatalf("Fetch() err = %v", err)
	}
	if calls := f.source.Calls(d.URL); calls != 2 {
		t.Fatalf("expected 2 download attempts, got %d", calls)
	}
	got, _ := f.inputs.Get("a.csv")
	if string(got) != body {
		t.Fatalf("expected body after retry, got %q", got)
	}
	want := []entity.FileState{entity.FileStateMissing, entity.FileStateIntact}
	if diff := cmp.Diff(want, f.reporter.States("a.csv")); diff != "" {
		t.Fatalf("states mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchRetriesAfterServerError(t *testing.T) {
	body := csvBody("1,a", "2,b")

	var (
		mu    sync.Mutex
		calls int
	)
	router := httprouter.New()
	router.GET("/files/:name", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()

		if n == 1 {
			http.Error(w, "try later", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(body))
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	f := newFixture(t, 10)
	d := entity.Descriptor{Name: "a.csv", Checksum: md5Hex(body), URL: srv.URL + "/files/a.csv"}
	uc := New(Dependency{
		Config:   f.cfg,
		Inputs:   f.inputs,
		Source:   source.NewHTTP(source.Options{}),
		Reporter: f.reporter,
	})

	if err := uc.Fetch(context.Background(), d); err != nil {
		t.Fatalf("Fetch() err = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if calls != 2 {
		t.Fatalf("expected 2 requests, got %d", calls)
	}
	got, _ := f.inputs.Get("a.csv")
	if string(got) != body {
		t.Fatalf("expected body after retry, got %q", got)
	}
	failed := f.reporter.Kinds(entity.EventDownloadFailed)
	var status *source.StatusError
	if len(failed) != 1 || !errors.As(failed[0].Err, &status) || status.Code != http.StatusServiceUnavailable {
		t.Fatalf("unexpected download_failed events: %+v", failed)
	}
}

func TestFetchCanceled(t *testing.T) {
	f := newFixture(t, 10, [2]string{"a.csv", csvBody("1,a")})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.uc.Fetch(ctx, f.cfg.Datasets[0])
	assertPkgErr(t, err, pkgerror.TypeInternal, pkgerror.CodeCanceled)
}

func TestFetchAllStopsAtFirstFailure(t *testing.T) {
	f := newFixture(t, 10,
		[2]string{"a.csv", csvBody("1,a")},
		[2]string{"b.csv", csvBody("2,b")},
		[2]string{"c.csv", csvBody("3,c")},
	)
	f.source.fail[f.cfg.Datasets[1].URL] = errors.New("boom")

	if err := f.uc.FetchAll(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if calls := f.source.Calls(f.cfg.Datasets[2].URL); calls != 0 {
		t.Fatalf("expected c.csv untouched, got %d calls", calls)
	}

	failed := f.reporter.Kinds(entity.EventFailed)
	if len(failed) != 1 || failed[0].File != "b.csv" || failed[0].Stage != entity.StageFetch {
		t.Fatalf("unexpected failed events: %+v", failed)
	}
}
