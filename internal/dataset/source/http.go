package source

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const (
	defaultHeaderTimeout = 30 * time.Second
	defaultProgressEvery = 8 << 20
	defaultUserAgent     = "tweetprep/1.0"
)

// StatusError reports a response with a non-2xx status.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.URL, e.Code, http.StatusText(e.Code))
}

type Options struct {
	// Timeout bounds a whole download, body included. Zero disables it.
	Timeout time.Duration
	// HeaderTimeout bounds the wait for response headers.
	HeaderTimeout time.Duration
	UserAgent     string
	// ProgressEvery is the number of body bytes between progress callbacks.
	ProgressEvery int64
	// Client replaces the default client; used by tests.
	Client *http.Client
}

// HTTP downloads remote files with plain GET requests.
type HTTP struct {
	client        *http.Client
	userAgent     string
	progressEvery int64
}

func NewHTTP(opts Options) *HTTP {
	client := opts.Client
	if client == nil {
		headerTimeout := opts.HeaderTimeout
		if headerTimeout <= 0 {
			headerTimeout = defaultHeaderTimeout
		}

		client = &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   30 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   10 * time.Second,
				ResponseHeaderTimeout: headerTimeout,
				IdleConnTimeout:       90 * time.Second,
			},
		}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	progressEvery := opts.ProgressEvery
	if progressEvery <= 0 {
		progressEvery = defaultProgressEvery
	}

	return &HTTP{
		client:        client,
		userAgent:     userAgent,
		progressEvery: progressEvery,
	}
}

// Download writes the body of url to w verbatim and returns the number of
// bytes written. progress, when set, is called every ProgressEvery bytes with
// the running total and the Content-Length (-1 when unknown).
func (h *HTTP) Download(ctx context.Context, url string, w io.Writer, progress func(written, total int64)) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("User-Agent", h.userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return 0, &StatusError{URL: url, Code: resp.StatusCode}
	}

	dst := w
	if progress != nil {
		dst = &progressWriter{w: w, every: h.progressEvery, next: h.progressEvery, total: resp.ContentLength, fn: progress}
	}

	n, err := io.Copy(dst, resp.Body)
	if err != nil {
		return n, err
	}

	if resp.ContentLength >= 0 && n != resp.ContentLength {
		return n, fmt.Errorf("GET %s: short body: got %d of %d bytes", url, n, resp.ContentLength)
	}

	return n, nil
}

type progressWriter struct {
	w       io.Writer
	written int64
	every   int64
	next    int64
	total   int64
	fn      func(written, total int64)
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.written += int64(n)
	if p.written >= p.next {
		p.fn(p.written, p.total)
		p.next = (p.written/p.every + 1) * p.every
	}
	return n, err
}
