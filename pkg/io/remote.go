package io

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/edgecross/pkg/cache"
	"github.com/matzehuels/edgecross/pkg/errors"
)

// Retry defaults for [Fetcher.FetchDocument].
const (
	DefaultFetchAttempts = 3
	DefaultFetchDelay    = 500 * time.Millisecond
	DefaultFetchTimeout  = 30 * time.Second
)

// Fetcher downloads documents over HTTP. Network failures and 5xx responses
// are retried with a doubling delay; other failures are returned at once.
type Fetcher struct {
	Client   *http.Client
	Attempts int
	Delay    time.Duration
}

// NewFetcher returns a Fetcher with the default client and retry policy.
func NewFetcher() *Fetcher {
	return &Fetcher{
		Client:   &http.Client{Timeout: DefaultFetchTimeout},
		Attempts: DefaultFetchAttempts,
		Delay:    DefaultFetchDelay,
	}
}

// IsRemote reports whether src names an http or https URL.
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// LoadDocument reads src from the network when it is a URL and from disk
// otherwise.
func LoadDocument(ctx context.Context, src string) (*Document, error) {
	if IsRemote(src) {
		return NewFetcher().FetchDocument(ctx, src)
	}
	return ImportDocument(src)
}

// FetchDocument downloads and validates the document at url.
func (f *Fetcher) FetchDocument(ctx context.Context, url string) (*Document, error) {
	var doc *Document
	err := cache.Retry(ctx, f.Attempts, f.Delay, func() error {
		body, err := f.get(ctx, url)
		if err != nil {
			return err
		}
		defer body.Close()
		doc, err = ReadDocument(body)
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (f *Fetcher) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "request %s", url)
	}
	req.Header.Set("Accept", "application/json")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", url))
	}

	switch code := resp.StatusCode; {
	case code == http.StatusOK:
		return resp.Body, nil
	case code == http.StatusNotFound:
		resp.Body.Close()
		return nil, errors.New(errors.ErrCodeFileNotFound, "fetch %s: not found", url)
	case code >= 500:
		resp.Body.Close()
		return nil, cache.Retryable(errors.New(errors.ErrCodeNetwork, "fetch %s: status %d", url, code))
	default:
		resp.Body.Close()
		return nil, errors.New(errors.ErrCodeNetwork, "fetch %s: status %d", url, code)
	}
}
