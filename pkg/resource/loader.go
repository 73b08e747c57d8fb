// Package resource loads fixture text for the depsketch parsers.
//
// A [Loader] resolves named resources by concatenating a configured prefix
// with the requested name, mirroring classpath-style lookup. Resources can
// also be fetched from URLs or supplied as in-memory literals.
//
// The loader's configuration (prefix, filesystem, HTTP client, cache) is
// set at construction and never mutated, so a shared Loader is safe for
// concurrent use. Every reader handed out must be closed by the caller;
// parse helpers in pkg/sketch and pkg/descriptor do this on all paths,
// including parse failure.
package resource

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/depsketch/depsketch/pkg/errors"
)

// Loader resolves named, URL, and literal fixture resources.
//
// The zero value is usable and reads from the OS filesystem with no prefix.
type Loader struct {
	prefix string
	fsys   fs.FS
	client *http.Client
	cache  *Cache
}

// Option configures a Loader.
type Option func(*Loader)

// WithFS makes the loader resolve named resources inside fsys instead of
// the OS filesystem. Useful with embed.FS test fixtures.
func WithFS(fsys fs.FS) Option {
	return func(l *Loader) { l.fsys = fsys }
}

// WithHTTPClient replaces the HTTP client used by OpenURL.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithCache enables caching of URL responses. Named and literal resources
// are never cached.
func WithCache(c *Cache) Option {
	return func(l *Loader) { l.cache = c }
}

// NewLoader creates a loader that resolves names by prepending prefix.
// The prefix is concatenated, not path-joined, so a directory prefix must
// end with a slash.
func NewLoader(prefix string, opts ...Option) *Loader {
	l := &Loader{prefix: prefix}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Prefix returns the configured resource-name prefix.
func (l *Loader) Prefix() string { return l.prefix }

// Open resolves a named resource and returns its reader.
//
// Returns a RESOURCE_NOT_FOUND error when the resolved file does not
// exist, INVALID_INPUT when the name is unsafe, and IO_ERROR for any other
// open failure.
func (l *Loader) Open(name string) (io.ReadCloser, error) {
	if err := errors.ValidateResourceName(name); err != nil {
		return nil, err
	}

	resolved := l.prefix + name

	var (
		r   io.ReadCloser
		err error
	)
	if l.fsys != nil {
		r, err = l.fsys.Open(resolved)
	} else {
		r, err = os.Open(resolved)
	}

	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeResourceNotFound, err, "cannot find resource %q", resolved)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open resource %q", resolved)
	}
	return r, nil
}

// OpenURL fetches a resource from a URL and returns its body.
//
// A 404 response maps to RESOURCE_NOT_FOUND; any other non-2xx status or
// transport failure maps to IO_ERROR. When a cache is configured, fresh
// responses are stored and later requests are served from disk until the
// cache TTL expires.
func (l *Loader) OpenURL(ctx context.Context, url string) (io.ReadCloser, error) {
	if l.cache != nil {
		if data, ok, err := l.cache.Get(url); err == nil && ok {
			return io.NopCloser(bytes.NewReader(data)), nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "bad resource URL %q", url)
	}

	client := l.client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "fetch resource %q", url)
	}

	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, errors.New(errors.ErrCodeResourceNotFound, "cannot find resource %q", url)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, errors.New(errors.ErrCodeIO, "fetch resource %q: unexpected status %s", url, resp.Status)
	}

	if l.cache == nil {
		return resp.Body, nil
	}

	// Drain the body so the response can be cached and replayed.
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read resource %q", url)
	}
	if err := l.cache.Set(url, data); err != nil {
		return nil, fmt.Errorf("cache resource %q: %w", url, err)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Literal wraps an in-memory fixture definition as a resource reader.
func (l *Loader) Literal(definition string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(definition))
}
