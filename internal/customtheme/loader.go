// Package customtheme fetches theme documents from user-supplied URLs and
// keeps the persisted cache of themes loaded that way.
package customtheme

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/kittengames/internal/model"
)

// Default loader limits.
const (
	DefaultTimeout  = 10 * time.Second
	DefaultMaxBytes = 1 << 20
)

var (
	// ErrFetch matches every transport, status, read and decode failure.
	ErrFetch = errors.New("theme fetch failed")
	// ErrTooLarge is returned when a theme document exceeds the size limit.
	ErrTooLarge = errors.New("theme document too large")
)

// FetchError describes a failure to retrieve or decode a theme document.
// Shape problems in a well-formed document are reported as *model.ValidationError instead.
type FetchError struct {
	URL        string
	Op         string // request, status, read, decode
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch theme %s: %s: %v", e.URL, e.Op, e.Err)
}

// Unwrap allows errors.Is against both ErrFetch and the cause.
func (e *FetchError) Unwrap() []error {
	return []error{ErrFetch, e.Err}
}

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	Timeout  time.Duration // Per-request timeout (0 = DefaultTimeout)
	MaxBytes int64         // Maximum document size (0 = DefaultMaxBytes)
	Client   *http.Client  // Optional; overrides Timeout
	Logger   *slog.Logger
}

// Loader fetches and validates custom theme documents.
type Loader struct {
	client   *http.Client
	maxBytes int64
	logger   *slog.Logger
}

// NewLoader creates a new Loader.
func NewLoader(opts LoaderOptions) *Loader {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Loader{
		client:   opts.Client,
		maxBytes: opts.MaxBytes,
		logger:   opts.Logger,
	}
}

// Fetch downloads the theme document at url and validates it.
// It never touches any cache; callers decide what to do with the result.
func (l *Loader) Fetch(ctx context.Context, url string) (*model.Theme, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Op: "request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Op: "request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			URL:        url,
			Op:         "status",
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, l.maxBytes+1))
	if err != nil {
		return nil, &FetchError{URL: url, Op: "read", Err: err}
	}
	if int64(len(body)) > l.maxBytes {
		return nil, &FetchError{
			URL: url,
			Op:  "read",
			Err: fmt.Errorf("%w: limit is %s", ErrTooLarge, humanize.Bytes(uint64(l.maxBytes))),
		}
	}

	theme, err := Decode(body)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			l.logger.Warn("rejected custom theme", "url", url, "field", verr.Field, "error", verr.Err)
			return nil, err
		}
		return nil, &FetchError{URL: url, Op: "decode", Err: err}
	}

	l.logger.Info("fetched custom theme",
		"url", url,
		"name", theme.Name,
		"slots", len(theme.Colors),
		"size", humanize.Bytes(uint64(len(body))),
	)
	return theme, nil
}

// Decode parses and validates a theme document.
func Decode(data []byte) (*model.Theme, error) {
	var theme model.Theme
	if err := json.Unmarshal(data, &theme); err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			return nil, verr
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return nil, &model.ValidationError{Field: typeErr.Field, Err: err}
		}
		return nil, err
	}

	if err := theme.Validate(); err != nil {
		return nil, err
	}
	return &theme, nil
}
