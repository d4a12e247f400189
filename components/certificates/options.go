package certificates

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/goliatone/go-certgen/pkg/orchestrator"
)

const (
	defaultRoutePath    = "/api/certificates"
	defaultMaxBodyBytes = 1 << 20
)

// GuardFunc authorises a request before it is processed. Returning an error
// that implements HTTPError selects the response status.
type GuardFunc func(r *http.Request) error

// Generator renders a certificate request. *orchestrator.Orchestrator
// satisfies it.
type Generator interface {
	Generate(ctx context.Context, req orchestrator.Request) ([]byte, error)
}

type Options struct {
	RoutePath    string
	MaxBodyBytes int64
	Guard        GuardFunc
	Generator    Generator
	Logger       *slog.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    defaultRoutePath,
		MaxBodyBytes: defaultMaxBodyBytes,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithGenerator replaces the default orchestrator.
func WithGenerator(generator Generator) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Generator = generator
	}
}

func WithLogger(logger *slog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}
