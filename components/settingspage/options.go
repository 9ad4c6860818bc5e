package settingspage

import (
	"io"
	"log/slog"
	"net/http"
)

// GuardFunc authorizes a request before it reaches the handler. Returning an
// HTTPError selects the response status; any other error yields 403.
type GuardFunc func(r *http.Request) error

// TokenFunc returns the CSRF token expected for r. When set, the token is
// rendered into the form and required on POST.
type TokenFunc func(r *http.Request) string

type Options struct {
	RoutePath string
	Title     string
	Guard     GuardFunc
	CSRFToken TokenFunc
	Scripts   []string
	Logger    *slog.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath: "/settings/publishing",
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
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
		opts.RoutePath = "/settings/publishing"
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

func WithTitle(title string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Title = title
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

func WithCSRFToken(fn TokenFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CSRFToken = fn
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

// WithScripts adds external script URLs to the rendered page.
func WithScripts(srcs ...string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Scripts = append(o.Scripts, srcs...)
	}
}
