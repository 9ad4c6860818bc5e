package settingspage

import (
	"net/http"

	"github.com/goliatone/go-publishing/pkg/settings"
	"github.com/goliatone/go-publishing/pkg/store"
)

// Component bundles the settings page handler, its configuration and routing
// helpers.
type Component struct {
	group *settings.Group
	store store.Store
	opts  Options
}

// New constructs a component for group persisting through st.
func New(group *settings.Group, st store.Store, fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	return &Component{group: group, store: st, opts: opts}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns the net/http handler serving the page.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return HandlerWithOptions(nil, nil, DefaultOptions())
	}
	return HandlerWithOptions(c.group, c.store, c.opts)
}

// RegisterRoutes registers the component handler under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c == nil {
		return RegisterRoutesWithOptions(mux, basePath, nil, nil, DefaultOptions())
	}
	return RegisterRoutesWithOptions(mux, basePath, c.group, c.store, c.opts)
}
