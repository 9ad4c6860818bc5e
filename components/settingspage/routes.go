package settingspage

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-publishing/pkg/settings"
	"github.com/goliatone/go-publishing/pkg/store"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the full mount path for the component route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// RegisterRoutes registers the settings page handler under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, group *settings.Group, st store.Store, fns ...OptionFn) (string, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, group, st, opts)
}

// RegisterRoutesWithOptions registers a handler under basePath using a pre-built Options value.
// Defaults are re-applied to opts.
func RegisterRoutesWithOptions(mux Mux, basePath string, group *settings.Group, st store.Store, opts Options) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("settingspage: missing mux")
	}
	if group == nil || st == nil {
		return "", fmt.Errorf("settingspage: settings group and store are required")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	pattern := mountPath(basePath, opts.RoutePath)
	mux.Handle(pattern, HandlerWithOptions(group, st, opts))
	return pattern, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
