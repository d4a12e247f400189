package certificates

import (
	"errors"
	"net/http"
	"strings"
)

// Mux is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Component is a mountable certificate endpoint. Its handler, and the default
// orchestrator behind it, is built once in New.
type Component struct {
	opts    Options
	handler http.Handler
}

// New builds a component from the default options plus fns.
func New(fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	return &Component{opts: opts, handler: HandlerWithOptions(opts)}
}

// Options returns the resolved configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return c.opts
}

// Path is the pattern the component mounts at under basePath.
func (c *Component) Path(basePath string) string {
	return mountPath(basePath, c.Options().RoutePath)
}

func (c *Component) Handler() http.Handler {
	if c == nil || c.handler == nil {
		return NewHandler()
	}
	return c.handler
}

// RegisterRoutes mounts the handler on mux and returns the pattern used.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if mux == nil {
		return "", errors.New("certificates: mux is required")
	}
	pattern := c.Path(basePath)
	mux.Handle(pattern, c.Handler())
	return pattern, nil
}

// MountPath reports where RegisterRoutes would mount a component built from
// fns, without building its handler.
func MountPath(basePath string, fns ...OptionFn) string {
	return mountPath(basePath, NewOptions(fns...).RoutePath)
}

// RegisterRoutes is shorthand for New(fns...).RegisterRoutes(mux, basePath).
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	if mux == nil {
		return "", errors.New("certificates: mux is required")
	}
	return New(fns...).RegisterRoutes(mux, basePath)
}

// mountPath joins the two segments with single slashes. An empty route mounts
// a subtree at the base.
func mountPath(basePath, routePath string) string {
	base := strings.Trim(strings.TrimSpace(basePath), "/")
	route := strings.Trim(strings.TrimSpace(routePath), "/")
	switch {
	case base == "":
		return "/" + route
	case route == "":
		return "/" + base + "/"
	default:
		return "/" + base + "/" + route
	}
}
