// Package template defines the renderer-agnostic template contract used by the
// settings page renderers. The pongo subpackage provides the default engine.
package template
