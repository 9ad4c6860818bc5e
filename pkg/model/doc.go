// Package model defines the static field schema shared by the settings group,
// the renderers and the persistence layer. A Schema is an ordered, read-only
// table of Field descriptors grouped under one Section. Each Field carries a
// RenderKind that renderers resolve through a dispatch table: checkbox and
// textarea controls are generic, while RenderCustom fields name a renderer
// registered by the owning settings group. Values is the flat field-id to
// value mapping used for submissions, sanitized payloads and stored blobs.
package model
