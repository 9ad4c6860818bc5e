// Package settings implements the Publishing Settings field group: the static
// schema for the category filter, development mode and custom transformer
// rules, the category multi-select renderer, and the sanitize step applied to
// a submission before it is persisted.
//
// Sanitize never fails a submission because of bad input. Invalid values are
// reported to an ErrorSink and replaced by the field default, so the returned
// map is always complete and storable. The only error Sanitize returns is
// ErrUnknownField, which signals that the submission and the schema drifted
// apart.
package settings
