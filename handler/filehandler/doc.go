// Package filehandler provides the file sink, which appends formatted log
// entries to a file.
//
// NewFileHandler creates any missing parent directories before opening the
// file, so configuration errors (permission denied, a path component that
// is a regular file) surface at construction time rather than on the first
// write. The file is opened in append mode; existing content is preserved
// across runs.
//
// Text is passed through an x/text encoder before it reaches the file.
// The default UTF-8 encoder replaces ill-formed sequences with U+FFFD so the
// log stays valid UTF-8 regardless of what callers pass in.
package filehandler
