// Package core defines the shared types used across the foldersync logging
// subsystem.
//
// It provides the Level type for severity filtering together with the level
// registry (ParseLevel, LookupLevel), and the Entry type that represents a
// single log event.
//
// ParseLevel is total: configuration often arrives from loosely validated
// environment variables or flags, so an unknown name resolves to InfoLevel
// instead of failing. LookupLevel exposes whether the name was recognized
// for callers that want to warn about typos.
//
// Entry objects are pooled via sync.Pool. Callers get an Entry with
// GetEntry and return it with PutEntry once every handler has consumed it.
package core
