// Package cache stores analysis reports, layouts and exported artifacts
// keyed by content hash.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [MemoryCache]: bounded in-process LRU, used by the HTTP server
//   - [RedisCache]: shared cache for multi-instance deployments
//
// All backends honour per-entry TTLs and are safe for concurrent use.
//
// # Keys
//
// A [Keyer] derives keys from the hash of the input diagram plus every
// option that changes the result, so identical requests share an entry.
// [ScopedKeyer] prefixes every key for namespace isolation.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero or less never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// NullCache never stores anything. It disables caching without nil checks
// in the runner.
type NullCache struct{}

// NewNullCache returns a cache that always misses.
func NewNullCache() Cache { return NullCache{} }

func (NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (NullCache) Delete(context.Context, string) error                     { return nil }
func (NullCache) Close() error                                             { return nil }

// Hash returns the hex SHA-256 of data. Diagram hashes and cache keys use it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Default TTLs per entry type.
const (
	TTLAnalysis = 7 * 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Key types reported to cache hooks.
const (
	KeyTypeAnalysis = "analysis"
	KeyTypeLayout   = "layout"
	KeyTypeArtifact = "artifact"
)

// AnalysisKeyOpts holds the options that change an analysis report.
type AnalysisKeyOpts struct {
	Kind         string `json:"kind"`
	Reachability string `json:"reachability,omitempty"`
	MaxPaths     int    `json:"max_paths,omitempty"`
	MaxCycles    int    `json:"max_cycles,omitempty"`
}

// LayoutKeyOpts holds the options that change a layout.
type LayoutKeyOpts struct {
	Algorithm string `json:"algorithm"`
	// Params is any JSON-encodable value describing the layout parameters.
	Params any `json:"params,omitempty"`
}

// ArtifactKeyOpts holds the options that change an exported artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	// Styles is any JSON-encodable value describing the export styles.
	Styles any `json:"styles,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// AnalysisKey returns the key of an analysis report for a diagram.
	AnalysisKey(diagramHash string, opts AnalysisKeyOpts) string

	// LayoutKey returns the key of a positioned diagram.
	LayoutKey(diagramHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key of an exported artifact.
	ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the diagram hash together with the options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key strategy.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// AnalysisKey returns "analysis:<sha256>".
func (DefaultKeyer) AnalysisKey(diagramHash string, opts AnalysisKeyOpts) string {
	return typedKey(KeyTypeAnalysis, diagramHash, opts)
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(diagramHash string, opts LayoutKeyOpts) string {
	return typedKey(KeyTypeLayout, diagramHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return typedKey(KeyTypeArtifact, diagramHash, opts)
}

// typedKey returns "<keyType>:" followed by the hash of the diagram hash and
// the JSON encoding of opts. The option structs always encode.
func typedKey(keyType, diagramHash string, opts any) string {
	data, _ := json.Marshal(struct {
		Diagram string `json:"diagram"`
		Opts    any    `json:"opts"`
	}{diagramHash, opts})
	return keyType + ":" + Hash(data)
}

// KeyType returns the entry type encoded in a key produced by [DefaultKeyer],
// ignoring any scope prefix, or "unknown".
func KeyType(key string) string {
	for _, t := range []string{KeyTypeAnalysis, KeyTypeLayout, KeyTypeArtifact} {
		if hasTypeSegment(key, t) {
			return t
		}
	}
	return "unknown"
}

func hasTypeSegment(key, t string) bool {
	// keys end in "<type>:<64 hex chars>"
	const hashLen = 64
	n := len(key) - hashLen - 1 - len(t)
	return n >= 0 && key[n:n+len(t)] == t && key[n+len(t)] == ':'
}
