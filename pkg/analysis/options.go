package analysis

import (
	"fmt"
	"strings"
)

// Reachability selects how connectedness and clusters follow connections.
type Reachability int

const (
	// Weak treats every connection as undirected.
	Weak Reachability = iota
	// Forward follows connections from source to target only.
	Forward
)

func (r Reachability) String() string {
	if r == Forward {
		return "forward"
	}
	return "weak"
}

// ParseReachability resolves "weak" or "forward". The empty string is Weak.
func ParseReachability(s string) (Reachability, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "weak":
		return Weak, nil
	case "forward":
		return Forward, nil
	}
	return Weak, fmt.Errorf("unknown reachability %q", s)
}

const (
	// DefaultMaxPaths caps path enumeration.
	DefaultMaxPaths = 10000
	// DefaultMaxCycles caps cycle enumeration.
	DefaultMaxCycles = 10000
	// DefaultMaxLongestPaths caps how many longest paths are listed.
	DefaultMaxLongestPaths = 100
)

type config struct {
	reachability Reachability
	maxPaths     int
	maxCycles    int
	maxLongest   int
}

func defaultConfig() config {
	return config{
		reachability: Weak,
		maxPaths:     DefaultMaxPaths,
		maxCycles:    DefaultMaxCycles,
		maxLongest:   DefaultMaxLongestPaths,
	}
}

// Option configures an analysis.
type Option func(*config)

// WithReachability selects the connectivity model for connectedness and
// clusters.
func WithReachability(r Reachability) Option {
	return func(c *config) { c.reachability = r }
}

// WithMaxPaths sets the path enumeration ceiling. Values below 1 are ignored.
func WithMaxPaths(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxPaths = n
		}
	}
}

// WithMaxCycles sets the cycle enumeration ceiling. Values below 1 are ignored.
func WithMaxCycles(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxCycles = n
		}
	}
}

// WithMaxLongestPaths limits how many maximum-length paths are listed in the
// report. Counting is unaffected. Values below 1 are ignored.
func WithMaxLongestPaths(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxLongest = n
		}
	}
}
