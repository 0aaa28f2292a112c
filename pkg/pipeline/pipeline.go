// Package pipeline runs analysis, layout and export with caching.
//
// The CLI and the HTTP server share this package so that both entry points
// validate options, key the cache and report progress the same way.
//
// # Stages
//
//  1. Analyze: structural metrics for the diagram (package analysis)
//  2. Layout: positions for every shape (package layout)
//  3. Export: one artifact per requested format (package export)
//
// Each stage can run on its own or as part of [Runner.Execute]:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, d, pipeline.Options{
//	    Analysis:  "metrics",
//	    Algorithm: "hierarchical",
//	    Formats:   []string{"svg", "drawio"},
//	})
//	svg := result.Artifacts["svg"]
//
// # Strictness
//
// The algorithms underneath never fail: unknown kinds produce empty reports
// and dangling connections are ignored. The pipeline is the boundary where
// bad input turns into coded errors from package errors, so callers can map
// them to exit codes or HTTP statuses.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/diagramkit/pkg/analysis"
	"github.com/matzehuels/diagramkit/pkg/cache"
	"github.com/matzehuels/diagramkit/pkg/diagram"
	"github.com/matzehuels/diagramkit/pkg/errors"
	"github.com/matzehuels/diagramkit/pkg/export"
	"github.com/matzehuels/diagramkit/pkg/layout"
)

// Defaults shared by the CLI, the server and the configuration file.
const (
	DefaultAnalysis  = string(analysis.KindMetrics)
	DefaultAlgorithm = string(layout.Hierarchical)
	DefaultFormat    = string(export.SVG)
)

// Options configures a pipeline run. It doubles as the JSON body of HTTP
// requests.
type Options struct {
	// Analysis options
	Analysis     string `json:"analysis,omitempty"`
	Reachability string `json:"reachability,omitempty"`
	MaxPaths     int    `json:"max_paths,omitempty"`
	MaxCycles    int    `json:"max_cycles,omitempty"`

	// Layout options
	Algorithm string        `json:"algorithm,omitempty"`
	Layout    layout.Params `json:"layout,omitempty"`

	// Export options
	Formats []string                     `json:"formats,omitempty"`
	Styles  map[string]export.ShapeStyle `json:"styles,omitempty"`

	// Strict rejects diagrams that fail [diagram.Diagram.Validate].
	Strict bool `json:"strict,omitempty"`
	// MaxShapes rejects larger diagrams when positive.
	MaxShapes int `json:"-"`
	// Timeout bounds each stage when positive.
	Timeout time.Duration `json:"-"`
	// Refresh skips cache reads. Results are still written.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// Result holds the outputs of [Runner.Execute].
type Result struct {
	// DiagramHash is the content hash of the input diagram.
	DiagramHash string

	// Report is nil when analysis was skipped.
	Report *analysis.Report

	// Diagram is the positioned diagram, or the input when layout was skipped.
	Diagram diagram.Diagram

	// Artifacts maps format name to exported bytes.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains timing and size information.
type Stats struct {
	ShapeCount      int
	ConnectionCount int
	AnalyzeTime     time.Duration
	LayoutTime      time.Duration
	ExportTime      time.Duration
}

// CacheInfo tracks which stages were served from the cache.
type CacheInfo struct {
	AnalyzeHit bool
	LayoutHit  bool
	ExportHit  bool // every artifact came from the cache
}

// SetDefaults fills empty fields. It is idempotent.
func (o *Options) SetDefaults() {
	if o.Analysis == "" {
		o.Analysis = DefaultAnalysis
	}
	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateDiagram applies the size limit and, in strict mode, structural
// validation.
func (o *Options) ValidateDiagram(d diagram.Diagram) error {
	if o.MaxShapes > 0 && len(d.Shapes) > o.MaxShapes {
		return errors.New(errors.ErrCodeLimitExceeded, "diagram has %d shapes (max %d)", len(d.Shapes), o.MaxShapes)
	}
	if !o.Strict {
		return nil
	}
	for _, s := range d.Shapes {
		if err := errors.ValidateShapeID(s.ID); err != nil {
			return err
		}
		if err := errors.ValidateLabel(s.Label); err != nil {
			return err
		}
	}
	if err := d.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDiagram, err, "invalid diagram")
	}
	return nil
}

// AnalysisOptions resolves the analysis kind and options.
func (o *Options) AnalysisOptions() (analysis.Kind, []analysis.Option, error) {
	o.SetDefaults()
	kind, ok := analysis.ParseKind(o.Analysis)
	if !ok {
		return "", nil, errors.New(errors.ErrCodeInvalidAnalysis, "unknown analysis %q", o.Analysis)
	}
	var opts []analysis.Option
	if o.Reachability != "" {
		mode, err := analysis.ParseReachability(o.Reachability)
		if err != nil {
			return "", nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "reachability")
		}
		opts = append(opts, analysis.WithReachability(mode))
	}
	if o.MaxPaths < 0 || o.MaxCycles < 0 {
		return "", nil, errors.New(errors.ErrCodeInvalidInput, "max_paths and max_cycles must not be negative")
	}
	if o.MaxPaths > 0 {
		opts = append(opts, analysis.WithMaxPaths(o.MaxPaths))
	}
	if o.MaxCycles > 0 {
		opts = append(opts, analysis.WithMaxCycles(o.MaxCycles))
	}
	return kind, opts, nil
}

// LayoutOptions resolves the layout algorithm and options.
func (o *Options) LayoutOptions() (layout.Algorithm, []layout.Option, error) {
	o.SetDefaults()
	alg, ok := layout.ParseAlgorithm(o.Algorithm)
	if !ok {
		return "", nil, errors.New(errors.ErrCodeInvalidAlgorithm, "unknown layout algorithm %q", o.Algorithm)
	}
	opts, err := o.Layout.Options()
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "layout parameters")
	}
	return alg, opts, nil
}

// ExportOptions resolves the requested formats and export options.
func (o *Options) ExportOptions() ([]export.Format, export.Options, error) {
	o.SetDefaults()
	formats := make([]export.Format, 0, len(o.Formats))
	for _, name := range o.Formats {
		f, ok := export.ParseFormat(name)
		if !ok {
			return nil, export.Options{}, errors.New(errors.ErrCodeInvalidFormat, "unknown export format %q", name)
		}
		formats = append(formats, f)
	}
	styles, err := export.ParseStyles(o.Styles)
	if err != nil {
		return nil, export.Options{}, err
	}
	dir, err := layout.ParseDirection(o.Layout.Direction)
	if err != nil {
		return nil, export.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "direction")
	}
	return formats, export.Options{Styles: styles, Direction: dir}, nil
}

// AnalysisKeyOpts returns cache key options for analysis.
func (o *Options) AnalysisKeyOpts(kind analysis.Kind) cache.AnalysisKeyOpts {
	return cache.AnalysisKeyOpts{
		Kind:         string(kind),
		Reachability: o.Reachability,
		MaxPaths:     o.MaxPaths,
		MaxCycles:    o.MaxCycles,
	}
}

// LayoutKeyOpts returns cache key options for layout.
func (o *Options) LayoutKeyOpts(alg layout.Algorithm) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Algorithm: string(alg), Params: o.Layout}
}

// ArtifactKeyOpts returns cache key options for one exported format.
func (o *Options) ArtifactKeyOpts(f export.Format) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: string(f),
		Styles: struct {
			Direction string                       `json:"direction,omitempty"`
			Styles    map[string]export.ShapeStyle `json:"styles,omitempty"`
		}{o.Layout.Direction, o.Styles},
	}
}
