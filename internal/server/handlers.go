package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matzehuels/diagramkit/pkg/analysis"
	"github.com/matzehuels/diagramkit/pkg/buildinfo"
	"github.com/matzehuels/diagramkit/pkg/diagram"
	"github.com/matzehuels/diagramkit/pkg/errors"
	"github.com/matzehuels/diagramkit/pkg/export"
	"github.com/matzehuels/diagramkit/pkg/layout"
	"github.com/matzehuels/diagramkit/pkg/pipeline"
)

// Request is the body of every POST route.
type Request struct {
	Diagram diagram.Diagram  `json:"diagram"`
	Format  string           `json:"format,omitempty"` // export only
	Options pipeline.Options `json:"options"`
}

type AnalyzeResponse struct {
	DiagramHash string          `json:"diagram_hash"`
	Cached      bool            `json:"cached"`
	Report      analysis.Report `json:"report"`
}

type LayoutResponse struct {
	DiagramHash string          `json:"diagram_hash"`
	Cached      bool            `json:"cached"`
	Diagram     diagram.Diagram `json:"diagram"`
}

type KindsResponse struct {
	Analyses   []analysis.Kind     `json:"analyses"`
	Algorithms []layout.Algorithm  `json:"algorithms"`
	Formats    []export.Format     `json:"formats"`
	Shapes     []diagram.ShapeKind `json:"shapes"`
}

type HealthResponse struct {
	Status string `json:"status"`
	buildinfo.Info
}

func decode(r *http.Request) (Request, error) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, err
		}
		return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	req.Diagram.SetDefaults()
	return req, nil
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, err := decode(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	hash, err := pipeline.DiagramHash(req.Diagram)
	if err != nil {
		writeError(w, r, err)
		return
	}
	report, hit, err := s.runner.AnalyzeWithCacheInfo(r.Context(), req.Diagram, s.options(req.Options))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, AnalyzeResponse{DiagramHash: hash, Cached: hit, Report: report})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, err := decode(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	hash, err := pipeline.DiagramHash(req.Diagram)
	if err != nil {
		writeError(w, r, err)
		return
	}
	positioned, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), req.Diagram, s.options(req.Options))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, LayoutResponse{DiagramHash: hash, Cached: hit, Diagram: positioned})
}

// handleExport writes the artifact itself. The format comes from the body,
// falling back to the first configured default.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	req, err := decode(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts := s.options(req.Options)
	if req.Format != "" {
		opts.Formats = []string{req.Format}
	}
	opts.SetDefaults()
	opts.Formats = opts.Formats[:1]

	f, ok := export.ParseFormat(opts.Formats[0])
	if !ok {
		writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "unknown export format %q", opts.Formats[0]))
		return
	}

	artifacts, hit, err := s.runner.ExportWithCacheInfo(r.Context(), req.Diagram, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	data := artifacts[string(f)]
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("X-Cache-Hit", strconv.FormatBool(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleKinds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, KindsResponse{
		Analyses:   analysis.Kinds(),
		Algorithms: layout.Algorithms(),
		Formats:    export.Formats(),
		Shapes:     diagram.Kinds(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Info: buildinfo.Get()})
}
