package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/matzehuels/diagramkit/pkg/errors"
	"github.com/matzehuels/diagramkit/pkg/observability"
)

// errorBody is the JSON shape of every failed response.
type errorBody struct {
	Error     errorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidDiagram, errors.ErrCodeInvalidAnalysis,
		errors.ErrCodeInvalidAlgorithm, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidShapeKind,
		errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeLimitExceeded:
		return http.StatusRequestEntityTooLarge
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// classify gives uncoded errors a code.
func classify(err error) *errors.Error {
	var coded *errors.Error
	if errors.As(err, &coded) {
		return coded
	}
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return errors.Wrap(errors.ErrCodeLimitExceeded, err, "request body exceeds %d bytes", tooLarge.Limit)
	case err == context.Canceled:
		return errors.Wrap(errors.ErrCodeTimeout, err, "request canceled")
	default:
		return errors.Wrap(errors.ErrCodeInternal, err, "internal error")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	coded := classify(err)
	status := statusFor(coded.Code)
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	writeJSON(w, status, errorBody{
		Error:     errorDetail{Code: coded.Code, Message: coded.Message},
		RequestID: RequestIDFrom(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(path string) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s", path)
}
