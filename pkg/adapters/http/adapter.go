package http

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/aretw0/augmenter/pkg/domain"
	"github.com/aretw0/augmenter/pkg/ports"
)

// Result is the value a handler returns instead of writing the response itself.
// Object and JSON payloads are shaped before being written; View is written untouched.
type Result interface {
	isResult()
}

// View renders a template. Its data is passed through without shaping.
type View struct {
	Template *template.Template
	Name     string // template to execute; empty executes Template itself
	Data     any
	Status   int
}

// Object writes the shaped Value as JSON.
type Object struct {
	Value  any
	Status int
}

// JSON writes the shaped Value as JSON with extra headers, optionally indented.
type JSON struct {
	Value  any
	Status int
	Header http.Header
	Indent bool
}

func (View) isResult()   {}
func (Object) isResult() {}
func (JSON) isResult()   {}

// StatusError carries the status code of a failed handler.
type StatusError struct {
	Status int
	Err    error
}

func (e *StatusError) Error() string { return e.Err.Error() }
func (e *StatusError) Unwrap() error { return e.Err }

// NewStatusError returns a StatusError with a plain message.
func NewStatusError(status int, msg string) error {
	return &StatusError{Status: status, Err: errors.New(msg)}
}

// HandlerFunc handles a request by returning a Result.
type HandlerFunc func(r *http.Request) (Result, error)

// RequestStateFunc contributes call-level state derived from the request.
type RequestStateFunc func(r *http.Request, state domain.State) error

// Adapter turns HandlerFuncs into http.HandlerFuncs whose object results are shaped.
type Adapter struct {
	shaper       ports.Shaper
	requestState RequestStateFunc
	logger       *slog.Logger
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithRequestState sets the per-request state contribution.
func WithRequestState(fn RequestStateFunc) AdapterOption {
	return func(a *Adapter) {
		a.requestState = fn
	}
}

// WithLogger sets the logger used for failed requests.
func WithLogger(logger *slog.Logger) AdapterOption {
	return func(a *Adapter) {
		a.logger = logger
	}
}

// NewAdapter creates an Adapter shaping results with shaper.
func NewAdapter(shaper ports.Shaper, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		shaper: shaper,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Handle adapts h.
func (a *Adapter) Handle(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := h(r)
		if err != nil {
			a.writeError(w, r, err)
			return
		}
		a.Write(w, r, res)
	}
}

// Write writes res for r.
func (a *Adapter) Write(w http.ResponseWriter, r *http.Request, res Result) {
	switch res := res.(type) {
	case View:
		a.writeView(w, r, res)
	case Object:
		a.writeShaped(w, r, res.Value, res.Status, nil, false)
	case JSON:
		a.writeShaped(w, r, res.Value, res.Status, res.Header, res.Indent)
	case nil:
		w.WriteHeader(http.StatusNoContent)
	default:
		a.writeError(w, r, NewStatusError(http.StatusInternalServerError, "unsupported result"))
	}
}

func (a *Adapter) writeView(w http.ResponseWriter, r *http.Request, v View) {
	if v.Template == nil {
		a.writeError(w, r, NewStatusError(http.StatusInternalServerError, "view without template"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusOr(v.Status, http.StatusOK))

	var err error
	if v.Name != "" {
		err = v.Template.ExecuteTemplate(w, v.Name, v.Data)
	} else {
		err = v.Template.Execute(w, v.Data)
	}
	if err != nil {
		a.logger.ErrorContext(r.Context(), "View render failed", "path", r.URL.Path, "error", err)
	}
}

func (a *Adapter) writeShaped(w http.ResponseWriter, r *http.Request, value any, status int, header http.Header, indent bool) {
	var addState domain.StateFunc
	if a.requestState != nil {
		addState = func(_ context.Context, s domain.State) error {
			return a.requestState(r, s)
		}
	}

	shaped, err := a.shaper.Shape(r.Context(), value, addState)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	for k, vs := range header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusOr(status, http.StatusOK))

	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(shaped); err != nil {
		a.logger.ErrorContext(r.Context(), "Response encode failed", "path", r.URL.Path, "error", err)
	}
}

func (a *Adapter) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	var se *StatusError
	if errors.As(err, &se) {
		status = se.Status
	}

	msg := http.StatusText(status)
	if status < http.StatusInternalServerError {
		msg = err.Error()
	} else {
		a.logger.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func statusOr(status, fallback int) int {
	if status == 0 {
		return fallback
	}
	return status
}
