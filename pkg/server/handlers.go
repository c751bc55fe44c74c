package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	errs "github.com/matzehuels/edgecross/pkg/errors"
	ecio "github.com/matzehuels/edgecross/pkg/io"
	"github.com/matzehuels/edgecross/pkg/observability"
	"github.com/matzehuels/edgecross/pkg/pipeline"
	"github.com/matzehuels/edgecross/pkg/store"
)

type errorBody struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

type listBody struct {
	Results []store.Record `json:"results"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := s.readDocument(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), doc, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleLocal(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	if !q.Has("node") {
		s.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "missing query parameter node"))
		return
	}
	node, err := parseNode(q.Get("node"), "node")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := s.readDocument(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if q.Has("other") {
		other, err := parseNode(q.Get("other"), "other")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		res, err := s.runner.Between(r.Context(), doc, node, other, opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
		return
	}

	res, err := s.runner.Local(r.Context(), doc, node, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	if s.runner.Store == nil {
		s.writeError(w, r, errs.New(errs.ErrCodeNotFound, "result store is disabled"))
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}

	recs, err := s.runner.Store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if recs == nil {
		recs = []store.Record{}
	}
	writeJSON(w, http.StatusOK, listBody{Results: recs})
}

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	if s.runner.Store == nil {
		s.writeError(w, r, errs.New(errs.ErrCodeNotFound, "result store is disabled"))
		return
	}
	id := chi.URLParam(r, "id")
	if !store.ValidID(id) {
		s.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "invalid result id %q", id))
		return
	}

	rec, err := s.runner.Store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// requestOptions applies query overrides to the server defaults.
func (s *Server) requestOptions(r *http.Request) (pipeline.Options, error) {
	opts := pipeline.Options{
		Strategy:      s.defaults.Strategy,
		Strict:        s.defaults.Strict,
		MaxNaiveEdges: s.defaults.MaxNaiveEdges,
		Logger:        s.logger,
	}

	q := r.URL.Query()
	if v := q.Get("strategy"); v != "" {
		opts.Strategy = v
	}
	for name, dst := range map[string]*bool{"strict": &opts.Strict, "refresh": &opts.Refresh} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errs.New(errs.ErrCodeInvalidInput, "invalid %s %q", name, v)
		}
		*dst = b
	}
	if v := q.Get("max_naive_edges"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errs.New(errs.ErrCodeInvalidInput, "invalid max_naive_edges %q", v)
		}
		if err := s.checkCeiling(n); err != nil {
			return opts, err
		}
		opts.MaxNaiveEdges = n
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// checkCeiling accepts a requested naive ceiling only if it is positive and
// no higher than the configured one. A negative configured ceiling means none.
func (s *Server) checkCeiling(n int) error {
	limit := s.defaults.MaxNaiveEdges
	if limit == 0 {
		limit = pipeline.DefaultMaxNaiveEdges
	}
	if n <= 0 {
		return errs.New(errs.ErrCodeInvalidInput, "max_naive_edges must be positive, got %d", n)
	}
	if limit > 0 && n > limit {
		return errs.New(errs.ErrCodeInvalidInput, "max_naive_edges %d exceeds the server limit of %d", n, limit)
	}
	return nil
}

func (s *Server) readDocument(w http.ResponseWriter, r *http.Request) (*ecio.Document, error) {
	doc, err := ecio.ReadDocument(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errs.Wrap(errs.ErrCodeTooLarge, err, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, err
	}
	return doc, nil
}

func parseNode(v, name string) (int64, error) {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, errs.New(errs.ErrCodeInvalidInput, "invalid %s %q", name, v)
	}
	return n, nil
}

// writeError classifies err and writes it as a JSON error body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	err = pipeline.Classify(err)
	code := errs.GetCode(err)
	status := errs.HTTPStatus(code)

	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	logFn := s.logger.Warn
	if status >= http.StatusInternalServerError {
		logFn = s.logger.Error
	}
	logFn("request failed", "method", r.Method, "path", r.URL.Path, "status", status, "err", err)

	writeJSON(w, status, errorBody{Code: code, Message: errs.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
