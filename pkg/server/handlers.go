package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/render/cloud/layout"
)

// Request is the body of the layout and render endpoints.
type Request struct {
	pipeline.Input
	Options pipeline.Options `json:"options"`
}

// LayoutResponse is the body returned by POST /v1/layout.
type LayoutResponse struct {
	Layout *layout.Layout `json:"layout"`
	Stats  StatsResponse  `json:"stats"`
	Cached bool           `json:"cached"`
}

// StatsResponse summarizes a layout pass.
type StatsResponse struct {
	Records  int `json:"records"`
	Tags     int `json:"tags"`
	Rows     int `json:"rows"`
	Rejected int `json:"rejected"`
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	type format struct {
		Name        string `json:"name"`
		ContentType string `json:"content_type"`
	}
	out := make([]format, len(pipeline.Formats))
	for i, f := range pipeline.Formats {
		out[i] = format{Name: f, ContentType: pipeline.ContentType(f)}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	body, req, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	v, err, shared := s.inflight.Do("layout:"+cache.Hash(body), func() (any, error) {
		recs, err := req.Input.Records()
		if err != nil {
			return nil, err
		}
		ctx, cancel := s.detach(r)
		defer cancel()
		lay, hit, err := s.runner.GenerateLayoutWithCacheInfo(ctx, recs, req.Options)
		if err != nil {
			return nil, err
		}
		return &LayoutResponse{
			Layout: lay,
			Stats: StatsResponse{
				Records:  len(recs),
				Tags:     lay.Count,
				Rows:     len(lay.Rows),
				Rejected: len(lay.Rejected),
			},
			Cached: hit,
		}, nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if shared {
		s.logger.Debug("shared layout result", "request_id", RequestIDFrom(r.Context()))
	}
	writeJSON(w, http.StatusOK, v)
}

type renderResult struct {
	data     []byte
	layoutID string
	cached   bool
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeJSON(w, http.StatusNotFound, errorBody(r, err))
		return
	}
	body, req, err := s.decode(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	v, err, _ := s.inflight.Do("render:"+format+":"+cache.Hash(body), func() (any, error) {
		recs, err := req.Input.Records()
		if err != nil {
			return nil, err
		}
		opts := req.Options
		opts.Formats = []string{format}
		ctx, cancel := s.detach(r)
		defer cancel()
		res, err := s.runner.Execute(ctx, recs, opts)
		if err != nil {
			return nil, err
		}
		return &renderResult{
			data:     res.Artifacts[format],
			layoutID: res.Layout.ID,
			cached:   res.CacheInfo.RenderHit,
		}, nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res := v.(*renderResult)
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("X-Layout-ID", res.layoutID)
	if res.cached {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.data)
}

// detach returns a context for work shared between identical requests. It
// outlives the caller that started it but not the request timeout.
func (s *Server) detach(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(r.Context()), s.timeout)
}

// decode reads the body within the size limit and parses it.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) ([]byte, Request, error) {
	var req Request
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		return nil, req, err
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, req, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request")
	}
	return body, req, nil
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error     ErrorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorDetail describes a failure. Details lists one entry per bad record
// when a layout pass rejects several records.
type ErrorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= 500 {
		s.logger.Error("request failed", "err", err, "request_id", RequestIDFrom(r.Context()))
	}
	writeJSON(w, status, errorBody(r, err))
}

func errorBody(r *http.Request, err error) ErrorResponse {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		code = errors.ErrCodeInvalidInput
	}
	resp := ErrorResponse{
		Error:     ErrorDetail{Code: string(code), Message: errors.UserMessage(err)},
		RequestID: RequestIDFrom(r.Context()),
	}
	if leaves := joined(err); len(leaves) > 1 {
		resp.Error.Message = fmt.Sprintf("%d invalid records", len(leaves))
		for _, e := range leaves {
			resp.Error.Details = append(resp.Error.Details, e.Error())
		}
	}
	return resp
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidColor, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidWeight, errors.ErrCodeInvalidLink, errors.ErrCodeMeasure:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

// joined returns the leaves of an errors.Join tree, looking through
// single-error wrappers.
func joined(err error) []error {
	for err != nil {
		if j, ok := err.(interface{ Unwrap() []error }); ok {
			return j.Unwrap()
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
