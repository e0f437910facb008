package server

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/matzehuels/bricklayer/pkg/bond"
	"github.com/matzehuels/bricklayer/pkg/buildinfo"
	"github.com/matzehuels/bricklayer/pkg/errors"
	bio "github.com/matzehuels/bricklayer/pkg/io"
	"github.com/matzehuels/bricklayer/pkg/observability"
	"github.com/matzehuels/bricklayer/pkg/pipeline"
	"github.com/matzehuels/bricklayer/pkg/render/elevation"
	"github.com/matzehuels/bricklayer/pkg/render/support"
	"github.com/matzehuels/bricklayer/pkg/wall"
)

// Response headers describing how a result was produced.
const (
	SeedHeader  = "X-Bricklayer-Seed"
	CacheHeader = "X-Bricklayer-Cache"
	RunIDHeader = "X-Bricklayer-Run"
)

const (
	textPlain = "text/plain; charset=utf-8"
	imageSVG  = "image/svg+xml"
	appJSON   = "application/json"
)

type healthResponse struct {
	Status        string         `json:"status"`
	Build         buildinfo.Info `json:"build"`
	UptimeSeconds int64          `json:"uptime_seconds"`
}

type bondsResponse struct {
	Bonds []string `json:"bonds"`
}

type errorResponse struct {
	Error     string      `json:"error"`
	Code      errors.Code `json:"code,omitempty"`
	RequestID string      `json:"request_id"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Build:         buildinfo.Current(),
		UptimeSeconds: int64(time.Since(s.started).Seconds()),
	})
}

func (s *Server) handleBonds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, bondsResponse{Bonds: bond.Names()})
}

func (s *Server) handlePattern(w http.ResponseWriter, r *http.Request) {
	spec, opts, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	order, err := bio.ParseOrder(r.URL.Query().Get("order"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	p, seed, hit, err := s.runner.PatternWithCacheInfo(r.Context(), spec, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := bio.WritePattern(&buf, p, order); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set(SeedHeader, strconv.FormatUint(seed, 10))
	w.Header().Set(CacheHeader, cacheStatus(hit))
	writeBody(w, textPlain, buf.Bytes())
}

func (s *Server) handleSteps(w http.ResponseWriter, r *http.Request) {
	spec, opts, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	res, err := s.runner.Execute(r.Context(), spec, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := bio.WriteInstructions(&buf, res.Instructions); err != nil {
		s.writeError(w, r, err)
		return
	}
	setResultHeaders(w, res)
	writeBody(w, textPlain, buf.Bytes())
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	spec, opts, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	laid := -1
	if v := q.Get("laid"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "laid must be a non-negative integer, got %q", v))
			return
		}
		laid = n
	}

	res, err := s.runner.Execute(r.Context(), spec, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var svg []byte
	switch q.Get("type") {
	case "", "wall":
		eopts := []elevation.Option{elevation.WithInstructions(res.Instructions)}
		if laid >= 0 {
			eopts = append(eopts, elevation.WithLaid(laid))
		}
		svg = elevation.RenderSVG(res.Spec, res.Pattern, eopts...)
	case "support":
		svg, err = support.RenderSVG(support.ToDOT(res.Spec, res.Pattern, support.Options{Instructions: res.Instructions}))
		if err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "render support graph"))
			return
		}
	default:
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "unknown render type %q (want wall or support)", q.Get("type")))
		return
	}
	setResultHeaders(w, res)
	writeBody(w, imageSVG, svg)
}

// decodeRequest reads the wall configuration body and the seed parameter.
// It writes the error response itself and reports whether to continue.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (wall.Spec, pipeline.Options, bool) {
	var opts pipeline.Options
	if v := r.URL.Query().Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "seed must be an unsigned integer, got %q", v))
			return wall.Spec{}, opts, false
		}
		opts.Seed = seed
	}
	opts.Logger = s.logger.With("request", RequestID(r.Context()))

	spec, err := wall.Decode(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
				Error:     "payload exceeds limit",
				RequestID: RequestID(r.Context()).String(),
			})
			return wall.Spec{}, opts, false
		}
		s.writeError(w, r, err)
		return wall.Spec{}, opts, false
	}
	return spec, opts, true
}

func setResultHeaders(w http.ResponseWriter, res *pipeline.Result) {
	w.Header().Set(RunIDHeader, res.ID.String())
	w.Header().Set(SeedHeader, strconv.FormatUint(res.Seed, 10))
	w.Header().Set(CacheHeader, cacheStatus(res.CacheInfo.PatternHit && res.CacheInfo.InstructionsHit))
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidFormat,
		errors.ErrCodeUnsupportedBond:
		return http.StatusBadRequest
	case errors.ErrCodeTilingInfeasible, errors.ErrCodeGenerationExhausted, errors.ErrCodeInvalidInstructions:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "err", err)
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      code,
		RequestID: RequestID(r.Context()).String(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", appJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeBody(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
