package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/bricklayer/pkg/cache"
	bio "github.com/matzehuels/bricklayer/pkg/io"
	"github.com/matzehuels/bricklayer/pkg/observability"
	"github.com/matzehuels/bricklayer/pkg/pipeline"
	"github.com/matzehuels/bricklayer/pkg/plan"
	"github.com/matzehuels/bricklayer/pkg/wall"
)

func wallConfig(t *testing.T, b string, width, height float64) string {
	t.Helper()
	s := wall.Spec{
		Width:     width,
		Height:    height,
		HeadJoint: 10,
		BedJoint:  12.5,
		Envelope:  wall.Dimensions{Length: 450, Height: 130},
		Bricks: map[wall.Kind]wall.Dimensions{
			wall.Full:    {Length: 210, Height: 50},
			wall.Half:    {Length: 100, Height: 50},
			wall.Quarter: {Length: 45, Height: 50},
			wall.Closer:  {Length: 45, Height: 50},
		},
		Bond: b,
	}
	var buf strings.Builder
	if err := wall.Encode(&buf, s); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(fc, cache.NewScopedKeyer(nil, "server:"), logger)
	srv := httptest.NewServer(New(runner, logger, Config{}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/toml", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	var e errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var h healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		t.Fatal(err)
	}
	if h.Status != "ok" || h.Build.Version == "" {
		t.Errorf("health = %+v", h)
	}
	if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
		t.Errorf("missing request ID: %v", err)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	srv := newTestServer(t)
	id := uuid.New().String()
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get(RequestIDHeader); got != id {
		t.Errorf("request ID = %q, want %q", got, id)
	}
}

func TestBonds(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/v1/bonds")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var b bondsResponse
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		t.Fatal(err)
	}
	if len(b.Bonds) != 4 {
		t.Errorf("bonds = %v, want 4", b.Bonds)
	}
}

func TestPattern(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv.URL+"/v1/pattern", wallConfig(t, "stretcher", 650, 250))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %+v", resp.StatusCode, decodeError(t, resp))
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q", ct)
	}
	if resp.Header.Get(CacheHeader) != "miss" {
		t.Errorf("first request cache = %q, want miss", resp.Header.Get(CacheHeader))
	}
	bottom, err := bio.ReadPattern(resp.Body, bio.BottomFirst)
	if err != nil {
		t.Fatal(err)
	}
	if lens := courseLengths(bottom); lens != "3 4 3 4" {
		t.Errorf("course lengths = %s, want 3 4 3 4", lens)
	}

	again := post(t, srv.URL+"/v1/pattern?order=top", wallConfig(t, "stretcher", 650, 250))
	if again.Header.Get(CacheHeader) != "hit" {
		t.Errorf("second request cache = %q, want hit", again.Header.Get(CacheHeader))
	}
	top, err := bio.ReadPattern(again.Body, bio.TopFirst)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.EqualFunc(top, bottom, slices.Equal) {
		t.Errorf("top-first pattern %v does not match %v", top, bottom)
	}
}

func courseLengths(p wall.Pattern) string {
	lens := make([]string, len(p))
	for i, c := range p {
		lens[i] = strconv.Itoa(len(c))
	}
	return strings.Join(lens, " ")
}

func TestWildSeed(t *testing.T) {
	srv := newTestServer(t)
	a := post(t, srv.URL+"/v1/pattern?seed=9", wallConfig(t, "wild", 2355, 250))
	b := post(t, srv.URL+"/v1/pattern?seed=9", wallConfig(t, "wild", 2355, 250))
	if a.StatusCode != http.StatusOK || b.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, %d", a.StatusCode, b.StatusCode)
	}
	if a.Header.Get(SeedHeader) != "9" {
		t.Errorf("seed header = %q", a.Header.Get(SeedHeader))
	}
	ab, _ := io.ReadAll(a.Body)
	bb, _ := io.ReadAll(b.Body)
	if string(ab) != string(bb) {
		t.Error("same seed produced different patterns")
	}
}

func TestSteps(t *testing.T) {
	srv := newTestServer(t)
	cfg := wallConfig(t, "stretcher", 650, 250)
	resp := post(t, srv.URL+"/v1/steps", cfg)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %+v", resp.StatusCode, decodeError(t, resp))
	}
	if _, err := uuid.Parse(resp.Header.Get(RunIDHeader)); err != nil {
		t.Errorf("run ID header: %v", err)
	}
	in, err := bio.ReadInstructions(resp.Body)
	if err != nil {
		t.Fatal(err)
	}

	spec, err := wall.Decode(strings.NewReader(cfg))
	if err != nil {
		t.Fatal(err)
	}
	pat := post(t, srv.URL+"/v1/pattern", cfg)
	p, err := bio.ReadPattern(pat.Body, bio.BottomFirst)
	if err != nil {
		t.Fatal(err)
	}
	if err := plan.Verify(spec, p, in); err != nil {
		t.Errorf("served instructions invalid: %v", err)
	}
}

func TestRender(t *testing.T) {
	srv := newTestServer(t)
	cfg := wallConfig(t, "stretcher", 650, 250)

	tests := []struct {
		query  string
		status int
	}{
		{"", http.StatusOK},
		{"?type=wall&laid=3", http.StatusOK},
		{"?type=support", http.StatusOK},
		{"?type=pie", http.StatusBadRequest},
		{"?laid=-1", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp := post(t, srv.URL+"/v1/render"+tt.query, cfg)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if tt.status == http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				if !strings.Contains(string(body), "<svg") {
					t.Error("response is not SVG")
				}
			}
		})
	}
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"bad toml", "/v1/pattern", "bond = ", http.StatusBadRequest, "INVALID_CONFIG"},
		{"unknown bond", "/v1/pattern", wallConfig(t, "herringbone", 650, 250), http.StatusBadRequest, "UNSUPPORTED_BOND"},
		{"infeasible", "/v1/steps", wallConfig(t, "stretcher", 650, 260), http.StatusUnprocessableEntity, "TILING_INFEASIBLE"},
		{"bad seed", "/v1/pattern?seed=-4", wallConfig(t, "wild", 2355, 250), http.StatusBadRequest, "INVALID_INPUT"},
		{"bad order", "/v1/pattern?order=sideways", wallConfig(t, "stretcher", 650, 250), http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			e := decodeError(t, resp)
			if string(e.Code) != tt.code {
				t.Errorf("code = %q, want %q", e.Code, tt.code)
			}
			if e.RequestID != resp.Header.Get(RequestIDHeader) {
				t.Errorf("body request ID %q != header %q", e.RequestID, resp.Header.Get(RequestIDHeader))
			}
		})
	}
}

func TestBodyLimit(t *testing.T) {
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(nil, nil, logger)
	srv := httptest.NewServer(New(runner, logger, Config{MaxBodyBytes: 16}).Handler())
	defer srv.Close()

	resp := post(t, srv.URL+"/v1/pattern", wallConfig(t, "stretcher", 650, 250))
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", resp.StatusCode)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/v1/pattern")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestServeShutdown(t *testing.T) {
	logger := log.New(io.Discard)
	s := New(pipeline.NewRunner(nil, nil, logger), logger, Config{})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/healthz"
	var resp *http.Response
	for range 50 {
		if resp, err = http.Get(url); err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server never came up: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu        sync.Mutex
	responses []int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.responses = append(h.responses, status)
}

func TestHTTPHooks(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	post(t, srv.URL+"/v1/pattern", "bond = ")

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if !slices.Equal(hooks.responses, []int{http.StatusOK, http.StatusBadRequest}) {
		t.Errorf("recorded statuses = %v, want [200 400]", hooks.responses)
	}
}
