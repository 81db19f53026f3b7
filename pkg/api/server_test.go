package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/boothtree/pkg/cache"
	"github.com/matzehuels/boothtree/pkg/errors"
	"github.com/matzehuels/boothtree/pkg/observability"
	"github.com/matzehuels/boothtree/pkg/pipeline"
)

func newTestServer(t *testing.T, c cache.Cache) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := httptest.NewServer(New(pipeline.NewRunner(c, nil, logger), logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, srv *httptest.Server, path string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, body := get(t, srv, "/healthz")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, `"ok"`) {
		t.Errorf("healthz = %d %s", resp.StatusCode, body)
	}
	if resp.Header.Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %s", resp.Header.Get("Content-Type"))
	}
}

func TestTree(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, body := get(t, srv, "/v1/trees/8?prefix=m")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, body)
	}
	var tr TreeResponse
	if err := json.Unmarshal([]byte(body), &tr); err != nil {
		t.Fatal(err)
	}
	if tr.Summary.Levels != 3 || tr.Summary.Compressors["total"] != 24 || tr.Summary.Prefix != "m" {
		t.Errorf("summary = %+v", tr.Summary)
	}
	if !strings.HasPrefix(tr.TreeKey, "tree:") {
		t.Errorf("tree key = %s", tr.TreeKey)
	}
}

func TestTreeWideDefaultDepth(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, body := get(t, srv, "/v1/trees/96")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, body)
	}
	var tr TreeResponse
	if err := json.Unmarshal([]byte(body), &tr); err != nil {
		t.Fatal(err)
	}
	if tr.Summary.Levels != 35 || tr.Summary.LogicDepth != 50 {
		t.Errorf("levels = %d, logic depth = %d", tr.Summary.Levels, tr.Summary.LogicDepth)
	}
}

func TestLayout(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, body := get(t, srv, "/v1/trees/4/layout")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, body)
	}
	want := "1111111100\n1111111110\n0011111110\n2 2 3 3 3 3 3 3\n"
	if body != want {
		t.Errorf("layout =\n%s\nwant\n%s", body, want)
	}
}

func TestArtifact(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	srv := newTestServer(t, c)

	resp, body := get(t, srv, "/v1/trees/8/artifacts/dot")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d: %s", resp.StatusCode, body)
	}
	if !strings.HasPrefix(body, "digraph netlist {") {
		t.Error("body is not DOT")
	}
	if resp.Header.Get("X-Cache") != "miss" || resp.Header.Get("X-Run-ID") == "" {
		t.Errorf("headers = %v", resp.Header)
	}

	resp, _ = get(t, srv, "/v1/trees/8/artifacts/dot")
	if resp.Header.Get("X-Cache") != "hit" {
		t.Error("second request should hit the cache")
	}
	resp, _ = get(t, srv, "/v1/trees/8/artifacts/dot?refresh=true")
	if resp.Header.Get("X-Cache") != "miss" {
		t.Error("refresh should bypass the cache")
	}

	resp, body = get(t, srv, "/v1/trees/8/artifacts/txt?detailed=true")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "Names") {
		t.Errorf("txt artifact = %d", resp.StatusCode)
	}
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/plain") {
		t.Errorf("Content-Type = %s", resp.Header.Get("Content-Type"))
	}
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t, nil)
	tests := []struct {
		path   string
		status int
		code   errors.Code
	}{
		{"/v1/trees/abc", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/v1/trees/0", http.StatusBadRequest, errors.ErrCodeInvalidConfig},
		{"/v1/trees/2", http.StatusBadRequest, errors.ErrCodeInvalidConfig},
		{"/v1/trees/8?depth=x", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"/v1/trees/8?depth=0", http.StatusBadRequest, errors.ErrCodeInvalidConfig},
		{"/v1/trees/8?prefix=", http.StatusBadRequest, errors.ErrCodeInvalidConfig},
		{"/v1/trees/8?prefix=a-b", http.StatusBadRequest, errors.ErrCodeInvalidConfig},
		{"/v1/trees/16?depth=3", http.StatusUnprocessableEntity, errors.ErrCodeNoConvergence},
		{"/v1/trees/256/artifacts/svg?depth=100000", http.StatusBadRequest, errors.ErrCodeInvalidConfig},
		{"/v1/trees/257", http.StatusBadRequest, errors.ErrCodeInvalidConfig},
		{"/v1/trees/1024/layout", http.StatusBadRequest, errors.ErrCodeInvalidConfig},
		{"/v1/trees/3/layout", http.StatusBadRequest, errors.ErrCodeInvalidConfig},
		{"/v1/trees/8/artifacts/png", http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"/v2/nothing", http.StatusNotFound, errors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, srv, tt.path)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d (%s)", resp.StatusCode, tt.status, body)
			}
			var eb errorBody
			if err := json.Unmarshal([]byte(body), &eb); err != nil {
				t.Fatalf("body %q: %v", body, err)
			}
			if eb.Error.Code != tt.code || eb.Error.Message == "" {
				t.Errorf("error = %+v, want code %s", eb.Error, tt.code)
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := map[errors.Code]int{
		errors.ErrCodeOutOfRange:    http.StatusBadRequest,
		errors.ErrCodePrecondition:  http.StatusInternalServerError,
		errors.ErrCodeNoConvergence: http.StatusUnprocessableEntity,
		errors.ErrCodeInternal:      http.StatusInternalServerError,
		"":                          http.StatusInternalServerError,
	}
	for code, want := range tests {
		if got := StatusFor(code); got != want {
			t.Errorf("StatusFor(%q) = %d, want %d", code, got, want)
		}
	}
}

type recordingHooks struct {
	observability.NoopServerHooks
	routes []string
	status []int
}

func (h *recordingHooks) OnResponse(_ context.Context, _, route string, status int, _ time.Duration) {
	h.routes = append(h.routes, route)
	h.status = append(h.status, status)
}

func TestServerHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetServerHooks(h)
	defer observability.Reset()

	srv := newTestServer(t, nil)
	get(t, srv, "/v1/trees/4/layout")

	if len(h.routes) != 1 || h.routes[0] != "/v1/trees/{width}/layout" || h.status[0] != http.StatusOK {
		t.Errorf("hooks saw %v %v", h.routes, h.status)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	s := New(pipeline.NewRunner(nil, nil, logger), logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
