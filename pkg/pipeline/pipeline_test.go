package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/boothtree/pkg/cache"
	"github.com/matzehuels/boothtree/pkg/errors"
	"github.com/matzehuels/boothtree/pkg/netlist"
	"github.com/matzehuels/boothtree/pkg/observability"
)

func quietRunner(c cache.Cache) *Runner {
	return NewRunner(c, nil, log.NewWithOptions(io.Discard, log.Options{}))
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"txt", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Formats: []string{"txt", "dot", "txt"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Width != DefaultWidth || opts.LogicDepth != 32 || opts.Prefix != "pp" || opts.Logger == nil {
		t.Errorf("defaults not applied: %+v", opts)
	}
	if !slices.Equal(opts.Formats, []string{"txt", "dot"}) {
		t.Errorf("Formats = %v, want duplicates removed", opts.Formats)
	}

	empty := Options{}
	if err := empty.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(empty.Formats, []string{FormatTXT}) {
		t.Errorf("default formats = %v", empty.Formats)
	}

	wide := Options{Width: 96}
	if err := wide.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if wide.LogicDepth != 50 {
		t.Errorf("LogicDepth for width 96 = %d, want 50", wide.LogicDepth)
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"narrow", Options{Width: 2}, errors.ErrCodeInvalidConfig},
		{"shallow", Options{Width: 8, LogicDepth: 1}, errors.ErrCodeInvalidConfig},
		{"prefix", Options{Width: 8, Prefix: "9x"}, errors.ErrCodeInvalidConfig},
		{"format", Options{Width: 8, Formats: []string{"png"}}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("got %v, want %s", err, tt.code)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	r := quietRunner(nil)
	res, err := r.Execute(context.Background(), Options{
		Width:   8,
		Formats: []string{FormatJSON, FormatDOT, FormatTXT},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(res.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", res.ID, err)
	}
	if res.Stats.Levels != 3 || res.Stats.Compressors != 24 || res.Stats.Critical != 13 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if len(res.Artifacts) != 3 {
		t.Fatalf("got %d artifacts", len(res.Artifacts))
	}
	if !strings.HasPrefix(string(res.Artifacts[FormatDOT]), "digraph netlist {") {
		t.Error("dot artifact is not DOT")
	}
	if !strings.Contains(string(res.Artifacts[FormatTXT]), "critical latency 13.0") {
		t.Error("txt artifact lacks the timing summary")
	}
	n, err := netlist.ReadJSON(bytes.NewReader(res.Artifacts[FormatJSON]))
	if err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if n.NodeCount() != res.Netlist.NodeCount() {
		t.Errorf("json artifact has %d nodes, want %d", n.NodeCount(), res.Netlist.NodeCount())
	}
	if res.CacheInfo.Misses != 3 || res.CacheInfo.RenderHit {
		t.Errorf("CacheInfo = %+v with a null cache", res.CacheInfo)
	}
}

func TestExecuteNoConvergence(t *testing.T) {
	_, err := quietRunner(nil).Execute(context.Background(), Options{Width: 16, LogicDepth: 3})
	if !errors.Is(err, errors.ErrCodeNoConvergence) {
		t.Errorf("Execute() = %v, want NO_CONVERGENCE", err)
	}
}

func TestExecuteUsesCache(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := quietRunner(fc)
	opts := Options{Width: 8, Formats: []string{FormatDOT, FormatTXT}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.Hits != 0 || first.CacheInfo.Misses != 2 {
		t.Errorf("first run CacheInfo = %+v", first.CacheInfo)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.RenderHit || second.CacheInfo.Hits != 2 {
		t.Errorf("second run CacheInfo = %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatDOT], second.Artifacts[FormatDOT]) {
		t.Error("cached artifact differs from rendered one")
	}
	if first.ID == second.ID {
		t.Error("each run should get its own ID")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.Hits != 0 {
		t.Errorf("refresh run CacheInfo = %+v", third.CacheInfo)
	}

	opts.Refresh = false
	opts.Detailed = true
	fourth, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.CacheInfo.Hits != 0 {
		t.Error("detailed artifacts should not share keys with plain ones")
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	builds, renders int
	lastErr         error
}

func (h *countingHooks) OnBuildComplete(_ context.Context, _, _, _ int, _ time.Duration, err error) {
	h.builds++
	h.lastErr = err
}

func (h *countingHooks) OnRenderStart(context.Context, []string) { h.renders++ }

func TestExecuteFiresHooks(t *testing.T) {
	h := &countingHooks{}
	observability.SetPipelineHooks(h)
	defer observability.Reset()

	r := quietRunner(nil)
	if _, err := r.Execute(context.Background(), Options{Width: 4}); err != nil {
		t.Fatal(err)
	}
	if h.builds != 1 || h.renders != 1 || h.lastErr != nil {
		t.Errorf("hooks = %+v", h)
	}
	if _, err := r.Execute(context.Background(), Options{Width: 16, LogicDepth: 3}); err == nil {
		t.Fatal("expected failure")
	}
	if h.builds != 2 || h.lastErr == nil {
		t.Errorf("failed build should be reported, hooks = %+v", h)
	}
}

func TestSummarize(t *testing.T) {
	res, err := quietRunner(nil).Execute(context.Background(), Options{Width: 8})
	if err != nil {
		t.Fatal(err)
	}
	s := Summarize(res.Tree)
	if s.Levels != 3 || s.Compressors["total"] != 24 || s.Compressors["3to2"] != 15 || s.Compressors["4to2"] != 9 {
		t.Errorf("Summary = %+v", s)
	}
	if s.CriticalSignal != "u_cmprs_3to2_14_2_0_sum" || s.CriticalPath[0] != "pp_ext[1][12]" {
		t.Errorf("critical = %s via %v", s.CriticalSignal, s.CriticalPath)
	}
	if !slices.Equal(s.LevelLatency, []float64{8.5, 11.5, 13}) {
		t.Errorf("LevelLatency = %v", s.LevelLatency)
	}
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"critical_latency":13`) {
		t.Errorf("json = %s", data)
	}
}

func TestContentType(t *testing.T) {
	for format, want := range map[string]string{
		FormatJSON: "application/json",
		FormatSVG:  "image/svg+xml",
		FormatTXT:  "text/plain; charset=utf-8",
	} {
		if got := ContentType(format); got != want {
			t.Errorf("ContentType(%s) = %s", format, got)
		}
	}
}
