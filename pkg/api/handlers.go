package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/boothtree/pkg/booth"
	"github.com/matzehuels/boothtree/pkg/errors"
	"github.com/matzehuels/boothtree/pkg/pipeline"
)

// TreeResponse is the body of GET /v1/trees/{width}.
type TreeResponse struct {
	TreeKey string           `json:"tree_key"`
	Summary pipeline.Summary `json:"summary"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	opts, err := treeOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, err)
		return
	}
	t, _, err := s.runner.Build(r.Context(), opts)
	if err != nil {
		s.logFailure(r, err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TreeResponse{
		TreeKey: s.runner.Keyer.TreeKey(opts.Width, opts.TreeKeyOpts()),
		Summary: pipeline.Summarize(t),
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	width, err := pathWidth(r)
	if err != nil {
		writeError(w, err)
		return
	}
	l, err := booth.NewLayout(width)
	if err != nil {
		writeError(w, err)
		return
	}

	var b strings.Builder
	b.WriteString(l.String())
	pop := l.Population()
	for i, n := range pop[:l.ResultWidth()] {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(n))
	}
	b.WriteByte('\n')

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(b.String()))
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	opts, err := treeOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	format := chi.URLParam(r, "format")
	opts.Formats = []string{format}
	q := r.URL.Query()
	opts.Detailed = q.Get("detailed") == "true"
	opts.Refresh = q.Get("refresh") == "true"

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.logFailure(r, err)
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("X-Run-ID", res.ID)
	if res.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) logFailure(r *http.Request, err error) {
	if errors.IsDefect(err) || errors.GetCode(err) == "" {
		s.logger.Error("build failed", "path", r.URL.Path, "err", err)
	}
}

// treeOptions reads the width path parameter and the depth and prefix
// query parameters.
func treeOptions(r *http.Request) (pipeline.Options, error) {
	width, err := pathWidth(r)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{Width: width}

	q := r.URL.Query()
	if v := q.Get("depth"); v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "depth %q is not an integer", v)
		}
		if depth == 0 {
			return pipeline.Options{}, errors.ValidateLogicDepth(depth)
		}
		opts.LogicDepth = depth
	}
	if q.Has("prefix") {
		prefix := q.Get("prefix")
		if prefix == "" {
			return pipeline.Options{}, errors.ValidatePrefix(prefix)
		}
		opts.Prefix = prefix
	}
	return opts, nil
}

func pathWidth(r *http.Request) (int, error) {
	v := chi.URLParam(r, "width")
	width, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "width %q is not an integer", v)
	}
	if width == 0 {
		return 0, errors.ValidateWidth(width)
	}
	return width, nil
}
