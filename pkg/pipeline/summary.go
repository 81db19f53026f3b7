package pipeline

import (
	"github.com/matzehuels/boothtree/pkg/circuit"
	"github.com/matzehuels/boothtree/pkg/wallace"
)

// Summary is the JSON description of a built tree served by the API and
// printed by the CLI.
type Summary struct {
	Width           int            `json:"width"`
	ResultWidth     int            `json:"result_width"`
	PartialProducts int            `json:"partial_products"`
	LogicDepth      int            `json:"logic_depth"`
	Prefix          string         `json:"prefix"`
	Levels          int            `json:"levels"`
	Compressors     map[string]int `json:"compressors"`
	Critical        float64        `json:"critical_latency"`
	CriticalSignal  string         `json:"critical_signal"`
	CriticalPath    []string       `json:"critical_path"`
	LevelLatency    []float64      `json:"level_latency"`
	Population      []int          `json:"population"`
	Truncated       []string       `json:"truncated,omitempty"`
}

// Summarize describes a tree.
func Summarize(t *wallace.Tree) Summary {
	tm := t.Timing()
	s := Summary{
		Width:           t.Width(),
		ResultWidth:     t.ResultWidth(),
		PartialProducts: t.PPNum(),
		LogicDepth:      t.LogicDepth(),
		Prefix:          t.Prefix(),
		Levels:          t.Levels(),
		Compressors:     make(map[string]int, len(circuit.Kinds)+1),
		Critical:        tm.Critical,
		CriticalSignal:  tm.CriticalSignal,
		CriticalPath:    circuit.Names(t.CriticalPath()),
		LevelLatency:    make([]float64, len(tm.Levels)),
		Population:      t.Population(),
		Truncated:       circuit.Names(t.Truncated()),
	}
	counts := t.Registry().CountByKind()
	for _, k := range circuit.Kinds {
		s.Compressors[k.String()] = counts[k]
	}
	s.Compressors["total"] = t.Registry().Len()
	for i, lt := range tm.Levels {
		s.LevelLatency[i] = lt.Latency
	}
	return s
}
