package wallace

import (
	"github.com/matzehuels/boothtree/pkg/circuit"
	"github.com/matzehuels/boothtree/pkg/errors"
)

// groupSize is the number of signals one 4:2 compressor consumes, cin included.
const groupSize = 5

// Reduction is the result of reducing one column once.
type Reduction struct {
	Carries []circuit.Signal // weighted one column higher
	Sums    []circuit.Signal // same column
}

// ReduceColumn reduces the live signals of one column by one level and
// registers every compressor it creates in reg. The live slice is not
// modified. site.Sequence numbers the first compressor; each further group
// takes the next sequence number.
//
// A single signal passes through unchanged. An empty column is a
// precondition failure.
func ReduceColumn(live []circuit.Signal, site circuit.Site, reg *circuit.Registry) (Reduction, error) {
	if len(live) == 0 {
		return Reduction{}, errors.New(errors.ErrCodePrecondition,
			"column %d level %d: cannot reduce an empty column", site.Column, site.Level)
	}

	var red Reduction
	rest := live
	for len(rest) > groupSize {
		n := len(rest)
		tail := rest[n-groupSize:]
		c, err := reg.Add(circuit.Kind4to2, site, tail[4], tail[3], tail[2], tail[1], tail[0])
		if err != nil {
			return Reduction{}, err
		}
		red.add(c)
		rest = rest[:n-groupSize]
		site.Sequence++
	}

	var (
		c   *circuit.Compressor
		err error
	)
	switch len(rest) {
	case 1:
		red.Sums = append(red.Sums, rest[0])
		return red, nil
	case 2:
		c, err = reg.Add(circuit.Kind2to1, site, rest...)
	case 3:
		c, err = reg.Add(circuit.Kind3to2, site, rest...)
	case 4:
		c, err = reg.Add(circuit.Kind4to2, site, rest[0], rest[1], rest[2], rest[3], circuit.Zero())
	case 5:
		c, err = reg.Add(circuit.Kind4to2, site, rest...)
	}
	if err != nil {
		return Reduction{}, err
	}
	red.add(c)
	return red, nil
}

func (r *Reduction) add(c *circuit.Compressor) {
	r.Sums = append(r.Sums, c.Sum())
	r.Carries = append(r.Carries, c.Carries()...)
}
