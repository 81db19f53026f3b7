// Package wallace builds the carry-save reduction tree of a Booth-encoded
// multiplier.
//
// # Overview
//
// [New] lays out the partial products with [booth.NewLayout] and fills one
// live signal list per result column with primary signals named
// "<prefix>_ext[row][col]". [Tree.Reduce] then applies [ReduceColumn] to every
// column holding more than two signals, one level at a time, until each
// column holds at most two. The remaining pairs are the carry-save result
// handed to a final carry-propagate adder, which this package does not build.
//
// # Ordering Contract
//
// [ReduceColumn] drains a column from its tail: while more than five signals
// remain it feeds the five most recently appended ones, last first, into a
// 4:2 compressor (a, b, c, d, cin). The leftover one to five signals are
// reduced by a single compressor chosen by count. Outputs of earlier groups
// precede outputs of later groups. Between levels, column c becomes its own
// sums followed by the carries of column c-1. Numeric results do not depend
// on this order; names and latencies do, and both are reproducible.
//
// # Termination
//
// Reduction is capped at [Options.LogicDepth] levels. Exhausting the cap
// returns an error coded NO_CONVERGENCE. Carries leaving the most significant
// result column fall outside the product and are reported by
// [Tree.Truncated].
//
// # Concurrency
//
// A Tree is not safe for concurrent use. Separate trees share no state and
// may be built in parallel.
package wallace
