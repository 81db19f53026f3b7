// Package pkg provides the libraries behind boothtree, a synthesizer for the
// partial-product reduction stage of radix-4 Booth multipliers.
//
// # Overview
//
// The pkg directory is organized into three areas:
//
//  1. Core: [circuit] (signals, compressors, delay model), [booth]
//     (partial-product layout) and [wallace] (column and level reduction)
//  2. Output: [netlist] (component graph) and the [render] subpackages
//  3. Plumbing: [pipeline] (build → render), [cache], [api],
//     [observability], [errors] and [buildinfo]
//
// # Data flow
//
//	operand width
//	     ↓
//	[booth] layout of partial-product bits
//	     ↓
//	[wallace] reduction to two signals per column
//	     ↓
//	[netlist] component graph
//	     ↓
//	JSON / DOT / SVG / text report
//
// # Quick Start
//
//	t, err := wallace.Build(16, wallace.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(t.Levels(), t.Registry(), t.Timing().Critical)
//
// The core packages are synchronous, deterministic and never log. Only the
// plumbing packages take loggers or contexts.
package pkg
