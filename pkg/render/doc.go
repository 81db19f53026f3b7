// Package render groups the output renderers for reduced trees.
//
//   - [dot]: Graphviz node-link diagrams of a netlist, with in-process SVG
//     layout through go-graphviz
//   - [report]: plain-text build reports (layout, compressor counts, timing,
//     critical path)
//
// Both renderers are deterministic: equal trees give byte-identical output,
// which lets the pipeline cache artifacts by content key.
package render
