// Package circuit models the combinational building blocks of a carry-save
// reduction tree: signals annotated with propagation latency and the three
// compressor kinds that consume them.
//
// # Signals
//
// A [Signal] is an immutable value. It carries a stable name, the accumulated
// latency from the primary inputs, and the [CompressorID] of the compressor
// that produced it ([NoProducer] for primary inputs and the tied-low constant
// returned by [Zero]). Producers are addressed by index into a [Registry]
// rather than by pointer, so a signal can be copied freely.
//
// # Compressors
//
// The set of compressor kinds is closed:
//
//   - [Kind2to1]: half adder, inputs a b, outputs sum cout
//   - [Kind3to2]: full adder, inputs a b c, outputs sum cout
//   - [Kind4to2]: inputs a b c d cin, outputs sum cout_a cout_b
//
// [Kind.Delays] maps input latencies to output latencies using the gate
// delays [DelayAND], [DelayOR] and [DelayXOR]. The cout_b output of a 4:2
// compressor depends only on inputs a, b and c, so a late d or cin can
// arrive after it. In trees built by package wallace every output is still at
// least [DelayAND] later than every input of its compressor.
//
// # Registry
//
// A [Registry] is an append-only arena. [Registry.Add] allocates the next
// [CompressorID], derives the output signals and returns the new compressor.
// Compressors are never mutated or removed once added.
package circuit
