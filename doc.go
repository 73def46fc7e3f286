// Package stakkerlog renders arbitrarily nested, strongly typed key-value
// data into two textual encodings: a compact human-readable single-line form
// and compact JSON. Both encoders consume the same visitor protocol from the
// same traversal callback and produce byte-exact output for a given event
// sequence.
//
// # Design overview
//
//   - Visitor protocol: a traversal callback (ScanFunc) issues scalar and
//     container open/close events against a Visitor; the two renderers are
//     the only implementations. Events never fail from the caller's point of
//     view: a sink write error sets a sticky flag and the traversal always
//     runs to completion.
//   - Drivers: AppendSingleLine/WriteSingleLine and AppendJSON/WriteJSON
//     seed a fresh renderer with a caller-supplied prefix as its initial
//     separator and emit the suffix only when the scan produced at least one
//     event, so an empty scan adds nothing at all. This makes fragments
//     safely spliceable into larger lines or JSON objects.
//   - Type dispatch: Visit maps native Go values onto the protocol with a
//     fixed widening table (all unsigned integers to u64, signed to i64,
//     floats to f64), reflection for typed containers, and a Visitable hook
//     for custom structured output.
//   - Pipeline: Logger/Cx carry a numeric context identifier, severity and
//     optional target to a sink; the built-in line and JSON sinks render
//     records through the same two encoders. New picks line output on
//     terminals and JSON elsewhere.
//
// # Usage
//
//	logger := stakkerlog.New(os.Stdout)
//	cx := logger.Cx(17)
//	cx.Error("failed to connect",
//		"addr", srcAddr,
//		"port", 443,
//		stakkerlog.KV().Debug("stream", stream))
//
// The renderers are usable without the pipeline:
//
//	buf = stakkerlog.AppendJSON(buf, kv.Scan, ",\"kv\":{", "}")
//
// # Encoding contracts
//
// Single-line: reserved characters are everything at or below space plus
// `"`, `=`, `\`, `[`, `]`, `{` and `}`; escapes are `\XX` with two uppercase
// hex digits; an empty key renders as the `\20` placeholder; containers are
// `key{...}` and `key[...]`; a null is the key alone. JSON: RFC 8259
// compatible compact output with `\u00XX` uppercase escapes for control
// characters. Both contracts are fixed; see the package tests for the exact
// bytes.
//
// Nesting depth is bounded only by the call stack of the producing
// traversal: there is no depth guard, and pathologically deep structures can
// exhaust the stack.
package stakkerlog
