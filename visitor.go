package stakkerlog

import "fmt"

// Key identifies a value within the event stream. A Key is either present
// (possibly with an empty name, which the single-line renderer shows as the
// \20 placeholder) or absent, which marks a positional element inside an
// open array. The zero Key is absent; use K to construct a present one.
type Key struct {
	name string
	ok   bool
}

// K returns a present Key with the given name.
func K(name string) Key { return Key{name: name, ok: true} }

// NoKey marks a positional element, valid by convention only inside an open
// array.
var NoKey = Key{}

// Name returns the key's name and whether the key is present.
func (k Key) Name() (string, bool) { return k.name, k.ok }

// Visitor is the fixed traversal protocol that renderers implement and
// traversal callbacks issue events against. Open/close calls for the same
// logical container must pass the same key, and every Map/Arr must be closed
// by a matching MapEnd/ArrEnd before the scan returns. The protocol does not
// police nesting: a malformed sequence yields malformed output, never a
// panic or an error.
//
// None of the methods report failure. A renderer that hits a sink write
// error records it internally and keeps accepting events so the producing
// traversal always runs to completion; the driver surfaces the failure
// afterwards.
type Visitor interface {
	// U64 emits an unsigned 64-bit scalar.
	U64(key Key, v uint64)
	// I64 emits a signed 64-bit scalar.
	I64(key Key, v int64)
	// F64 emits a 64-bit float scalar.
	F64(key Key, v float64)
	// Bool emits a boolean scalar.
	Bool(key Key, v bool)
	// Null emits a null/unit scalar.
	Null(key Key)
	// Str emits a string scalar. The string is only borrowed for the
	// duration of the call.
	Str(key Key, v string)
	// Fmt emits a lazily formatted scalar. The renderer invokes fn exactly
	// once, into a scratch buffer it reuses across events.
	Fmt(key Key, fn Lazy)
	// Map opens a keyed set of child events; MapEnd closes it.
	Map(key Key)
	MapEnd(key Key)
	// Arr opens a sequence of (typically keyless) child events; ArrEnd
	// closes it.
	Arr(key Key)
	ArrEnd(key Key)
}

// ScanFunc is the traversal callback contract: it receives a renderer and
// issues zero or more well-nested protocol events against it. The core has
// no other way to discover the data being rendered.
type ScanFunc func(Visitor)

// Lazy defers formatting of a value until a renderer needs its text. The
// function appends the formatted text to dst and returns the extended slice;
// dst arrives with length zero but whatever capacity previous events left
// behind.
type Lazy func(dst []byte) []byte

// Display wraps v for display-style lazy formatting (%v).
func Display(v any) Lazy {
	return func(dst []byte) []byte { return fmt.Appendf(dst, "%v", v) }
}

// Debug wraps v for debug-style lazy formatting (%+v).
func Debug(v any) Lazy {
	return func(dst []byte) []byte { return fmt.Appendf(dst, "%+v", v) }
}

// Lazyf builds a Lazy from a format string and arguments.
func Lazyf(format string, args ...any) Lazy {
	return func(dst []byte) []byte { return fmt.Appendf(dst, format, args...) }
}

// Visitable lets a type control its own structured rendering instead of
// going through the default Visit dispatch. Implementations may emit a
// single scalar or a whole container; the incoming key must be forwarded to
// whatever outermost event they produce.
type Visitable interface {
	VisitKV(key Key, out Visitor)
}
