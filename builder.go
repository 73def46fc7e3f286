package stakkerlog

import "strings"

// Builder collects an ordered list of keyed values and replays them against
// a Visitor. It replaces the call-site sugar of other structured loggers
// with explicit chained adds:
//
//	kv := stakkerlog.KV().
//		Str("addr", addr).
//		U64("port", 443).
//		Display("src", srcAddr).
//		Debug("stream", stream)
//	stakkerlog.AppendSingleLine(buf, kv.Scan, " ", "")
//
// Values added with Any go through Visit dispatch; the typed methods pin the
// scalar kind at the call site. A Builder is not safe for concurrent
// mutation, but once built it may be replayed any number of times.
type Builder struct {
	fields []field
}

type field struct {
	key   Key
	value any
}

// KV returns an empty Builder.
func KV() *Builder { return &Builder{} }

// Any adds a value rendered through Visit dispatch.
func (b *Builder) Any(key string, v any) *Builder {
	return b.add(K(key), v)
}

// Path adds a value keyed by the last segment of a dotted path, so
// "tcp.packet.size" renders under the key "size".
func (b *Builder) Path(path string, v any) *Builder {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		path = path[i+1:]
	}
	return b.add(K(path), v)
}

// U64 adds an unsigned 64-bit scalar.
func (b *Builder) U64(key string, v uint64) *Builder {
	return b.add(K(key), v)
}

// I64 adds a signed 64-bit scalar.
func (b *Builder) I64(key string, v int64) *Builder {
	return b.add(K(key), v)
}

// F64 adds a 64-bit float scalar.
func (b *Builder) F64(key string, v float64) *Builder {
	return b.add(K(key), v)
}

// Bool adds a boolean scalar.
func (b *Builder) Bool(key string, v bool) *Builder {
	return b.add(K(key), v)
}

// Str adds a string scalar.
func (b *Builder) Str(key string, v string) *Builder {
	return b.add(K(key), v)
}

// Null adds a null scalar.
func (b *Builder) Null(key string) *Builder {
	return b.add(K(key), nil)
}

// Display adds v formatted lazily with %v.
func (b *Builder) Display(key string, v any) *Builder {
	return b.add(K(key), Display(v))
}

// Debug adds v formatted lazily with %+v.
func (b *Builder) Debug(key string, v any) *Builder {
	return b.add(K(key), Debug(v))
}

// Fmtf adds a lazily formatted value built from a format string.
func (b *Builder) Fmtf(key string, format string, args ...any) *Builder {
	return b.add(K(key), Lazyf(format, args...))
}

// Map adds a nested map replayed from another Builder.
func (b *Builder) Map(key string, nested *Builder) *Builder {
	return b.add(K(key), nested)
}

// Arr adds an array of elements, each rendered through Visit dispatch.
func (b *Builder) Arr(key string, elems ...any) *Builder {
	return b.add(K(key), elems)
}

// Len reports the number of added fields.
func (b *Builder) Len() int {
	if b == nil {
		return 0
	}
	return len(b.fields)
}

func (b *Builder) add(key Key, v any) *Builder {
	b.fields = append(b.fields, field{key: key, value: v})
	return b
}

// Scan replays the builder's fields against out, in insertion order. It is a
// ScanFunc and can be handed to any driver.
func (b *Builder) Scan(out Visitor) {
	if b == nil {
		return
	}
	for _, f := range b.fields {
		Visit(out, f.key, f.value)
	}
}
