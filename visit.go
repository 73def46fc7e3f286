package stakkerlog

import (
	"fmt"
	"reflect"
	"sort"
)

// Visit maps a native Go value onto the visitor protocol. Scalars widen to
// the three 64-bit kinds, nil becomes a null scalar, strings pass through
// without copying, and containers recurse: slices and arrays open an array
// and visit their elements keyless, string-keyed maps open a map and visit
// each entry under its key. Types implementing Visitable take over their own
// rendering; anything else falls back to lazy display formatting.
//
// The incoming key applies only to the outermost event of a composite value;
// recursion below it supplies its own keys.
//
// Dispatch itself has no error paths: all fallibility lives in the
// renderer's sink.
func Visit(out Visitor, key Key, value any) {
	switch v := value.(type) {
	case nil:
		out.Null(key)
	case Visitable:
		v.VisitKV(key, out)
	case Lazy:
		out.Fmt(key, v)
	case ScanFunc:
		out.Map(key)
		v(out)
		out.MapEnd(key)
	case *Builder:
		out.Map(key)
		v.Scan(out)
		out.MapEnd(key)
	case string:
		out.Str(key, v)
	case bool:
		out.Bool(key, v)
	case uint:
		out.U64(key, uint64(v))
	case uint8:
		out.U64(key, uint64(v))
	case uint16:
		out.U64(key, uint64(v))
	case uint32:
		out.U64(key, uint64(v))
	case uint64:
		out.U64(key, v)
	case uintptr:
		out.U64(key, uint64(v))
	case int:
		out.I64(key, int64(v))
	case int8:
		out.I64(key, int64(v))
	case int16:
		out.I64(key, int64(v))
	case int32:
		out.I64(key, int64(v))
	case int64:
		out.I64(key, v)
	case float32:
		out.F64(key, float64(v))
	case float64:
		out.F64(key, v)
	case []any:
		out.Arr(key)
		for _, elem := range v {
			Visit(out, NoKey, elem)
		}
		out.ArrEnd(key)
	case map[string]any:
		out.Map(key)
		for _, k := range sortedKeys(v) {
			Visit(out, K(k), v[k])
		}
		out.MapEnd(key)
	case error:
		out.Fmt(key, Display(v))
	case fmt.Stringer:
		out.Fmt(key, Display(v))
	default:
		visitReflect(out, key, reflect.ValueOf(value))
	}
}

// visitReflect handles named scalar types, typed slices/arrays and typed
// string-keyed maps that the fast switch above missed. Map keys are sorted
// so output is deterministic regardless of Go's map iteration order.
func visitReflect(out Visitor, key Key, rv reflect.Value) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			out.Null(key)
			return
		}
		Visit(out, key, rv.Elem().Interface())
	case reflect.String:
		out.Str(key, rv.String())
	case reflect.Bool:
		out.Bool(key, rv.Bool())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		out.U64(key, rv.Uint())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		out.I64(key, rv.Int())
	case reflect.Float32, reflect.Float64:
		out.F64(key, rv.Float())
	case reflect.Slice, reflect.Array:
		out.Arr(key)
		for i := 0; i < rv.Len(); i++ {
			Visit(out, NoKey, rv.Index(i).Interface())
		}
		out.ArrEnd(key)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			out.Fmt(key, Display(rv.Interface()))
			return
		}
		out.Map(key)
		keys := make([]string, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			keys = append(keys, iter.Key().String())
		}
		sort.Strings(keys)
		for _, k := range keys {
			Visit(out, K(k), rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface())
		}
		out.MapEnd(key)
	default:
		out.Fmt(key, Display(rv.Interface()))
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
