package stakkerlog

import "io"

// jsonRenderer implements Visitor for compact JSON fragments. The output is
// the bare key-value list without surrounding braces, so a caller can splice
// it into a larger object it is already building; the driver's prefix/suffix
// supply any framing. Separator discipline matches the single-line renderer
// with ',' in place of the space.
type jsonRenderer struct {
	lw      *lineWriter
	pending string
	emitted bool
	fmtbuf  []byte
}

func (r *jsonRenderer) pushKey(key Key) {
	r.lw.writeString(r.pending)
	r.pending = ","
	r.emitted = true
	if !key.ok {
		return
	}
	r.lw.reserve(len(key.name) + 3)
	r.lw.buf = appendJSONString(r.lw.buf, key.name)
	r.lw.buf = append(r.lw.buf, ':')
	r.lw.maybeFlush()
}

func (r *jsonRenderer) pushStr(val string) {
	r.lw.reserve(len(val) + 2)
	r.lw.buf = appendJSONString(r.lw.buf, val)
	r.lw.maybeFlush()
}

func (r *jsonRenderer) U64(key Key, v uint64) {
	r.pushKey(key)
	r.lw.writeUint64(v)
}

func (r *jsonRenderer) I64(key Key, v int64) {
	r.pushKey(key)
	r.lw.writeInt64(v)
}

func (r *jsonRenderer) F64(key Key, v float64) {
	r.pushKey(key)
	r.lw.writeFloat64(v)
}

func (r *jsonRenderer) Bool(key Key, v bool) {
	r.pushKey(key)
	r.lw.writeBool(v)
}

func (r *jsonRenderer) Null(key Key) {
	r.pushKey(key)
	r.lw.writeString("null")
}

func (r *jsonRenderer) Str(key Key, v string) {
	r.pushKey(key)
	r.pushStr(v)
}

func (r *jsonRenderer) Fmt(key Key, fn Lazy) {
	r.pushKey(key)
	if cap(r.fmtbuf) == 0 {
		r.fmtbuf = make([]byte, 0, fmtScratchCap)
	}
	r.fmtbuf = r.fmtbuf[:0]
	if fn != nil {
		r.fmtbuf = fn(r.fmtbuf)
	}
	r.pushStr(string(r.fmtbuf))
}

func (r *jsonRenderer) Map(key Key) {
	r.pushKey(key)
	r.lw.writeByte('{')
	r.pending = ""
}

func (r *jsonRenderer) MapEnd(Key) {
	r.lw.writeByte('}')
	r.pending = ","
}

func (r *jsonRenderer) Arr(key Key) {
	r.pushKey(key)
	r.lw.writeByte('[')
	r.pending = ""
}

func (r *jsonRenderer) ArrEnd(Key) {
	r.lw.writeByte(']')
	r.pending = ","
}

// AppendJSON renders the events produced by scan as a compact JSON fragment
// and appends it to dst. prefix and suffix are written before and after the
// fragment, but only when scan emitted at least one event. Passing "," and
// "" extends an object the caller is building; passing ",\"kv\":{" and "}"
// splices an optional keyed sub-object into it.
func AppendJSON(dst []byte, scan ScanFunc, prefix, suffix string) []byte {
	lw := acquireLineWriter(nil)
	r := jsonRenderer{lw: lw, pending: prefix}
	scan(&r)
	if r.emitted {
		lw.writeString(suffix)
	}
	dst = append(dst, lw.buf...)
	releaseLineWriter(lw)
	return dst
}

// WriteJSON renders the events produced by scan as a compact JSON fragment
// directly to w, with the same prefix/suffix activation rule as AppendJSON.
// A write failure from w does not interrupt the traversal; it is recorded
// and returned after scan completes.
func WriteJSON(w io.Writer, scan ScanFunc, prefix, suffix string) error {
	lw := acquireLineWriter(w)
	r := jsonRenderer{lw: lw, pending: prefix}
	scan(&r)
	if r.emitted {
		lw.writeString(suffix)
	}
	lw.flush()
	err := lw.err
	releaseLineWriter(lw)
	return err
}

// JSONString is a convenience wrapper around AppendJSON.
func JSONString(scan ScanFunc, prefix, suffix string) string {
	return string(AppendJSON(nil, scan, prefix, suffix))
}
