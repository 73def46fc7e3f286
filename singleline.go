package stakkerlog

import "io"

// lineRenderer implements Visitor for the single-line encoding. Separator
// state follows a push/pop discipline: pending holds whatever must precede
// the next item (initially the driver's prefix), and collapses to a single
// space once the first item at the current nesting level is out. Opening a
// container pushes an empty pending so its first child gets no separator;
// closing restores the parent's single space.
type lineRenderer struct {
	lw      *lineWriter
	pending string
	emitted bool
	fmtbuf  []byte
}

// pushKey emits the pending separator, then the escaped key (when present)
// followed by sep. sep is 0 for events that carry no key/value delimiter.
func (r *lineRenderer) pushKey(key Key, sep byte) {
	r.lw.writeString(r.pending)
	r.pending = " "
	r.emitted = true
	if !key.ok {
		return
	}
	r.lw.reserve(len(key.name) + 4)
	r.lw.buf = appendLineKey(r.lw.buf, key.name)
	if sep != 0 {
		r.lw.buf = append(r.lw.buf, sep)
	}
	r.lw.maybeFlush()
}

func (r *lineRenderer) pushStr(val string) {
	r.lw.reserve(len(val) + 2)
	r.lw.buf = appendLineValue(r.lw.buf, val)
	r.lw.maybeFlush()
}

func (r *lineRenderer) U64(key Key, v uint64) {
	r.pushKey(key, '=')
	r.lw.writeUint64(v)
}

func (r *lineRenderer) I64(key Key, v int64) {
	r.pushKey(key, '=')
	r.lw.writeInt64(v)
}

func (r *lineRenderer) F64(key Key, v float64) {
	r.pushKey(key, '=')
	r.lw.writeFloat64(v)
}

func (r *lineRenderer) Bool(key Key, v bool) {
	r.pushKey(key, '=')
	r.lw.writeBool(v)
}

// Null renders as the key alone, with no '=' and no value.
func (r *lineRenderer) Null(key Key) {
	r.pushKey(key, 0)
}

func (r *lineRenderer) Str(key Key, v string) {
	r.pushKey(key, '=')
	r.pushStr(v)
}

func (r *lineRenderer) Fmt(key Key, fn Lazy) {
	r.pushKey(key, '=')
	if cap(r.fmtbuf) == 0 {
		r.fmtbuf = make([]byte, 0, fmtScratchCap)
	}
	r.fmtbuf = r.fmtbuf[:0]
	if fn != nil {
		r.fmtbuf = fn(r.fmtbuf)
	}
	r.pushStr(string(r.fmtbuf))
}

func (r *lineRenderer) Map(key Key) {
	r.pushKey(key, 0)
	r.lw.writeByte('{')
	r.pending = ""
}

func (r *lineRenderer) MapEnd(Key) {
	r.lw.writeByte('}')
	r.pending = " "
}

func (r *lineRenderer) Arr(key Key) {
	r.pushKey(key, 0)
	r.lw.writeByte('[')
	r.pending = ""
}

func (r *lineRenderer) ArrEnd(Key) {
	r.lw.writeByte(']')
	r.pending = " "
}

// fmtScratchCap is the initial capacity of the per-render scratch buffer for
// lazily formatted values. The buffer is truncated and reused across events
// of one render.
const fmtScratchCap = 1024

// AppendSingleLine renders the events produced by scan in the single-line
// encoding and appends them to dst. prefix and suffix are written before and
// after the key-value text, but only when scan emitted at least one event;
// an empty scan appends nothing at all.
func AppendSingleLine(dst []byte, scan ScanFunc, prefix, suffix string) []byte {
	lw := acquireLineWriter(nil)
	r := lineRenderer{lw: lw, pending: prefix}
	scan(&r)
	if r.emitted {
		lw.writeString(suffix)
	}
	dst = append(dst, lw.buf...)
	releaseLineWriter(lw)
	return dst
}

// WriteSingleLine renders the events produced by scan in the single-line
// encoding directly to w, with the same prefix/suffix activation rule as
// AppendSingleLine. A write failure from w does not interrupt the traversal;
// it is recorded and returned after scan completes, and bytes already
// written may remain in the destination.
func WriteSingleLine(w io.Writer, scan ScanFunc, prefix, suffix string) error {
	lw := acquireLineWriter(w)
	r := lineRenderer{lw: lw, pending: prefix}
	scan(&r)
	if r.emitted {
		lw.writeString(suffix)
	}
	lw.flush()
	err := lw.err
	releaseLineWriter(lw)
	return err
}

// SingleLineString is a convenience wrapper around AppendSingleLine.
func SingleLineString(scan ScanFunc, prefix, suffix string) string {
	return string(AppendSingleLine(nil, scan, prefix, suffix))
}
