package stakkerlog

import (
	"io"
	"strconv"
	"sync"
)

const (
	lineWriterDefaultCap   = 1024
	lineWriterFlushTrigger = 8 << 10 // flush once a buffered line exceeds 8KiB
	lineWriterMaxCap       = 64 << 10
)

// lineWriter is the shared output buffer behind both renderers. In streaming
// mode (dst != nil) it auto-flushes oversized buffers and records the first
// write error; once err is set, later flushes drop their bytes so a failed
// render stays cheap while the traversal runs to completion. In append mode
// (dst == nil) it only accumulates and the caller takes buf directly.
type lineWriter struct {
	dst       io.Writer
	buf       []byte
	err       error
	autoFlush bool
}

var lineWriterPool = sync.Pool{
	New: func() any {
		return &lineWriter{buf: make([]byte, 0, lineWriterDefaultCap)}
	},
}

func acquireLineWriter(dst io.Writer) *lineWriter {
	lw := lineWriterPool.Get().(*lineWriter)
	lw.dst = dst
	lw.buf = lw.buf[:0]
	lw.err = nil
	lw.autoFlush = dst != nil
	return lw
}

func releaseLineWriter(lw *lineWriter) {
	lw.dst = nil
	lw.err = nil
	if cap(lw.buf) > lineWriterMaxCap {
		lw.buf = make([]byte, 0, lineWriterDefaultCap)
	} else {
		lw.buf = lw.buf[:0]
	}
	lw.autoFlush = false
	lineWriterPool.Put(lw)
}

func (lw *lineWriter) reserve(n int) {
	if n <= 0 {
		return
	}
	need := len(lw.buf) + n
	if need <= cap(lw.buf) {
		return
	}
	newCap := max(cap(lw.buf)*2+n, need)
	if newCap > lineWriterMaxCap {
		newCap = need
	}
	newBuf := make([]byte, len(lw.buf), newCap)
	copy(newBuf, lw.buf)
	lw.buf = newBuf
}

func (lw *lineWriter) writeByte(b byte) {
	lw.reserve(1)
	lw.buf = append(lw.buf, b)
	lw.maybeFlush()
}

func (lw *lineWriter) writeString(s string) {
	if s == "" {
		return
	}
	lw.reserve(len(s))
	lw.buf = append(lw.buf, s...)
	lw.maybeFlush()
}

func (lw *lineWriter) writeBytes(b []byte) {
	if len(b) == 0 {
		return
	}
	lw.reserve(len(b))
	lw.buf = append(lw.buf, b...)
	lw.maybeFlush()
}

func (lw *lineWriter) writeInt64(n int64) {
	lw.reserve(24)
	lw.buf = strconv.AppendInt(lw.buf, n, 10)
	lw.maybeFlush()
}

func (lw *lineWriter) writeUint64(n uint64) {
	lw.reserve(24)
	lw.buf = strconv.AppendUint(lw.buf, n, 10)
	lw.maybeFlush()
}

func (lw *lineWriter) writeFloat64(f float64) {
	lw.reserve(32)
	lw.buf = strconv.AppendFloat(lw.buf, f, 'f', -1, 64)
	lw.maybeFlush()
}

func (lw *lineWriter) writeBool(v bool) {
	if v {
		lw.writeString("true")
		return
	}
	lw.writeString("false")
}

func (lw *lineWriter) finishLine() {
	lw.writeByte('\n')
}

func (lw *lineWriter) flush() {
	if len(lw.buf) == 0 || lw.dst == nil {
		lw.buf = lw.buf[:0]
		return
	}
	if lw.err != nil {
		lw.buf = lw.buf[:0]
		return
	}
	if _, err := lw.dst.Write(lw.buf); err != nil {
		lw.err = err
	}
	lw.buf = lw.buf[:0]
}

func (lw *lineWriter) maybeFlush() {
	if !lw.autoFlush {
		return
	}
	if len(lw.buf) >= lineWriterFlushTrigger {
		lw.flush()
	}
}
