package stakkerlog

import (
	"fmt"
	"io"
	"strconv"
	"time"
)

// Mode controls how the built-in sinks render records.
type Mode int

const (
	// ModeLine emits human-readable single-line records.
	ModeLine Mode = iota
	// ModeJSON emits one compact JSON object per record.
	ModeJSON
)

// DTGTimeFormat is the default Date Time Group layout (DDHHMM) for the line
// sink.
var DTGTimeFormat = "021504"

// Options controls the built-in sinks.
type Options struct {
	// Mode selects line (default) or JSON rendering.
	Mode Mode

	// MinLevel sets the minimum level the logger delivers. Defaults to
	// Debug. Audit records pass any minimum short of Disabled.
	MinLevel Level

	// TimeFormat overrides the timestamp layout. When empty, the line sink
	// uses DTGTimeFormat and the JSON sink uses time.RFC3339.
	TimeFormat string

	// DisableTimestamp drops the timestamp entirely.
	DisableTimestamp bool

	// UTC forces timestamps to be rendered in UTC.
	UTC bool
}

// Record is one log entry handed to a sink. ID is the numeric context
// identifier of whatever span or actor produced the record; zero means no
// particular context. Scan supplies the structured key-value data and may be
// nil. The sink must finish with the record before returning: Scan and the
// strings are only valid for the duration of the call.
type Record struct {
	When   time.Time
	ID     uint64
	Level  Level
	Target string
	Msg    string
	Scan   ScanFunc
}

// SinkFunc receives every record that passes the logger's level filter.
type SinkFunc func(*Record)

// Logger is the delivery pipeline: it filters on level, stamps the time and
// hands records to a sink. It does not interpret target or context identity
// itself. The zero Logger discards everything; loggers are immutable after
// construction and safe for concurrent use as long as their sink is.
type Logger struct {
	sink     SinkFunc
	minLevel Level
}

// Nop discards all records.
var Nop = &Logger{minLevel: Disabled}

// New returns a logger writing to w, choosing line rendering when w is a
// terminal and JSON otherwise.
func New(w io.Writer) *Logger {
	mode := ModeJSON
	if isTerminal(w) {
		mode = ModeLine
	}
	return NewWithOptions(w, Options{Mode: mode})
}

// NewLine returns a logger that renders single-line records to w.
func NewLine(w io.Writer) *Logger {
	return NewWithOptions(w, Options{Mode: ModeLine})
}

// NewJSON returns a logger that renders JSON records to w.
func NewJSON(w io.Writer) *Logger {
	return NewWithOptions(w, Options{Mode: ModeJSON})
}

// NewWithOptions builds a logger with explicit settings.
func NewWithOptions(w io.Writer, opts Options) *Logger {
	if w == nil {
		w = io.Discard
	}
	var sink SinkFunc
	if opts.Mode == ModeJSON {
		sink = jsonSink(w, opts)
	} else {
		sink = lineSink(w, opts)
	}
	return &Logger{sink: sink, minLevel: opts.MinLevel}
}

// NewWithSink builds a logger delivering to a caller-supplied sink.
func NewWithSink(minLevel Level, sink SinkFunc) *Logger {
	return &Logger{sink: sink, minLevel: minLevel}
}

// MinLevel returns a logger derived from the receiver with the given
// minimum level. The receiver is not modified.
func (l *Logger) MinLevel(level Level) *Logger {
	return &Logger{sink: l.sink, minLevel: level}
}

// MinLevelFromEnv configures the derived logger's level from the value of
// key in the environment. Missing or unrecognised values leave the logger
// unchanged.
func (l *Logger) MinLevelFromEnv(key string) *Logger {
	if level, ok := LevelFromEnv(key); ok {
		return l.MinLevel(level)
	}
	return l
}

func (l *Logger) shouldLog(level Level) bool {
	if l == nil || l.sink == nil || l.minLevel == Disabled || level == Disabled {
		return false
	}
	if level == AuditLevel {
		return true
	}
	return level >= l.minLevel
}

// Log delivers one record. id is the numeric context identifier, target an
// optional subsystem string, and scan the structured key-value callback (nil
// for none).
func (l *Logger) Log(id uint64, level Level, target, msg string, scan ScanFunc) {
	if !l.shouldLog(level) {
		return
	}
	rec := Record{
		When:   time.Now(),
		ID:     id,
		Level:  level,
		Target: target,
		Msg:    msg,
		Scan:   scan,
	}
	l.sink(&rec)
}

// Logf delivers one record with a formatted message.
func (l *Logger) Logf(id uint64, level Level, target string, scan ScanFunc, format string, args ...any) {
	if !l.shouldLog(level) {
		return
	}
	l.Log(id, level, target, fmt.Sprintf(format, args...), scan)
}

// Cx returns a logging context bound to the numeric identifier id, the
// handle call sites log through without carrying the logger and identifier
// separately.
func (l *Logger) Cx(id uint64) *Cx {
	return &Cx{id: id, logger: l}
}

// Cx couples a context identifier, an optional target and a logger. It is
// immutable; WithTarget derives a new one.
type Cx struct {
	id     uint64
	target string
	logger *Logger
}

// ID returns the context identifier.
func (c *Cx) ID() uint64 { return c.id }

// WithTarget derives a context whose records carry the given target string.
func (c *Cx) WithTarget(target string) *Cx {
	return &Cx{id: c.id, target: target, logger: c.logger}
}

// Trace logs msg at TraceLevel with the given key-value pairs.
func (c *Cx) Trace(msg string, keyvals ...any) { c.log(TraceLevel, msg, keyvals) }

// Debug logs msg at DebugLevel.
func (c *Cx) Debug(msg string, keyvals ...any) { c.log(DebugLevel, msg, keyvals) }

// Info logs msg at InfoLevel.
func (c *Cx) Info(msg string, keyvals ...any) { c.log(InfoLevel, msg, keyvals) }

// Warn logs msg at WarnLevel.
func (c *Cx) Warn(msg string, keyvals ...any) { c.log(WarnLevel, msg, keyvals) }

// Error logs msg at ErrorLevel.
func (c *Cx) Error(msg string, keyvals ...any) { c.log(ErrorLevel, msg, keyvals) }

// Audit logs a fixed-tag record with no freeform text; the tag stands in for
// the message.
func (c *Cx) Audit(tag string, keyvals ...any) { c.log(AuditLevel, tag, keyvals) }

func (c *Cx) log(level Level, msg string, keyvals []any) {
	if c == nil || !c.logger.shouldLog(level) {
		return
	}
	c.logger.Log(c.id, level, c.target, msg, scanKeyvals(keyvals))
}

// scanKeyvals adapts variadic key-value pairs to a ScanFunc. Pairs are
// (key, value) with the value dispatched through Visit; a *Builder or
// ScanFunc element is replayed inline at the current level; a trailing
// valueless element and non-string keys get positional argN names.
func scanKeyvals(keyvals []any) ScanFunc {
	if len(keyvals) == 0 {
		return nil
	}
	return func(out Visitor) {
		pair := 0
		for i := 0; i < len(keyvals); {
			switch v := keyvals[i].(type) {
			case *Builder:
				v.Scan(out)
				i++
				continue
			case ScanFunc:
				if v != nil {
					v(out)
				}
				i++
				continue
			}
			if i+1 < len(keyvals) {
				Visit(out, K(keyName(keyvals[i], pair)), keyvals[i+1])
				i += 2
			} else {
				Visit(out, K(argKeyName(pair)), keyvals[i])
				i++
			}
			pair++
		}
	}
}

func keyName(v any, pair int) string {
	switch k := v.(type) {
	case string:
		return k
	case fmt.Stringer:
		return k.String()
	}
	return argKeyName(pair)
}

func argKeyName(pair int) string {
	return "arg" + strconv.Itoa(pair)
}

// lineSink renders records as "ts LEVEL #id target msg kv..." using the
// single-line renderer for the key-value tail.
func lineSink(w io.Writer, opts Options) SinkFunc {
	layout := opts.TimeFormat
	if layout == "" {
		layout = DTGTimeFormat
	}
	return func(rec *Record) {
		lw := acquireLineWriter(w)
		if !opts.DisableTimestamp {
			when := rec.When
			if opts.UTC {
				when = when.UTC()
			}
			lw.writeString(when.Format(layout))
			lw.writeByte(' ')
		}
		lw.writeString(LevelLabel(rec.Level))
		lw.writeString(" #")
		lw.writeUint64(rec.ID)
		if rec.Target != "" {
			lw.writeByte(' ')
			lw.writeString(rec.Target)
		}
		if rec.Msg != "" {
			lw.writeByte(' ')
			lw.writeString(rec.Msg)
		}
		if rec.Scan != nil {
			r := lineRenderer{lw: lw, pending: " "}
			rec.Scan(&r)
		}
		lw.finishLine()
		lw.flush()
		releaseLineWriter(lw)
	}
}

// jsonSink renders records as one compact JSON object per line, splicing the
// key-value fragment into the record object with a "," prefix.
func jsonSink(w io.Writer, opts Options) SinkFunc {
	layout := opts.TimeFormat
	if layout == "" {
		layout = time.RFC3339
	}
	return func(rec *Record) {
		lw := acquireLineWriter(w)
		lw.writeByte('{')
		if !opts.DisableTimestamp {
			when := rec.When
			if opts.UTC {
				when = when.UTC()
			}
			lw.writeString(`"ts":`)
			lw.buf = appendJSONString(lw.buf, when.Format(layout))
			lw.writeByte(',')
		}
		lw.writeString(`"lvl":"`)
		lw.writeString(LevelString(rec.Level))
		lw.writeString(`","id":`)
		lw.writeUint64(rec.ID)
		if rec.Target != "" {
			lw.writeString(`,"target":`)
			lw.buf = appendJSONString(lw.buf, rec.Target)
		}
		if rec.Msg != "" {
			lw.writeString(`,"msg":`)
			lw.buf = appendJSONString(lw.buf, rec.Msg)
		}
		if rec.Scan != nil {
			r := jsonRenderer{lw: lw, pending: ","}
			rec.Scan(&r)
		}
		lw.writeByte('}')
		lw.finishLine()
		lw.flush()
		releaseLineWriter(lw)
	}
}
