package stakkerlog

import "context"

type loggerContextKey struct{}

// ContextWithLogger returns a child context carrying logger.
func ContextWithLogger(ctx context.Context, logger *Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerContextKey{}, logger)
}

// LoggerFromContext extracts a Logger from ctx if present, or returns Nop.
func LoggerFromContext(ctx context.Context) *Logger {
	if ctx == nil {
		return Nop
	}
	if logger, ok := ctx.Value(loggerContextKey{}).(*Logger); ok && logger != nil {
		return logger
	}
	return Nop
}

// Ctx is shorthand for LoggerFromContext.
func Ctx(ctx context.Context) *Logger {
	return LoggerFromContext(ctx)
}
