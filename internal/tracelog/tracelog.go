// Package tracelog adapts the scanner's trace-bus callback (§4.4) onto
// structured zap logging.
package tracelog

import (
	"go.uber.org/zap"

	"github.com/calfront/calfront/lexer"
)

// NewLogger builds a development-formatted zap.Logger, falling back to a
// no-op logger if construction fails.
func NewLogger() *zap.Logger {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// Adapter returns a lexer.TraceFunc that logs every context push/pop,
// flag change, and token event through logger at debug level. The trace
// bus calls this synchronously from within Scanner.Tokenize — per §4.4 it
// is caught and disabled for the rest of the scan if it ever panics, so
// this adapter is free to log without extra recovery of its own.
func Adapter(logger *zap.Logger, component string) lexer.TraceFunc {
	base := logger.With(zap.String("component", component))
	return func(ev lexer.Event) {
		switch ev.Kind {
		case lexer.EventContextPush:
			base.Debug("context-push", zap.String("mode", ev.Mode.String()), zap.Int("line", ev.Line), zap.Int("col", ev.Column))
		case lexer.EventContextPop:
			base.Debug("context-pop", zap.String("mode", ev.Mode.String()), zap.Int("line", ev.Line), zap.Int("col", ev.Column))
		case lexer.EventFlagChange:
			base.Debug("flag-change", zap.String("flag", ev.Flag), zap.String("old", ev.OldValue), zap.String("new", ev.NewValue), zap.Int("line", ev.Line), zap.Int("col", ev.Column))
		case lexer.EventToken:
			base.Debug("token", zap.String("kind", ev.Token.Kind.String()), zap.Int("line", ev.Line), zap.Int("col", ev.Column))
		}
	}
}
