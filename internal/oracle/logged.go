package oracle

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Logged decorates an Oracle with debug-level logging of every round trip.
type Logged struct {
	next   Oracle
	logger *zap.Logger
}

// NewLogged wraps next so that each Generate call is logged to logger.
//
// Precondition: next and logger must be non-nil.
func NewLogged(next Oracle, logger *zap.Logger) *Logged {
	return &Logged{next: next, logger: logger}
}

// Generate forwards to the wrapped Oracle and logs latency and outcome.
//
// Postcondition: Returns exactly what the wrapped Oracle returned.
func (l *Logged) Generate(ctx context.Context, req Request) (Response, error) {
	start := time.Now()
	resp, err := l.next.Generate(ctx, req)
	fields := []zap.Field{
		zap.String("schema", schemaName(req.Schema)),
		zap.Int("messages", len(req.Messages)),
		zap.Duration("latency", time.Since(start)),
	}
	if err != nil {
		l.logger.Warn("oracle call failed", append(fields, zap.Error(err))...)
		return resp, err
	}
	l.logger.Debug("oracle call", append(fields, zap.Int("response_bytes", len(resp.Text)))...)
	return resp, nil
}

func schemaName(s *Schema) string {
	if s == nil {
		return ""
	}
	return s.Name
}
