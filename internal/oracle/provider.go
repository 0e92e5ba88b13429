package oracle

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/cory-johannsen/society/internal/config"
	"github.com/cory-johannsen/society/internal/sim/dice"
)

// New builds the configured backend wrapped in a Logged decorator.
//
// Precondition: cfg has passed config validation; src and logger are non-nil.
// Postcondition: Returns a non-nil Logged that the caller must Close, or an error.
func New(ctx context.Context, cfg config.OracleConfig, src dice.Source, logger *zap.Logger) (*Logged, error) {
	var backend Oracle
	switch cfg.Provider {
	case "anthropic":
		a, err := NewAnthropic(cfg.APIKey, cfg.Model, cfg.MaxTokens)
		if err != nil {
			return nil, err
		}
		backend = a
	case "gemini":
		g, err := NewGemini(ctx, cfg.APIKey, cfg.Model, cfg.MaxTokens)
		if err != nil {
			return nil, err
		}
		backend = g
	case "script":
		s, err := LoadScript(cfg.Script, cfg.InstructionLimit, src)
		if err != nil {
			return nil, err
		}
		backend = s
	default:
		return nil, fmt.Errorf("oracle.New: unknown provider %q", cfg.Provider)
	}
	logger.Info("oracle ready", zap.String("provider", cfg.Provider), zap.String("model", cfg.Model))
	return NewLogged(backend, logger.Named("oracle")), nil
}

// Close releases the wrapped backend if it holds resources.
func (l *Logged) Close() error {
	if c, ok := l.next.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
