package repository

import (
	"context"
	"fmt"
	"strings"
)

// Engine names accepted by NewByEngine.
const (
	EngineMemory = "memory"
	EngineSQLite = "sqlite"
)

// NewByEngine constructs a Store for the configured engine. The memory
// engine needs no path; sqlite persists at path.
func NewByEngine(ctx context.Context, engine, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineMemory:
		return NewMemoryStore(), nil
	case EngineSQLite:
		return NewSQLStore(ctx, path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}
}
