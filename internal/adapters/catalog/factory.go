package catalog

import (
	"fmt"
	"strings"
)

// Source names accepted by NewBySource.
const (
	SourceMock = "mock"
	SourceLive = "live"
)

// NewBySource constructs a Provider for the configured data source. The
// live source needs the directory base URL and a bearer token; the mock
// source ignores both.
func NewBySource(source, baseURL, token string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(source)) {
	case "", SourceMock:
		return NewMockProvider(), nil
	case SourceLive:
		return NewHTTPProvider(baseURL, token), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
}
