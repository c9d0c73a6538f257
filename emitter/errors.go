package emitter

import (
	"fmt"

	"github.com/npillmayer/csstree/syntax"
)

// ConfigError is returned for malformed plugin subscriptions. Configuration
// errors are detected when plugins are registered, before any parsing happens.
type ConfigError struct {
	Plugin       string
	Subscription string
	Message      string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("plugin %s, subscription %q: %s", e.Plugin, e.Subscription, e.Message)
}

// HandlerError wraps an error returned by a subscription handler.
type HandlerError struct {
	Subscription string
	Unit         syntax.Node
	Err          error
}

func (e *HandlerError) Error() string {
	line, col := e.Unit.Pos()
	return fmt.Sprintf("%s failed for %v at %d:%d: %v", e.Subscription, e.Unit.Kind(), line, col, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}
