package cascade

import (
	"errors"
	"fmt"
)

// ErrConfig is the sentinel every *ConfigError matches with errors.Is.
var ErrConfig = errors.New("cascade: invalid configuration")

// ConfigError reports a drawing descriptor or scene configuration that cannot
// be honored, such as an unknown shape tag or a malformed gradient stop.
type ConfigError struct {
	Element string // element id or registry key, when known
	Drawing string // drawing key, when known
	Field   string // offending field, e.g. "fill.linearGradient"
	Reason  string
}

func (e *ConfigError) Error() string {
	where := e.Field
	if e.Drawing != "" {
		where = e.Drawing + "." + where
	}
	if e.Element != "" {
		where = e.Element + ":" + where
	}
	return fmt.Sprintf("cascade: %s: %s", where, e.Reason)
}

// Is makes every ConfigError match ErrConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// withLocation fills in the element and drawing of a ConfigError produced
// deeper in the pipeline.
func withLocation(err error, element, drawing string) error {
	var ce *ConfigError
	if errors.As(err, &ce) {
		if ce.Element == "" {
			ce.Element = element
		}
		if ce.Drawing == "" {
			ce.Drawing = drawing
		}
	}
	return err
}
