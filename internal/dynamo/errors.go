package dynamo

import "errors"

// Domain errors for configuration and wiring. The simulation core itself
// never fails on user input; these surface only from config and CLI paths.
var (
	// ErrUnknownIntegrator indicates a stepper name with no registered implementation.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")

	// ErrUnknownPreset indicates a preset name that is not defined.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")

	// ErrInvalidConfig indicates a configuration value outside its valid range.
	ErrInvalidConfig = errors.New("dynamo: invalid configuration")
)

// ConfigError wraps ErrInvalidConfig with the offending field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "dynamo: invalid configuration: " + e.Field + " " + e.Reason
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}
