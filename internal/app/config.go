package app

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Output formats for compile results.
const (
	OutputText = "text"
	OutputYAML = "yaml"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Paths are office files or directories searched for office files.
	Paths []string `validate:"required,min=1,dive,required"`

	LogFormat string `validate:"oneof=text json"`
	LogLevel  string `validate:"oneof=debug info warn error"`
	Output    string `validate:"oneof=text yaml"`
	// Write makes Format rewrite files in place instead of printing them.
	Write bool
}

var validate = validator.New()

// NewConfig fills in defaults and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogFormat == "" {
		cfg.LogFormat = LogText
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.Output == "" {
		cfg.Output = OutputText
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, formatValidationError(err)
	}
	return &cfg, nil
}

// formatValidationError reports the first failed field in a readable form.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	for _, e := range validationErrs {
		switch e.Tag() {
		case "required", "min":
			return fmt.Errorf("%s: at least one value is required", e.Field())
		case "oneof":
			return fmt.Errorf("%s: %q is not one of %s", e.Field(), e.Value(), e.Param())
		default:
			return fmt.Errorf("%s: validation failed (%s)", e.Field(), e.Tag())
		}
	}
	return err
}
