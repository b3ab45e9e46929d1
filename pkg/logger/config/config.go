package config

import (
	"errors"
	"fmt"
)

// zap levels
const (
	DEBUG_LEVEL = -1
	INFO_LEVEL  = 0
	WARN_LEVEL  = 1
	ERROR_LEVEL = 2
)

var ErrInvalidLevel = errors.New("invalid log level")

type Configuration struct {
	Level      int
	TimeFormat string
}

func (c Configuration) Validate() error {
	if c.Level < DEBUG_LEVEL || c.Level > ERROR_LEVEL {
		return fmt.Errorf("%w: %d, want %d..%d", ErrInvalidLevel, c.Level, DEBUG_LEVEL, ERROR_LEVEL)
	}
	if c.TimeFormat == "" {
		return errors.New("empty log time format")
	}
	return nil
}
