package services

import (
	"errors"
	"strings"
)

// ErrInvalidArgument is returned when a view receives a structurally invalid
// parameter. Callers should test for it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// SourceFormatError reports required columns absent from the dataset header.
// It is fatal: there is no degraded load mode.
type SourceFormatError struct {
	Source  string
	Missing []string
}

func (e *SourceFormatError) Error() string {
	return "source " + e.Source + " is missing required columns: " + strings.Join(e.Missing, ", ")
}
