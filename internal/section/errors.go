package section

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedSectionGraph is returned when the element graph cannot be
	// walked as a single open path (disconnected, or a cycle the closed-section
	// guard did not catch).
	ErrMalformedSectionGraph = errors.New("malformed section graph")

	// ErrDegenerateGeometry is returned for zero-length elements, non-finite
	// coordinates, non-positive thickness and impossible arcs.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)

// MalformedGraphError describes where the warping walk got stuck.
type MalformedGraphError struct {
	Processed int // nodes reached before the walk stopped
	Total     int // nodes in the section
	Pass      string
}

func (e *MalformedGraphError) Error() string {
	return fmt.Sprintf("%s: %s pass reached %d of %d nodes", ErrMalformedSectionGraph, e.Pass, e.Processed, e.Total)
}

func (e *MalformedGraphError) Unwrap() error {
	return ErrMalformedSectionGraph
}

// DegenerateGeometryError represents invalid element geometry.
type DegenerateGeometryError struct {
	Element string // description of the offending element, if any
	msg     string
}

func (e *DegenerateGeometryError) Error() string {
	if e.Element == "" {
		return fmt.Sprintf("%s: %s", ErrDegenerateGeometry, e.msg)
	}
	return fmt.Sprintf("%s: %s: %s", ErrDegenerateGeometry, e.Element, e.msg)
}

func (e *DegenerateGeometryError) Unwrap() error {
	return ErrDegenerateGeometry
}

func degenerate(element, format string, args ...any) error {
	return &DegenerateGeometryError{Element: element, msg: fmt.Sprintf(format, args...)}
}

// ErrNotTemplate is returned by the channel operators when the section does
// not have the five straight elements of the lipped channel layout.
var ErrNotTemplate = errors.New("section is not a lipped channel template")
