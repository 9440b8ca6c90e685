// Package core holds the domain model shared by the template parser, the
// binder, the format dispatcher and every adapter.
package core

import (
	"fmt"
	"time"
)

// Instance is a value of a tagged union: the active variant and its field
// values in shape order.
type Instance struct {
	Tag    string
	Values []any
}

// Structurer lets a type supply its own structured (debug) form.
type Structurer interface {
	FormatStructured() string
}

// EventType represents the kind of change published by a watched catalog.
type EventType string

const (
	EventReload EventType = "RELOAD"
	EventError  EventType = "ERROR"
)

// Event represents a catalog (re)load outcome.
type Event struct {
	Type EventType
	// Path is the file that triggered the event, relative to the catalog root.
	Path      string
	Enums     int
	Err       error
	Timestamp time.Time
}

func (e Event) String() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s (%d enums)", e.Type, e.Path, e.Enums)
}
