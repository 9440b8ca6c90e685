// Package lifecycle bridges catalog events into the lifecycle event model.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/enumtext/pkg/core"
)

// reloadSource relays catalog reloads to a lifecycle consumer.
type reloadSource struct {
	in  <-chan core.Event
	out chan lifecycle.Event
}

// NewSource adapts the channel returned by Catalog.Watch to a
// lifecycle.Source.
//
// Each emitted event is a core.Event. A RELOAD event means a new snapshot
// was published and its Enums count is current; an ERROR event means the
// reload failed, Err says why, and the catalog still serves the previous
// snapshot. Consumers that only log can use String(); others type-assert
// to core.Event. Events() is closed when the catalog stops watching or the
// context passed to Start is done.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &reloadSource{in: events, out: make(chan lifecycle.Event)}
}

func (s *reloadSource) Events() <-chan lifecycle.Event { return s.out }

func (s *reloadSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			var e core.Event
			var ok bool
			select {
			case <-ctx.Done():
				return nil
			case e, ok = <-s.in:
			}
			if !ok {
				return nil
			}
			select {
			case s.out <- e:
			case <-ctx.Done():
				return nil
			}
		}
	})
	return nil
}
