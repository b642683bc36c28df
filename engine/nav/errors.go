package nav

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidNavData reports terrain or layout input the store cannot be built from.
	ErrInvalidNavData = errors.New("invalid navigation data")

	// ErrCapacityExceeded is returned when a chunk needs more portals than the
	// configured capacity. It wraps ErrInvalidNavData.
	ErrCapacityExceeded = fmt.Errorf("%w: portal capacity exceeded", ErrInvalidNavData)

	// ErrReleased is returned by every query on a store after Free.
	ErrReleased = errors.New("navigation store released")

	// ErrOutOfBounds reports a chunk, tile or cell outside the map.
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrNoRoute means an endpoint is blocked or the goal cannot be reached.
	ErrNoRoute = errors.New("no route")
)
