package host

import "errors"

var (
	// ErrNoDrawFunc is returned when a sketch does not define a draw function.
	ErrNoDrawFunc = errors.New("sketch does not define draw()")

	// ErrStopped is returned when a runner that already ran is started again.
	ErrStopped = errors.New("runner stopped")

	// ErrStateClosed is returned when using a closed Lua state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrFrameTimeout is returned when setup() or draw() exceeds its time budget.
	ErrFrameTimeout = errors.New("frame timeout")
)
