package engine

import "errors"

// ErrSchedulerExhausted means the scheduler refused a new schedule or could
// not cancel an old one. The engine is unusable once this is returned from
// Start; callers should reset their view to Idle.
var ErrSchedulerExhausted = errors.New("engine: scheduler exhausted")
