package engine

import "errors"

// Failure taxonomy. Nothing here is fatal to the host: NotFound and
// RequirementNotMet degrade to "no state change" plus a log entry; bounds
// violations are silently clamped; cascade overflow and duplicate completion
// are warnings inside otherwise-committed results.
var (
	ErrNotFound          = errors.New("not found")
	ErrRequirementNotMet = errors.New("requirement not met")
)
