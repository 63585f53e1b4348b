// Package services provides domain services of the repair booking system: logic that
// reads an aggregate but does not belong to it.
//
// The package includes:
//   - TimelineProjector: derives the per-step timeline and the progress line drawn under
//     the step icons from a booking's current or cancelled state
package services
