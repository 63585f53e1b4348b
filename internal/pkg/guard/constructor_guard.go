// Package guard holds the constructor guard embedded by command and query values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied,
// so a failed check never comes back as a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as built through its constructor. The zero value is
// "not constructed", so a struct literal that skips the constructor fails Validate.
//
// Commands and queries embed a guard next to their fields and set it in their
// constructor after every setter has run. Handlers call Validate on the incoming value
// before touching the unit of work, which turns a forgotten constructor call into an
// error instead of a half filled request reaching the domain.
//
// Example usage:
//
//	var ErrChangeBookingStatusCommandIsNotConstructed = errors.New(
//	    "ChangeBookingStatusCommand must be created via NewChangeBookingStatusCommand constructor",
//	)
//
//	type ChangeBookingStatusCommand struct {
//	    bookingID kernel.UUID
//	    target    booking.Status
//
//	    guard guard.ConstructorGuard
//	}
//
//	func (c ChangeBookingStatusCommand) Validate() error {
//	    return c.guard.Validate(ErrChangeBookingStatusCommandIsNotConstructed)
//	}
//
//	// In the handler:
//	if err := cmd.Validate(); err != nil {
//	    return err
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that passes validation. Call it only from the
// constructor of the value that embeds it.
//
// Example:
//
//	func NewCountBookingsByStatusQuery() CountBookingsByStatusQuery {
//	    return CountBookingsByStatusQuery{guard: guard.NewConstructorGuard()}
//	}
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate reports whether the guarded value came from its constructor.
//
// Returns:
//   - nil if the guard was created by NewConstructorGuard
//   - validationError if the guard is a zero value
//   - ErrDefaultConstructorGuard if the guard is a zero value and validationError is nil
//
// Example:
//
//	var q queries.GetBookingsQuery // zero value, constructor skipped
//	err := q.Validate()
//	errors.Is(err, queries.ErrGetBookingsQueryIsNotConstructed) // true
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
