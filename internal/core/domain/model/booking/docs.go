// Package booking provides the Booking aggregate of the repair service and the
// lifecycle state machine that drives it from creation to delivery.
//
// The package includes:
//   - Booking: The aggregate root holding status, cancellation bookkeeping and the
//     service-center sub-state (reason and quoted amount)
//   - Status: The closed set of seven ordered steps plus the terminal Cancelled flag
//   - ServiceCenterDetails: The auxiliary input a ServiceCenter transition requires
//   - PersistencePayload: The partial field update written on an explicit save
//
// Ordered lifecycle:
//
//	Booked ─> Confirmed ─> Picked ─> ServiceCenter ─> Repair ─> OutForDelivery ─> Delivered
//	   └──────────┴───────────┴────────────┴─────────────┴───────────┴──> Cancelled
//
// Key business rules:
//   - Any ordered step may be requested from any other ordered step, forward or back
//   - Cancelling records the step the booking had reached; re-cancelling keeps it
//   - A direct regression from ServiceCenter to an earlier step drops the service reason and amount
//   - The saved document never carries service fields for a booking that has not reached ServiceCenter
package booking
