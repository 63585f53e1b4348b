package booking

import "time"

// Field names a booking document key written by a status save.
type Field string

const (
	FieldStatus            Field = "status"
	FieldCancelledAtStatus Field = "cancelledAtStatus"
	FieldServiceReason     Field = "serviceReason"
	FieldServiceAmount     Field = "serviceAmount"
	FieldCompletedAt       Field = "completedAt"
)

// FieldUpdate is one entry of a PersistencePayload. Delete marks a field that must be
// removed from the stored document rather than written.
//
// Value types by field:
//   - FieldStatus, FieldCancelledAtStatus: Status
//   - FieldServiceReason: string
//   - FieldServiceAmount: float64
//   - FieldCompletedAt: map[Status]time.Time
type FieldUpdate struct {
	Field  Field
	Value  any
	Delete bool
}

// PersistencePayload is the partial update handed to the repository on save.
type PersistencePayload struct {
	updates []FieldUpdate
}

// Updates returns the entries in the order they were added.
func (p PersistencePayload) Updates() []FieldUpdate {
	updates := make([]FieldUpdate, len(p.updates))
	copy(updates, p.updates)
	return updates
}

// Lookup returns the entry for field, if the payload carries one.
func (p PersistencePayload) Lookup(field Field) (FieldUpdate, bool) {
	for _, u := range p.updates {
		if u.Field == field {
			return u, true
		}
	}
	return FieldUpdate{}, false
}

func (p PersistencePayload) IsEmpty() bool {
	return len(p.updates) == 0
}

func (p *PersistencePayload) set(field Field, value any) {
	p.updates = append(p.updates, FieldUpdate{Field: field, Value: value})
}

func (p *PersistencePayload) remove(field Field) {
	p.updates = append(p.updates, FieldUpdate{Field: field, Delete: true})
}

// BuildPersistencePayload produces the fields written on an explicit save:
//   - status, always
//   - serviceReason and serviceAmount when the booking has reached ServiceCenter
//     (for a cancelled booking, the step recorded at cancellation) and a reason is set;
//     otherwise deletion markers for both
//   - cancelledAtStatus for a cancelled booking that recorded one; otherwise a deletion marker
//   - completedAt, the per-step completion timestamps
func (b *Booking) BuildPersistencePayload() PersistencePayload {
	var p PersistencePayload

	p.set(FieldStatus, b.status)

	if b.progressIndex() >= ServiceCenter.StepIndex() && b.serviceReason != nil {
		p.set(FieldServiceReason, *b.serviceReason)
		if b.serviceAmount != nil {
			p.set(FieldServiceAmount, *b.serviceAmount)
		} else {
			p.remove(FieldServiceAmount)
		}
	} else {
		p.remove(FieldServiceReason)
		p.remove(FieldServiceAmount)
	}

	if b.status == Cancelled && b.cancelledAtStatus != nil {
		p.set(FieldCancelledAtStatus, *b.cancelledAtStatus)
	} else {
		p.remove(FieldCancelledAtStatus)
	}

	completedAt := b.CompletedAt()
	p.set(FieldCompletedAt, completedAt)

	return p
}

// CompletedAtCodes converts a completedAt map to wire codes, e.g. for JSON storage.
func CompletedAtCodes(m map[Status]time.Time) map[string]time.Time {
	out := make(map[string]time.Time, len(m))
	for s, at := range m {
		out[s.Code()] = at
	}
	return out
}

// CompletedAtFromCodes is the inverse of CompletedAtCodes. Unknown codes are skipped.
func CompletedAtFromCodes(m map[string]time.Time) map[Status]time.Time {
	out := make(map[Status]time.Time, len(m))
	for code, at := range m {
		s, err := ParseStatus(code)
		if err != nil {
			continue
		}
		out[s] = at
	}
	return out
}
