package schedule

import (
	"context"
	"time"

	domain "github.com/NovaClinicSystems/clinic-scheduler/internal/domain/schedule"
)

// SlotCache holds annotated slot views per doctor/date-range. The view is
// a hint only: the booking coordinator always re-checks against the
// database at commit time. Implementations must treat their own failures
// as cache misses, never as request failures.
type SlotCache interface {
	GetSlots(
		ctx context.Context,
		doctorID uint,
		from time.Time,
		to time.Time,
	) (map[string][]domain.Slot, bool)

	SetSlots(
		ctx context.Context,
		doctorID uint,
		from time.Time,
		to time.Time,
		slots map[string][]domain.Slot,
	)

	// Invalidate drops every cached view for the doctor. Called after any
	// appointment or rule mutation.
	Invalidate(ctx context.Context, doctorID uint)
}
