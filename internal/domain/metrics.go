package domain

import "time"

// BookingMetrics records booking admission outcomes. Implementations must be
// safe for concurrent use. Every attempt increments the attempt counter
// exactly once; a duration sample is recorded only for admitted bookings.
type BookingMetrics interface {
	RecordAttempt()
	RecordSuccess()
	RecordFailure(reason RejectReason)
	RecordDuration(d time.Duration)
}

// NoopBookingMetrics discards all measurements.
type NoopBookingMetrics struct{}

func (NoopBookingMetrics) RecordAttempt()               {}
func (NoopBookingMetrics) RecordSuccess()               {}
func (NoopBookingMetrics) RecordFailure(RejectReason)   {}
func (NoopBookingMetrics) RecordDuration(time.Duration) {}
