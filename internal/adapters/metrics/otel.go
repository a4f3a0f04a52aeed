// Package metrics implements domain.BookingMetrics on the OpenTelemetry
// metrics API. The caller supplies a meter from its MeterProvider, so any
// OTel-compatible backend works.
package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"eventbook/internal/domain"
)

// BookingCollector maps the booking metrics port to OpenTelemetry instruments:
// counters for attempts, successes, and failures (tagged by reason), and a
// histogram for handler duration in milliseconds.
type BookingCollector struct {
	attempts  metric.Int64Counter
	successes metric.Int64Counter
	failures  metric.Int64Counter
	duration  metric.Float64Histogram
}

// NewBookingCollector creates the instruments on the given meter.
func NewBookingCollector(meter metric.Meter) (*BookingCollector, error) {
	attempts, err := meter.Int64Counter(
		"eventbook.bookings.attempts",
		metric.WithDescription("Total booking attempts"),
	)
	if err != nil {
		return nil, err
	}
	successes, err := meter.Int64Counter(
		"eventbook.bookings.success",
		metric.WithDescription("Admitted bookings"),
	)
	if err != nil {
		return nil, err
	}
	failures, err := meter.Int64Counter(
		"eventbook.bookings.failures",
		metric.WithDescription("Rejected bookings by reason"),
	)
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram(
		"eventbook.bookings.duration",
		metric.WithUnit("ms"),
		metric.WithDescription("Booking handler execution time"),
	)
	if err != nil {
		return nil, err
	}
	return &BookingCollector{
		attempts:  attempts,
		successes: successes,
		failures:  failures,
		duration:  duration,
	}, nil
}

func (c *BookingCollector) RecordAttempt() {
	c.attempts.Add(context.Background(), 1)
}

func (c *BookingCollector) RecordSuccess() {
	c.successes.Add(context.Background(), 1)
}

func (c *BookingCollector) RecordFailure(reason domain.RejectReason) {
	c.failures.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("reason", string(reason))))
}

func (c *BookingCollector) RecordDuration(d time.Duration) {
	c.duration.Record(context.Background(), float64(d)/float64(time.Millisecond))
}
