package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"eventbook/internal/domain"
)

func TestBookingCollectorRecords(t *testing.T) {
	collector, err := NewBookingCollector(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	// Instruments come from a noop meter, so all we verify is that every
	// port method is safe to call.
	collector.RecordAttempt()
	collector.RecordSuccess()
	collector.RecordFailure(domain.ReasonCapacityExceeded)
	collector.RecordDuration(150 * time.Millisecond)
}
