// internal/common/observability/metrics_test.go
package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestObservability_NilIsSafe(t *testing.T) {
	var o *Observability
	ctx := context.Background()

	assert.NotPanics(t, func() {
		o.RecordJobProcessed(ctx, "rank-trip-options", "completed")
		o.RecordJobDuration(ctx, "rank-trip-options", time.Second, "completed")
		o.RecordRanking(ctx, 3, time.Millisecond)

		spanCtx, span := o.StartSpan(ctx, "rank", attribute.Int("trips", 3))
		assert.NotNil(t, spanCtx)
		span.End()
	})
	assert.NoError(t, o.Shutdown(ctx))
}
