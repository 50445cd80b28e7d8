package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("GET", "/gyms", "200", 0.5)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/gyms", "200"))
	assert.Equal(t, float64(1), count)
}

func TestRecordHTTPRequestMultiple(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("POST", "/auth/login", "200", 0.1)
	RecordHTTPRequest("POST", "/auth/login", "200", 0.2)
	RecordHTTPRequest("POST", "/auth/login", "401", 0.05)

	successCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/login", "200"))
	failCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/login", "401"))

	assert.Equal(t, float64(2), successCount)
	assert.Equal(t, float64(1), failCount)
}

func TestRecordBooking(t *testing.T) {
	BookingsCreatedTotal.Reset()

	RecordBooking("pending")
	RecordBooking("pending")
	RecordBooking("confirmed")

	pending := testutil.ToFloat64(BookingsCreatedTotal.WithLabelValues("pending"))
	confirmed := testutil.ToFloat64(BookingsCreatedTotal.WithLabelValues("confirmed"))

	assert.Equal(t, float64(2), pending)
	assert.Equal(t, float64(1), confirmed)
}

func TestRecordMembership(t *testing.T) {
	MembershipsCreatedTotal.Reset()

	RecordMembership("monthly")
	RecordMembership("monthly")
	RecordMembership("yearly")

	monthly := testutil.ToFloat64(MembershipsCreatedTotal.WithLabelValues("monthly"))
	yearly := testutil.ToFloat64(MembershipsCreatedTotal.WithLabelValues("yearly"))

	assert.Equal(t, float64(2), monthly)
	assert.Equal(t, float64(1), yearly)
}

func TestRecordReviewWrite(t *testing.T) {
	ReviewWritesTotal.Reset()

	RecordReviewWrite("create")
	RecordReviewWrite("update")
	RecordReviewWrite("delete")
	RecordReviewWrite("create")

	creates := testutil.ToFloat64(ReviewWritesTotal.WithLabelValues("create"))
	deletes := testutil.ToFloat64(ReviewWritesTotal.WithLabelValues("delete"))

	assert.Equal(t, float64(2), creates)
	assert.Equal(t, float64(1), deletes)
}

func TestRecordEmail(t *testing.T) {
	EmailsSentTotal.Reset()

	RecordEmail("generic", "sent")
	RecordEmail("generic", "failed")
	RecordEmail("generic", "sent")

	sent := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("generic", "sent"))
	failed := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("generic", "failed"))

	assert.Equal(t, float64(2), sent)
	assert.Equal(t, float64(1), failed)
}

func TestEmailQueueLength(t *testing.T) {
	EmailQueueLength.Set(10)
	assert.Equal(t, float64(10), testutil.ToFloat64(EmailQueueLength))

	EmailQueueLength.Set(0)
	assert.Equal(t, float64(0), testutil.ToFloat64(EmailQueueLength))
}
