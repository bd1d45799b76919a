package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glambooking/backend/internal/application/tenancy"
	"github.com/glambooking/backend/internal/domain/identity"
	"github.com/glambooking/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	t.Cleanup(func() {
		_ = tp.Shutdown(t.Context())
		otel.SetTracerProvider(prev)
	})
	return sr
}

func attrMap(kvs []attribute.KeyValue) map[string]string {
	out := make(map[string]string, len(kvs))
	for _, kv := range kvs {
		out[string(kv.Key)] = kv.Value.Emit()
	}
	return out
}

func TestTracingWithConfig_Disabled(t *testing.T) {
	sr := setupTestTracer(t)

	w := httptest.NewRecorder()
	newTestRouter(TracingWithConfig(TracingConfig{Enabled: false})).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sr.Ended())
}

func TestSpanEnricher(t *testing.T) {
	sr := setupTestTracer(t)
	businessID := uuid.New()

	r := gin.New()
	r.Use(TracingWithConfig(TracingConfig{Enabled: true, ServiceName: "glambooking-test"}), SpanEnricher())
	r.Use(func(c *gin.Context) {
		c.Set(RequestIDKey, "req-1")
		c.Set(TenantKey, &tenancy.Resolution{BusinessID: businessID})
		c.Set(PrincipalKey, &identity.Principal{ExternalID: "user_owner"})
		c.Next()
	})
	r.GET("/boom", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
	r.GET("/missing", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Business not found"})
	})

	t.Run("5xx marks the span", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		spans := sr.Ended()
		require.NotEmpty(t, spans)
		span := spans[len(spans)-1]
		attrs := attrMap(span.Attributes())
		assert.Equal(t, "req-1", attrs["request_id"])
		assert.Equal(t, businessID.String(), attrs[telemetry.AttrBusinessID])
		assert.Equal(t, "user_owner", attrs["enduser.id"])
		assert.Equal(t, codes.Error, span.Status().Code)
	})

	t.Run("4xx is not an error", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

		spans := sr.Ended()
		require.NotEmpty(t, spans)
		assert.NotEqual(t, codes.Error, spans[len(spans)-1].Status().Code)
	})
}
