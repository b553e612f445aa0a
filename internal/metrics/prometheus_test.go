package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUsesIndependentRegistries(t *testing.T) {
	a := New()
	b := New()

	a.ViewsCounted.WithLabelValues("pv").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.ViewsCounted.WithLabelValues("pv")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.ViewsCounted.WithLabelValues("pv")))
}

func TestHandlerServesMetrics(t *testing.T) {
	m := New()
	m.CommentsCreated.Inc()

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "blog_comments_created_total 1")
}
