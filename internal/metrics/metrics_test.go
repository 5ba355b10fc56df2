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

func TestProductWriteCounter(t *testing.T) {
	reg := NewRegistry()

	reg.ProductWrite("add", OutcomeSuccess)
	reg.ProductWrite("add", OutcomeSuccess)
	reg.ProductWrite("update", OutcomeNotFound)

	assert.Equal(t, 2.0, testutil.ToFloat64(reg.productWrites.WithLabelValues("add", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.productWrites.WithLabelValues("update", OutcomeNotFound)))
	assert.Equal(t, 2.0, reg.ProductWriteCount("add", OutcomeSuccess))
	assert.Zero(t, reg.ProductWriteCount("update", OutcomeError))
}

func TestNilRegistryIsNoop(t *testing.T) {
	var reg *Registry
	assert.NotPanics(t, func() { reg.ProductWrite("add", OutcomeError) })
}

func TestHandlerExposesCounter(t *testing.T) {
	reg := NewRegistry()
	reg.ProductWrite("add", OutcomeDuplicate)

	w := httptest.NewRecorder()
	reg.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `product_catalog_writes_total{operation="add",outcome="duplicate"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
