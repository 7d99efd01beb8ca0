package stress

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiscm/aictl/pkg/risk"
)

func TestMultiplierFor(t *testing.T) {
	assert.Equal(t, 1.0, MultiplierFor(Indicators{VolatilityIndex: 12, GDPGrowth: 2.1}))
	assert.Equal(t, 1.1, MultiplierFor(Indicators{VolatilityIndex: 22, GDPGrowth: 1.0}))
	assert.Equal(t, 1.3, MultiplierFor(Indicators{VolatilityIndex: 33, GDPGrowth: 0.5}))
	assert.Equal(t, 1.5, MultiplierFor(Indicators{VolatilityIndex: 45, GDPGrowth: 0.1}))
	assert.Equal(t, 1.7, MultiplierFor(Indicators{VolatilityIndex: 45, GDPGrowth: -1.2}))
}

func TestMultiplierFor_AlwaysInBounds(t *testing.T) {
	extremes := []Indicators{
		{VolatilityIndex: 0, GDPGrowth: 10},
		{VolatilityIndex: 500, GDPGrowth: -10},
		{VolatilityIndex: -5, GDPGrowth: 0},
	}
	for _, ind := range extremes {
		m := MultiplierFor(ind)
		assert.GreaterOrEqual(t, m, risk.MultiplierMin)
		assert.LessOrEqual(t, m, risk.MultiplierMax)
	}
}

func TestProvider_GetMultiplier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"volatility_index": 33, "gdp_growth": 1.2}`))
	}))
	defer srv.Close()

	p := New(context.Background(), srv.URL, "", time.Minute)
	m, err := p.GetMultiplier(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1.3, m.Value)
	assert.Equal(t, risk.ProvenanceMeasured, m.Provenance)
}

func TestProvider_CachesWithinTTL(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"volatility_index": 10, "gdp_growth": 2}`))
	}))
	defer srv.Close()

	p := New(context.Background(), srv.URL, "", time.Minute)
	for i := 0; i < 5; i++ {
		_, err := p.GetMultiplier(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestProvider_EndpointDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := New(context.Background(), srv.URL, "", time.Minute)
	_, err := p.GetMultiplier(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, risk.ErrProviderUnavailable)
}

func TestProvider_FailureDegradesToDefault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := New(context.Background(), srv.URL, "", time.Minute)
	m := risk.ResolveMultiplier(context.Background(), p, 5*time.Second)
	assert.Equal(t, risk.MultiplierDefault, m.Value)
	assert.Equal(t, risk.ProvenanceDefaultFallback, m.Provenance)
}
