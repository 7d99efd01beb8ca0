// Package stress implements the economic stress provider: it fetches
// public market indicators over HTTP and converts them into the bounded
// multiplier consumed by the risk scorer. The scoring core never imports
// this package; it only sees the risk.StressProvider interface.
package stress

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/aiscm/aictl/pkg/net"
	"github.com/aiscm/aictl/pkg/risk"
)

const (
	// CacheTTLDefault bounds how long a fetched multiplier is reused.
	CacheTTLDefault = time.Hour

	fetchGroupKey = "indicators"
)

// Volatility index bands and their multiplier contributions.
const (
	volatilityElevated = 20.0
	volatilityHigh     = 30.0
	volatilityCrisis   = 40.0
)

// Indicators is the wire shape of the market indicator endpoint.
type Indicators struct {
	VolatilityIndex float64 `json:"volatility_index"`
	GDPGrowth       float64 `json:"gdp_growth"`
	AsOf            string  `json:"as_of,omitempty"`
}

// Provider fetches indicators from a configured endpoint, computes the
// stress multiplier, and caches it for the configured TTL. Concurrent
// refreshes are collapsed into a single fetch.
type Provider struct {
	url    string
	client *http.Client
	ttl    time.Duration
	group  singleflight.Group

	mu      sync.Mutex
	cached  risk.StressMultiplier
	fetched time.Time
}

// New creates a provider for the given indicator endpoint. An empty apiKey
// produces an unauthenticated client; ttl <= 0 uses CacheTTLDefault.
func New(ctx context.Context, url, apiKey string, ttl time.Duration) *Provider {
	var client *http.Client
	if apiKey != "" {
		client = net.GetBearerClient(ctx, apiKey)
	}
	if ttl <= 0 {
		ttl = CacheTTLDefault
	}
	return &Provider{url: url, client: client, ttl: ttl}
}

// GetMultiplier returns the current stress multiplier, fetching indicators
// when the cached value is stale. Errors propagate to the caller, which is
// expected to fall back to the default multiplier.
func (p *Provider) GetMultiplier(ctx context.Context) (risk.StressMultiplier, error) {
	p.mu.Lock()
	if !p.fetched.IsZero() && time.Since(p.fetched) < p.ttl {
		m := p.cached
		p.mu.Unlock()
		return m, nil
	}
	p.mu.Unlock()

	v, err, _ := p.group.Do(fetchGroupKey, func() (interface{}, error) {
		return p.refresh(ctx)
	})
	if err != nil {
		return risk.StressMultiplier{}, fmt.Errorf("%w: %v", risk.ErrProviderUnavailable, err)
	}
	return v.(risk.StressMultiplier), nil
}

func (p *Provider) refresh(ctx context.Context) (risk.StressMultiplier, error) {
	var ind Indicators
	if err := net.GetJSON(ctx, p.client, p.url, &ind); err != nil {
		return risk.StressMultiplier{}, err
	}

	m := risk.StressMultiplier{
		Value:      MultiplierFor(ind),
		Provenance: risk.ProvenanceMeasured,
	}
	slog.Debug("refreshed stress multiplier",
		"volatility", ind.VolatilityIndex, "gdp_growth", ind.GDPGrowth, "multiplier", m.Value)

	p.mu.Lock()
	p.cached = m
	p.fetched = time.Now()
	p.mu.Unlock()

	return m, nil
}

// MultiplierFor converts market indicators into a stress multiplier:
// volatility bands contribute up to +0.5, a contracting economy adds +0.2,
// and the result is clamped into the documented [1.0, 2.0] range.
func MultiplierFor(ind Indicators) float64 {
	m := risk.MultiplierMin

	switch {
	case ind.VolatilityIndex >= volatilityCrisis:
		m += 0.5
	case ind.VolatilityIndex >= volatilityHigh:
		m += 0.3
	case ind.VolatilityIndex >= volatilityElevated:
		m += 0.1
	}

	if ind.GDPGrowth < 0 {
		m += 0.2
	}

	return risk.ClampMultiplier(m)
}
