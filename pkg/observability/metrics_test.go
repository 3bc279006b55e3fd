package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordsEngineEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	eng := automata.New(automata.WithLifecycleHooks(m.Hooks()))
	ctx := context.Background()

	p, err := eng.Compile(ctx, "a(b|c)*")
	require.NoError(t, err)
	_, err = eng.SimulateString(ctx, p.Minimal, "abcb")
	require.NoError(t, err)
	_, err = eng.SimulateString(ctx, p.Minimal, "ba")
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Conversions.WithLabelValues("thompson", "ENFA")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Conversions.WithLabelValues("minimize", "DFA")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Simulations.WithLabelValues("DFA", "accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Simulations.WithLabelValues("DFA", "rejected")))
	assert.Equal(t, 5, testutil.CollectAndCount(m.Duration))

	_, err = observability.NewMetrics(reg)
	assert.Error(t, err, "registering twice must fail")
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "error", observability.Outcome(&domain.SimulationEvent{Kind: domain.KindPDA, Err: errors.New("boom")}))
	assert.Equal(t, "output", observability.Outcome(&domain.SimulationEvent{Kind: domain.KindMealy, Accepted: true}))
	assert.Equal(t, "accepted", observability.Outcome(&domain.SimulationEvent{Kind: domain.KindNFA, Accepted: true}))
	assert.Equal(t, "rejected", observability.Outcome(&domain.SimulationEvent{Kind: domain.KindDFA}))
}

func TestChainAndLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	var converted int
	counting := domain.LifecycleHooks{
		OnConvert: func(ctx context.Context, e *domain.ConversionEvent) { converted++ },
	}

	eng := automata.New(automata.WithLifecycleHooks(observability.Chain(counting, observability.LogHooks(logger))))
	p, err := eng.Compile(context.Background(), "ab")
	require.NoError(t, err)
	_, err = eng.SimulateString(context.Background(), p.DFA, "ab")
	require.NoError(t, err)

	assert.Equal(t, 4, converted)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], `"stage":"thompson"`)
	assert.Contains(t, lines[4], `"msg":"simulation_done"`)
	assert.Contains(t, lines[4], `"outcome":"accepted"`)
}
